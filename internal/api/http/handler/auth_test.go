package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sessiond/sessiond/internal/api/http/httpctx"
	"github.com/sessiond/sessiond/internal/mocks"
	"github.com/sessiond/sessiond/internal/model"
	"github.com/sessiond/sessiond/internal/testutil"
)

var testCookie = CookieConfig{Name: "session_id", Secure: false, TTL: 30 * time.Minute}

func newTestHandler(service *mocks.AuthService) *Auth {
	return NewAuth(service, httpctx.NewManager(), testCookie, testutil.MakeNoopLogger())
}

func TestAuth_Register(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "created",
			body:       `{"username":"alice","email":"a@x.com","password":"pw123"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate username",
			body:       `{"username":"alice","email":"a@x.com","password":"pw123"}`,
			serviceErr: model.ErrUsernameTaken,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "empty fields",
			body:       `{"username":"","email":"","password":""}`,
			serviceErr: model.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service := &mocks.AuthService{}
			if tt.wantStatus != http.StatusBadRequest || tt.serviceErr != nil {
				service.On("Register", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("string")).
					Return(model.User{ID: userID, Username: "alice"}, tt.serviceErr)
			}

			h := newTestHandler(service)

			req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Contains(t, rec.Body.String(), userID.String())
				// the password hash never reaches the client
				assert.NotContains(t, rec.Body.String(), "password")
			}
		})
	}
}

func TestAuth_Login_SetsSessionCookie(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	service := &mocks.AuthService{}
	service.On("Login", mock.Anything, "alice", "pw123").
		Return(model.User{ID: userID, Username: "alice"}, "opaque-session-id", nil)

	h := newTestHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"pw123"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "session_id", cookie.Name)
	assert.Equal(t, "opaque-session-id", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int((30 * time.Minute).Seconds()), cookie.MaxAge)

	// the session ID travels only in the cookie
	assert.NotContains(t, rec.Body.String(), "opaque-session-id")
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	service := &mocks.AuthService{}
	service.On("Login", mock.Anything, "alice", "wrong").
		Return(model.User{}, "", model.ErrInvalidCredentials)

	h := newTestHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuth_Logout(t *testing.T) {
	t.Parallel()

	service := &mocks.AuthService{}
	service.On("Logout", mock.Anything, "sid").Return(nil)

	h := newTestHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sid"})
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_id", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)

	service.AssertExpectations(t)
}

func TestAuth_Logout_NoCookie(t *testing.T) {
	t.Parallel()

	service := &mocks.AuthService{}
	h := newTestHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestAuth_Me(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	service := &mocks.AuthService{}
	service.On("User", mock.Anything, userID).
		Return(model.User{ID: userID, Username: "alice", Email: "a@x.com"}, nil)

	cm := httpctx.NewManager()
	h := NewAuth(service, cm, testCookie, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = req.WithContext(cm.SetUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
	assert.Contains(t, rec.Body.String(), "a@x.com")
}

func TestAuth_Me_NoPrincipal(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&mocks.AuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"unauthenticated"}`, rec.Body.String())
}

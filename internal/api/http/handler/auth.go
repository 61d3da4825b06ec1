package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sessiond/sessiond/internal/logger"
	"github.com/sessiond/sessiond/internal/model"
)

// AuthService provides registration, login, and logout operations.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (model.User, error)
	Login(ctx context.Context, username, password string) (model.User, string, error)
	Logout(ctx context.Context, sessionID string) error
	User(ctx context.Context, id uuid.UUID) (model.User, error)
}

// CookieConfig describes the session cookie the handlers set and clear.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Auth handles the authentication endpoints.
type Auth struct {
	service        AuthService
	contextManager model.ContextManager
	cookie         CookieConfig
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler instance.
func NewAuth(service AuthService, contextManager model.ContextManager, cookie CookieConfig, logger *logger.Logger) *Auth {
	return &Auth{
		service:        service,
		contextManager: contextManager,
		cookie:         cookie,
		logger:         logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Register handles POST /api/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{
		ID:       user.ID.String(),
		Username: user.Username,
	})
}

// Login handles POST /api/login. On success the session ID travels
// only in an HttpOnly cookie, never in the response body.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, sessionID, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.handleError(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(sessionID))
	writeJSON(w, http.StatusOK, userResponse{
		ID:       user.ID.String(),
		Username: user.Username,
	})
}

// Logout handles POST /api/logout. It destroys whatever session the
// cookie names and clears the cookie; an absent or unknown session is
// not an error.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookie.Name); err == nil && cookie.Value != "" {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			h.handleError(w, err)
			return
		}
	}

	http.SetCookie(w, h.clearedCookie())
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/me and returns the authenticated principal.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.UserID(r.Context())
	if !ok {
		h.handleError(w, model.ErrUnauthenticated)
		return
	}

	user, err := h.service.User(r.Context(), userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	})
}

func (h *Auth) sessionCookie(sessionID string) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (h *Auth) clearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

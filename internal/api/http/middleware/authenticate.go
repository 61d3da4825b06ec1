package middleware

import (
	"context"
	"net/http"

	"github.com/sessiond/sessiond/internal/logger"
	"github.com/sessiond/sessiond/internal/model"
)

// SessionResolver resolves an opaque session ID to a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (model.Session, error)
}

// Authenticate is the access guard: it resolves the session cookie and
// injects the principal into the request context. Missing, unknown,
// and expired sessions all produce the same response so the client
// cannot probe session validity.
type Authenticate struct {
	sessions       SessionResolver
	contextManager model.ContextManager
	cookieName     string
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionResolver, contextManager model.ContextManager, cookieName string, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		sessions:       sessions,
		contextManager: contextManager,
		cookieName:     cookieName,
		logger:         logger,
	}
}

// Handle wraps a handler which requires an authenticated principal.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			writeUnauthenticated(w)
			return
		}

		session, err := m.sessions.Resolve(r.Context(), cookie.Value)
		if err != nil {
			m.logger.Debug("Authenticate middleware: session rejected",
				"path", r.URL.Path)
			writeUnauthenticated(w)
			return
		}

		ctx := m.contextManager.SetUserID(r.Context(), session.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthenticated"}`))
}

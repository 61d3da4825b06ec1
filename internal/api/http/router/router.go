package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sessiond/sessiond/internal/api/http/handler"
	"github.com/sessiond/sessiond/internal/api/http/middleware"
	"github.com/sessiond/sessiond/internal/logger"
	"github.com/sessiond/sessiond/internal/model"
	"github.com/sessiond/sessiond/internal/service"
)

// Router assembles the HTTP routes and middleware chain.
type Router struct {
	authService    *service.Auth
	sessionManager *service.SessionManager
	contextManager model.ContextManager
	pinger         handler.Pinger
	cookie         handler.CookieConfig
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	sessionManager *service.SessionManager,
	contextManager model.ContextManager,
	pinger handler.Pinger,
	cookie handler.CookieConfig,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		sessionManager: sessionManager,
		contextManager: contextManager,
		pinger:         pinger,
		cookie:         cookie,
		logger:         logger,
	}
}

// Register builds the route tree. Routes under the authenticated group
// pass through the access guard; register, login, and logout do not.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessionManager, r.contextManager, r.cookie.Name, r.logger)

	authHandler := handler.NewAuth(r.authService, r.contextManager, r.cookie, r.logger)
	healthHandler := handler.NewHealth(r.pinger, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)

	mux.Get("/ping", healthHandler.Ping)

	mux.Route("/api", func(api chi.Router) {
		api.Post("/register", authHandler.Register)
		api.Post("/login", authHandler.Login)
		api.Post("/logout", authHandler.Logout)
		// kept for parity with browser-driven logout links
		api.Get("/logout", authHandler.Logout)

		api.Group(func(priv chi.Router) {
			priv.Use(authenticate.Handle)
			priv.Get("/me", authHandler.Me)
		})
	})

	return mux
}

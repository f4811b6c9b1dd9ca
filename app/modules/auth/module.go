package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	authservice "github.com/runmoore/scrabble-score/app/modules/auth/application"
	authhandlers "github.com/runmoore/scrabble-score/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/runmoore/scrabble-score/app/modules/auth/infrastructure/jwt"
	authdb "github.com/runmoore/scrabble-score/app/modules/auth/infrastructure/repositories"
	"github.com/runmoore/scrabble-score/app/observability"
	"github.com/runmoore/scrabble-score/app/web"
	"github.com/runmoore/scrabble-score/config"
	"github.com/uptrace/bun"
)

const (
	// loginRate and loginBurst bound form posts per client IP.
	loginRate  = 1
	loginBurst = 10
)

// Module represents the auth module.
type Module struct {
	config   *config.Config
	service  authservice.Service
	handlers *authhandlers.AuthHandlers
	limiter  *authhandlers.IPRateLimiter
	logger   *slog.Logger
}

// NewModule creates a new auth module.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	renderer *web.Renderer,
) (*Module, error) {
	logger := obs.Logger.With("module", "auth")
	tracer := obs.Tracer("auth")

	logger.InfoContext(ctx, "Initializing auth module")

	service := authservice.NewService(
		authjwt.NewProvider(cfg.JWT.Secret),
		authdb.NewRepository(db),
		authservice.Config{DefaultTTL: cfg.JWT.DefaultTTL},
		logger,
		tracer,
	)

	handlers := authhandlers.NewAuthHandlers(
		service,
		renderer,
		authhandlers.CookieConfig{Name: cfg.JWT.CookieName, Secure: cfg.JWT.SecureCookies},
		logger,
		tracer,
	)

	return &Module{
		config:   cfg,
		service:  service,
		handlers: handlers,
		limiter:  authhandlers.NewIPRateLimiter(loginRate, loginBurst),
		logger:   logger,
	}, nil
}

// RegisterRoutes mounts the public auth pages.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Get("/", m.handlers.HandleHome)
	r.Get("/login", m.handlers.HandleLoginPage)
	r.Get("/join", m.handlers.HandleJoinPage)
	r.Post("/logout", m.handlers.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RateLimitMiddleware(m.limiter))
		r.Post("/login", m.handlers.HandleLogin)
		r.Post("/join", m.handlers.HandleJoin)
	})
}

// Authenticate attaches the signed-in user to requests that carry a session.
func (m *Module) Authenticate(next http.Handler) http.Handler {
	return m.handlers.Authenticate(next)
}

// RequireUser guards routes that need a signed-in user.
func (m *Module) RequireUser(next http.Handler) http.Handler {
	return authhandlers.RequireUser(next)
}

// CORS applies the configured allowed origins.
func (m *Module) CORS(next http.Handler) http.Handler {
	return authhandlers.CORSMiddleware(m.config.HTTP.AllowedOrigins)(next)
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}

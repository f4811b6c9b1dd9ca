package authhandlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	authservice "github.com/runmoore/scrabble-score/app/modules/auth/application"
	authdomain "github.com/runmoore/scrabble-score/app/modules/auth/domain"
	"github.com/runmoore/scrabble-score/app/observability/attr"
	"github.com/runmoore/scrabble-score/app/web"
	"go.opentelemetry.io/otel/trace"
)

const defaultRedirect = "/games"

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandlers serves the login, join and logout pages.
type AuthHandlers struct {
	service  authservice.Service
	renderer *web.Renderer
	cookie   CookieConfig
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(
	service authservice.Service,
	renderer *web.Renderer,
	cookie CookieConfig,
	logger *slog.Logger,
	tracer trace.Tracer,
) *AuthHandlers {
	return &AuthHandlers{
		service:  service,
		renderer: renderer,
		cookie:   cookie,
		logger:   logger,
		tracer:   tracer,
	}
}

// AuthForm is the model for the login and join pages.
type AuthForm struct {
	Email      string
	RedirectTo string
}

// HandleHome shows the landing page, or sends signed-in users to their games.
func (h *AuthHandlers) HandleHome(w http.ResponseWriter, r *http.Request) {
	if _, ok := authdomain.ClaimsFromContext(r.Context()); ok {
		http.Redirect(w, r, defaultRedirect, http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "home.html", web.Page{})
}

func (h *AuthHandlers) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.showForm(w, r, "login.html", "Log in")
}

func (h *AuthHandlers) HandleJoinPage(w http.ResponseWriter, r *http.Request) {
	h.showForm(w, r, "join.html", "Sign up")
}

func (h *AuthHandlers) showForm(w http.ResponseWriter, r *http.Request, page, title string) {
	redirectTo := SafeRedirect(r.URL.Query().Get("redirectTo"), defaultRedirect)
	if _, ok := authdomain.ClaimsFromContext(r.Context()); ok {
		http.Redirect(w, r, redirectTo, http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, page, web.Page{
		Title: title,
		Data:  AuthForm{RedirectTo: redirectTo},
	})
}

// HandleLogin checks credentials and starts a session.
func (h *AuthHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, "login.html", "Log in", h.service.Login)
}

// HandleJoin creates an account and starts a session.
func (h *AuthHandlers) HandleJoin(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, "join.html", "Sign up", h.service.Register)
}

type authenticateFunc func(ctx context.Context, email, password string) (*authservice.Session, error)

func (h *AuthHandlers) submit(w http.ResponseWriter, r *http.Request, page, title string, authenticate authenticateFunc) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.renderer.Error(w, r, http.StatusBadRequest, "Could not read the form")
		return
	}

	form := AuthForm{
		Email:      strings.TrimSpace(r.PostForm.Get("email")),
		RedirectTo: SafeRedirect(r.PostForm.Get("redirectTo"), defaultRedirect),
	}

	session, err := authenticate(ctx, form.Email, r.PostForm.Get("password"))
	if err != nil {
		if message, ok := formError(err); ok {
			h.renderer.Render(w, r, http.StatusBadRequest, page, web.Page{
				Title: title,
				Error: message,
				Data:  form,
			})
			return
		}
		h.logger.ErrorContext(ctx, "Authentication failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("page", page),
			attr.Error(err),
		)
		h.renderer.Error(w, r, http.StatusInternalServerError, "")
		return
	}

	h.setSessionCookie(w, session.Token, session.ExpiresAt)
	http.Redirect(w, r, form.RedirectTo, http.StatusSeeOther)
}

// HandleLogout clears the session cookie.
func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	})
}

// formError maps user input errors to the message shown on the form.
func formError(err error) (string, bool) {
	switch {
	case errors.Is(err, authservice.ErrInvalidEmail):
		return "Email is invalid", true
	case errors.Is(err, authservice.ErrPasswordRequired):
		return "Password is required", true
	case errors.Is(err, authservice.ErrPasswordTooShort):
		return "Password is too short", true
	case errors.Is(err, authservice.ErrEmailTaken):
		return "A user already exists with this email", true
	case errors.Is(err, authservice.ErrInvalidCredentials):
		return "Invalid email or password", true
	default:
		return "", false
	}
}

// SafeRedirect returns to when it is a local path, otherwise fallback.
func SafeRedirect(to, fallback string) string {
	if to == "" || !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.HasPrefix(to, "/\\") {
		return fallback
	}
	return to
}

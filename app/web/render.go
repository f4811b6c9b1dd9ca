// Package web renders the HTML pages of the app from embedded templates.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	authdomain "github.com/runmoore/scrabble-score/app/modules/auth/domain"
	"github.com/runmoore/scrabble-score/app/observability/attr"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static/*
var static embed.FS

// Page is the data every template receives. Data holds the page specific
// view model.
type Page struct {
	Title     string
	UserEmail string
	Error     string
	Data      any
}

// ErrorView is the model for the error page.
type ErrorView struct {
	Status  int
	Message string
}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses every page template with the layout.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	names, err := fs.Glob(templates, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(names))
	for _, path := range names {
		name := path[len("templates/"):]
		if name == "layout.html" {
			continue
		}
		t, err := template.New(name).Funcs(funcs).ParseFS(templates, "templates/layout.html", path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		pages[name] = t
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes the named page with status, or a bare 500 when the template
// fails to execute.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, page Page) {
	ctx := req.Context()
	t, ok := r.pages[name]
	if !ok {
		r.logger.ErrorContext(ctx, "Unknown template", attr.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if claims, ok := authdomain.ClaimsFromContext(ctx); ok && page.UserEmail == "" {
		page.UserEmail = claims.Email
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		r.logger.ErrorContext(ctx, "Failed to render template",
			attr.ExtractCorrelationID(ctx),
			attr.String("template", name),
			attr.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	securityHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Error renders the error page.
func (r *Renderer) Error(w http.ResponseWriter, req *http.Request, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	r.Render(w, req, status, "error.html", Page{
		Title: http.StatusText(status),
		Data:  ErrorView{Status: status, Message: message},
	})
}

// StaticHandler serves the embedded stylesheet and icons.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	fileServer := http.FileServer(http.FS(sub))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		fileServer.ServeHTTP(w, r)
	})
}

func securityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "same-origin")
}

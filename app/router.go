package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/runmoore/scrabble-score/app/observability"
	"github.com/runmoore/scrabble-score/app/web"
)

// Router builds the HTTP handler for every module.
func (app *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(observability.RequestLogger(app.Logger, app.Observability.Metrics))
	r.Use(app.AuthModule.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if app.Config.Observability.MetricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(app.Observability.Registry, promhttp.HandlerOpts{}))
	}
	r.Handle("/static/*", http.StripPrefix("/static/", web.StaticHandler()))

	r.Group(func(r chi.Router) {
		r.Use(app.AuthModule.Authenticate)

		app.AuthModule.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(app.AuthModule.RequireUser)
			app.GameModule.RegisterRoutes(r)
		})
	})

	return r
}

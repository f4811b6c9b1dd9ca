package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/runmoore/scrabble-score/app/observability/attr"
)

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	cfg := app.Config.HTTP
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      app.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		app.Logger.InfoContext(ctx, "Starting HTTP server", attr.String("address", cfg.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	app.Logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

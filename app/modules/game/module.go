package game

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	gameservice "github.com/runmoore/scrabble-score/app/modules/game/application"
	gamehandlers "github.com/runmoore/scrabble-score/app/modules/game/infrastructure/handlers"
	gamedb "github.com/runmoore/scrabble-score/app/modules/game/infrastructure/repositories"
	"github.com/runmoore/scrabble-score/app/observability"
	"github.com/runmoore/scrabble-score/app/web"
	"github.com/uptrace/bun"
)

// Module represents the game module.
type Module struct {
	service  gameservice.Service
	handlers *gamehandlers.GameHandlers
	logger   *slog.Logger
}

// NewModule creates a new game module.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	renderer *web.Renderer,
) (*Module, error) {
	logger := obs.Logger.With("module", "game")
	tracer := obs.Tracer("game")

	logger.InfoContext(ctx, "Initializing game module")

	service := gameservice.NewGameService(
		gamedb.NewRepository(db),
		logger,
		obs.Metrics,
		tracer,
		db,
	)

	return &Module{
		service:  service,
		handlers: gamehandlers.NewGameHandlers(service, renderer, logger, tracer),
		logger:   logger,
	}, nil
}

// RegisterRoutes mounts the game pages and API. The router must already
// require a signed-in user.
func (m *Module) RegisterRoutes(r chi.Router) {
	m.handlers.Routes(r)
}

// GetService returns the game service for use by other modules.
func (m *Module) GetService() gameservice.Service {
	return m.service
}

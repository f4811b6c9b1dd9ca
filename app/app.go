// Package app assembles the modules into the web application.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runmoore/scrabble-score/app/database"
	"github.com/runmoore/scrabble-score/app/modules/auth"
	authmigrations "github.com/runmoore/scrabble-score/app/modules/auth/infrastructure/repositories/migrations"
	"github.com/runmoore/scrabble-score/app/modules/game"
	gamemigrations "github.com/runmoore/scrabble-score/app/modules/game/infrastructure/repositories/migrations"
	"github.com/runmoore/scrabble-score/app/observability"
	"github.com/runmoore/scrabble-score/app/web"
	"github.com/runmoore/scrabble-score/config"
	"github.com/uptrace/bun"
)

// Migrations lists every module's migrations in dependency order.
var Migrations = []database.ModuleMigrations{
	{Module: "auth", Migrations: authmigrations.Migrations},
	{Module: "game", Migrations: gamemigrations.Migrations},
}

// App holds the wired modules and shared infrastructure.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	Logger        *slog.Logger

	AuthModule *auth.Module
	GameModule *game.Module
}

// Initialize connects to the database, applies migrations when configured
// and builds every module.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, obs *observability.Observability) error {
	app.Config = cfg
	app.Observability = obs
	app.Logger = obs.Logger

	db, err := database.Open(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if cfg.Postgres.AutoMigrate {
		if err := database.Migrate(ctx, db, Migrations, app.Logger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return app.initializeModules(ctx)
}

func (app *App) initializeModules(ctx context.Context) error {
	renderer, err := web.NewRenderer(app.Logger)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	app.AuthModule, err = auth.NewModule(ctx, app.Config, app.Observability, app.DB, renderer)
	if err != nil {
		return fmt.Errorf("failed to initialize auth module: %w", err)
	}

	app.GameModule, err = game.NewModule(ctx, app.Observability, app.DB, renderer)
	if err != nil {
		return fmt.Errorf("failed to initialize game module: %w", err)
	}

	return nil
}

// Close releases the database connection.
func (app *App) Close() error {
	if app.DB == nil {
		return nil
	}
	return app.DB.Close()
}

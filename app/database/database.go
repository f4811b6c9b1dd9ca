// Package database opens the Postgres connection and runs module migrations.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/runmoore/scrabble-score/app/observability/attr"
	"github.com/runmoore/scrabble-score/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

const uniqueViolation = "23505"

// Open connects to Postgres with the configured driver and verifies the
// connection.
func Open(ctx context.Context, cfg config.PostgresConfig) (*bun.DB, error) {
	var sqldb *sql.DB
	switch cfg.Driver {
	case config.DriverPGX:
		var err error
		sqldb, err = sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open pgx connection: %w", err)
		}
	case config.DriverPGDriver, "":
		sqldb = sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	default:
		return nil, fmt.Errorf("unknown postgres driver %q", cfg.Driver)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// ModuleMigrations names a module's migration set. Modules are migrated in
// slice order, so a module must come after the ones it references.
type ModuleMigrations struct {
	Module     string
	Migrations *migrate.Migrations
}

// NewMigrator builds a migrator that tracks its module in dedicated tables.
func NewMigrator(db *bun.DB, m ModuleMigrations) *migrate.Migrator {
	return migrate.NewMigrator(db, m.Migrations,
		migrate.WithTableName("bun_migrations_"+m.Module),
		migrate.WithLocksTableName("bun_migration_locks_"+m.Module),
	)
}

// Migrate initializes and applies every module's pending migrations.
func Migrate(ctx context.Context, db *bun.DB, modules []ModuleMigrations, logger *slog.Logger) error {
	for _, m := range modules {
		migrator := NewMigrator(db, m)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init migrations for %s: %w", m.Module, err)
		}
		if err := migrator.Lock(ctx); err != nil {
			return fmt.Errorf("failed to lock migrations for %s: %w", m.Module, err)
		}
		group, err := migrator.Migrate(ctx)
		unlockErr := migrator.Unlock(ctx)
		if err != nil {
			return fmt.Errorf("failed to migrate %s: %w", m.Module, err)
		}
		if unlockErr != nil {
			return fmt.Errorf("failed to unlock migrations for %s: %w", m.Module, unlockErr)
		}

		if group.IsZero() {
			logger.InfoContext(ctx, "No new migrations", attr.String("module", m.Module))
		} else {
			logger.InfoContext(ctx, "Migrated module", attr.String("module", m.Module), attr.String("group", group.String()))
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation from either supported driver.
func IsUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == uniqueViolation
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == uniqueViolation
	}
	return false
}

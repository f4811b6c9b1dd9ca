package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/runmoore/scrabble-score/app"
	"github.com/runmoore/scrabble-score/app/database"
	"github.com/runmoore/scrabble-score/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

type moduleMigrator struct {
	name     string
	migrator *migrate.Migrator
}

func main() {
	cliApp := &cli.App{
		Name:  "bun",
		Usage: "manage the scrabble-score database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			newMigrateCommand(),
			newSeedCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openDB loads the configuration and connects to Postgres.
func openDB(c *cli.Context) (*config.Config, *bun.DB, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := database.Open(c.Context, cfg.Postgres)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// withMigrators runs fn with one migrator per module, in dependency order.
func withMigrators(c *cli.Context, fn func(ctx context.Context, migrators []moduleMigrator) error) error {
	_, db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	migrators := make([]moduleMigrator, 0, len(app.Migrations))
	for _, m := range app.Migrations {
		migrators = append(migrators, moduleMigrator{name: m.Module, migrator: database.NewMigrator(db, m)})
	}
	return fn(c.Context, migrators)
}

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, migrators []moduleMigrator) error {
						for _, m := range migrators {
							fmt.Printf("Initializing migrations for module: %s\n", m.name)
							if err := m.migrator.Init(ctx); err != nil {
								return fmt.Errorf("init %s: %w", m.name, err)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, migrators []moduleMigrator) error {
						for _, m := range migrators {
							if err := m.migrator.Init(ctx); err != nil {
								return fmt.Errorf("init %s: %w", m.name, err)
							}
							group, err := m.migrator.Migrate(ctx)
							if err != nil {
								return fmt.Errorf("migrate %s: %w", m.name, err)
							}
							if group.IsZero() {
								fmt.Printf("No new migrations to run for module: %s\n", m.name)
							} else {
								fmt.Printf("Migrated module: %s to %s\n", m.name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, migrators []moduleMigrator) error {
						// Dependents roll back before the modules they reference.
						for i := len(migrators) - 1; i >= 0; i-- {
							m := migrators[i]
							group, err := m.migrator.Rollback(ctx)
							if err != nil {
								return fmt.Errorf("rollback %s: %w", m.name, err)
							}
							if group.IsZero() {
								fmt.Printf("No groups to roll back for module: %s\n", m.name)
							} else {
								fmt.Printf("Rolled back module: %s to %s\n", m.name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name>",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, migrators []moduleMigrator) error {
						m, err := findMigrator(migrators, c.Args().First())
						if err != nil {
							return err
						}
						name := strings.Join(c.Args().Tail(), "_")
						mf, err := m.migrator.CreateGoMigration(ctx, name)
						if err != nil {
							return err
						}
						fmt.Printf("Created migration for module %s: %s (%s)\n", m.name, mf.Name, mf.Path)
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, migrators []moduleMigrator) error {
						for _, m := range migrators {
							ms, err := m.migrator.MigrationsWithStatus(ctx)
							if err != nil {
								return err
							}
							fmt.Printf("Migrations for module: %s\n", m.name)
							fmt.Printf("  %s\n", ms)
							fmt.Printf("  Applied: %s\n", ms.Applied())
							fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						}
						return nil
					})
				},
			},
		},
	}
}

func findMigrator(migrators []moduleMigrator, name string) (moduleMigrator, error) {
	for _, m := range migrators {
		if m.name == name {
			return m, nil
		}
	}
	return moduleMigrator{}, fmt.Errorf("invalid module name: %s", name)
}

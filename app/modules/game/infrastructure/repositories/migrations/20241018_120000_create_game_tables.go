package gamemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating players, game_types, games, game_players and scores tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS players (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					name TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_players_user_id ON players(user_id);
			`); err != nil {
				return fmt.Errorf("failed to create players table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS game_types (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					name TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					UNIQUE (user_id, name)
				);
			`); err != nil {
				return fmt.Errorf("failed to create game_types table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS games (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					completed BOOLEAN NOT NULL DEFAULT FALSE,
					game_type_id UUID REFERENCES game_types(id) ON DELETE SET NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_games_user_created ON games(user_id, created_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create games table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS game_players (
					game_id UUID NOT NULL REFERENCES games(id) ON DELETE CASCADE,
					player_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
					position INT NOT NULL,
					PRIMARY KEY (game_id, player_id),
					UNIQUE (game_id, position)
				);
			`); err != nil {
				return fmt.Errorf("failed to create game_players table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS scores (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					game_id UUID NOT NULL REFERENCES games(id) ON DELETE CASCADE,
					player_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
					points INT NOT NULL,
					seq BIGSERIAL NOT NULL,
					scored_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_scores_game_order ON scores(game_id, scored_at, seq);
			`); err != nil {
				return fmt.Errorf("failed to create scores table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping game tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS scores;
				DROP TABLE IF EXISTS game_players;
				DROP TABLE IF EXISTS games;
				DROP TABLE IF EXISTS game_types;
				DROP TABLE IF EXISTS players;
			`); err != nil {
				return fmt.Errorf("failed to drop game tables: %w", err)
			}
			return nil
		})
	})
}

//go:build integration

package gamedb_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/runmoore/scrabble-score/app/database"
	authdb "github.com/runmoore/scrabble-score/app/modules/auth/infrastructure/repositories"
	authmigrations "github.com/runmoore/scrabble-score/app/modules/auth/infrastructure/repositories/migrations"
	gamedb "github.com/runmoore/scrabble-score/app/modules/game/infrastructure/repositories"
	gamemigrations "github.com/runmoore/scrabble-score/app/modules/game/infrastructure/repositories/migrations"
	"github.com/runmoore/scrabble-score/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

func setupDB(t *testing.T, driver string) *bun.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, pg)
	require.NoError(t, err)

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(ctx, config.PostgresConfig{DSN: dsn, Driver: driver})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, database.Migrate(ctx, db, []database.ModuleMigrations{
		{Module: "auth", Migrations: authmigrations.Migrations},
		{Module: "game", Migrations: gamemigrations.Migrations},
	}, logger))
	return db
}

func createUser(t *testing.T, db *bun.DB, email string) uuid.UUID {
	t.Helper()
	user := &authdb.User{Email: email, PasswordHash: "x"}
	require.NoError(t, authdb.NewRepository(db).CreateUser(context.Background(), nil, user))
	return user.ID
}

func TestRepository(t *testing.T) {
	for _, driver := range []string{config.DriverPGDriver, config.DriverPGX} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			db := setupDB(t, driver)
			repo := gamedb.NewRepository(db)

			userID := createUser(t, db, "chris@example.com")
			otherUserID := createUser(t, db, "sam@example.com")

			alice := &gamedb.Player{UserID: userID, Name: "Alice"}
			bob := &gamedb.Player{UserID: userID, Name: "Bob"}
			require.NoError(t, repo.CreatePlayer(ctx, nil, alice))
			require.NoError(t, repo.CreatePlayer(ctx, nil, bob))

			scrabble := &gamedb.GameType{UserID: userID, Name: "Scrabble"}
			require.NoError(t, repo.CreateGameType(ctx, nil, scrabble))
			err := repo.CreateGameType(ctx, nil, &gamedb.GameType{UserID: userID, Name: "Scrabble"})
			assert.ErrorIs(t, err, gamedb.ErrDuplicateName)

			created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
			game := &gamedb.Game{UserID: userID, GameTypeID: &scrabble.ID, CreatedAt: created}
			require.NoError(t, repo.CreateGame(ctx, nil, game, []uuid.UUID{bob.ID, alice.ID}))

			base := created.Add(time.Minute)
			for i, entry := range []struct {
				player uuid.UUID
				points int
			}{{bob.ID, 12}, {alice.ID, 30}, {bob.ID, 7}} {
				require.NoError(t, repo.InsertScore(ctx, nil, &gamedb.Score{
					GameID:   game.ID,
					PlayerID: entry.player,
					Points:   entry.points,
					ScoredAt: base.Add(time.Duration(i) * time.Second),
				}))
			}

			t.Run("game keeps turn and recording order", func(t *testing.T) {
				got, err := repo.GetGame(ctx, nil, userID, game.ID)
				require.NoError(t, err)
				require.Len(t, got.Players, 2)
				assert.Equal(t, "Bob", got.Players[0].Name)
				assert.Equal(t, "Alice", got.Players[1].Name)
				require.Len(t, got.Scores, 3)
				assert.Equal(t, []int{12, 30, 7}, []int{got.Scores[0].Points, got.Scores[1].Points, got.Scores[2].Points})
				require.NotNil(t, got.GameType)
				assert.Equal(t, "Scrabble", got.GameType.Name)
			})

			t.Run("lookups are scoped to the user", func(t *testing.T) {
				_, err := repo.GetGame(ctx, nil, otherUserID, game.ID)
				assert.ErrorIs(t, err, gamedb.ErrNotFound)
				_, err = repo.GetPlayer(ctx, nil, otherUserID, alice.ID)
				assert.ErrorIs(t, err, gamedb.ErrNotFound)
				assert.ErrorIs(t, repo.SetCompleted(ctx, nil, otherUserID, game.ID, true), gamedb.ErrNotFound)
			})

			t.Run("players by ids", func(t *testing.T) {
				players, err := repo.GetPlayersByIDs(ctx, nil, userID, []uuid.UUID{alice.ID, bob.ID, uuid.New()})
				require.NoError(t, err)
				assert.Len(t, players, 2)
			})

			t.Run("completion and game type", func(t *testing.T) {
				require.NoError(t, repo.SetCompleted(ctx, nil, userID, game.ID, true))
				require.NoError(t, repo.SetGameType(ctx, nil, userID, game.ID, nil))

				got, err := repo.GetGame(ctx, nil, userID, game.ID)
				require.NoError(t, err)
				assert.True(t, got.Completed)
				assert.Nil(t, got.GameTypeID)
			})

			t.Run("list games since", func(t *testing.T) {
				later := &gamedb.Game{UserID: userID, CreatedAt: created.AddDate(0, 0, 10)}
				require.NoError(t, repo.CreateGame(ctx, nil, later, []uuid.UUID{alice.ID, bob.ID}))

				all, err := repo.ListGames(ctx, nil, userID, time.Time{})
				require.NoError(t, err)
				require.Len(t, all, 2)
				assert.Equal(t, later.ID, all[0].ID)
				assert.Len(t, all[1].Scores, 3)

				recent, err := repo.ListGames(ctx, nil, userID, created.AddDate(0, 0, 5))
				require.NoError(t, err)
				require.Len(t, recent, 1)
				assert.Equal(t, later.ID, recent[0].ID)
			})

			t.Run("transactions roll back", func(t *testing.T) {
				err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
					if err := repo.CreatePlayer(ctx, tx, &gamedb.Player{UserID: userID, Name: "Carol"}); err != nil {
						return err
					}
					return assert.AnError
				})
				assert.ErrorIs(t, err, assert.AnError)

				players, err := repo.ListPlayers(ctx, nil, userID)
				require.NoError(t, err)
				assert.Len(t, players, 2)
			})
		})
	}
}

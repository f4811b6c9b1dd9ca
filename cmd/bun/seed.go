package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	authservice "github.com/runmoore/scrabble-score/app/modules/auth/application"
	authjwt "github.com/runmoore/scrabble-score/app/modules/auth/infrastructure/jwt"
	authdb "github.com/runmoore/scrabble-score/app/modules/auth/infrastructure/repositories"
	gameservice "github.com/runmoore/scrabble-score/app/modules/game/application"
	gamedb "github.com/runmoore/scrabble-score/app/modules/game/infrastructure/repositories"
	"github.com/runmoore/scrabble-score/app/observability"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	seedEmail    = "chris@example.com"
	seedPassword = "scrabbleiscool"
	seedGames    = 6
)

var (
	seedPlayers   = []string{"Alex", "Nora", "Dad", "Mum", "Sarah"}
	seedGameTypes = []string{"Scrabble", "Bananagrams", "Upwords"}
)

func newSeedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "create a demo account with players and finished games",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "seed", Value: 1, Usage: "random seed for generated scores"},
		},
		Action: func(c *cli.Context) error {
			cfg, db, err := openDB(c)
			if err != nil {
				return err
			}
			defer db.Close()

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
			tracer := noop.NewTracerProvider().Tracer("seed")

			auth := authservice.NewService(
				authjwt.NewProvider(cfg.JWT.Secret),
				authdb.NewRepository(db),
				authservice.Config{DefaultTTL: cfg.JWT.DefaultTTL},
				logger,
				tracer,
			)
			games := gameservice.NewGameService(gamedb.NewRepository(db), logger, observability.NewNoop(), tracer, db)

			return seed(c.Context, auth, games, gofakeit.New(c.Uint64("seed")))
		},
	}
}

func seed(ctx context.Context, auth authservice.Service, games gameservice.Service, faker *gofakeit.Faker) error {
	session, err := auth.Register(ctx, seedEmail, seedPassword)
	if errors.Is(err, authservice.ErrEmailTaken) {
		session, err = auth.Login(ctx, seedEmail, seedPassword)
	}
	if err != nil {
		return fmt.Errorf("failed to sign in %s: %w", seedEmail, err)
	}
	userID := session.UserID

	playerIDs, err := seedPlayerIDs(ctx, games, userID)
	if err != nil {
		return err
	}
	gameTypeIDs, err := seedGameTypeIDs(ctx, games, userID)
	if err != nil {
		return err
	}

	for i := range seedGames {
		lineup := pickPlayers(faker, playerIDs)
		gameTypeID := gameTypeIDs[i%len(gameTypeIDs)]

		details, err := games.CreateGame(ctx, userID, lineup, &gameTypeID)
		if err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}
		gameID := details.Game.ID

		turns := len(lineup) * faker.IntRange(3, 6)
		for range turns {
			if details, err = games.RecordScore(ctx, userID, gameID, details.NextPlayer.ID, faker.IntRange(0, 40)); err != nil {
				return fmt.Errorf("failed to record score: %w", err)
			}
		}

		// Leave the newest game running.
		if i < seedGames-1 {
			if _, err := games.CompleteGame(ctx, userID, gameID); err != nil {
				return fmt.Errorf("failed to complete game: %w", err)
			}
		}
	}

	fmt.Printf("Seeded %d games for %s (password %q)\n", seedGames, seedEmail, seedPassword)
	return nil
}

// seedPlayerIDs adds the demo players, reusing any that already exist.
func seedPlayerIDs(ctx context.Context, games gameservice.Service, userID uuid.UUID) ([]uuid.UUID, error) {
	existing, err := games.ListPlayers(ctx, userID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uuid.UUID, len(existing))
	for _, p := range existing {
		byName[p.Name] = p.ID
	}

	ids := make([]uuid.UUID, 0, len(seedPlayers))
	for _, name := range seedPlayers {
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
			continue
		}
		p, err := games.AddPlayer(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to add player %s: %w", name, err)
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func seedGameTypeIDs(ctx context.Context, games gameservice.Service, userID uuid.UUID) ([]uuid.UUID, error) {
	existing, err := games.ListGameTypes(ctx, userID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uuid.UUID, len(existing))
	for _, gt := range existing {
		byName[gt.Name] = gt.ID
	}

	ids := make([]uuid.UUID, 0, len(seedGameTypes))
	for _, name := range seedGameTypes {
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
			continue
		}
		gt, err := games.AddGameType(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to add game type %s: %w", name, err)
		}
		ids = append(ids, gt.ID)
	}
	return ids, nil
}

// pickPlayers returns two to four distinct players in a random turn order.
func pickPlayers(faker *gofakeit.Faker, ids []uuid.UUID) []uuid.UUID {
	shuffled := make([]uuid.UUID, len(ids))
	copy(shuffled, ids)
	faker.ShuffleAnySlice(shuffled)
	return shuffled[:faker.IntRange(2, min(4, len(shuffled)))]
}

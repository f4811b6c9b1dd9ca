package gameservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	gamedomain "github.com/runmoore/scrabble-score/app/modules/game/domain"
	gamedb "github.com/runmoore/scrabble-score/app/modules/game/infrastructure/repositories"
	"github.com/runmoore/scrabble-score/app/observability/results"
	"github.com/uptrace/bun"
)

type (
	playersResult   = results.OperationResult[[]gamedomain.Player, error]
	playerResult    = results.OperationResult[gamedomain.Player, error]
	gameTypesResult = results.OperationResult[[]GameType, error]
	gameTypeResult  = results.OperationResult[GameType, error]
)

// ListPlayers returns the user's players ordered by name.
func (s *GameService) ListPlayers(ctx context.Context, userID uuid.UUID) ([]gamedomain.Player, error) {
	return execute(s, ctx, "ListPlayers", userID.String(), func(ctx context.Context, db bun.IDB) (playersResult, error) {
		players, err := s.repo.ListPlayers(ctx, db, userID)
		if err != nil {
			return infraError[[]gamedomain.Player](err)
		}
		return success(toDomainPlayers(players))
	})
}

// AddPlayer creates a player with a trimmed, non-empty name.
func (s *GameService) AddPlayer(ctx context.Context, userID uuid.UUID, name string) (gamedomain.Player, error) {
	return execute(s, ctx, "AddPlayer", userID.String(), func(ctx context.Context, db bun.IDB) (playerResult, error) {
		return s.addPlayerLogic(ctx, db, userID, name)
	})
}

func (s *GameService) addPlayerLogic(ctx context.Context, db bun.IDB, userID uuid.UUID, name string) (playerResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return failure[gamedomain.Player](ErrEmptyName)
	}

	player := &gamedb.Player{UserID: userID, Name: name}
	if err := s.repo.CreatePlayer(ctx, db, player); err != nil {
		return infraError[gamedomain.Player](fmt.Errorf("failed to create player: %w", err))
	}
	return success(toDomainPlayer(*player))
}

// ListGameTypes returns the user's game types ordered by name.
func (s *GameService) ListGameTypes(ctx context.Context, userID uuid.UUID) ([]GameType, error) {
	return execute(s, ctx, "ListGameTypes", userID.String(), func(ctx context.Context, db bun.IDB) (gameTypesResult, error) {
		gameTypes, err := s.repo.ListGameTypes(ctx, db, userID)
		if err != nil {
			return infraError[[]GameType](err)
		}
		out := make([]GameType, len(gameTypes))
		for i, gt := range gameTypes {
			out[i] = toGameType(gt)
		}
		return success(out)
	})
}

// AddGameType creates a game type. Names are unique per user.
func (s *GameService) AddGameType(ctx context.Context, userID uuid.UUID, name string) (GameType, error) {
	return execute(s, ctx, "AddGameType", userID.String(), func(ctx context.Context, db bun.IDB) (gameTypeResult, error) {
		name := strings.TrimSpace(name)
		if name == "" {
			return failure[GameType](ErrEmptyName)
		}

		gameType := &gamedb.GameType{UserID: userID, Name: name}
		if err := s.repo.CreateGameType(ctx, db, gameType); err != nil {
			if errors.Is(err, gamedb.ErrDuplicateName) {
				return failure[GameType](ErrDuplicateName)
			}
			return infraError[GameType](fmt.Errorf("failed to create game type: %w", err))
		}
		return success(toGameType(*gameType))
	})
}

// lookupGameType checks that a game type belongs to the user. A nil id is
// always valid and clears the type.
func (s *GameService) lookupGameType(ctx context.Context, db bun.IDB, userID uuid.UUID, gameTypeID *uuid.UUID) error {
	if gameTypeID == nil {
		return nil
	}
	if _, err := s.repo.GetGameType(ctx, db, userID, *gameTypeID); err != nil {
		if errors.Is(err, gamedb.ErrNotFound) {
			return ErrGameTypeNotFound
		}
		return fmt.Errorf("failed to get game type: %w", err)
	}
	return nil
}

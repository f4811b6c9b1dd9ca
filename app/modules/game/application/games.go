package gameservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gamedb "github.com/runmoore/scrabble-score/app/modules/game/infrastructure/repositories"
	"github.com/runmoore/scrabble-score/app/observability/attr"
	"github.com/runmoore/scrabble-score/app/observability/results"
	"github.com/uptrace/bun"
)

type (
	detailsResult     = results.OperationResult[*GameDetails, error]
	detailsListResult = results.OperationResult[[]GameDetails, error]
)

// CreateGame starts a game. Players must be distinct, owned by the user and
// at least two in number.
func (s *GameService) CreateGame(ctx context.Context, userID uuid.UUID, playerIDs []uuid.UUID, gameTypeID *uuid.UUID) (*GameDetails, error) {
	return execute(s, ctx, "CreateGame", userID.String(), func(ctx context.Context, db bun.IDB) (detailsResult, error) {
		return s.createGameLogic(ctx, db, userID, playerIDs, gameTypeID)
	})
}

func (s *GameService) createGameLogic(ctx context.Context, db bun.IDB, userID uuid.UUID, playerIDs []uuid.UUID, gameTypeID *uuid.UUID) (detailsResult, error) {
	seen := make(map[uuid.UUID]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if _, ok := seen[id]; ok {
			return failure[*GameDetails](ErrDuplicatePlayer)
		}
		seen[id] = struct{}{}
	}
	if len(playerIDs) < 2 {
		return failure[*GameDetails](ErrNotEnoughPlayers)
	}

	found, err := s.repo.GetPlayersByIDs(ctx, db, userID, playerIDs)
	if err != nil {
		return infraError[*GameDetails](fmt.Errorf("failed to load players: %w", err))
	}
	if len(found) != len(playerIDs) {
		return failure[*GameDetails](ErrPlayerNotFound)
	}

	if err := s.lookupGameType(ctx, db, userID, gameTypeID); err != nil {
		if errors.Is(err, ErrGameTypeNotFound) {
			return failure[*GameDetails](err)
		}
		return infraError[*GameDetails](err)
	}

	game := &gamedb.Game{UserID: userID, GameTypeID: gameTypeID, CreatedAt: s.now().UTC()}
	if err := s.repo.CreateGame(ctx, db, game, playerIDs); err != nil {
		return infraError[*GameDetails](fmt.Errorf("failed to create game: %w", err))
	}

	s.logger.InfoContext(ctx, "Game created",
		attr.GameID(game.ID),
		attr.UserID(userID),
		attr.Int("players", len(playerIDs)),
	)
	return s.loadDetails(ctx, db, userID, game.ID)
}

// Rematch starts a fresh game with the players and game type of gameID.
func (s *GameService) Rematch(ctx context.Context, userID, gameID uuid.UUID) (*GameDetails, error) {
	return execute(s, ctx, "Rematch", gameID.String(), func(ctx context.Context, db bun.IDB) (detailsResult, error) {
		previous, res, err := s.getGame(ctx, db, userID, gameID)
		if previous == nil {
			return res, err
		}

		playerIDs := make([]uuid.UUID, len(previous.Players))
		for i, p := range previous.Players {
			playerIDs[i] = p.ID
		}
		return s.createGameLogic(ctx, db, userID, playerIDs, previous.GameTypeID)
	})
}

// GetGame returns a game with its standings and next player.
func (s *GameService) GetGame(ctx context.Context, userID, gameID uuid.UUID) (*GameDetails, error) {
	return execute(s, ctx, "GetGame", gameID.String(), func(ctx context.Context, db bun.IDB) (detailsResult, error) {
		return s.loadDetails(ctx, db, userID, gameID)
	})
}

// ListGames returns the user's games newest first.
func (s *GameService) ListGames(ctx context.Context, userID uuid.UUID, since time.Time) ([]GameDetails, error) {
	return execute(s, ctx, "ListGames", userID.String(), func(ctx context.Context, db bun.IDB) (detailsListResult, error) {
		return s.listGamesLogic(ctx, db, userID, since)
	})
}

func (s *GameService) listGamesLogic(ctx context.Context, db bun.IDB, userID uuid.UUID, since time.Time) (detailsListResult, error) {
	games, err := s.repo.ListGames(ctx, db, userID, since)
	if err != nil {
		return infraError[[]GameDetails](fmt.Errorf("failed to list games: %w", err))
	}

	out := make([]GameDetails, 0, len(games))
	for i := range games {
		details, err := newGameDetails(&games[i])
		if err != nil {
			s.logger.ErrorContext(ctx, "Skipping unreadable game in history",
				attr.ExtractCorrelationID(ctx),
				attr.GameID(games[i].ID),
				attr.UserID(userID),
				attr.Error(err),
			)
			continue
		}
		out = append(out, *details)
	}
	return success(out)
}

// RecordScore adds a turn for playerID. Completed games and players outside
// the game are rejected.
func (s *GameService) RecordScore(ctx context.Context, userID, gameID, playerID uuid.UUID, points int) (*GameDetails, error) {
	details, err := execute(s, ctx, "RecordScore", gameID.String(), func(ctx context.Context, db bun.IDB) (detailsResult, error) {
		return s.recordScoreLogic(ctx, db, userID, gameID, playerID, points)
	})
	if err == nil && s.metrics != nil {
		s.metrics.RecordScore(ctx)
	}
	return details, err
}

func (s *GameService) recordScoreLogic(ctx context.Context, db bun.IDB, userID, gameID, playerID uuid.UUID, points int) (detailsResult, error) {
	game, res, err := s.getGame(ctx, db, userID, gameID)
	if game == nil {
		return res, err
	}
	if game.Completed {
		return failure[*GameDetails](ErrGameCompleted)
	}
	if !isParticipant(game, playerID) {
		return failure[*GameDetails](ErrNotParticipant)
	}

	score := &gamedb.Score{GameID: gameID, PlayerID: playerID, Points: points, ScoredAt: s.now().UTC()}
	if err := s.repo.InsertScore(ctx, db, score); err != nil {
		return infraError[*GameDetails](fmt.Errorf("failed to record score: %w", err))
	}

	s.logger.InfoContext(ctx, "Score recorded",
		attr.GameID(gameID),
		attr.PlayerID(playerID),
		attr.Int("points", points),
	)
	return s.loadDetails(ctx, db, userID, gameID)
}

// CompleteGame marks a game finished.
func (s *GameService) CompleteGame(ctx context.Context, userID, gameID uuid.UUID) (*GameDetails, error) {
	details, err := execute(s, ctx, "CompleteGame", gameID.String(), func(ctx context.Context, db bun.IDB) (detailsResult, error) {
		return s.setCompletedLogic(ctx, db, userID, gameID, true)
	})
	if err == nil && s.metrics != nil {
		s.metrics.RecordGameCompleted(ctx)
	}
	return details, err
}

// ReopenGame marks a completed game as in progress again.
func (s *GameService) ReopenGame(ctx context.Context, userID, gameID uuid.UUID) (*GameDetails, error) {
	return execute(s, ctx, "ReopenGame", gameID.String(), func(ctx context.Context, db bun.IDB) (detailsResult, error) {
		return s.setCompletedLogic(ctx, db, userID, gameID, false)
	})
}

func (s *GameService) setCompletedLogic(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID, completed bool) (detailsResult, error) {
	if err := s.repo.SetCompleted(ctx, db, userID, gameID, completed); err != nil {
		if errors.Is(err, gamedb.ErrNotFound) {
			return failure[*GameDetails](ErrGameNotFound)
		}
		return infraError[*GameDetails](err)
	}
	return s.loadDetails(ctx, db, userID, gameID)
}

// SetGameType changes or clears a game's type.
func (s *GameService) SetGameType(ctx context.Context, userID, gameID uuid.UUID, gameTypeID *uuid.UUID) (*GameDetails, error) {
	return execute(s, ctx, "SetGameType", gameID.String(), func(ctx context.Context, db bun.IDB) (detailsResult, error) {
		if err := s.lookupGameType(ctx, db, userID, gameTypeID); err != nil {
			if errors.Is(err, ErrGameTypeNotFound) {
				return failure[*GameDetails](err)
			}
			return infraError[*GameDetails](err)
		}
		if err := s.repo.SetGameType(ctx, db, userID, gameID, gameTypeID); err != nil {
			if errors.Is(err, gamedb.ErrNotFound) {
				return failure[*GameDetails](ErrGameNotFound)
			}
			return infraError[*GameDetails](err)
		}
		return s.loadDetails(ctx, db, userID, gameID)
	})
}

// getGame loads a stored game. When the game is nil the returned result and
// error are ready to hand back to the caller.
func (s *GameService) getGame(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID) (*gamedb.Game, detailsResult, error) {
	game, err := s.repo.GetGame(ctx, db, userID, gameID)
	if err != nil {
		if errors.Is(err, gamedb.ErrNotFound) {
			res, _ := failure[*GameDetails](ErrGameNotFound)
			return nil, res, nil
		}
		return nil, detailsResult{}, fmt.Errorf("failed to get game: %w", err)
	}
	return game, detailsResult{}, nil
}

func (s *GameService) loadDetails(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID) (detailsResult, error) {
	game, res, err := s.getGame(ctx, db, userID, gameID)
	if game == nil {
		return res, err
	}
	details, err := newGameDetails(game)
	if err != nil {
		return infraError[*GameDetails](err)
	}
	return success(details)
}

func isParticipant(game *gamedb.Game, playerID uuid.UUID) bool {
	for _, p := range game.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

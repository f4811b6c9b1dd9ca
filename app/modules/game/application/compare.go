package gameservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gamedomain "github.com/runmoore/scrabble-score/app/modules/game/domain"
	gamedb "github.com/runmoore/scrabble-score/app/modules/game/infrastructure/repositories"
	"github.com/runmoore/scrabble-score/app/observability/results"
	"github.com/uptrace/bun"
)

type headToHeadResult = results.OperationResult[*gamedomain.HeadToHead, error]

// ComparePlayers looks up both players by id and compares them across every
// game the user has recorded.
func (s *GameService) ComparePlayers(ctx context.Context, userID, playerOneID, playerTwoID uuid.UUID) (*gamedomain.HeadToHead, error) {
	identifier := playerOneID.String() + ":" + playerTwoID.String()
	return execute(s, ctx, "ComparePlayers", identifier, func(ctx context.Context, db bun.IDB) (headToHeadResult, error) {
		if playerOneID == playerTwoID {
			return failure[*gamedomain.HeadToHead](ErrSamePlayer)
		}

		one, err := s.repo.GetPlayer(ctx, db, userID, playerOneID)
		if err != nil {
			return lookupFailure(err)
		}
		two, err := s.repo.GetPlayer(ctx, db, userID, playerTwoID)
		if err != nil {
			return lookupFailure(err)
		}

		games, err := s.repo.ListGames(ctx, db, userID, time.Time{})
		if err != nil {
			return infraError[*gamedomain.HeadToHead](fmt.Errorf("failed to list games: %w", err))
		}
		domainGames := make([]gamedomain.Game, len(games))
		for i := range games {
			domainGames[i] = toDomainGame(&games[i])
		}

		h := gamedomain.Compare(domainGames, toDomainPlayer(*one), toDomainPlayer(*two))
		return success(&h)
	})
}

func lookupFailure(err error) (headToHeadResult, error) {
	if errors.Is(err, gamedb.ErrNotFound) {
		return failure[*gamedomain.HeadToHead](ErrPlayerNotFound)
	}
	return infraError[*gamedomain.HeadToHead](fmt.Errorf("failed to get player: %w", err))
}

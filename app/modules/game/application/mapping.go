package gameservice

import (
	"errors"
	"fmt"

	gamedomain "github.com/runmoore/scrabble-score/app/modules/game/domain"
	gamedb "github.com/runmoore/scrabble-score/app/modules/game/infrastructure/repositories"
)

func toDomainPlayer(p gamedb.Player) gamedomain.Player {
	return gamedomain.Player{ID: p.ID, Name: p.Name}
}

func toDomainPlayers(players []gamedb.Player) []gamedomain.Player {
	out := make([]gamedomain.Player, len(players))
	for i, p := range players {
		out[i] = toDomainPlayer(p)
	}
	return out
}

func toGameType(gt gamedb.GameType) GameType {
	return GameType{ID: gt.ID, Name: gt.Name}
}

func toDomainGame(g *gamedb.Game) gamedomain.Game {
	out := gamedomain.Game{
		ID:        g.ID,
		Players:   toDomainPlayers(g.Players),
		Scores:    make([]gamedomain.ScoreEntry, len(g.Scores)),
		Completed: g.Completed,
		CreatedAt: g.CreatedAt,
	}
	for i, s := range g.Scores {
		out.Scores[i] = gamedomain.ScoreEntry{
			ID:       s.ID,
			PlayerID: s.PlayerID,
			Points:   s.Points,
			ScoredAt: s.ScoredAt,
		}
	}
	if g.GameType != nil {
		out.GameType = g.GameType.Name
	}
	return out
}

// newGameDetails runs the scoring engine over a stored game. A scorer that is
// not a participant means the stored data is inconsistent and is reported as
// an error rather than guessed around.
func newGameDetails(g *gamedb.Game) (*GameDetails, error) {
	game := toDomainGame(g)
	players := gamedomain.AggregateGame(game)

	next, err := gamedomain.NextPlayer(game.Players, game.Scores)
	if err != nil && !errors.Is(err, gamedomain.ErrNoPlayers) {
		return nil, fmt.Errorf("game %s: %w", g.ID, err)
	}

	return &GameDetails{
		Game:       game,
		GameTypeID: g.GameTypeID,
		Players:    players,
		Standings:  gamedomain.NewStandings(players),
		NextPlayer: next,
		Turns:      gamedomain.Turns(players),
	}, nil
}

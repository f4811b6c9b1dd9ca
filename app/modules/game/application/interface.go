package gameservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	gamedomain "github.com/runmoore/scrabble-score/app/modules/game/domain"
)

// Service defines the game operations available to handlers. Every call is
// scoped to the signed-in user.
type Service interface {
	ListPlayers(ctx context.Context, userID uuid.UUID) ([]gamedomain.Player, error)
	AddPlayer(ctx context.Context, userID uuid.UUID, name string) (gamedomain.Player, error)

	ListGameTypes(ctx context.Context, userID uuid.UUID) ([]GameType, error)
	AddGameType(ctx context.Context, userID uuid.UUID, name string) (GameType, error)

	// CreateGame starts a game with the players in the given turn order.
	CreateGame(ctx context.Context, userID uuid.UUID, playerIDs []uuid.UUID, gameTypeID *uuid.UUID) (*GameDetails, error)

	// Rematch starts a new game with the same players, order and game type.
	Rematch(ctx context.Context, userID, gameID uuid.UUID) (*GameDetails, error)

	GetGame(ctx context.Context, userID, gameID uuid.UUID) (*GameDetails, error)

	// ListGames returns games newest first. A zero since returns every game.
	ListGames(ctx context.Context, userID uuid.UUID, since time.Time) ([]GameDetails, error)

	// RecordScore adds a turn and returns the game with the next player to act.
	RecordScore(ctx context.Context, userID, gameID, playerID uuid.UUID, points int) (*GameDetails, error)

	CompleteGame(ctx context.Context, userID, gameID uuid.UUID) (*GameDetails, error)
	ReopenGame(ctx context.Context, userID, gameID uuid.UUID) (*GameDetails, error)
	SetGameType(ctx context.Context, userID, gameID uuid.UUID, gameTypeID *uuid.UUID) (*GameDetails, error)

	// ComparePlayers builds head-to-head statistics for two of the user's players.
	ComparePlayers(ctx context.Context, userID, playerOneID, playerTwoID uuid.UUID) (*gamedomain.HeadToHead, error)

	// ExportHistory renders every game as an XLSX workbook.
	ExportHistory(ctx context.Context, userID uuid.UUID) ([]byte, error)

	// ScoreChart renders the running totals of a game as a PNG.
	ScoreChart(ctx context.Context, userID, gameID uuid.UUID) ([]byte, error)
}

// GameType is a label a user can attach to games.
type GameType struct {
	ID   uuid.UUID
	Name string
}

// GameDetails is a game with everything needed to show it.
type GameDetails struct {
	Game       gamedomain.Game
	GameTypeID *uuid.UUID

	// Players are in turn order.
	Players    []gamedomain.AggregatedPlayer
	Standings  gamedomain.Standings
	NextPlayer gamedomain.Player
	Turns      int
}

// Title is the headline for the game's current state.
func (d GameDetails) Title() string {
	return d.Standings.Title(d.Game.Completed)
}

// IsLeader reports whether a player should be highlighted as leading.
func (d GameDetails) IsLeader(p gamedomain.AggregatedPlayer) bool {
	return d.Standings.IsLeader(p)
}

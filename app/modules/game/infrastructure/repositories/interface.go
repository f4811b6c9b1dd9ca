package gamedb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for game persistence. Every lookup is
// scoped to the owning user.
type Repository interface {
	// ListPlayers returns a user's players ordered by name.
	ListPlayers(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]Player, error)

	// GetPlayer returns one of the user's players.
	GetPlayer(ctx context.Context, db bun.IDB, userID, playerID uuid.UUID) (*Player, error)

	// GetPlayersByIDs returns the user's players among ids, in no particular order.
	GetPlayersByIDs(ctx context.Context, db bun.IDB, userID uuid.UUID, ids []uuid.UUID) ([]Player, error)

	CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error

	ListGameTypes(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]GameType, error)
	GetGameType(ctx context.Context, db bun.IDB, userID, gameTypeID uuid.UUID) (*GameType, error)
	CreateGameType(ctx context.Context, db bun.IDB, gameType *GameType) error

	// CreateGame inserts the game and its participants in the given order.
	CreateGame(ctx context.Context, db bun.IDB, game *Game, playerIDs []uuid.UUID) error

	// GetGame returns a game with its players in turn order and its scores in
	// recording order.
	GetGame(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID) (*Game, error)

	// ListGames returns the user's games newest first, each loaded like GetGame.
	// A zero since returns every game.
	ListGames(ctx context.Context, db bun.IDB, userID uuid.UUID, since time.Time) ([]Game, error)

	InsertScore(ctx context.Context, db bun.IDB, score *Score) error
	SetCompleted(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID, completed bool) error
	SetGameType(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID, gameTypeID *uuid.UUID) error
}

package gamedb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Player is someone a user keeps score for.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`
	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	UserID        uuid.UUID `bun:"user_id,notnull,type:uuid"`
	Name          string    `bun:"name,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// GameType is a user-defined label such as Scrabble or Upwords.
type GameType struct {
	bun.BaseModel `bun:"table:game_types,alias:gt"`
	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	UserID        uuid.UUID `bun:"user_id,notnull,type:uuid"`
	Name          string    `bun:"name,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Game is a single match. Players and Scores are loaded separately so their
// order is explicit.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid"`
	Completed     bool       `bun:"completed,notnull,default:false"`
	GameTypeID    *uuid.UUID `bun:"game_type_id,type:uuid"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull,default:current_timestamp"`

	GameType *GameType `bun:"rel:belongs-to,join:game_type_id=id"`
	Players  []Player  `bun:"-"`
	Scores   []Score   `bun:"-"`
}

// GamePlayer links a player to a game at a fixed turn position.
type GamePlayer struct {
	bun.BaseModel `bun:"table:game_players,alias:gp"`
	GameID        uuid.UUID `bun:"game_id,pk,type:uuid"`
	PlayerID      uuid.UUID `bun:"player_id,pk,type:uuid"`
	Position      int       `bun:"position,notnull"`

	Player *Player `bun:"rel:belongs-to,join:player_id=id"`
}

// Score is one recorded turn. Seq is assigned by the database and breaks ties
// between entries with the same timestamp.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:s"`
	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	GameID        uuid.UUID `bun:"game_id,notnull,type:uuid"`
	PlayerID      uuid.UUID `bun:"player_id,notnull,type:uuid"`
	Points        int       `bun:"points,notnull"`
	Seq           int64     `bun:"seq,scanonly"`
	ScoredAt      time.Time `bun:"scored_at,notnull,default:current_timestamp"`
}

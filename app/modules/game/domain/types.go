package gamedomain

import (
	"time"

	"github.com/google/uuid"
)

// Player is the identity of a participant as seen by the scoring engine.
type Player struct {
	ID   uuid.UUID
	Name string
}

// ScoreEntry is a single recorded turn. Entries are immutable and ordered by
// the time they were recorded.
type ScoreEntry struct {
	ID       uuid.UUID
	PlayerID uuid.UUID
	Points   int
	ScoredAt time.Time
}

// Game is a snapshot of a game with its participants in turn order and its
// scores in recording order.
type Game struct {
	ID        uuid.UUID
	Players   []Player
	Scores    []ScoreEntry
	Completed bool
	CreatedAt time.Time
	GameType  string
}

// HasPlayer reports whether the player participates in the game.
func (g Game) HasPlayer(playerID uuid.UUID) bool {
	return indexOfPlayer(g.Players, playerID) >= 0
}

func indexOfPlayer(players []Player, playerID uuid.UUID) int {
	for i, p := range players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

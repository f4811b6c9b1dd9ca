package gamedomain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPlayers is returned when a turn is requested for a game without participants.
	ErrNoPlayers = errors.New("game has no players")
	// ErrUnknownScorer is returned when the most recent score belongs to someone
	// who is not a participant. It indicates corrupt game data.
	ErrUnknownScorer = errors.New("last scorer is not a participant")
)

// NextPlayer returns the participant who plays after whoever scored last.
// With no scores recorded the first participant starts.
func NextPlayer(players []Player, scores []ScoreEntry) (Player, error) {
	if len(players) == 0 {
		return Player{}, ErrNoPlayers
	}
	if len(scores) == 0 {
		return players[0], nil
	}

	last := scores[len(scores)-1]
	idx := indexOfPlayer(players, last.PlayerID)
	if idx < 0 {
		return Player{}, fmt.Errorf("%w: %s", ErrUnknownScorer, last.PlayerID)
	}

	return players[(idx+1)%len(players)], nil
}

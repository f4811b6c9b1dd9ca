package web

import (
	"html/template"
	"strconv"
	"time"

	gamedomain "github.com/runmoore/scrabble-score/app/modules/game/domain"
)

var funcs = template.FuncMap{
	"ordinal": gamedomain.Ordinal,
	"date":    formatDate,
	"until":   until,
	"scoreAt": scoreAt,
	"add":     func(a, b int) int { return a + b },
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2 Jan 2006")
}

// until returns 0..n-1 for ranging over turn numbers.
func until(n int) []int {
	out := make([]int, max(n, 0))
	for i := range out {
		out[i] = i
	}
	return out
}

// scoreAt returns the points of a player's turn, or an empty cell when the
// player has not played that turn yet.
func scoreAt(scores []gamedomain.ScoreEntry, turn int) string {
	if turn < 0 || turn >= len(scores) {
		return ""
	}
	return strconv.Itoa(scores[turn].Points)
}

package gamedomain

// AggregatedPlayer is a participant with their own scores for one game.
type AggregatedPlayer struct {
	Player
	Scores     []ScoreEntry
	TotalScore int
}

// Aggregate groups scores by participant. The result follows the order of
// players, and each player's scores keep their recorded order.
func Aggregate(players []Player, scores []ScoreEntry) []AggregatedPlayer {
	aggregated := make([]AggregatedPlayer, 0, len(players))
	for _, p := range players {
		ap := AggregatedPlayer{Player: p, Scores: []ScoreEntry{}}
		for _, s := range scores {
			if s.PlayerID != p.ID {
				continue
			}
			ap.Scores = append(ap.Scores, s)
			ap.TotalScore += s.Points
		}
		aggregated = append(aggregated, ap)
	}
	return aggregated
}

// AggregateGame is Aggregate applied to a game snapshot.
func AggregateGame(g Game) []AggregatedPlayer {
	return Aggregate(g.Players, g.Scores)
}

// Turns returns the number of columns needed to show every player's scores
// side by side.
func Turns(players []AggregatedPlayer) int {
	n := 0
	for _, p := range players {
		n = max(n, len(p.Scores))
	}
	return n
}

package gamedomain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// RecentFormWindow is how many of the most recent head-to-head games count
// towards recent form.
const RecentFormWindow = 5

// HeadToHeadStats is one side of a head-to-head comparison.
type HeadToHeadStats struct {
	Player
	Won         int
	WonLastFive int
}

// HighestScore is the best single-game total across a head-to-head history.
// A zero Score means no positive total has been recorded.
type HighestScore struct {
	Score      int
	PlayerName string
	GameID     uuid.UUID
	GameDate   time.Time
}

// GameResult is one head-to-head game reduced to both totals. WinnerID is
// uuid.Nil for a draw.
type GameResult struct {
	Game           Game
	PlayerOneTotal int
	PlayerTwoTotal int
	WinnerID       uuid.UUID
}

// IsDraw reports whether neither player won.
func (r GameResult) IsDraw() bool {
	return r.WinnerID == uuid.Nil
}

// HeadToHead is the comparison of two players over their two-player games.
type HeadToHead struct {
	PlayerOne     HeadToHeadStats
	PlayerTwo     HeadToHeadStats
	RelevantGames []Game
	Results       []GameResult
	HighestScore  HighestScore
}

// HasGames reports whether the two players have played each other.
func (h HeadToHead) HasGames() bool {
	return len(h.RelevantGames) > 0
}

// HasHighestScore reports whether a highest score was recorded.
func (h HeadToHead) HasHighestScore() bool {
	return h.HighestScore.Score > 0
}

// ShowRecentForm reports whether the recent form window covers fewer games
// than the full history, which is when it says something the totals don't.
func (h HeadToHead) ShowRecentForm() bool {
	return len(h.RelevantGames) > RecentFormWindow
}

// LastGame returns the most recent head-to-head result.
func (h HeadToHead) LastGame() (GameResult, bool) {
	if len(h.Results) == 0 {
		return GameResult{}, false
	}
	return h.Results[0], true
}

// IsHeadToHead reports whether the game was played by exactly the two players
// and nobody else.
func IsHeadToHead(g Game, a, b uuid.UUID) bool {
	if a == b || len(g.Players) != 2 {
		return false
	}
	return g.HasPlayer(a) && g.HasPlayer(b)
}

// FilterHeadToHead keeps the head-to-head games of a and b in their input order.
func FilterHeadToHead(games []Game, a, b uuid.UUID) []Game {
	var relevant []Game
	for _, g := range games {
		if IsHeadToHead(g, a, b) {
			relevant = append(relevant, g)
		}
	}
	return relevant
}

// Compare builds head-to-head statistics for one and two. Relevant games are
// ordered newest first before the recent form window is applied. Names are
// taken from the players passed in so they are known even without games.
func Compare(games []Game, one, two Player) HeadToHead {
	relevant := FilterHeadToHead(games, one.ID, two.ID)
	slices.SortStableFunc(relevant, func(a, b Game) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	result := HeadToHead{
		PlayerOne:     HeadToHeadStats{Player: one},
		PlayerTwo:     HeadToHeadStats{Player: two},
		RelevantGames: relevant,
	}

	for i, g := range relevant {
		aggregated := AggregateGame(g)
		p1 := findAggregated(aggregated, one.ID)
		p2 := findAggregated(aggregated, two.ID)

		for _, p := range []*AggregatedPlayer{p1, p2} {
			if p != nil && p.TotalScore > result.HighestScore.Score {
				result.HighestScore = HighestScore{
					Score:      p.TotalScore,
					PlayerName: p.Name,
					GameID:     g.ID,
					GameDate:   g.CreatedAt,
				}
			}
		}

		if p1 == nil || p2 == nil {
			continue
		}

		gr := GameResult{Game: g, PlayerOneTotal: p1.TotalScore, PlayerTwoTotal: p2.TotalScore}
		recent := i < RecentFormWindow
		switch {
		case p1.TotalScore > p2.TotalScore:
			gr.WinnerID = one.ID
			result.PlayerOne.Won++
			if recent {
				result.PlayerOne.WonLastFive++
			}
		case p2.TotalScore > p1.TotalScore:
			gr.WinnerID = two.ID
			result.PlayerTwo.Won++
			if recent {
				result.PlayerTwo.WonLastFive++
			}
		}
		result.Results = append(result.Results, gr)
	}

	return result
}

// WinnerName resolves a result's winner to one of the compared players.
func (h HeadToHead) WinnerName(r GameResult) string {
	switch r.WinnerID {
	case h.PlayerOne.ID:
		return h.PlayerOne.Name
	case h.PlayerTwo.ID:
		return h.PlayerTwo.Name
	default:
		return ""
	}
}

func findAggregated(players []AggregatedPlayer, id uuid.UUID) *AggregatedPlayer {
	for i := range players {
		if players[i].ID == id {
			return &players[i]
		}
	}
	return nil
}

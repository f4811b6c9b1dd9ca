package gamedomain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// RankedPlayer is an aggregated player with a competition place.
type RankedPlayer struct {
	AggregatedPlayer
	Place int
}

// Outcome describes how a game's standings resolve.
type Outcome string

const (
	OutcomeNone         Outcome = "none"
	OutcomeSingleWinner Outcome = "single_winner"
	OutcomePartialDraw  Outcome = "partial_draw"
	OutcomeTotalDraw    Outcome = "total_draw"
)

// Rank orders players by total score, highest first, and assigns competition
// places: equal totals share a place and the next total takes its own
// position, so totals 50,50,30,10 rank 1,1,3,4. Players with equal totals
// keep their input order.
func Rank(players []AggregatedPlayer) []RankedPlayer {
	ranked := make([]RankedPlayer, len(players))
	for i, p := range players {
		ranked[i] = RankedPlayer{AggregatedPlayer: p}
	}

	slices.SortStableFunc(ranked, func(a, b RankedPlayer) int {
		return cmp.Compare(b.TotalScore, a.TotalScore)
	})

	for i := range ranked {
		if i > 0 && ranked[i].TotalScore == ranked[i-1].TotalScore {
			ranked[i].Place = ranked[i-1].Place
			continue
		}
		ranked[i].Place = i + 1
	}

	return ranked
}

// TopScore returns the highest total, or 0 when there are no players.
func TopScore(players []AggregatedPlayer) int {
	if len(players) == 0 {
		return 0
	}
	top := players[0].TotalScore
	for _, p := range players[1:] {
		top = max(top, p.TotalScore)
	}
	return top
}

// Winners returns every ranked player whose total equals the top score.
func Winners(ranked []RankedPlayer) []RankedPlayer {
	if len(ranked) == 0 {
		return nil
	}
	top := ranked[0].TotalScore
	for _, p := range ranked[1:] {
		top = max(top, p.TotalScore)
	}

	var winners []RankedPlayer
	for _, p := range ranked {
		if p.TotalScore == top {
			winners = append(winners, p)
		}
	}
	return winners
}

// Standings is the ranked view of one game.
type Standings struct {
	Ranked   []RankedPlayer
	TopScore int
	Winners  []RankedPlayer
	Outcome  Outcome
}

// NewStandings ranks the players and classifies the result.
func NewStandings(players []AggregatedPlayer) Standings {
	ranked := Rank(players)
	winners := Winners(ranked)

	outcome := OutcomeNone
	switch {
	case len(ranked) == 0:
	case len(winners) == 1:
		outcome = OutcomeSingleWinner
	case len(winners) == len(ranked):
		outcome = OutcomeTotalDraw
	default:
		outcome = OutcomePartialDraw
	}

	return Standings{
		Ranked:   ranked,
		TopScore: TopScore(players),
		Winners:  winners,
		Outcome:  outcome,
	}
}

// IsDraw reports whether more than one player shares the top score.
func (s Standings) IsDraw() bool {
	return s.Outcome == OutcomePartialDraw || s.Outcome == OutcomeTotalDraw
}

// IsLeader reports whether the player is on the top score and has scored
// anything at all.
func (s Standings) IsLeader(p AggregatedPlayer) bool {
	return s.TopScore > 0 && p.TotalScore == s.TopScore
}

// Title is the headline shown above a game's standings.
func (s Standings) Title(completed bool) string {
	if !completed {
		return "Still Playing"
	}

	switch s.Outcome {
	case OutcomeSingleWinner:
		return fmt.Sprintf("%s has won with a score of %d", s.Winners[0].Name, s.TopScore)
	case OutcomePartialDraw:
		names := make([]string, len(s.Winners))
		for i, w := range s.Winners {
			names[i] = w.Name
		}
		return fmt.Sprintf("It's a draw! %s have won with a score of %d", joinNames(names), s.TopScore)
	case OutcomeTotalDraw:
		return fmt.Sprintf("It's a draw! Everyone has a score of %d", s.TopScore)
	default:
		return "No players"
	}
}

func joinNames(names []string) string {
	if len(names) <= 1 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// Ordinal formats a place as 1st, 2nd, 3rd, 4th, 11th, 21st and so on.
func Ordinal(place int) string {
	suffix := "th"
	switch place % 100 {
	case 11, 12, 13:
	default:
		switch place % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", place, suffix)
}

package gamedomain

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// playedGame builds a game where each player scores a single turn with the
// given total, in player order.
func playedGame(daysAgo int, players []Player, totals ...int) Game {
	g := Game{
		ID:        uuid.New(),
		Players:   players,
		Completed: true,
		CreatedAt: epoch.AddDate(0, 0, -daysAgo),
	}
	for i, total := range totals {
		g.Scores = append(g.Scores, score(players[i], total))
	}
	return g
}

func TestIsHeadToHead(t *testing.T) {
	p := newPlayers("Alice", "Bob", "Carol")
	alice, bob, carol := p[0], p[1], p[2]

	tests := []struct {
		name string
		game Game
		a, b uuid.UUID
		want bool
	}{
		{"both players", Game{Players: []Player{alice, bob}}, alice.ID, bob.ID, true},
		{"order independent", Game{Players: []Player{bob, alice}}, alice.ID, bob.ID, true},
		{"three players", Game{Players: []Player{alice, bob, carol}}, alice.ID, bob.ID, false},
		{"other opponent", Game{Players: []Player{alice, carol}}, alice.ID, bob.ID, false},
		{"single player", Game{Players: []Player{alice}}, alice.ID, bob.ID, false},
		{"same player twice", Game{Players: []Player{alice, bob}}, alice.ID, alice.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHeadToHead(tt.game, tt.a, tt.b))
		})
	}
}

func TestCompare_ScenarioE(t *testing.T) {
	p := newPlayers("Alice", "Bob", "Carol")
	alice, bob, carol := p[0], p[1], p[2]

	games := []Game{
		playedGame(1, []Player{alice, bob}, 10, 5),
		playedGame(2, []Player{alice, bob, carol}, 10, 5, 1),
		playedGame(3, []Player{bob, alice}, 8, 9),
		playedGame(4, []Player{alice, carol}, 3, 30),
		playedGame(5, []Player{alice, bob}, 1, 1),
		playedGame(6, []Player{bob, alice}, 40, 2),
	}

	h := Compare(games, alice, bob)
	require.Len(t, h.RelevantGames, 4)
	for _, g := range h.RelevantGames {
		assert.True(t, IsHeadToHead(g, alice.ID, bob.ID))
	}

	assert.Equal(t, 2, h.PlayerOne.Won)
	assert.Equal(t, 1, h.PlayerTwo.Won)
	assert.Equal(t, 2, h.PlayerOne.WonLastFive)
	assert.Equal(t, 1, h.PlayerTwo.WonLastFive)
	assert.False(t, h.ShowRecentForm())

	assert.Equal(t, HighestScore{
		Score:      40,
		PlayerName: "Bob",
		GameID:     games[5].ID,
		GameDate:   games[5].CreatedAt,
	}, h.HighestScore)

	require.Len(t, h.Results, 4)
	last, ok := h.LastGame()
	require.True(t, ok)
	assert.Equal(t, games[0].ID, last.Game.ID)
	assert.Equal(t, "Alice", h.WinnerName(last))
	assert.True(t, h.Results[2].IsDraw())
	assert.Empty(t, h.WinnerName(h.Results[2]))
}

func TestCompare_RecentFormWindow(t *testing.T) {
	p := newPlayers("Alice", "Bob")
	alice, bob := p[0], p[1]

	// Bob won the five most recent games, Alice won the two before them.
	var games []Game
	for day := range 5 {
		games = append(games, playedGame(day, p, 1, 2))
	}
	games = append(games, playedGame(10, p, 9, 2), playedGame(11, p, 9, 2))

	h := Compare(games, alice, bob)
	assert.Equal(t, 2, h.PlayerOne.Won)
	assert.Equal(t, 0, h.PlayerOne.WonLastFive)
	assert.Equal(t, 5, h.PlayerTwo.Won)
	assert.Equal(t, 5, h.PlayerTwo.WonLastFive)
	assert.True(t, h.ShowRecentForm())
}

func TestCompare_SortsNewestFirst(t *testing.T) {
	p := newPlayers("Alice", "Bob")
	alice, bob := p[0], p[1]

	// Supplied oldest first: Alice's wins are the oldest two.
	var games []Game
	games = append(games, playedGame(20, p, 9, 2), playedGame(19, p, 9, 2))
	for day := 4; day >= 0; day-- {
		games = append(games, playedGame(day, p, 1, 2))
	}

	h := Compare(games, alice, bob)
	assert.Equal(t, 0, h.PlayerOne.WonLastFive)
	assert.Equal(t, 5, h.PlayerTwo.WonLastFive)
	for i := 1; i < len(h.RelevantGames); i++ {
		assert.False(t, h.RelevantGames[i].CreatedAt.After(h.RelevantGames[i-1].CreatedAt))
	}
}

func TestCompare_NoGames(t *testing.T) {
	p := newPlayers("Alice", "Bob", "Carol")
	alice, bob, carol := p[0], p[1], p[2]

	games := []Game{
		playedGame(1, []Player{alice, carol}, 4, 9),
		playedGame(2, []Player{alice, bob, carol}, 4, 9, 1),
	}

	h := Compare(games, alice, bob)
	assert.False(t, h.HasGames())
	assert.False(t, h.HasHighestScore())
	assert.Zero(t, h.HighestScore.Score)
	assert.Zero(t, h.PlayerOne.Won)
	assert.Zero(t, h.PlayerTwo.WonLastFive)
	assert.Equal(t, "Alice", h.PlayerOne.Name)
	assert.Equal(t, "Bob", h.PlayerTwo.Name)
	_, ok := h.LastGame()
	assert.False(t, ok)
}

func TestCompare_HighestScore(t *testing.T) {
	p := newPlayers("Alice", "Bob")
	alice, bob := p[0], p[1]

	t.Run("non-positive totals leave the sentinel", func(t *testing.T) {
		h := Compare([]Game{playedGame(1, p, 0, -4)}, alice, bob)
		assert.False(t, h.HasHighestScore())
		assert.Equal(t, 1, h.PlayerOne.Won)
	})

	t.Run("a tie keeps the more recent record", func(t *testing.T) {
		newer := playedGame(1, p, 30, 12)
		older := playedGame(2, p, 30, 30)
		h := Compare([]Game{older, newer}, alice, bob)
		assert.Equal(t, newer.ID, h.HighestScore.GameID)
		assert.Equal(t, "Alice", h.HighestScore.PlayerName)
	})

	t.Run("second player can set the record in the same game", func(t *testing.T) {
		h := Compare([]Game{playedGame(1, p, 30, 31)}, alice, bob)
		assert.Equal(t, 31, h.HighestScore.Score)
		assert.Equal(t, "Bob", h.HighestScore.PlayerName)
	})
}

func TestCompare_NamesComeFromLookup(t *testing.T) {
	p := newPlayers("Alice", "Bob")
	renamedAlice := Player{ID: p[0].ID, Name: "Ally"}

	h := Compare([]Game{playedGame(1, p, 10, 2)}, renamedAlice, p[1])
	assert.Equal(t, "Ally", h.PlayerOne.Name)
	assert.Equal(t, "Ally", h.WinnerName(h.Results[0]))
}

func TestCompare_Properties(t *testing.T) {
	faker := gofakeit.New(uint64(1234))
	roster := newPlayers("Alice", "Bob", "Carol", "Dan")
	alice, bob := roster[0], roster[1]

	for range 25 {
		var games []Game
		for i := range faker.IntRange(0, 20) {
			players := make([]Player, 0, len(roster))
			for _, pl := range roster {
				if faker.Bool() {
					players = append(players, pl)
				}
			}
			totals := make([]int, len(players))
			for j := range totals {
				totals[j] = faker.IntRange(-5, 50)
			}
			games = append(games, playedGame(i, players, totals...))
		}

		h := Compare(games, alice, bob)
		for _, g := range h.RelevantGames {
			assert.Len(t, g.Players, 2)
			assert.True(t, g.HasPlayer(alice.ID))
			assert.True(t, g.HasPlayer(bob.ID))
		}
		assert.LessOrEqual(t, h.PlayerOne.Won+h.PlayerTwo.Won, len(h.RelevantGames))
		assert.LessOrEqual(t, h.PlayerOne.WonLastFive+h.PlayerTwo.WonLastFive, RecentFormWindow)
		assert.LessOrEqual(t, h.PlayerOne.WonLastFive, h.PlayerOne.Won)
		assert.Equal(t, h, Compare(games, alice, bob))
	}
}

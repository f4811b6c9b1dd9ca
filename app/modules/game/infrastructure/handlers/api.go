package gamehandlers

import (
	"encoding/json"
	"errors"
	"net/http"

	gameservice "github.com/runmoore/scrabble-score/app/modules/game/application"
	"github.com/runmoore/scrabble-score/app/observability/attr"
)

// APIPlayer is a participant in the JSON game view.
type APIPlayer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Place  int    `json:"place"`
	Total  int    `json:"total"`
	Scores []int  `json:"scores"`
}

// APIGame is the JSON view of a game. Players are in ranked order.
type APIGame struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	GameType   string      `json:"gameType,omitempty"`
	Completed  bool        `json:"completed"`
	Turns      int         `json:"turns"`
	TopScore   int         `json:"topScore"`
	Outcome    string      `json:"outcome"`
	NextPlayer string      `json:"nextPlayer,omitempty"`
	Players    []APIPlayer `json:"players"`
}

// NewAPIGame converts game details to their JSON view.
func NewAPIGame(d *gameservice.GameDetails) APIGame {
	out := APIGame{
		ID:        d.Game.ID.String(),
		Title:     d.Title(),
		GameType:  d.Game.GameType,
		Completed: d.Game.Completed,
		Turns:     d.Turns,
		TopScore:  d.Standings.TopScore,
		Outcome:   string(d.Standings.Outcome),
		Players:   make([]APIPlayer, 0, len(d.Standings.Ranked)),
	}
	if !d.Game.Completed && len(d.Game.Players) > 0 {
		out.NextPlayer = d.NextPlayer.ID.String()
	}
	for _, p := range d.Standings.Ranked {
		scores := make([]int, len(p.Scores))
		for i, s := range p.Scores {
			scores[i] = s.Points
		}
		out.Players = append(out.Players, APIPlayer{
			ID:     p.ID.String(),
			Name:   p.Name,
			Place:  p.Place,
			Total:  p.TotalScore,
			Scores: scores,
		})
	}
	return out
}

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// HandleAPIGame returns a game as JSON.
func (h *GameHandlers) HandleAPIGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameID, err := pathID(r, "gameID")
	if err != nil {
		writeJSON(w, http.StatusNotFound, apiError{Error: "not found"})
		return
	}

	details, err := h.service.GetGame(ctx, userID(r), gameID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, NewAPIGame(details))
	case errors.Is(err, gameservice.ErrGameNotFound):
		writeJSON(w, http.StatusNotFound, apiError{Error: "not found"})
	default:
		h.logger.ErrorContext(ctx, "Failed to load game",
			attr.ExtractCorrelationID(ctx),
			attr.GameID(gameID),
			attr.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
	}
}

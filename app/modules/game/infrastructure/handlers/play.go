package gamehandlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	gameservice "github.com/runmoore/scrabble-score/app/modules/game/application"
	gamedomain "github.com/runmoore/scrabble-score/app/modules/game/domain"
	"github.com/runmoore/scrabble-score/app/web"
)

var errBadScore = errors.New("score must be a whole number")

// PlayView is the model for the play page.
type PlayView struct {
	Details      *gameservice.GameDetails
	Current      gamedomain.Player
	ScoreInput   string
	GameTypeForm GameTypeForm
}

// SummaryView is the model for the summary page.
type SummaryView struct {
	Details      *gameservice.GameDetails
	GameTypeForm GameTypeForm
}

// ParseScore reads a score field. Blank input counts as zero. Values must
// fit the 32-bit points column.
func ParseScore(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(input, 10, 32)
	if err != nil {
		return 0, errBadScore
	}
	return int(n), nil
}

func (h *GameHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	details, err := h.service.GetGame(r.Context(), userID(r), gameID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderSummary(w, r, http.StatusOK, details, "")
}

func (h *GameHandlers) renderSummary(w http.ResponseWriter, r *http.Request, status int, details *gameservice.GameDetails, formError string) {
	gameTypes, err := h.service.ListGameTypes(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderer.Render(w, r, status, "summary.html", web.Page{
		Title: details.Title(),
		Error: formError,
		Data:  SummaryView{Details: details, GameTypeForm: newGameTypeForm(details, gameTypes)},
	})
}

// HandleSummaryAction handles reopen, rematch and set-game-type.
func (h *GameHandlers) HandleSummaryAction(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderer.Error(w, r, http.StatusBadRequest, "Could not read the form")
		return
	}
	ctx := r.Context()

	switch r.PostForm.Get("action") {
	case "reopen":
		details, err := h.service.ReopenGame(ctx, userID(r), gameID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		redirect(w, r, playURL(gameID, details.NextPlayer.ID))

	case "rematch":
		details, err := h.service.Rematch(ctx, userID(r), gameID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		redirect(w, r, playURL(details.Game.ID, details.NextPlayer.ID))

	case "set-game-type":
		if err := h.setGameType(ctx, r, gameID); err != nil {
			h.fail(w, r, err)
			return
		}
		redirect(w, r, summaryURL(gameID))

	default:
		h.renderer.Error(w, r, http.StatusBadRequest, "Unknown action")
	}
}

func (h *GameHandlers) setGameType(ctx context.Context, r *http.Request, gameID uuid.UUID) error {
	gameTypeID, err := optionalID(r.PostForm.Get("gameTypeId"))
	if err != nil {
		return gameservice.ErrGameTypeNotFound
	}
	_, err = h.service.SetGameType(ctx, userID(r), gameID, gameTypeID)
	return err
}

// HandlePlay shows the score sheet for the player whose turn it is. Completed
// games go to their summary.
func (h *GameHandlers) HandlePlay(w http.ResponseWriter, r *http.Request) {
	details, current, ok := h.loadPlay(w, r)
	if !ok {
		return
	}
	if details.Game.Completed {
		redirect(w, r, summaryURL(details.Game.ID))
		return
	}
	h.renderPlay(w, r, http.StatusOK, details, current, "", "")
}

func (h *GameHandlers) loadPlay(w http.ResponseWriter, r *http.Request) (*gameservice.GameDetails, gamedomain.Player, bool) {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		h.fail(w, r, err)
		return nil, gamedomain.Player{}, false
	}
	playerID, err := pathID(r, "playerID")
	if err != nil {
		h.fail(w, r, err)
		return nil, gamedomain.Player{}, false
	}

	details, err := h.service.GetGame(r.Context(), userID(r), gameID)
	if err != nil {
		h.fail(w, r, err)
		return nil, gamedomain.Player{}, false
	}
	for _, p := range details.Game.Players {
		if p.ID == playerID {
			return details, p, true
		}
	}
	h.fail(w, r, gameservice.ErrPlayerNotFound)
	return nil, gamedomain.Player{}, false
}

func (h *GameHandlers) renderPlay(w http.ResponseWriter, r *http.Request, status int, details *gameservice.GameDetails, current gamedomain.Player, scoreInput, formError string) {
	gameTypes, err := h.service.ListGameTypes(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderer.Render(w, r, status, "play.html", web.Page{
		Title: details.Title(),
		Error: formError,
		Data: PlayView{
			Details:      details,
			Current:      current,
			ScoreInput:   scoreInput,
			GameTypeForm: newGameTypeForm(details, gameTypes),
		},
	})
}

// HandlePlayAction records a score, completes the game or sets its type.
func (h *GameHandlers) HandlePlayAction(w http.ResponseWriter, r *http.Request) {
	details, current, ok := h.loadPlay(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderer.Error(w, r, http.StatusBadRequest, "Could not read the form")
		return
	}
	ctx := r.Context()
	gameID := details.Game.ID

	switch r.PostForm.Get("action") {
	case "score":
		input := r.PostForm.Get("score")
		points, err := ParseScore(input)
		if err != nil {
			h.renderPlay(w, r, http.StatusBadRequest, details, current, input, "Score must be a whole number")
			return
		}
		updated, err := h.service.RecordScore(ctx, userID(r), gameID, current.ID, points)
		if err != nil {
			if errors.Is(err, gameservice.ErrGameCompleted) {
				redirect(w, r, summaryURL(gameID))
				return
			}
			h.fail(w, r, err)
			return
		}
		redirect(w, r, playURL(gameID, updated.NextPlayer.ID))

	case "complete":
		if _, err := h.service.CompleteGame(ctx, userID(r), gameID); err != nil {
			h.fail(w, r, err)
			return
		}
		redirect(w, r, summaryURL(gameID))

	case "set-game-type":
		if err := h.setGameType(ctx, r, gameID); err != nil {
			h.fail(w, r, err)
			return
		}
		redirect(w, r, playURL(gameID, current.ID))

	default:
		h.renderer.Error(w, r, http.StatusBadRequest, "Unknown action")
	}
}

// HandleChart serves the score progression image.
func (h *GameHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	data, err := h.service.ScoreChart(r.Context(), userID(r), gameID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

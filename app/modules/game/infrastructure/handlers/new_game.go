package gamehandlers

import (
	"net/http"

	"github.com/google/uuid"
	gameservice "github.com/runmoore/scrabble-score/app/modules/game/application"
	gamedomain "github.com/runmoore/scrabble-score/app/modules/game/domain"
	"github.com/runmoore/scrabble-score/app/web"
)

// NewGameView is the model for the new game page.
type NewGameView struct {
	Players   []gamedomain.Player
	GameTypes []gameservice.GameType
}

func (h *GameHandlers) HandleNewGamePage(w http.ResponseWriter, r *http.Request) {
	h.renderNewGame(w, r, http.StatusOK, "")
}

func (h *GameHandlers) renderNewGame(w http.ResponseWriter, r *http.Request, status int, formError string) {
	ctx := r.Context()
	players, err := h.service.ListPlayers(ctx, userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	gameTypes, err := h.service.ListGameTypes(ctx, userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderer.Render(w, r, status, "new_game.html", web.Page{
		Title: "New game",
		Error: formError,
		Data:  NewGameView{Players: players, GameTypes: gameTypes},
	})
}

// HandleNewGame dispatches the new game page forms on their action field.
func (h *GameHandlers) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderNewGame(w, r, http.StatusBadRequest, "Could not read the form")
		return
	}
	ctx := r.Context()

	switch r.PostForm.Get("action") {
	case "add-player":
		if _, err := h.service.AddPlayer(ctx, userID(r), r.PostForm.Get("name")); err != nil {
			h.formFailure(w, r, err)
			return
		}
		redirect(w, r, "/games/new")

	case "add-game-type":
		if _, err := h.service.AddGameType(ctx, userID(r), r.PostForm.Get("name")); err != nil {
			h.formFailure(w, r, err)
			return
		}
		redirect(w, r, "/games/new")

	case "start-new-game":
		playerIDs := make([]uuid.UUID, 0, len(r.PostForm["players"]))
		for _, raw := range r.PostForm["players"] {
			id, err := uuid.Parse(raw)
			if err != nil {
				h.renderNewGame(w, r, http.StatusBadRequest, "Unknown player")
				return
			}
			playerIDs = append(playerIDs, id)
		}
		gameTypeID, err := optionalID(r.PostForm.Get("gameTypeId"))
		if err != nil {
			h.renderNewGame(w, r, http.StatusBadRequest, "Unknown game type")
			return
		}

		details, err := h.service.CreateGame(ctx, userID(r), playerIDs, gameTypeID)
		if err != nil {
			h.formFailure(w, r, err)
			return
		}
		redirect(w, r, playURL(details.Game.ID, details.NextPlayer.ID))

	default:
		h.renderNewGame(w, r, http.StatusBadRequest, "Unknown action")
	}
}

// formFailure re-renders the new game page for input errors.
func (h *GameHandlers) formFailure(w http.ResponseWriter, r *http.Request, err error) {
	if gameservice.IsValidation(err) || gameservice.IsNotFound(err) {
		h.renderNewGame(w, r, http.StatusBadRequest, err.Error())
		return
	}
	h.fail(w, r, err)
}

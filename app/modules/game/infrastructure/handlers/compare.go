package gamehandlers

import (
	"net/http"

	"github.com/google/uuid"
	gameservice "github.com/runmoore/scrabble-score/app/modules/game/application"
	gamedomain "github.com/runmoore/scrabble-score/app/modules/game/domain"
	"github.com/runmoore/scrabble-score/app/web"
)

// CompareSelectView is the model for choosing two players to compare.
type CompareSelectView struct {
	Players []gamedomain.Player
}

func (h *GameHandlers) HandleCompareSelect(w http.ResponseWriter, r *http.Request) {
	h.renderCompareSelect(w, r, http.StatusOK, "")
}

func (h *GameHandlers) renderCompareSelect(w http.ResponseWriter, r *http.Request, status int, formError string) {
	players, err := h.service.ListPlayers(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderer.Render(w, r, status, "compare_select.html", web.Page{
		Title: "Compare players",
		Error: formError,
		Data:  CompareSelectView{Players: players},
	})
}

// HandleCompareSubmit validates the chosen pair and redirects to its
// comparison page.
func (h *GameHandlers) HandleCompareSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderCompareSelect(w, r, http.StatusBadRequest, "Could not read the form")
		return
	}
	one, errOne := uuid.Parse(r.PostForm.Get("playerOne"))
	two, errTwo := uuid.Parse(r.PostForm.Get("playerTwo"))
	switch {
	case errOne != nil || errTwo != nil:
		h.renderCompareSelect(w, r, http.StatusBadRequest, "Choose two players")
		return
	case one == two:
		h.renderCompareSelect(w, r, http.StatusBadRequest, "Choose two different players")
		return
	}
	redirect(w, r, "/games/compare/"+one.String()+"/"+two.String())
}

func (h *GameHandlers) HandleCompare(w http.ResponseWriter, r *http.Request) {
	one, err := pathID(r, "playerOne")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	two, err := pathID(r, "playerTwo")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h2h, err := h.service.ComparePlayers(r.Context(), userID(r), one, two)
	if err != nil {
		if gameservice.IsValidation(err) {
			h.renderCompareSelect(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.fail(w, r, err)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "compare.html", web.Page{
		Title: h2h.PlayerOne.Name + " vs " + h2h.PlayerTwo.Name,
		Data:  h2h,
	})
}

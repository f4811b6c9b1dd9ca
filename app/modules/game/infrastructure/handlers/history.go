package gamehandlers

import (
	"net/http"

	gameservice "github.com/runmoore/scrabble-score/app/modules/game/application"
	"github.com/runmoore/scrabble-score/app/web"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HistoryView is the model for the games list.
type HistoryView struct {
	Since      string
	InProgress []gameservice.GameDetails
	Completed  []gameservice.GameDetails
}

// HandleList shows the user's games split by status. An unreadable since
// filter is reported and the full history is shown.
func (h *GameHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view := HistoryView{Since: r.URL.Query().Get("since")}
	page := web.Page{Title: "Games"}

	since, err := h.since.Parse(view.Since, h.now())
	if err != nil {
		page.Error = "Could not understand \"" + view.Since + "\", showing every game"
	}

	games, err := h.service.ListGames(ctx, userID(r), since)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	for _, g := range games {
		if g.Game.Completed {
			view.Completed = append(view.Completed, g)
		} else {
			view.InProgress = append(view.InProgress, g)
		}
	}

	page.Data = view
	h.renderer.Render(w, r, http.StatusOK, "games.html", page)
}

// HandleExport downloads the user's history as a workbook.
func (h *GameHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportHistory(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="scrabble-history.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

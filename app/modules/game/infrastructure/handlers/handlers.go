package gamehandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	authdomain "github.com/runmoore/scrabble-score/app/modules/auth/domain"
	gameservice "github.com/runmoore/scrabble-score/app/modules/game/application"
	"github.com/runmoore/scrabble-score/app/observability/attr"
	"github.com/runmoore/scrabble-score/app/web"
	"go.opentelemetry.io/otel/trace"
)

var errBadID = errors.New("invalid id")

// GameHandlers serves the game pages and the JSON API.
type GameHandlers struct {
	service  gameservice.Service
	renderer *web.Renderer
	since    *gameservice.SinceParser
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewGameHandlers creates a new GameHandlers instance.
func NewGameHandlers(
	service gameservice.Service,
	renderer *web.Renderer,
	logger *slog.Logger,
	tracer trace.Tracer,
) *GameHandlers {
	return &GameHandlers{
		service:  service,
		renderer: renderer,
		since:    gameservice.NewSinceParser(),
		logger:   logger,
		tracer:   tracer,
		now:      time.Now,
	}
}

// Routes mounts every game route on r. Callers are expected to require a
// signed-in user.
func (h *GameHandlers) Routes(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Get("/export.xlsx", h.HandleExport)

		r.Get("/new", h.HandleNewGamePage)
		r.Post("/new", h.HandleNewGame)

		r.Get("/compare", h.HandleCompareSelect)
		r.Post("/compare", h.HandleCompareSubmit)
		r.Get("/compare/{playerOne}/{playerTwo}", h.HandleCompare)

		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", h.HandleSummary)
			r.Post("/", h.HandleSummaryAction)
			r.Get("/chart.png", h.HandleChart)
			r.Get("/play/{playerID}", h.HandlePlay)
			r.Post("/play/{playerID}", h.HandlePlayAction)
		})
	})

	r.Get("/api/games/{gameID}", h.HandleAPIGame)
}

func userID(r *http.Request) uuid.UUID {
	return authdomain.UserIDFromContext(r.Context())
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errBadID
	}
	return id, nil
}

func optionalID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, errBadID
	}
	return &id, nil
}

// fail renders the error page for err.
func (h *GameHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errBadID), gameservice.IsNotFound(err):
		h.renderer.Error(w, r, http.StatusNotFound, "")
	case gameservice.IsValidation(err):
		h.renderer.Error(w, r, http.StatusBadRequest, err.Error())
	default:
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "Request failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		h.renderer.Error(w, r, http.StatusInternalServerError, "")
	}
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func playURL(gameID, playerID uuid.UUID) string {
	return "/games/" + gameID.String() + "/play/" + playerID.String()
}

func summaryURL(gameID uuid.UUID) string {
	return "/games/" + gameID.String()
}

// GameTypeForm is the model for the game type selector.
type GameTypeForm struct {
	CurrentID string
	GameTypes []gameservice.GameType
}

func newGameTypeForm(details *gameservice.GameDetails, gameTypes []gameservice.GameType) GameTypeForm {
	form := GameTypeForm{GameTypes: gameTypes}
	if details.GameTypeID != nil {
		form.CurrentID = details.GameTypeID.String()
	}
	return form
}

package gameservice

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	gamedomain "github.com/runmoore/scrabble-score/app/modules/game/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ScoreChart renders the running totals of every player in a game.
func (s *GameService) ScoreChart(ctx context.Context, userID, gameID uuid.UUID) ([]byte, error) {
	details, err := s.GetGame(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	return RenderScoreChart(details.Players)
}

// RenderScoreChart draws one line per player, starting from zero before the
// first turn.
func RenderScoreChart(players []gamedomain.AggregatedPlayer) ([]byte, error) {
	if gamedomain.Turns(players) == 0 {
		return renderPlaceholder("No scores yet")
	}

	series := make([]chart.Series, 0, len(players))
	lo, hi := 0.0, 0.0
	for i, p := range players {
		x := []float64{0}
		y := []float64{0}
		running := 0
		for turn, entry := range p.Scores {
			running += entry.Points
			x = append(x, float64(turn+1))
			y = append(y, float64(running))
			lo, hi = min(lo, float64(running)), max(hi, float64(running))
		}
		color := chart.GetDefaultColor(i)
		series = append(series, chart.ContinuousSeries{
			Name:    p.Name,
			XValues: x,
			YValues: y,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3,
			},
		})
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Turn",
			ValueFormatter: chart.IntValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "Score",
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// renderPlaceholder draws msg straight onto a blank PNG canvas.
func renderPlaceholder(msg string) ([]byte, error) {
	const (
		width  = 400
		height = 200
	)

	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(drawing.ColorBlack)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

package gameservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	gamesSheet  = "Games"
	scoresSheet = "Scores"
)

// ExportHistory writes every game the user has recorded to an XLSX workbook
// with a Games sheet and a Scores sheet.
func (s *GameService) ExportHistory(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	games, err := s.ListGames(ctx, userID, time.Time{})
	if err != nil {
		return nil, err
	}
	return BuildHistoryWorkbook(games)
}

// BuildHistoryWorkbook renders games as an XLSX file.
func BuildHistoryWorkbook(games []GameDetails) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), gamesSheet); err != nil {
		return nil, fmt.Errorf("failed to name games sheet: %w", err)
	}
	if _, err := f.NewSheet(scoresSheet); err != nil {
		return nil, fmt.Errorf("failed to add scores sheet: %w", err)
	}

	if err := writeRow(f, gamesSheet, 1, "Game", "Date", "Type", "Status", "Result", "Scores"); err != nil {
		return nil, err
	}
	if err := writeRow(f, scoresSheet, 1, "Game", "Date", "Player", "Turn", "Points", "Running total"); err != nil {
		return nil, err
	}

	scoreRow := 2
	for i, g := range games {
		totals := make([]string, len(g.Players))
		for j, p := range g.Players {
			totals[j] = fmt.Sprintf("%s %d", p.Name, p.TotalScore)
		}
		status := "In progress"
		if g.Game.Completed {
			status = "Completed"
		}
		date := g.Game.CreatedAt.Format(time.DateOnly)

		err := writeRow(f, gamesSheet, i+2,
			g.Game.ID.String(), date, g.Game.GameType, status, g.Title(), strings.Join(totals, ", "))
		if err != nil {
			return nil, err
		}

		for _, p := range g.Players {
			running := 0
			for turn, entry := range p.Scores {
				running += entry.Points
				if err := writeRow(f, scoresSheet, scoreRow,
					g.Game.ID.String(), date, p.Name, turn+1, entry.Points, running); err != nil {
					return nil, err
				}
				scoreRow++
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

package gamehandlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	gameservice "github.com/runmoore/scrabble-score/app/modules/game/application"
	gamedomain "github.com/runmoore/scrabble-score/app/modules/game/domain"
)

// FakeService is a programmable fake for gameservice.Service.
type FakeService struct {
	ListPlayersFunc    func(ctx context.Context, userID uuid.UUID) ([]gamedomain.Player, error)
	AddPlayerFunc      func(ctx context.Context, userID uuid.UUID, name string) (gamedomain.Player, error)
	ListGameTypesFunc  func(ctx context.Context, userID uuid.UUID) ([]gameservice.GameType, error)
	AddGameTypeFunc    func(ctx context.Context, userID uuid.UUID, name string) (gameservice.GameType, error)
	CreateGameFunc     func(ctx context.Context, userID uuid.UUID, playerIDs []uuid.UUID, gameTypeID *uuid.UUID) (*gameservice.GameDetails, error)
	RematchFunc        func(ctx context.Context, userID, gameID uuid.UUID) (*gameservice.GameDetails, error)
	GetGameFunc        func(ctx context.Context, userID, gameID uuid.UUID) (*gameservice.GameDetails, error)
	ListGamesFunc      func(ctx context.Context, userID uuid.UUID, since time.Time) ([]gameservice.GameDetails, error)
	RecordScoreFunc    func(ctx context.Context, userID, gameID, playerID uuid.UUID, points int) (*gameservice.GameDetails, error)
	CompleteGameFunc   func(ctx context.Context, userID, gameID uuid.UUID) (*gameservice.GameDetails, error)
	ReopenGameFunc     func(ctx context.Context, userID, gameID uuid.UUID) (*gameservice.GameDetails, error)
	SetGameTypeFunc    func(ctx context.Context, userID, gameID uuid.UUID, gameTypeID *uuid.UUID) (*gameservice.GameDetails, error)
	ComparePlayersFunc func(ctx context.Context, userID, playerOneID, playerTwoID uuid.UUID) (*gamedomain.HeadToHead, error)
	ExportHistoryFunc  func(ctx context.Context, userID uuid.UUID) ([]byte, error)
	ScoreChartFunc     func(ctx context.Context, userID, gameID uuid.UUID) ([]byte, error)

	trace []string
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the service calls made so far.
func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) ListPlayers(ctx context.Context, userID uuid.UUID) ([]gamedomain.Player, error) {
	f.record("ListPlayers")
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx, userID)
	}
	return nil, nil
}

func (f *FakeService) AddPlayer(ctx context.Context, userID uuid.UUID, name string) (gamedomain.Player, error) {
	f.record("AddPlayer")
	if f.AddPlayerFunc != nil {
		return f.AddPlayerFunc(ctx, userID, name)
	}
	return gamedomain.Player{ID: uuid.New(), Name: name}, nil
}

func (f *FakeService) ListGameTypes(ctx context.Context, userID uuid.UUID) ([]gameservice.GameType, error) {
	f.record("ListGameTypes")
	if f.ListGameTypesFunc != nil {
		return f.ListGameTypesFunc(ctx, userID)
	}
	return nil, nil
}

func (f *FakeService) AddGameType(ctx context.Context, userID uuid.UUID, name string) (gameservice.GameType, error) {
	f.record("AddGameType")
	if f.AddGameTypeFunc != nil {
		return f.AddGameTypeFunc(ctx, userID, name)
	}
	return gameservice.GameType{ID: uuid.New(), Name: name}, nil
}

func (f *FakeService) CreateGame(ctx context.Context, userID uuid.UUID, playerIDs []uuid.UUID, gameTypeID *uuid.UUID) (*gameservice.GameDetails, error) {
	f.record("CreateGame")
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx, userID, playerIDs, gameTypeID)
	}
	return nil, gameservice.ErrNotEnoughPlayers
}

func (f *FakeService) Rematch(ctx context.Context, userID, gameID uuid.UUID) (*gameservice.GameDetails, error) {
	f.record("Rematch")
	if f.RematchFunc != nil {
		return f.RematchFunc(ctx, userID, gameID)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) GetGame(ctx context.Context, userID, gameID uuid.UUID) (*gameservice.GameDetails, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, userID, gameID)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) ListGames(ctx context.Context, userID uuid.UUID, since time.Time) ([]gameservice.GameDetails, error) {
	f.record("ListGames")
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx, userID, since)
	}
	return nil, nil
}

func (f *FakeService) RecordScore(ctx context.Context, userID, gameID, playerID uuid.UUID, points int) (*gameservice.GameDetails, error) {
	f.record("RecordScore")
	if f.RecordScoreFunc != nil {
		return f.RecordScoreFunc(ctx, userID, gameID, playerID, points)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) CompleteGame(ctx context.Context, userID, gameID uuid.UUID) (*gameservice.GameDetails, error) {
	f.record("CompleteGame")
	if f.CompleteGameFunc != nil {
		return f.CompleteGameFunc(ctx, userID, gameID)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) ReopenGame(ctx context.Context, userID, gameID uuid.UUID) (*gameservice.GameDetails, error) {
	f.record("ReopenGame")
	if f.ReopenGameFunc != nil {
		return f.ReopenGameFunc(ctx, userID, gameID)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) SetGameType(ctx context.Context, userID, gameID uuid.UUID, gameTypeID *uuid.UUID) (*gameservice.GameDetails, error) {
	f.record("SetGameType")
	if f.SetGameTypeFunc != nil {
		return f.SetGameTypeFunc(ctx, userID, gameID, gameTypeID)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) ComparePlayers(ctx context.Context, userID, playerOneID, playerTwoID uuid.UUID) (*gamedomain.HeadToHead, error) {
	f.record("ComparePlayers")
	if f.ComparePlayersFunc != nil {
		return f.ComparePlayersFunc(ctx, userID, playerOneID, playerTwoID)
	}
	return nil, gameservice.ErrPlayerNotFound
}

func (f *FakeService) ExportHistory(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	f.record("ExportHistory")
	if f.ExportHistoryFunc != nil {
		return f.ExportHistoryFunc(ctx, userID)
	}
	return nil, nil
}

func (f *FakeService) ScoreChart(ctx context.Context, userID, gameID uuid.UUID) ([]byte, error) {
	f.record("ScoreChart")
	if f.ScoreChartFunc != nil {
		return f.ScoreChartFunc(ctx, userID, gameID)
	}
	return nil, gameservice.ErrGameNotFound
}

var _ gameservice.Service = (*FakeService)(nil)

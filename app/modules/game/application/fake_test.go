package gameservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	gamedb "github.com/runmoore/scrabble-score/app/modules/game/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Game Repo
// ------------------------

type FakeGameRepo struct {
	trace []string

	ListPlayersFunc     func(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]gamedb.Player, error)
	GetPlayerFunc       func(ctx context.Context, db bun.IDB, userID, playerID uuid.UUID) (*gamedb.Player, error)
	GetPlayersByIDsFunc func(ctx context.Context, db bun.IDB, userID uuid.UUID, ids []uuid.UUID) ([]gamedb.Player, error)
	CreatePlayerFunc    func(ctx context.Context, db bun.IDB, player *gamedb.Player) error
	ListGameTypesFunc   func(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]gamedb.GameType, error)
	GetGameTypeFunc     func(ctx context.Context, db bun.IDB, userID, gameTypeID uuid.UUID) (*gamedb.GameType, error)
	CreateGameTypeFunc  func(ctx context.Context, db bun.IDB, gameType *gamedb.GameType) error
	CreateGameFunc      func(ctx context.Context, db bun.IDB, game *gamedb.Game, playerIDs []uuid.UUID) error
	GetGameFunc         func(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID) (*gamedb.Game, error)
	ListGamesFunc       func(ctx context.Context, db bun.IDB, userID uuid.UUID, since time.Time) ([]gamedb.Game, error)
	InsertScoreFunc     func(ctx context.Context, db bun.IDB, score *gamedb.Score) error
	SetCompletedFunc    func(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID, completed bool) error
	SetGameTypeFunc     func(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID, gameTypeID *uuid.UUID) error
}

func NewFakeGameRepo() *FakeGameRepo {
	return &FakeGameRepo{
		trace: []string{},
	}
}

func (f *FakeGameRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeGameRepo) ListPlayers(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]gamedb.Player, error) {
	f.record("ListPlayers")
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx, db, userID)
	}
	return nil, nil
}

func (f *FakeGameRepo) GetPlayer(ctx context.Context, db bun.IDB, userID, playerID uuid.UUID) (*gamedb.Player, error) {
	f.record("GetPlayer")
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, db, userID, playerID)
	}
	return nil, gamedb.ErrNotFound
}

func (f *FakeGameRepo) GetPlayersByIDs(ctx context.Context, db bun.IDB, userID uuid.UUID, ids []uuid.UUID) ([]gamedb.Player, error) {
	f.record("GetPlayersByIDs")
	if f.GetPlayersByIDsFunc != nil {
		return f.GetPlayersByIDsFunc(ctx, db, userID, ids)
	}
	return nil, nil
}

func (f *FakeGameRepo) CreatePlayer(ctx context.Context, db bun.IDB, player *gamedb.Player) error {
	f.record("CreatePlayer")
	if f.CreatePlayerFunc != nil {
		return f.CreatePlayerFunc(ctx, db, player)
	}
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	return nil
}

func (f *FakeGameRepo) ListGameTypes(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]gamedb.GameType, error) {
	f.record("ListGameTypes")
	if f.ListGameTypesFunc != nil {
		return f.ListGameTypesFunc(ctx, db, userID)
	}
	return nil, nil
}

func (f *FakeGameRepo) GetGameType(ctx context.Context, db bun.IDB, userID, gameTypeID uuid.UUID) (*gamedb.GameType, error) {
	f.record("GetGameType")
	if f.GetGameTypeFunc != nil {
		return f.GetGameTypeFunc(ctx, db, userID, gameTypeID)
	}
	return nil, gamedb.ErrNotFound
}

func (f *FakeGameRepo) CreateGameType(ctx context.Context, db bun.IDB, gameType *gamedb.GameType) error {
	f.record("CreateGameType")
	if f.CreateGameTypeFunc != nil {
		return f.CreateGameTypeFunc(ctx, db, gameType)
	}
	if gameType.ID == uuid.Nil {
		gameType.ID = uuid.New()
	}
	return nil
}

func (f *FakeGameRepo) CreateGame(ctx context.Context, db bun.IDB, game *gamedb.Game, playerIDs []uuid.UUID) error {
	f.record("CreateGame")
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx, db, game, playerIDs)
	}
	return nil
}

func (f *FakeGameRepo) GetGame(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID) (*gamedb.Game, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, db, userID, gameID)
	}
	return nil, gamedb.ErrNotFound
}

func (f *FakeGameRepo) ListGames(ctx context.Context, db bun.IDB, userID uuid.UUID, since time.Time) ([]gamedb.Game, error) {
	f.record("ListGames")
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx, db, userID, since)
	}
	return nil, nil
}

func (f *FakeGameRepo) InsertScore(ctx context.Context, db bun.IDB, score *gamedb.Score) error {
	f.record("InsertScore")
	if f.InsertScoreFunc != nil {
		return f.InsertScoreFunc(ctx, db, score)
	}
	return nil
}

func (f *FakeGameRepo) SetCompleted(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID, completed bool) error {
	f.record("SetCompleted")
	if f.SetCompletedFunc != nil {
		return f.SetCompletedFunc(ctx, db, userID, gameID, completed)
	}
	return nil
}

func (f *FakeGameRepo) SetGameType(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID, gameTypeID *uuid.UUID) error {
	f.record("SetGameType")
	if f.SetGameTypeFunc != nil {
		return f.SetGameTypeFunc(ctx, db, userID, gameID, gameTypeID)
	}
	return nil
}

// --- Accessors for assertions ---

func (f *FakeGameRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ gamedb.Repository = (*FakeGameRepo)(nil)

// ------------------------
// In-memory store
// ------------------------

// memoryStore backs a FakeGameRepo with maps so multi-step operations can be
// exercised end to end.
type memoryStore struct {
	userID    uuid.UUID
	players   map[uuid.UUID]gamedb.Player
	gameTypes map[uuid.UUID]gamedb.GameType
	games     map[uuid.UUID]*gamedb.Game
	order     []uuid.UUID
}

func newMemoryStore(userID uuid.UUID) *memoryStore {
	return &memoryStore{
		userID:    userID,
		players:   map[uuid.UUID]gamedb.Player{},
		gameTypes: map[uuid.UUID]gamedb.GameType{},
		games:     map[uuid.UUID]*gamedb.Game{},
	}
}

func (m *memoryStore) addPlayer(name string) gamedb.Player {
	p := gamedb.Player{ID: uuid.New(), UserID: m.userID, Name: name}
	m.players[p.ID] = p
	return p
}

func (m *memoryStore) addGameType(name string) gamedb.GameType {
	gt := gamedb.GameType{ID: uuid.New(), UserID: m.userID, Name: name}
	m.gameTypes[gt.ID] = gt
	return gt
}

func (m *memoryStore) copyGame(g *gamedb.Game) *gamedb.Game {
	out := *g
	out.Players = append([]gamedb.Player{}, g.Players...)
	out.Scores = append([]gamedb.Score{}, g.Scores...)
	if g.GameTypeID != nil {
		gt := m.gameTypes[*g.GameTypeID]
		out.GameType = &gt
	}
	return &out
}

// wire points every repo function at the store.
func (m *memoryStore) wire(f *FakeGameRepo) {
	f.ListPlayersFunc = func(_ context.Context, _ bun.IDB, userID uuid.UUID) ([]gamedb.Player, error) {
		var out []gamedb.Player
		for _, p := range m.players {
			if p.UserID == userID {
				out = append(out, p)
			}
		}
		return out, nil
	}
	f.GetPlayerFunc = func(_ context.Context, _ bun.IDB, userID, playerID uuid.UUID) (*gamedb.Player, error) {
		p, ok := m.players[playerID]
		if !ok || p.UserID != userID {
			return nil, gamedb.ErrNotFound
		}
		return &p, nil
	}
	f.GetPlayersByIDsFunc = func(_ context.Context, _ bun.IDB, userID uuid.UUID, ids []uuid.UUID) ([]gamedb.Player, error) {
		var out []gamedb.Player
		for _, id := range ids {
			if p, ok := m.players[id]; ok && p.UserID == userID {
				out = append(out, p)
			}
		}
		return out, nil
	}
	f.GetGameTypeFunc = func(_ context.Context, _ bun.IDB, userID, id uuid.UUID) (*gamedb.GameType, error) {
		gt, ok := m.gameTypes[id]
		if !ok || gt.UserID != userID {
			return nil, gamedb.ErrNotFound
		}
		return &gt, nil
	}
	f.CreateGameFunc = func(_ context.Context, _ bun.IDB, game *gamedb.Game, playerIDs []uuid.UUID) error {
		game.ID = uuid.New()
		stored := *game
		for _, id := range playerIDs {
			stored.Players = append(stored.Players, m.players[id])
		}
		m.games[game.ID] = &stored
		m.order = append(m.order, game.ID)
		return nil
	}
	f.GetGameFunc = func(_ context.Context, _ bun.IDB, userID, gameID uuid.UUID) (*gamedb.Game, error) {
		g, ok := m.games[gameID]
		if !ok || g.UserID != userID {
			return nil, gamedb.ErrNotFound
		}
		return m.copyGame(g), nil
	}
	f.ListGamesFunc = func(_ context.Context, _ bun.IDB, userID uuid.UUID, since time.Time) ([]gamedb.Game, error) {
		var out []gamedb.Game
		for i := len(m.order) - 1; i >= 0; i-- {
			g := m.games[m.order[i]]
			if g.UserID == userID && !g.CreatedAt.Before(since) {
				out = append(out, *m.copyGame(g))
			}
		}
		return out, nil
	}
	f.InsertScoreFunc = func(_ context.Context, _ bun.IDB, score *gamedb.Score) error {
		score.ID = uuid.New()
		g := m.games[score.GameID]
		g.Scores = append(g.Scores, *score)
		return nil
	}
	f.SetCompletedFunc = func(_ context.Context, _ bun.IDB, userID, gameID uuid.UUID, completed bool) error {
		g, ok := m.games[gameID]
		if !ok || g.UserID != userID {
			return gamedb.ErrNotFound
		}
		g.Completed = completed
		return nil
	}
	f.SetGameTypeFunc = func(_ context.Context, _ bun.IDB, userID, gameID uuid.UUID, gameTypeID *uuid.UUID) error {
		g, ok := m.games[gameID]
		if !ok || g.UserID != userID {
			return gamedb.ErrNotFound
		}
		g.GameTypeID = gameTypeID
		return nil
	}
}

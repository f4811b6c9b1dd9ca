package gamedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/runmoore/scrabble-score/app/database"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new game repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) ListPlayers(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]Player, error) {
	db = r.resolveDB(db)
	var players []Player
	err := db.NewSelect().
		Model(&players).
		Where("p.user_id = ?", userID).
		Order("p.name ASC", "p.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (r *Impl) GetPlayer(ctx context.Context, db bun.IDB, userID, playerID uuid.UUID) (*Player, error) {
	db = r.resolveDB(db)
	player := new(Player)
	err := db.NewSelect().
		Model(player).
		Where("p.id = ?", playerID).
		Where("p.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

func (r *Impl) GetPlayersByIDs(ctx context.Context, db bun.IDB, userID uuid.UUID, ids []uuid.UUID) ([]Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)
	var players []Player
	err := db.NewSelect().
		Model(&players).
		Where("p.user_id = ?", userID).
		Where("p.id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get players by ids: %w", err)
	}
	return players, nil
}

func (r *Impl) CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	db = r.resolveDB(db)
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	if player.CreatedAt.IsZero() {
		player.CreatedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(player).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

func (r *Impl) ListGameTypes(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]GameType, error) {
	db = r.resolveDB(db)
	var gameTypes []GameType
	err := db.NewSelect().
		Model(&gameTypes).
		Where("gt.user_id = ?", userID).
		Order("gt.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list game types: %w", err)
	}
	return gameTypes, nil
}

func (r *Impl) GetGameType(ctx context.Context, db bun.IDB, userID, gameTypeID uuid.UUID) (*GameType, error) {
	db = r.resolveDB(db)
	gameType := new(GameType)
	err := db.NewSelect().
		Model(gameType).
		Where("gt.id = ?", gameTypeID).
		Where("gt.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game type: %w", err)
	}
	return gameType, nil
}

func (r *Impl) CreateGameType(ctx context.Context, db bun.IDB, gameType *GameType) error {
	db = r.resolveDB(db)
	if gameType.ID == uuid.Nil {
		gameType.ID = uuid.New()
	}
	if gameType.CreatedAt.IsZero() {
		gameType.CreatedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(gameType).Exec(ctx); err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to create game type: %w", err)
	}
	return nil
}

func (r *Impl) CreateGame(ctx context.Context, db bun.IDB, game *Game, playerIDs []uuid.UUID) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	if game.CreatedAt.IsZero() {
		game.CreatedAt = now
	}
	game.UpdatedAt = game.CreatedAt

	if _, err := db.NewInsert().Model(game).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	links := make([]GamePlayer, len(playerIDs))
	for i, id := range playerIDs {
		links[i] = GamePlayer{GameID: game.ID, PlayerID: id, Position: i}
	}
	if len(links) > 0 {
		if _, err := db.NewInsert().Model(&links).Exec(ctx); err != nil {
			return fmt.Errorf("failed to add game players: %w", err)
		}
	}
	return nil
}

func (r *Impl) GetGame(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID) (*Game, error) {
	db = r.resolveDB(db)
	game := new(Game)
	err := db.NewSelect().
		Model(game).
		Relation("GameType").
		Where("g.id = ?", gameID).
		Where("g.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	games := []Game{*game}
	if err := r.loadParticipants(ctx, db, games); err != nil {
		return nil, err
	}
	return &games[0], nil
}

func (r *Impl) ListGames(ctx context.Context, db bun.IDB, userID uuid.UUID, since time.Time) ([]Game, error) {
	db = r.resolveDB(db)
	var games []Game
	q := db.NewSelect().
		Model(&games).
		Relation("GameType").
		Where("g.user_id = ?", userID).
		Order("g.created_at DESC")
	if !since.IsZero() {
		q = q.Where("g.created_at >= ?", since)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	if err := r.loadParticipants(ctx, db, games); err != nil {
		return nil, err
	}
	return games, nil
}

// loadParticipants fills Players (by turn position) and Scores (by recording
// order) for every game in place.
func (r *Impl) loadParticipants(ctx context.Context, db bun.IDB, games []Game) error {
	if len(games) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(games))
	byID := make(map[uuid.UUID]*Game, len(games))
	for i := range games {
		ids[i] = games[i].ID
		games[i].Players = []Player{}
		games[i].Scores = []Score{}
		byID[games[i].ID] = &games[i]
	}

	var links []GamePlayer
	err := db.NewSelect().
		Model(&links).
		Relation("Player").
		Where("gp.game_id IN (?)", bun.In(ids)).
		Order("gp.game_id", "gp.position ASC").
		Scan(ctx)
	if err != nil {
		return fmt.Errorf("failed to load game players: %w", err)
	}
	for _, link := range links {
		if g, ok := byID[link.GameID]; ok && link.Player != nil {
			g.Players = append(g.Players, *link.Player)
		}
	}

	var scores []Score
	err = db.NewSelect().
		Model(&scores).
		Where("s.game_id IN (?)", bun.In(ids)).
		Order("s.scored_at ASC", "s.seq ASC").
		Scan(ctx)
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}
	for _, s := range scores {
		if g, ok := byID[s.GameID]; ok {
			g.Scores = append(g.Scores, s)
		}
	}
	return nil
}

func (r *Impl) InsertScore(ctx context.Context, db bun.IDB, score *Score) error {
	db = r.resolveDB(db)
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	if score.ScoredAt.IsZero() {
		score.ScoredAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(score).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}
	return r.touch(ctx, db, score.GameID)
}

func (r *Impl) SetCompleted(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID, completed bool) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Game)(nil)).
		Set("completed = ?", completed).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", gameID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update game completion: %w", err)
	}
	return requireRow(result)
}

func (r *Impl) SetGameType(ctx context.Context, db bun.IDB, userID, gameID uuid.UUID, gameTypeID *uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Game)(nil)).
		Set("game_type_id = ?", gameTypeID).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", gameID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set game type: %w", err)
	}
	return requireRow(result)
}

func (r *Impl) touch(ctx context.Context, db bun.IDB, gameID uuid.UUID) error {
	_, err := db.NewUpdate().
		Model((*Game)(nil)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", gameID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to touch game: %w", err)
	}
	return nil
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

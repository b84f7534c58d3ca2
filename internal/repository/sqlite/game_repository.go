package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glebk/playmood/internal/domain"
)

// GameRepository implements domain.GameRepository using SQLite
type GameRepository struct {
	db *Database
}

// NewGameRepository creates a new GameRepository
func NewGameRepository(db *Database) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = `id, name, genre, type, difficulty, avg_session_duration_minutes, created_at`

// Create inserts a new game
func (r *GameRepository) Create(ctx context.Context, game *domain.Game) error {
	query := `
		INSERT INTO games (name, genre, type, difficulty, avg_session_duration_minutes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	result, err := r.db.GetDB().ExecContext(ctx, query,
		game.Name,
		game.Genre,
		game.Type,
		game.Difficulty,
		game.AvgSessionDurationMinutes,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get game ID: %w", err)
	}

	game.ID = id
	game.CreatedAt = now

	return nil
}

// GetByID retrieves a game by ID
func (r *GameRepository) GetByID(ctx context.Context, id int64) (*domain.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = ?`

	game, err := scanGame(r.db.GetDB().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetByName retrieves a game by its exact name
func (r *GameRepository) GetByName(ctx context.Context, name string) (*domain.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE name = ?`

	game, err := scanGame(r.db.GetDB().QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by name: %w", err)
	}

	return game, nil
}

// GetAll retrieves all games ordered by name
func (r *GameRepository) GetAll(ctx context.Context) ([]*domain.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games ORDER BY name`

	rows, err := r.db.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all games: %w", err)
	}
	defer rows.Close()

	var games []*domain.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}

// DeleteAll removes every game
func (r *GameRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.GetDB().ExecContext(ctx, `DELETE FROM games`); err != nil {
		return fmt.Errorf("failed to delete games: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*domain.Game, error) {
	game := &domain.Game{}
	err := row.Scan(
		&game.ID,
		&game.Name,
		&game.Genre,
		&game.Type,
		&game.Difficulty,
		&game.AvgSessionDurationMinutes,
		&game.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return game, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/glebk/playmood/internal/domain"
)

// PlayerRepository implements domain.PlayerRepository using SQLite
type PlayerRepository struct {
	db *Database
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Create inserts a new player
func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	query := `
		INSERT INTO players (first_name, last_name, age, gender, baseline_mental_health, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if !player.Baseline.Valid() {
		return fmt.Errorf("failed to create player: %w", domain.ErrInvalidMentalState)
	}

	now := time.Now().UTC()
	result, err := r.db.GetDB().ExecContext(ctx, query,
		player.FirstName,
		player.LastName,
		player.Age,
		player.Gender,
		player.Baseline.String(),
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get player ID: %w", err)
	}

	player.ID = id
	player.CreatedAt = now

	return nil
}

// GetAll retrieves all players
func (r *PlayerRepository) GetAll(ctx context.Context) ([]*domain.Player, error) {
	query := `
		SELECT id, first_name, last_name, age, gender, baseline_mental_health, created_at
		FROM players
		ORDER BY id
	`

	rows, err := r.db.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all players: %w", err)
	}
	defer rows.Close()

	var players []*domain.Player

	for rows.Next() {
		player := &domain.Player{}
		var lastName sql.NullString
		var baseline string

		err := rows.Scan(
			&player.ID,
			&player.FirstName,
			&lastName,
			&player.Age,
			&player.Gender,
			&baseline,
			&player.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}

		if player.Baseline, err = domain.ParseMentalState(baseline); err != nil {
			return nil, fmt.Errorf("player %d: %w", player.ID, err)
		}
		if lastName.Valid {
			player.LastName = lastName.String
		}

		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	return players, nil
}

// DeleteAll removes every player
func (r *PlayerRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.GetDB().ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	return nil
}

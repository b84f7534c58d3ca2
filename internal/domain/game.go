package domain

import (
	"context"
	"time"
)

// Game represents a game in the catalog
type Game struct {
	ID                        int64     `json:"id"`
	Name                      string    `json:"name"`
	Genre                     string    `json:"genre"`
	Type                      string    `json:"type"`
	Difficulty                string    `json:"difficulty"`
	AvgSessionDurationMinutes int       `json:"avg_session_duration_minutes"`
	CreatedAt                 time.Time `json:"created_at"`
}

// GameRepository defines the interface for game storage
type GameRepository interface {
	Create(ctx context.Context, game *Game) error
	GetByID(ctx context.Context, id int64) (*Game, error)
	GetByName(ctx context.Context, name string) (*Game, error)
	GetAll(ctx context.Context) ([]*Game, error)
	DeleteAll(ctx context.Context) error
}

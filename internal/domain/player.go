package domain

import (
	"context"
	"time"
)

// Player represents a study participant
type Player struct {
	ID        int64
	FirstName string
	LastName  string
	Age       int
	Gender    string
	Baseline  MentalState
	CreatedAt time.Time
}

// PlayerRepository defines the interface for player storage
type PlayerRepository interface {
	Create(ctx context.Context, player *Player) error
	GetAll(ctx context.Context) ([]*Player, error)
	DeleteAll(ctx context.Context) error
}

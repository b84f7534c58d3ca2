package domain

import (
	"context"
	"time"
)

// Session represents one recorded gaming session
type Session struct {
	ID              int64
	PlayerID        int64
	GameID          int64
	SessionDate     time.Time
	DurationMinutes int
	MoodAfter       MentalState
	Notes           string
}

// SessionRecord is a session already joined with its player's baseline
type SessionRecord struct {
	Baseline        MentalState
	After           MentalState
	DurationMinutes int
}

// GenreCount is the number of sessions played per game genre
type GenreCount struct {
	Genre string
	Count int
}

// TransitionCount is the number of sessions per (baseline, after) pair
type TransitionCount struct {
	Before MentalState
	After  MentalState
	Count  int
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	ListRecordsByGame(ctx context.Context, gameID int64) ([]SessionRecord, error)
	CountByGenre(ctx context.Context) ([]GenreCount, error)
	CountTransitions(ctx context.Context) ([]TransitionCount, error)
	DeleteAll(ctx context.Context) error
}

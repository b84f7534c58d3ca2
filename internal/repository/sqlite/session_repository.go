package sqlite

import (
	"context"
	"fmt"

	"github.com/glebk/playmood/internal/domain"
)

// SessionRepository implements domain.SessionRepository using SQLite
type SessionRepository struct {
	db *Database
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *Database) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (player_id, game_id, session_date, duration_minutes, mental_health_after, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if !session.MoodAfter.Valid() {
		return fmt.Errorf("failed to create session: %w", domain.ErrInvalidMentalState)
	}

	result, err := r.db.GetDB().ExecContext(ctx, query,
		session.PlayerID,
		session.GameID,
		session.SessionDate.UTC(),
		session.DurationMinutes,
		session.MoodAfter.String(),
		session.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get session ID: %w", err)
	}

	session.ID = id

	return nil
}

// ListRecordsByGame returns the sessions of a game joined with each
// player's baseline, in insertion order. Sessions whose player no longer
// exists are skipped.
func (r *SessionRepository) ListRecordsByGame(ctx context.Context, gameID int64) ([]domain.SessionRecord, error) {
	query := `
		SELECT p.baseline_mental_health, s.mental_health_after, s.duration_minutes
		FROM sessions s
		JOIN players p ON p.id = s.player_id
		WHERE s.game_id = ?
		ORDER BY s.id
	`

	rows, err := r.db.GetDB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session records: %w", err)
	}
	defer rows.Close()

	var records []domain.SessionRecord

	for rows.Next() {
		var baseline, after string
		var record domain.SessionRecord

		if err := rows.Scan(&baseline, &after, &record.DurationMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan session record: %w", err)
		}

		if record.Baseline, err = domain.ParseMentalState(baseline); err != nil {
			return nil, fmt.Errorf("session record baseline: %w", err)
		}
		if record.After, err = domain.ParseMentalState(after); err != nil {
			return nil, fmt.Errorf("session record after: %w", err)
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session records: %w", err)
	}

	return records, nil
}

// CountByGenre returns the number of sessions per game genre, most played
// first
func (r *SessionRepository) CountByGenre(ctx context.Context) ([]domain.GenreCount, error) {
	query := `
		SELECT g.genre, COUNT(*) AS cnt
		FROM sessions s
		JOIN games g ON g.id = s.game_id
		GROUP BY g.genre
		ORDER BY cnt DESC, g.genre
	`

	rows, err := r.db.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions by genre: %w", err)
	}
	defer rows.Close()

	var counts []domain.GenreCount
	for rows.Next() {
		var c domain.GenreCount
		if err := rows.Scan(&c.Genre, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan genre count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// CountTransitions returns the number of sessions per (baseline, after)
// pair across all games, most frequent first
func (r *SessionRepository) CountTransitions(ctx context.Context) ([]domain.TransitionCount, error) {
	query := `
		SELECT p.baseline_mental_health, s.mental_health_after, COUNT(*) AS cnt
		FROM sessions s
		JOIN players p ON p.id = s.player_id
		GROUP BY p.baseline_mental_health, s.mental_health_after
		ORDER BY cnt DESC, p.baseline_mental_health, s.mental_health_after
	`

	rows, err := r.db.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count transitions: %w", err)
	}
	defer rows.Close()

	var counts []domain.TransitionCount
	for rows.Next() {
		var before, after string
		var c domain.TransitionCount
		if err := rows.Scan(&before, &after, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan transition count: %w", err)
		}
		if c.Before, err = domain.ParseMentalState(before); err != nil {
			return nil, err
		}
		if c.After, err = domain.ParseMentalState(after); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// DeleteAll removes every session
func (r *SessionRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.GetDB().ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

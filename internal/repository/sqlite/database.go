package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Database wraps the SQL database connection
type Database struct {
	db *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases and PRAGMAs consistent
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	database := &Database{db: db}

	if err := database.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// GetDB returns the underlying database connection
func (d *Database) GetDB() *sql.DB {
	return d.db
}

// Ping checks that the database is reachable
func (d *Database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Reset drops every table and recreates an empty schema
func (d *Database) Reset(ctx context.Context) error {
	drop := `
	DROP TABLE IF EXISTS sessions;
	DROP TABLE IF EXISTS games;
	DROP TABLE IF EXISTS players;
	`
	if _, err := d.db.ExecContext(ctx, drop); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return d.initSchema(ctx)
}

// initSchema creates the database tables
func (d *Database) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT,
		age INTEGER NOT NULL,
		gender TEXT NOT NULL,
		baseline_mental_health TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS games (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		genre TEXT NOT NULL,
		type TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		avg_session_duration_minutes INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_id INTEGER NOT NULL,
		game_id INTEGER NOT NULL,
		session_date DATETIME NOT NULL,
		duration_minutes INTEGER NOT NULL,
		mental_health_after TEXT NOT NULL,
		notes TEXT,
		FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE,
		FOREIGN KEY (game_id) REFERENCES games(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_players_name ON players(first_name, last_name);
	CREATE INDEX IF NOT EXISTS idx_players_baseline ON players(baseline_mental_health);
	CREATE INDEX IF NOT EXISTS idx_games_genre ON games(genre);
	CREATE INDEX IF NOT EXISTS idx_sessions_player ON sessions(player_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_game ON sessions(game_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(session_date DESC);
	CREATE INDEX IF NOT EXISTS idx_sessions_after ON sessions(mental_health_after);
	`

	_, err := d.db.ExecContext(ctx, schema)
	return err
}

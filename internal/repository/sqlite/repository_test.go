package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glebk/playmood/internal/domain"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "playmood.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestGameRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGameRepository(newTestDB(t))

	tetris := &domain.Game{Name: "Tetris", Genre: "Puzzle", Type: "Singleplayer", Difficulty: "Medium", AvgSessionDurationMinutes: 10}
	chess := &domain.Game{Name: "Chess", Genre: "Strategy", Type: "Multiplayer", Difficulty: "Hard", AvgSessionDurationMinutes: 30}
	require.NoError(t, repo.Create(ctx, tetris))
	require.NoError(t, repo.Create(ctx, chess))
	assert.NotZero(t, tetris.ID)

	// names are unique
	assert.Error(t, repo.Create(ctx, &domain.Game{Name: "Tetris", Genre: "Puzzle", Type: "x", Difficulty: "x"}))

	got, err := repo.GetByName(ctx, "Tetris")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, tetris.ID, got.ID)
	assert.Equal(t, 10, got.AvgSessionDurationMinutes)

	byID, err := repo.GetByID(ctx, chess.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Chess", byID.Name)

	missing, err := repo.GetByName(ctx, "Doom")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Chess", all[0].Name)

	require.NoError(t, repo.DeleteAll(ctx))
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSessionRecordsJoinPlayerBaseline(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	games := NewGameRepository(db)
	players := NewPlayerRepository(db)
	sessions := NewSessionRepository(db)

	game := &domain.Game{Name: "ZenGarden", Genre: "Simulation", Type: "Singleplayer", Difficulty: "Easy", AvgSessionDurationMinutes: 25}
	other := &domain.Game{Name: "Free Fire", Genre: "Action", Type: "Multiplayer", Difficulty: "Medium", AvgSessionDurationMinutes: 20}
	require.NoError(t, games.Create(ctx, game))
	require.NoError(t, games.Create(ctx, other))

	stressed := &domain.Player{FirstName: "Asha", LastName: "Rao", Age: 30, Gender: "Female", Baseline: domain.StateStressed}
	neutral := &domain.Player{FirstName: "Vikram", Age: 41, Gender: "Male", Baseline: domain.StateNeutral}
	require.NoError(t, players.Create(ctx, stressed))
	require.NoError(t, players.Create(ctx, neutral))

	now := time.Now()
	for _, s := range []*domain.Session{
		{PlayerID: stressed.ID, GameID: game.ID, SessionDate: now, DurationMinutes: 30, MoodAfter: domain.StateRelaxed},
		{PlayerID: neutral.ID, GameID: game.ID, SessionDate: now, DurationMinutes: 20, MoodAfter: domain.StateNeutral},
		{PlayerID: neutral.ID, GameID: other.ID, SessionDate: now, DurationMinutes: 15, MoodAfter: domain.StateStressed},
	} {
		require.NoError(t, sessions.Create(ctx, s))
	}

	records, err := sessions.ListRecordsByGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.SessionRecord{
		{Baseline: domain.StateStressed, After: domain.StateRelaxed, DurationMinutes: 30},
		{Baseline: domain.StateNeutral, After: domain.StateNeutral, DurationMinutes: 20},
	}, records)

	genres, err := sessions.CountByGenre(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.GenreCount{{Genre: "Simulation", Count: 2}, {Genre: "Action", Count: 1}}, genres)

	transitions, err := sessions.CountTransitions(ctx)
	require.NoError(t, err)
	assert.Len(t, transitions, 3)

	allPlayers, err := players.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, allPlayers, 2)
	assert.Equal(t, domain.StateStressed, allPlayers[0].Baseline)
}

func TestListRecordsRejectsUnknownState(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	games := NewGameRepository(db)
	players := NewPlayerRepository(db)

	game := &domain.Game{Name: "Wordle", Genre: "Puzzle", Type: "Singleplayer", Difficulty: "Medium", AvgSessionDurationMinutes: 5}
	require.NoError(t, games.Create(ctx, game))
	player := &domain.Player{FirstName: "Meera", Age: 22, Gender: "Female", Baseline: domain.StateExcited}
	require.NoError(t, players.Create(ctx, player))

	_, err := db.GetDB().ExecContext(ctx,
		`INSERT INTO sessions (player_id, game_id, session_date, duration_minutes, mental_health_after) VALUES (?, ?, ?, ?, ?)`,
		player.ID, game.ID, time.Now().UTC(), 5, "Sleepy")
	require.NoError(t, err)

	_, err = NewSessionRepository(db).ListRecordsByGame(ctx, game.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidMentalState)
}

func TestCreateRejectsInvalidState(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	err := NewPlayerRepository(db).Create(ctx, &domain.Player{FirstName: "X", Age: 20, Gender: "Male"})
	assert.ErrorIs(t, err, domain.ErrInvalidMentalState)

	err = NewSessionRepository(db).Create(ctx, &domain.Session{PlayerID: 1, GameID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidMentalState)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	games := NewGameRepository(db)

	require.NoError(t, games.Create(ctx, &domain.Game{Name: "Ludo King", Genre: "Board", Type: "Multiplayer", Difficulty: "Easy", AvgSessionDurationMinutes: 20}))
	require.NoError(t, db.Reset(ctx))

	all, err := games.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestSeedThenAnalyze(t *testing.T) {
	t.Setenv("USE_MOCK_LLM", "true")
	dbPath := filepath.Join(t.TempDir(), "playmood.db")

	execute(t, "--db", dbPath, "--log-level", "error", "setup")

	out := execute(t, "--db", dbPath, "--log-level", "error", "seed", "--players", "4", "--sessions", "3", "--seed", "11")
	assert.Contains(t, out, "Generated 4 players, 25 games, 12 gaming sessions")

	out = execute(t, "--db", dbPath, "--log-level", "error", "games")
	names := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, names, 25)
	assert.Contains(t, names, "Minecraft")

	out = execute(t, "--db", dbPath, "--log-level", "error", "analyze", "Minecraft")
	assert.Contains(t, out, `"game_name": "Minecraft"`)
	assert.Contains(t, out, `"mental_health_impact"`)
}

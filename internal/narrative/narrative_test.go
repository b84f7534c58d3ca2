package narrative

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/glebk/playmood/internal/domain"
	"github.com/glebk/playmood/internal/impact"
	"github.com/glebk/playmood/internal/llm"
	"github.com/glebk/playmood/internal/observability"
)

var testGame = &domain.Game{
	ID:                        1,
	Name:                      "Stardew Valley",
	Genre:                     "Simulation",
	Type:                      "Single-player",
	Difficulty:                "Easy",
	AvgSessionDurationMinutes: 45,
}

// three positive and one negative session averaging 30 minutes
func testReport(t *testing.T) *impact.Report {
	t.Helper()
	records := []domain.SessionRecord{
		{Baseline: domain.StateStressed, After: domain.StateRelaxed, DurationMinutes: 20},
		{Baseline: domain.StateStressed, After: domain.StateRelaxed, DurationMinutes: 30},
		{Baseline: domain.StateAnxious, After: domain.StateNeutral, DurationMinutes: 30},
		{Baseline: domain.StateRelaxed, After: domain.StateStressed, DurationMinutes: 40},
	}
	report, err := impact.NewReport(testGame, records)
	require.NoError(t, err)
	return report
}

func newMetrics(t *testing.T) (*observability.Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	return m, reg
}

func TestGenerateFromModel(t *testing.T) {
	mock := llm.NewMock("```json\n{\"summary\": \"Very calming.\", \"recommendations\": [\"Play at night\", \" \", \"Stretch\"]}\n```")
	g := New(mock, nil, zaptest.NewLogger(t))

	n, err := g.Generate(context.Background(), testReport(t))
	require.NoError(t, err)
	assert.Equal(t, "Very calming.", n.Summary)
	assert.Equal(t, []string{"Play at night", "Stretch"}, n.Recommendations)
	assert.False(t, n.Fallback)

	prompts := mock.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "- Name: Stardew Valley")
	assert.Contains(t, prompts[0], "- Total Sessions: 4")
	assert.Contains(t, prompts[0], "- Actual Average Duration: 30 minutes")
	assert.Contains(t, prompts[0], "\"Stressed -> Relaxed\": 2")
}

func TestGenerateFallback(t *testing.T) {
	want := &domain.Narrative{
		Summary: "Analysis of Stardew Valley shows that it has a 75% positive impact on mental health based on 4 recorded sessions.",
		Recommendations: []string{
			"Keep sessions under 36 minutes to avoid fatigue",
			"Take regular breaks to stretch and rest your eyes",
			"Play in a well-lit room to reduce eye strain",
			"Set clear time limits before starting play sessions",
			"Consider playing with friends for a more enjoyable experience",
		},
		Fallback: true,
	}

	cases := map[string]struct {
		client llm.Client
		reason string
	}{
		"no client":     {client: nil, reason: reasonNoClient},
		"model error":   {client: llm.NewMock(), reason: reasonLLMError},
		"not json":      {client: llm.NewMock("I am not able to answer."), reason: reasonInvalidJSON},
		"empty summary": {client: llm.NewMock(`{"summary": "  ", "recommendations": ["x"]}`), reason: reasonEmptySummary},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			metrics, _ := newMetrics(t)
			g := New(tc.client, metrics, zaptest.NewLogger(t))

			n, err := g.Generate(context.Background(), testReport(t))
			require.NoError(t, err)
			assert.Equal(t, want, n)
		})
	}
}

func TestGenerateMissingRecommendations(t *testing.T) {
	g := New(llm.NewMock(`{"summary": "Fine."}`), nil, nil)

	n, err := g.Generate(context.Background(), testReport(t))
	require.NoError(t, err)
	assert.Equal(t, "Fine.", n.Summary)
	assert.Equal(t, fallbackRecommendations(30), n.Recommendations)
}

func TestGenerateNoData(t *testing.T) {
	mock := llm.NewMock("unused")
	g := New(mock, nil, nil)

	report, err := impact.NewReport(testGame, nil)
	require.NoError(t, err)

	n, err := g.Generate(context.Background(), report)
	require.NoError(t, err)
	assert.Equal(t, "Insufficient data available for Stardew Valley. No sessions have been recorded yet.", n.Summary)
	assert.Equal(t, []string{"Try playing this game and recording sessions to get an analysis."}, n.Recommendations)
	assert.Empty(t, mock.Prompts())
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(llm.NewMock("x"), nil, nil).Generate(ctx, testReport(t))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFallbackMetric(t *testing.T) {
	metrics, reg := newMetrics(t)
	g := New(llm.NewMock(), metrics, nil)

	_, err := g.Generate(context.Background(), testReport(t))
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "playmood_narrative_fallbacks_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

type countingNarrator struct {
	calls int
	next  Narrator
}

func (c *countingNarrator) Generate(ctx context.Context, r *impact.Report) (*domain.Narrative, error) {
	c.calls++
	return c.next.Generate(ctx, r)
}

func TestCachedReusesNarrative(t *testing.T) {
	inner := &countingNarrator{next: New(llm.NewMock(`{"summary": "A", "recommendations": ["r"]}`), nil, nil)}
	cached, err := NewCached(inner, 4, time.Minute, nil)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := cached.Generate(ctx, testReport(t))
	require.NoError(t, err)
	second, err := cached.Generate(ctx, testReport(t))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1, cached.Len())
}

func TestCachedExpires(t *testing.T) {
	inner := &countingNarrator{next: New(llm.NewMock(
		`{"summary": "A", "recommendations": ["r"]}`,
		`{"summary": "B", "recommendations": ["r"]}`,
	), nil, nil)}
	cached, err := NewCached(inner, 4, time.Minute, nil)
	require.NoError(t, err)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cached.now = func() time.Time { return now }

	ctx := context.Background()
	_, err = cached.Generate(ctx, testReport(t))
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	n, err := cached.Generate(ctx, testReport(t))
	require.NoError(t, err)
	assert.Equal(t, "B", n.Summary)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedSkipsFallbackAndNoData(t *testing.T) {
	inner := &countingNarrator{next: New(nil, nil, nil)}
	cached, err := NewCached(inner, 4, 0, nil)
	require.NoError(t, err)

	ctx := context.Background()
	noData, err := impact.NewReport(testGame, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = cached.Generate(ctx, testReport(t))
		require.NoError(t, err)
		_, err = cached.Generate(ctx, noData)
		require.NoError(t, err)
	}

	assert.Equal(t, 4, inner.calls)
	assert.Equal(t, 0, cached.Len())
}

// Package narrative turns computed game statistics into a summary and
// player recommendations, through a text generation service when one is
// available and through a fixed template otherwise.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/glebk/playmood/internal/domain"
	"github.com/glebk/playmood/internal/impact"
	"github.com/glebk/playmood/internal/llm"
	"github.com/glebk/playmood/internal/observability"
)

// Fallback reasons reported to metrics
const (
	reasonNoClient     = "no_client"
	reasonLLMError     = "llm_error"
	reasonInvalidJSON  = "invalid_json"
	reasonEmptySummary = "empty_summary"
)

// Narrator produces the narrative for an analysis report
type Narrator interface {
	Generate(ctx context.Context, report *impact.Report) (*domain.Narrative, error)
}

// Generator builds narratives with an llm.Client
type Generator struct {
	client  llm.Client
	metrics *observability.Metrics
	logger  *zap.Logger
}

// New creates a Generator. A nil client always yields the fallback narrative.
func New(client llm.Client, metrics *observability.Metrics, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		client:  client,
		metrics: metrics,
		logger:  logger.Named("narrative"),
	}
}

type modelAnswer struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

// Generate produces the narrative for report. Failures of the text
// generation service never surface; they degrade to the fallback narrative.
func (g *Generator) Generate(ctx context.Context, report *impact.Report) (*domain.Narrative, error) {
	if report == nil || report.Game == nil {
		return nil, fmt.Errorf("report without game")
	}
	if report.NoData || report.Stats == nil {
		return noDataNarrative(report.Game.Name), nil
	}

	if g.client == nil {
		return g.fallback(report, reasonNoClient, nil), nil
	}

	text, err := g.client.Complete(ctx, BuildPrompt(report))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return g.fallback(report, reasonLLMError, err), nil
	}

	var answer modelAnswer
	if err := llm.DecodeJSON(text, &answer); err != nil {
		return g.fallback(report, reasonInvalidJSON, err), nil
	}

	summary := strings.TrimSpace(answer.Summary)
	if summary == "" {
		return g.fallback(report, reasonEmptySummary, errors.New("model returned an empty summary")), nil
	}

	recs := cleanRecommendations(answer.Recommendations)
	if len(recs) == 0 {
		recs = fallbackRecommendations(report.Stats.Sessions.AvgDuration)
	}

	return &domain.Narrative{Summary: summary, Recommendations: recs}, nil
}

func (g *Generator) fallback(report *impact.Report, reason string, cause error) *domain.Narrative {
	g.logger.Warn("using fallback narrative",
		zap.String("game", report.Game.Name),
		zap.String("reason", reason),
		zap.Error(cause),
	)
	g.metrics.RecordFallback(reason)

	stats := report.Stats
	return &domain.Narrative{
		Summary: fmt.Sprintf(
			"Analysis of %s shows that it has a %d%% positive impact on mental health based on %d recorded sessions.",
			report.Game.Name,
			int(math.RoundToEven(stats.Impact.Percentages.Positive)),
			stats.Sessions.Total,
		),
		Recommendations: fallbackRecommendations(stats.Sessions.AvgDuration),
		Fallback:        true,
	}
}

func noDataNarrative(name string) *domain.Narrative {
	return &domain.Narrative{
		Summary:         fmt.Sprintf("Insufficient data available for %s. No sessions have been recorded yet.", name),
		Recommendations: []string{"Try playing this game and recording sessions to get an analysis."},
	}
}

func fallbackRecommendations(avgDuration float64) []string {
	return []string{
		fmt.Sprintf("Keep sessions under %d minutes to avoid fatigue", int(avgDuration*1.2)),
		"Take regular breaks to stretch and rest your eyes",
		"Play in a well-lit room to reduce eye strain",
		"Set clear time limits before starting play sessions",
		"Consider playing with friends for a more enjoyable experience",
	}
}

func cleanRecommendations(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebk/playmood/internal/domain"
	"github.com/glebk/playmood/internal/llm"
)

// Outcome is the predicted end of one session
type Outcome struct {
	After domain.MentalState
	Notes string
	// FromModel is set when the text generation service produced the outcome
	FromModel bool
}

// PredictHeuristic picks the after-state from the heuristic table. Long
// sessions (over 1.5x the game's average) take the primary state, short
// ones (under 0.5x) keep the baseline, and the rest draw primary,
// secondary or baseline with weights 0.5, 0.3 and 0.2 using roll in [0,1).
func PredictHeuristic(c *Catalog, baseline domain.MentalState, game *domain.Game, duration int, roll float64) domain.MentalState {
	o := c.Outcomes(baseline, game.Genre)
	avg := float64(game.AvgSessionDurationMinutes)

	switch {
	case float64(duration) > avg*1.5:
		return o.Primary
	case float64(duration) < avg*0.5:
		return baseline
	case roll < 0.5:
		return o.Primary
	case roll < 0.8:
		return o.Secondary
	default:
		return baseline
	}
}

type modelOutcome struct {
	MentalHealthAfter string `json:"mental_health_after"`
	Notes             string `json:"notes"`
}

func predictWithModel(ctx context.Context, client llm.Client, baseline domain.MentalState, game *domain.Game, duration int) (*Outcome, error) {
	text, err := client.Complete(ctx, outcomePrompt(baseline, game, duration))
	if err != nil {
		return nil, err
	}

	var answer modelOutcome
	if err := llm.DecodeJSON(text, &answer); err != nil {
		return nil, err
	}

	after, err := domain.ParseMentalState(strings.TrimSpace(answer.MentalHealthAfter))
	if err != nil {
		return nil, err
	}
	notes := strings.TrimSpace(answer.Notes)
	if notes == "" {
		return nil, fmt.Errorf("model returned no notes")
	}

	return &Outcome{After: after, Notes: notes, FromModel: true}, nil
}

func outcomePrompt(baseline domain.MentalState, game *domain.Game, duration int) string {
	return fmt.Sprintf(`I need to analyze the effects of different game genres on mental health. Based on research and psychological principles:

1. For a person with baseline mental health: "%s"
2. Who played a %s game called "%s" (difficulty: %s) for %d minutes

What would be their likely mental health state after the session? Choose EXACTLY ONE from: Stressed, Neutral, Relaxed, Excited, Anxious

Also provide a short note about why this change might have occurred (or why their state remained the same).

IMPORTANT: Give your answer ONLY as a valid JSON object with this exact structure, with no markdown formatting, backticks, or additional text:
{
    "mental_health_after": "STATE",
    "notes": "BRIEF EXPLANATION"
}
`, baseline, game.Genre, game.Name, game.Difficulty, duration)
}

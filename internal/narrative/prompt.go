package narrative

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/glebk/playmood/internal/impact"
)

// BuildPrompt renders the analysis request for a report with data
func BuildPrompt(report *impact.Report) string {
	game := report.Game
	stats := report.Stats

	var b strings.Builder
	b.WriteString("You are a data scientist specializing in human-computer interaction and mental health.\n")
	b.WriteString("Analyze the following gaming and mental health statistics to provide insights on how this specific game affects mental wellbeing.\n\n")

	b.WriteString("GAME INFORMATION:\n")
	fmt.Fprintf(&b, "- Name: %s\n", game.Name)
	fmt.Fprintf(&b, "- Genre: %s\n", game.Genre)
	fmt.Fprintf(&b, "- Type: %s\n", game.Type)
	fmt.Fprintf(&b, "- Difficulty: %s\n", game.Difficulty)
	fmt.Fprintf(&b, "- Average Session Duration (design): %d minutes\n\n", game.AvgSessionDurationMinutes)

	b.WriteString("SESSION DATA:\n")
	fmt.Fprintf(&b, "- Total Sessions: %d\n", stats.Sessions.Total)
	fmt.Fprintf(&b, "- Actual Average Duration: %s minutes\n\n", round2(stats.Sessions.AvgDuration))

	p := stats.Impact.Percentages
	b.WriteString("MENTAL HEALTH IMPACT:\n")
	fmt.Fprintf(&b, "- Positive Impact: %s%%\n", round2(p.Positive))
	fmt.Fprintf(&b, "- Negative Impact: %s%%\n", round2(p.Negative))
	fmt.Fprintf(&b, "- Neutral Impact: %s%%\n\n", round2(p.Neutral))

	b.WriteString("MENTAL HEALTH TRANSITIONS:\n")
	b.WriteString(transitionsJSON(stats.Transitions))
	b.WriteString("\n\n")

	b.WriteString(`Please provide:

1. SUMMARY: A concise analysis of how this game affects mental health based on the data.

2. KEY FINDINGS:
   - What mental health states benefit most from playing this game?
   - What mental health states might be negatively affected by this game?
   - How does session duration appear to affect outcomes?

3. RECOMMENDATIONS: Provide 3-5 specific recommendations for players on:
   - How to maximize positive mental health benefits from this game
   - How to avoid potential negative effects
   - Optimal session duration
   - Best time of day to play (if relevant based on game type)
   - Any specific practices to follow while playing

Provide your answer in JSON format with the following structure:
{
  "summary": "Your comprehensive analysis summary here",
  "recommendations": ["Recommendation 1", "Recommendation 2", "..."]
}
`)
	return b.String()
}

// transitionsJSON keeps first-encounter order, which encoding/json would
// sort away for a map.
func transitionsJSON(entries []impact.TransitionCount) string {
	if len(entries) == 0 {
		return "{}"
	}

	var b strings.Builder
	b.WriteString("{\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "  %s: %d", strconv.Quote(e.Transition.String()), e.Count)
		if i < len(entries)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return b.String()
}

func round2(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

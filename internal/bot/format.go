package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/glebk/playmood/internal/impact"
	"github.com/glebk/playmood/internal/service"
)

const barWidth = 10

// FormatAnalysis renders an analysis as a Telegram Markdown message
func FormatAnalysis(a *service.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🎮 *%s*\n\n", escape(a.GameName))
	b.WriteString(escape(a.Summary))
	b.WriteString("\n")

	if !a.NoData {
		p := a.MentalHealthImpact
		b.WriteString("\n*Mental health impact*\n")
		fmt.Fprintf(&b, "🟢 Positive: %.1f%%\n", p.Positive)
		fmt.Fprintf(&b, "🔴 Negative: %.1f%%\n", p.Negative)
		fmt.Fprintf(&b, "⚪ Neutral: %.1f%%\n", p.Neutral)

		if chart, ok := findChart(a.Charts, impact.ChartBar); ok && len(chart.Data.Labels) > 0 {
			b.WriteString("\n*Common transitions*\n")
			b.WriteString(textBars(chart.Data))
		}
	}

	if len(a.Recommendations) > 0 {
		b.WriteString("\n*Recommendations*\n")
		for i, r := range a.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, escape(r))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func findChart(charts []impact.Chart, kind impact.ChartType) (impact.Chart, bool) {
	for _, c := range charts {
		if c.ChartType == kind {
			return c, true
		}
	}
	return impact.Chart{}, false
}

// textBars draws one bar per label scaled to the largest value
func textBars(data impact.ChartData) string {
	var top float64
	for _, v := range data.Values {
		if v > top {
			top = v
		}
	}

	var b strings.Builder
	for i, label := range data.Labels {
		if i >= len(data.Values) {
			break
		}
		v := data.Values[i]
		width := 1
		if top > 0 {
			width = int(v / top * barWidth)
			if width < 1 {
				width = 1
			}
		}
		fmt.Fprintf(&b, "`%s` %s %g\n", label, strings.Repeat("█", width), v)
	}
	return b.String()
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

package impact

import "sort"

const (
	ImpactChartTitle     = "Mental Health Impact"
	TransitionChartTitle = "Common Mental Health Transitions"

	// TopTransitions caps the transition bar chart
	TopTransitions = 8
)

// ChartType names how a chart should be drawn
type ChartType string

const (
	ChartPie ChartType = "pie"
	ChartBar ChartType = "bar"
)

// Chart is a chart-ready aggregate
type Chart struct {
	Title     string    `json:"title"`
	ChartType ChartType `json:"chart_type"`
	Data      ChartData `json:"data"`
}

// ChartData holds parallel label and value series
type ChartData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// ImpactChart builds the pie of normalized percentages in the fixed
// Positive, Negative, Neutral order.
func ImpactChart(p Percentages) Chart {
	return Chart{
		Title:     ImpactChartTitle,
		ChartType: ChartPie,
		Data: ChartData{
			Labels: []string{BucketPositive.String(), BucketNegative.String(), BucketNeutral.String()},
			Values: []float64{p.Positive, p.Negative, p.Neutral},
		},
	}
}

// TransitionChart builds the bar of the most frequent transitions. Entries
// with equal counts keep their original order.
func TransitionChart(entries []TransitionCount) Chart {
	sorted := make([]TransitionCount, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if len(sorted) > TopTransitions {
		sorted = sorted[:TopTransitions]
	}

	data := ChartData{
		Labels: make([]string, 0, len(sorted)),
		Values: make([]float64, 0, len(sorted)),
	}
	for _, e := range sorted {
		data.Labels = append(data.Labels, e.Transition.String())
		data.Values = append(data.Values, float64(e.Count))
	}

	return Chart{
		Title:     TransitionChartTitle,
		ChartType: ChartBar,
		Data:      data,
	}
}

// BuildCharts returns the impact pie and, when any transition was seen, the
// transition bar.
func BuildCharts(s *Statistics) []Chart {
	charts := []Chart{ImpactChart(s.Impact.Percentages)}
	if len(s.Transitions) > 0 {
		charts = append(charts, TransitionChart(s.Transitions))
	}
	return charts
}

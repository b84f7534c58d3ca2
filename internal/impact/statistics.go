package impact

import "github.com/glebk/playmood/internal/domain"

// SessionSummary describes the sessions behind a statistics object
type SessionSummary struct {
	Total       int
	AvgDuration float64
}

// Impact combines raw bucket counts with their normalized percentages
type Impact struct {
	Counts      Counts
	Percentages Percentages
}

// Statistics is the outcome of analyzing a game's sessions
type Statistics struct {
	Sessions    SessionSummary
	Transitions []TransitionCount
	Impact      Impact
}

// Report is what the narrative generator receives for one game. Stats is
// nil when the game has no recorded sessions.
type Report struct {
	Game   *domain.Game
	NoData bool
	Stats  *Statistics
}

// NewReport analyzes records for game. No records yields a NoData report.
func NewReport(game *domain.Game, records []domain.SessionRecord) (*Report, error) {
	if len(records) == 0 {
		return &Report{Game: game, NoData: true}, nil
	}

	stats, err := Compute(records)
	if err != nil {
		return nil, err
	}
	return &Report{Game: game, Stats: stats}, nil
}

// Compute runs the full pipeline over already joined session records.
func Compute(records []domain.SessionRecord) (*Statistics, error) {
	tally := NewTally()
	durations := make([]int, 0, len(records))

	for _, r := range records {
		if err := tally.Add(Transition{Before: r.Baseline, After: r.After}, 1); err != nil {
			return nil, err
		}
		durations = append(durations, r.DurationMinutes)
	}

	entries := tally.Entries()
	counts, err := Aggregate(entries)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		Sessions: SessionSummary{
			Total:       counts.Total,
			AvgDuration: AverageDuration(durations),
		},
		Transitions: entries,
		Impact: Impact{
			Counts:      counts,
			Percentages: Normalize(counts),
		},
	}, nil
}

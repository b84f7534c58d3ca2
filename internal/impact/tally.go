package impact

import (
	"fmt"

	"github.com/glebk/playmood/internal/domain"
)

// TransitionCount is a transition with the number of sessions that made it
type TransitionCount struct {
	Transition
	Count int
}

// Tally counts transitions while keeping first-encounter order.
// A Tally is not safe for concurrent use; build one per request.
type Tally struct {
	index   map[Transition]int
	entries []TransitionCount
}

// NewTally creates an empty Tally
func NewTally() *Tally {
	return &Tally{index: make(map[Transition]int)}
}

// Add records n occurrences of t
func (t *Tally) Add(tr Transition, n int) error {
	if !tr.Valid() {
		return fmt.Errorf("%w: %d -> %d", domain.ErrInvalidMentalState, uint8(tr.Before), uint8(tr.After))
	}
	if n < 1 {
		return fmt.Errorf("transition %s: count must be at least 1, got %d", tr, n)
	}

	if i, ok := t.index[tr]; ok {
		t.entries[i].Count += n
		return nil
	}
	t.index[tr] = len(t.entries)
	t.entries = append(t.entries, TransitionCount{Transition: tr, Count: n})
	return nil
}

// Entries returns a copy of the counted transitions in first-encounter order
func (t *Tally) Entries() []TransitionCount {
	out := make([]TransitionCount, len(t.entries))
	copy(out, t.entries)
	return out
}

// Total is the sum of all counts
func (t *Tally) Total() int {
	total := 0
	for _, e := range t.entries {
		total += e.Count
	}
	return total
}

// Package impact classifies mental-health transitions and turns them into
// normalized impact statistics and chart aggregates.
//
// Everything in this package is pure: it works on in-memory data, holds no
// external handles and keeps no state between calls.
package impact

import (
	"fmt"

	"github.com/glebk/playmood/internal/domain"
)

// Bucket is the impact class of a transition
type Bucket uint8

const (
	BucketPositive Bucket = iota + 1
	BucketNegative
	BucketNeutral
)

func (b Bucket) String() string {
	switch b {
	case BucketPositive:
		return "Positive"
	case BucketNegative:
		return "Negative"
	case BucketNeutral:
		return "Neutral"
	default:
		return fmt.Sprintf("Bucket(%d)", uint8(b))
	}
}

// Transition is the (before, after) pair bracketing one session
type Transition struct {
	Before domain.MentalState
	After  domain.MentalState
}

// Valid reports whether both ends of the transition are known states
func (t Transition) Valid() bool {
	return t.Before.Valid() && t.After.Valid()
}

func (t Transition) String() string {
	return t.Before.String() + " -> " + t.After.String()
}

type stateSet map[domain.MentalState]bool

func setOf(states ...domain.MentalState) stateSet {
	s := make(stateSet, len(states))
	for _, st := range states {
		s[st] = true
	}
	return s
}

type rule struct {
	before stateSet
	after  stateSet
	bucket Bucket
}

// rules are evaluated in order, first match wins. Pairs no rule matches are
// neutral.
var rules = []rule{
	{setOf(domain.StateStressed, domain.StateAnxious), setOf(domain.StateRelaxed, domain.StateNeutral, domain.StateExcited), BucketPositive},
	{setOf(domain.StateNeutral), setOf(domain.StateRelaxed, domain.StateExcited), BucketPositive},
	{setOf(domain.StateRelaxed, domain.StateExcited), setOf(domain.StateRelaxed, domain.StateExcited), BucketPositive},
	{setOf(domain.StateRelaxed, domain.StateExcited, domain.StateNeutral), setOf(domain.StateStressed, domain.StateAnxious), BucketNegative},
	{setOf(domain.StateStressed, domain.StateAnxious), setOf(domain.StateStressed, domain.StateAnxious), BucketNegative},
}

// classification is the rule table flattened into a lookup keyed by pair.
var classification = buildClassification()

func buildClassification() map[Transition]Bucket {
	table := make(map[Transition]Bucket, len(domain.MentalStates)*len(domain.MentalStates))
	for _, before := range domain.MentalStates {
		for _, after := range domain.MentalStates {
			bucket := BucketNeutral
			for _, r := range rules {
				if r.before[before] && r.after[after] {
					bucket = r.bucket
					break
				}
			}
			table[Transition{Before: before, After: after}] = bucket
		}
	}
	return table
}

// Classify returns the impact bucket for a transition. Transitions that
// reference an unknown state are rejected.
func Classify(t Transition) (Bucket, error) {
	bucket, ok := classification[t]
	if !ok {
		return 0, fmt.Errorf("%w: %d -> %d", domain.ErrInvalidMentalState, uint8(t.Before), uint8(t.After))
	}
	return bucket, nil
}

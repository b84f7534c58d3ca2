package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glebk/playmood/internal/domain"
)

func TestClassifyAllPairs(t *testing.T) {
	const (
		P = BucketPositive
		N = BucketNegative
		Z = BucketNeutral
	)
	// rows: before, columns: after, both in domain.MentalStates order
	// (Stressed, Neutral, Relaxed, Excited, Anxious)
	want := [5][5]Bucket{
		{N, P, P, P, N},
		{N, Z, P, P, N},
		{N, Z, P, P, N},
		{N, Z, P, P, N},
		{N, P, P, P, N},
	}

	for i, before := range domain.MentalStates {
		for j, after := range domain.MentalStates {
			tr := Transition{Before: before, After: after}
			got, err := Classify(tr)
			require.NoError(t, err, tr.String())
			assert.Equal(t, want[i][j], got, tr.String())
		}
	}
}

func TestClassifyNeutralFallbackPairs(t *testing.T) {
	var neutral []string
	for _, before := range domain.MentalStates {
		for _, after := range domain.MentalStates {
			tr := Transition{Before: before, After: after}
			b, err := Classify(tr)
			require.NoError(t, err)
			if b == BucketNeutral {
				neutral = append(neutral, tr.String())
			}
		}
	}

	assert.Equal(t, []string{
		"Neutral -> Neutral",
		"Relaxed -> Neutral",
		"Excited -> Neutral",
	}, neutral)
}

func TestClassifyIsDeterministic(t *testing.T) {
	tr := Transition{Before: domain.StateAnxious, After: domain.StateRelaxed}
	first, err := Classify(tr)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, err := Classify(tr)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestClassifyRejectsInvalidState(t *testing.T) {
	cases := []Transition{
		{Before: 0, After: domain.StateRelaxed},
		{Before: domain.StateRelaxed, After: 0},
		{Before: domain.MentalState(42), After: domain.StateStressed},
	}
	for _, tr := range cases {
		_, err := Classify(tr)
		assert.ErrorIs(t, err, domain.ErrInvalidMentalState)
	}
}

func TestTransitionString(t *testing.T) {
	tr := Transition{Before: domain.StateStressed, After: domain.StateRelaxed}
	assert.Equal(t, "Stressed -> Relaxed", tr.String())
}

package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-6

func TestNormalizeSumsToHundred(t *testing.T) {
	cases := []Counts{
		{Positive: 7, Negative: 3, Neutral: 0, Total: 10},
		{Positive: 10, Negative: 0, Neutral: 0, Total: 10},
		{Positive: 0, Negative: 0, Neutral: 3, Total: 3},
		{Positive: 1, Negative: 1, Neutral: 1, Total: 3},
		{Positive: 50, Negative: 1, Neutral: 49, Total: 100},
		{Positive: 0, Negative: 9, Neutral: 0, Total: 9},
	}
	for _, c := range cases {
		p := Normalize(c)
		assert.InDelta(t, 100.0, p.Sum(), tolerance, "%+v", c)
		assert.Greater(t, p.Positive, 0.0)
		assert.Greater(t, p.Negative, 0.0)
		assert.Greater(t, p.Neutral, 0.0)
	}
}

func TestNormalizeUntouchedWhenNoFloorApplies(t *testing.T) {
	p := Normalize(Counts{Positive: 6, Negative: 2, Neutral: 2, Total: 10})
	assert.InDelta(t, 60.0, p.Positive, tolerance)
	assert.InDelta(t, 20.0, p.Negative, tolerance)
	assert.InDelta(t, 20.0, p.Neutral, tolerance)
}

func TestApplyFloors(t *testing.T) {
	p := applyFloors(rawPercentages(Counts{Positive: 99, Negative: 1, Neutral: 0, Total: 100}))
	assert.InDelta(t, 99.0, p.Positive, tolerance)
	assert.Equal(t, MinNegativePercentage, p.Negative)
	assert.Equal(t, MinBucketPercentage, p.Neutral)

	// the negative floor applies even when negative is already above zero
	p = applyFloors(Percentages{Positive: 96, Negative: 4, Neutral: 0})
	assert.Equal(t, MinNegativePercentage, p.Negative)
}

func TestNormalizeNegativeFloorBeforeRescale(t *testing.T) {
	// Worst case for the negative share: every session positive.
	// Floors give {100, 5, 0.1}, rescaling pulls negative to 5*100/105.1.
	p := Normalize(Counts{Positive: 10, Total: 10})
	assert.InDelta(t, 5*100/105.1, p.Negative, tolerance)

	for pos := 0; pos <= 20; pos++ {
		for neu := 0; pos+neu <= 20; neu++ {
			c := Counts{Positive: pos, Neutral: neu, Negative: 20 - pos - neu, Total: 20}
			got := Normalize(c)
			assert.GreaterOrEqual(t, got.Negative, 5*100/105.1-tolerance, "%+v", c)
		}
	}
}

func TestNormalizeZeroSessions(t *testing.T) {
	p := Normalize(Counts{})

	sum := MinBucketPercentage + MinNegativePercentage + MinBucketPercentage
	assert.InDelta(t, MinBucketPercentage*100/sum, p.Positive, tolerance)
	assert.InDelta(t, MinNegativePercentage*100/sum, p.Negative, tolerance)
	assert.InDelta(t, MinBucketPercentage*100/sum, p.Neutral, tolerance)
	assert.InDelta(t, 100.0, p.Sum(), tolerance)
	assert.Equal(t, 0.0, AverageDuration(nil))
}

package impact

const (
	// MinBucketPercentage replaces a zero positive or neutral share
	MinBucketPercentage = 0.1
	// MinNegativePercentage is the lowest negative share shown before rescaling
	MinNegativePercentage = 5.0
)

// Percentages holds the share of sessions per impact bucket
type Percentages struct {
	Positive float64
	Negative float64
	Neutral  float64
}

// Sum returns Positive + Negative + Neutral
func (p Percentages) Sum() float64 {
	return p.Positive + p.Negative + p.Neutral
}

// Normalize converts bucket counts to display percentages.
//
// Zero positive and neutral shares are raised to MinBucketPercentage and the
// negative share is raised to at least MinNegativePercentage, so no chart
// segment is ever empty. When the floors move the sum away from 100 all three
// values are rescaled by the same factor. This is a presentation rule and
// distorts the true proportions for small buckets.
func Normalize(c Counts) Percentages {
	p := applyFloors(rawPercentages(c))

	if sum := p.Sum(); sum != 100 && sum > 0 {
		scale := 100 / sum
		p.Positive *= scale
		p.Negative *= scale
		p.Neutral *= scale
	}
	return p
}

func rawPercentages(c Counts) Percentages {
	if c.Total == 0 {
		return Percentages{}
	}
	total := float64(c.Total)
	return Percentages{
		Positive: float64(c.Positive) / total * 100,
		Negative: float64(c.Negative) / total * 100,
		Neutral:  float64(c.Neutral) / total * 100,
	}
}

func applyFloors(p Percentages) Percentages {
	if p.Positive == 0 {
		p.Positive = MinBucketPercentage
	}
	if p.Negative < MinNegativePercentage {
		p.Negative = MinNegativePercentage
	}
	if p.Neutral == 0 {
		p.Neutral = MinBucketPercentage
	}
	return p
}

package impact

// Counts holds the number of sessions per impact bucket
type Counts struct {
	Positive int
	Negative int
	Neutral  int
	Total    int
}

// Aggregate buckets every transition count. Total is the sum of all counts.
func Aggregate(entries []TransitionCount) (Counts, error) {
	var c Counts
	for _, e := range entries {
		bucket, err := Classify(e.Transition)
		if err != nil {
			return Counts{}, err
		}

		switch bucket {
		case BucketPositive:
			c.Positive += e.Count
		case BucketNegative:
			c.Negative += e.Count
		default:
			c.Neutral += e.Count
		}
		c.Total += e.Count
	}
	return c, nil
}

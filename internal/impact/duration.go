package impact

// AverageDuration returns the arithmetic mean of session durations in
// minutes, or 0 when there are none.
func AverageDuration(minutes []int) float64 {
	if len(minutes) == 0 {
		return 0
	}
	sum := 0
	for _, m := range minutes {
		sum += m
	}
	return float64(sum) / float64(len(minutes))
}

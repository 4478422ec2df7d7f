package service

// AverageSince returns the arithmetic mean of the readings whose
// timestamp is at or after cutoff. An empty cutoff averages the whole
// history. Returns 0 when nothing qualifies; callers check history
// emptiness before asking for an average.
func AverageSince(history map[string]int, cutoff string) float64 {
	var sum, n int
	for ts, rate := range history {
		if ts >= cutoff {
			sum += rate
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

package stats

import "math"

// Quantile of an ascending sample. p is clamped to [0, 1]; an empty sample
// yields NaN.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 || p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	a, b := sorted[lo], sorted[lo+1]
	q := a + (h-float64(lo))*(b-a)

	// keep the result inside its bracket under rounding
	return math.Min(math.Max(q, a), b)
}

// BandProbabilities returns the lower and upper quantile levels of a
// two-sided band with the given coverage.
func BandProbabilities(confidence float64) (lower, upper float64) {
	tail := (1 - confidence) / 2
	return tail, 1 - tail
}

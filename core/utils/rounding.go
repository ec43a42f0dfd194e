package utils

import "math"

func Round(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}

// Percent returns 100*part/whole, or 0 when whole is zero.
func Percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}

// MsPerMillion converts elapsed time over n trials to milliseconds per million trials.
// It returns 0 when n or elapsedMs is not positive.
func MsPerMillion(elapsedMs float64, n int64) float64 {
	if n <= 0 || elapsedMs <= 0 {
		return 0
	}
	return 1_000_000 * elapsedMs / float64(n)
}

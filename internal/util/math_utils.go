package util

import "math"

// RoundPercent returns round(100*part/total) with halves rounded up, using
// integer arithmetic only. It returns 0 when total is not positive.
func RoundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

// RoundTo2 rounds v to two decimal places, halves away from zero.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

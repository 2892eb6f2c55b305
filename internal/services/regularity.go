package services

import "math"

// RegularityScore maps the population standard deviation of lengths onto
// [0, 1]: 1 - stddev/scale, clamped and rounded to two decimals.
// Fewer than two samples carry no spread information and score 0.5.
func RegularityScore(lengths []int, scale float64) float64 {
	if len(lengths) < 2 {
		return 0.5
	}

	mean := averageInts(lengths)
	var squares float64
	for _, length := range lengths {
		delta := float64(length) - mean
		squares += delta * delta
	}
	stddev := math.Sqrt(squares / float64(len(lengths)))

	score := 1 - stddev/scale
	return RoundTwoDecimals(math.Max(0, math.Min(1, score)))
}

// RoundTwoDecimals rounds half to even on the value scaled by 100.
func RoundTwoDecimals(value float64) float64 {
	return math.RoundToEven(value*100) / 100
}

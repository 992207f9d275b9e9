package utils

import "math"

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FormatFloat rounds f to round decimals. NaN, Inf and values too large to
// carry that many decimals pass through.
func FormatFloat(f float64, round int32) float64 {
	if !IsFinite(f) {
		return f
	}
	p := math.Pow(10, float64(round))
	if math.Abs(f*p) >= 1<<53 {
		return f
	}
	return math.Round(f*p) / p
}

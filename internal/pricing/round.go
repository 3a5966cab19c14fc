package pricing

import "math"

// epsilon nudges values sitting just under a representation boundary (e.g.
// 1.005 stored as 1.00499...) over the half before rounding. Same magnitude
// as IEEE 754 double machine epsilon.
const epsilon = 2.220446049250313e-16

// Round rounds v half-up to the given number of decimal places. Every
// intermediate monetary value in the profit pipeline goes through this at 2
// decimals, ratios and rates at 4; skipping a step lets float drift compound
// across the chained formulas.
func Round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Floor((v+epsilon)*pow+0.5) / pow
}

func round2(v float64) float64 { return Round(v, 2) }

func round4(v float64) float64 { return Round(v, 4) }

package model

import "math"

// Round2 rounds a non-negative dollar amount to two decimal places using
// round-half-up.  All money values stored on orders and tiers pass through
// this helper so that fee math is stable regardless of how the inputs were
// produced.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

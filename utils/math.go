package utils

import "math"

// RoundCurrency rounds a monetary amount to 2 decimal places using
// round-half-to-even, so long credit runs don't drift in one direction.
func RoundCurrency(val float64) float64 {
	return math.RoundToEven(val*100) / 100
}

// RoundPct rounds an equity or split percentage to 4 decimal places.
func RoundPct(val float64) float64 {
	return math.Round(val*10000) / 10000
}

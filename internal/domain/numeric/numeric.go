// Package numeric holds the rounding and clamping rules shared by the
// ranking and rating code.
package numeric

import (
	"math"

	"github.com/shopspring/decimal"
)

// ScorePlaces is the precision used for normalized values and composite
// scores so that comparisons and display are stable.
const ScorePlaces = 4

// Round rounds v half away from zero to the given number of decimal places.
// Non-finite inputs are returned unchanged.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Clamp limits v to [lo, hi]. NaN clamps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

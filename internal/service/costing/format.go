package costing

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func isPositive(v float64) bool {
	return isFinite(v) && v > 0
}

// exactDigits is enough fractional digits to keep the float's true value
// on the right side of every half-cent tie.
const exactDigits = 30

// fixed renders v with exactly two decimals, rounding the binary value
// rather than its shortest decimal form, so 1.005 renders as "1.00".
// Callers must ensure v is finite.
func fixed(v float64) string {
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', exactDigits, 64)).StringFixed(2)
}

// allFinite reports whether every derived value can be rendered.
func allFinite(values ...float64) bool {
	for _, v := range values {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

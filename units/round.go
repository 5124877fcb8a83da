// Package units converts clinical quantities between units and renders
// the arithmetic of each conversion as an explanation sentence.
//
// Every derived number is rounded to three decimal places before it is
// written into an explanation, so the text always shows the value that
// is returned.
package units

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places kept by Round.
const Precision = 3

// Round rounds x half away from zero to Precision decimal places.
// NaN and infinities are returned unchanged.
func Round(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	rounded, _ := decimal.NewFromFloat(x).Round(Precision).Float64()
	return rounded
}

// FormatNumber renders a number in its shortest exact decimal form,
// which is how values appear inside explanations.
func FormatNumber(x float64) string {
	if x == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

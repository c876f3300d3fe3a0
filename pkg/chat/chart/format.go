package chart

import (
	"math"
	"strconv"
	"strings"
)

// FormatValue renders a value with a unit suffix: M from one million, K from one
// thousand. Smaller values keep at most one decimal.
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	abs := math.Abs(v)
	// thresholds apply to the rounded value so 999999 reads 1M, not 1000K
	switch {
	case abs >= 1_000_000 || rounded(abs/1_000) >= 1_000:
		return trimDecimal(v/1_000_000) + "M"
	case abs >= 1_000 || rounded(abs) >= 1_000:
		return trimDecimal(v/1_000) + "K"
	default:
		return trimDecimal(v)
	}
}

// rounded is v as trimDecimal prints it.
func rounded(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}

func trimDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	if s == "-0" {
		return "0"
	}
	return s
}

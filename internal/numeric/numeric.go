package numeric

import (
	"math"
	"strconv"
	"strings"
)

// Parse coerces a raw cell to a float. The second return value is false for
// empty, non-numeric, NaN or infinite input; callers treat that as missing data.
func Parse(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// ParseCount coerces a raw cell to a whole count, truncating any fraction.
// Negative counts and counts beyond int64 are treated as missing.
func ParseCount(raw string) (int64, bool) {
	value, ok := Parse(raw)
	if !ok || value < 0 || value >= math.MaxInt64 {
		return 0, false
	}
	return int64(value), true
}

// Round2 rounds to two decimals using the exact binary value of v.
// Exact ties round half to even.
func Round2(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}

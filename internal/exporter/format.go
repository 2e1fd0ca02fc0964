package exporter

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat writes f with the fewest digits that round-trip, the way
// Python's str(float) does: a decimal point is always kept in fixed
// notation (72.3 -> "72.3", 1234 -> "1234.0"), and decimal exponents below
// -4 or from 16 up switch to exponent notation (1e16 -> "1e+16").
func FormatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if f != 0 {
		sci := strconv.FormatFloat(f, 'e', -1, 64)
		exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
		if err == nil && (exp < -4 || exp >= 16) {
			return sci
		}
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatInt formats an int64 value for CSV output
func FormatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

package pkg

import (
	"strconv"
	"strings"
)

// FormatFloat formats v with at most precision digits after the point,
// trimming trailing zeros.
func FormatFloat(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)

	for len(s) > 0 && strings.Contains(s, ".") && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}

	for len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// FormatValue formats decoded values, switching to exponent notation for
// very large or very small magnitudes.
func FormatValue(v float64) string {
	a := v
	if a < 0 {
		a = -a
	}
	if a != 0 && (a >= 1e9 || a < 1e-4) {
		return strconv.FormatFloat(v, 'g', 6, 64)
	}
	return FormatFloat(v, 6)
}

package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"surveyexport/pkg/contracts/domain"
)

// FormatFloat renders a number for CSV output: integral values without a
// decimal point, others with six significant digits ("1.23457e+06")
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case isIntegral(f):
		if f == 0 {
			return "0"
		}
		return strconv.FormatFloat(f, 'f', 0, 64)
	default:
		return strconv.FormatFloat(f, 'g', 6, 64)
	}
}

// FormatValue renders a normalized value.
// Integer literals are written exactly as they appeared in the source.
func FormatValue(v domain.Value) string {
	switch v.Kind {
	case domain.ValueKindNumber:
		if isIntegerLiteral(v.Text) {
			if v.Number == 0 {
				return "0"
			}
			return strings.TrimPrefix(v.Text, "+")
		}
		return FormatFloat(v.Number)
	case domain.ValueKindNull:
		return ""
	default:
		return v.String()
	}
}

// FormatLiteral renders a normalized value the way it reads in the source
// document. Integer literals are kept; other numbers use the shortest
// round-trip digits, with a trailing ".0" when integral ("3.0", "1e+16").
func FormatLiteral(v domain.Value) string {
	if v.Kind != domain.ValueKindNumber || isIntegerLiteral(v.Text) {
		return FormatValue(v)
	}

	f := v.Number
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return FormatFloat(f)
	}

	exp := 0
	if f != 0 {
		sci := strconv.FormatFloat(f, 'e', -1, 64)
		exp, _ = strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	}
	if exp < -4 || exp >= 16 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	text := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}

// isIntegerLiteral reports whether s is a JSON integer literal
func isIntegerLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isIntegral reports whether f is finite with no fractional part
func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

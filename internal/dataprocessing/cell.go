package dataprocessing

import (
	"strconv"
	"strings"

	"surveyexport/pkg/contracts/domain"
)

// PreparedCell is one report cell after parsing and transformation
type PreparedCell struct {
	Code       string
	Raw        string  // formatted untransformed value
	Display    string  // formatted transformed value, or the raw text when not numeric
	Numeric    float64 // transformed number used for row statistics
	HasNumeric bool
	Err        error // transform failure, already recovered
}

// ParseNumeric extracts a number from a normalized value.
// Strings are trimmed before parsing and must be decimal; anything
// unparseable, including hex floats like "0x1p2", has no number.
func ParseNumeric(v domain.Value) (float64, bool) {
	switch v.Kind {
	case domain.ValueKindNumber:
		return v.Number, true
	case domain.ValueKindString:
		text := strings.TrimSpace(v.Text)
		if text == "" || strings.ContainsAny(text, "xX") {
			return 0, false
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				return f, true
			}
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// PrepareCell parses, transforms and formats the value at code
func PrepareCell(code string, raw domain.Value, transforms TransformTable) PreparedCell {
	cell := PreparedCell{Code: code, Raw: FormatValue(raw)}

	if raw.IsEmpty() {
		return cell
	}

	n, ok := ParseNumeric(raw)
	if !ok {
		cell.Display = cell.Raw
		return cell
	}

	transformed, err := transforms.Apply(code, n)
	cell.Err = err
	cell.Numeric = transformed
	cell.HasNumeric = true
	cell.Display = FormatFloat(transformed)
	return cell
}

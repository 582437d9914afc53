package domain

// MiscFamily is the family for headers that carry no two-letter code
const MiscFamily = "MISC"

// Record column letters in the survey export
const (
	ColumnID     = "A"
	ColumnGender = "C"
	ColumnGrade  = "D"
	ColumnSchool = "E"
)

// ValueKind identifies the JSON type a cell value was decoded from
type ValueKind string

const (
	ValueKindNull       ValueKind = "null"
	ValueKindString     ValueKind = "string"
	ValueKindNumber     ValueKind = "number"
	ValueKindBool       ValueKind = "bool"
	ValueKindStructured ValueKind = "structured"
)

// Value is a primitive survey answer.
// Text holds the string content, the number literal as written in the
// source document, or the compact JSON text of an array/object.
type Value struct {
	Kind   ValueKind `json:"kind"`
	Text   string    `json:"text,omitempty"`
	Number float64   `json:"number,omitempty"`
	Bool   bool      `json:"bool,omitempty"`
}

// NullValue returns a missing answer
func NullValue() Value {
	return Value{Kind: ValueKindNull}
}

// StringValue returns a string answer
func StringValue(s string) Value {
	return Value{Kind: ValueKindString, Text: s}
}

// NumberValue returns a numeric answer; literal may be empty for computed numbers
func NumberValue(literal string, n float64) Value {
	return Value{Kind: ValueKindNumber, Text: literal, Number: n}
}

// BoolValue returns a boolean answer
func BoolValue(b bool) Value {
	return Value{Kind: ValueKindBool, Bool: b}
}

// StructuredValue returns an array or object answer as compact JSON text
func StructuredValue(jsonText string) Value {
	return Value{Kind: ValueKindStructured, Text: jsonText}
}

// IsNull reports whether the value is missing
func (v Value) IsNull() bool {
	return v.Kind == ValueKindNull || v.Kind == ""
}

// IsEmpty reports whether the value is missing or an empty string
func (v Value) IsEmpty() bool {
	return v.IsNull() || (v.Kind == ValueKindString && v.Text == "")
}

// String returns the plain text form of the value
func (v Value) String() string {
	switch v.Kind {
	case ValueKindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValueKindString, ValueKindNumber, ValueKindStructured:
		return v.Text
	default:
		return ""
	}
}

// Cell is one labeled answer within a row
type Cell struct {
	Column string `json:"column"`
	Header string `json:"header"`
	Value  Value  `json:"value"`
}

// Row is one respondent's cells in document order
type Row struct {
	Cells []Cell `json:"cells"`
}

// Cell returns the cell stored under the given column letter
func (r Row) Cell(column string) (Cell, bool) {
	for _, cell := range r.Cells {
		if cell.Column == column {
			return cell, true
		}
	}
	return Cell{}, false
}

// HasContent reports whether any cell carries a header or a non-null value
func (r Row) HasContent() bool {
	for _, cell := range r.Cells {
		if cell.Header != "" || !cell.Value.IsNull() {
			return true
		}
	}
	return false
}

// Record holds the identity fields carried into every family report
type Record struct {
	ID     string `json:"id"`
	Gender string `json:"gender"`
	Grade  string `json:"grade"`
	School string `json:"school"`
}

// Fields returns the record in output column order
func (r Record) Fields() []string {
	return []string{r.ID, r.Gender, r.Grade, r.School}
}

// RecordHeaders are the identity columns leading every report
var RecordHeaders = []string{"id", "gender", "grade", "school"}

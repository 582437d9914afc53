package dataprocessing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyexport/pkg/contracts/domain"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name   string
		in     domain.Value
		want   float64
		wantOK bool
	}{
		{"number", domain.NumberValue("4", 4), 4, true},
		{"numeric string", domain.StringValue("3"), 3, true},
		{"padded string", domain.StringValue("  2.5 "), 2.5, true},
		{"exponent string", domain.StringValue("1e3"), 1000, true},
		{"text", domain.StringValue("Nam"), 0, false},
		{"empty", domain.StringValue(""), 0, false},
		{"whitespace", domain.StringValue("   "), 0, false},
		{"mixed", domain.StringValue("3 điểm"), 0, false},
		{"hex float", domain.StringValue("0x1p2"), 0, false},
		{"hex integer", domain.StringValue("0X10"), 0, false},
		{"null", domain.NullValue(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumeric(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNumeric_SpecialValues(t *testing.T) {
	f, ok := ParseNumeric(domain.StringValue("nan"))
	require.True(t, ok)
	assert.True(t, math.IsNaN(f))

	f, ok = ParseNumeric(domain.StringValue("1e400"))
	require.True(t, ok)
	assert.True(t, math.IsInf(f, 1))
}

func TestPrepareCell(t *testing.T) {
	transforms := DefaultTransforms()

	tests := []struct {
		name        string
		code        string
		raw         domain.Value
		wantRaw     string
		wantDisplay string
		wantNumeric float64
		wantHas     bool
	}{
		{
			name:        "plain number",
			code:        "BE1",
			raw:         domain.NumberValue("3", 3),
			wantRaw:     "3",
			wantDisplay: "3",
			wantNumeric: 3,
			wantHas:     true,
		},
		{
			name:        "reversed number",
			code:        "BE5",
			raw:         domain.NumberValue("2", 2),
			wantRaw:     "2",
			wantDisplay: "3",
			wantNumeric: 3,
			wantHas:     true,
		},
		{
			name:        "reversed numeric string",
			code:        "KT4",
			raw:         domain.StringValue(" 1 "),
			wantRaw:     " 1 ",
			wantDisplay: "4",
			wantNumeric: 4,
			wantHas:     true,
		},
		{
			name:        "fractional",
			code:        "BE2",
			raw:         domain.StringValue("3.14159265"),
			wantRaw:     "3.14159265",
			wantDisplay: "3.14159",
			wantNumeric: 3.14159265,
			wantHas:     true,
		},
		{
			name:        "text passes through",
			code:        "BE1",
			raw:         domain.StringValue("không biết"),
			wantRaw:     "không biết",
			wantDisplay: "không biết",
		},
		{
			name:        "hex float stays text",
			code:        "TQ5",
			raw:         domain.StringValue("0x1p2"),
			wantRaw:     "0x1p2",
			wantDisplay: "0x1p2",
		},
		{
			name: "empty",
			code: "BE5",
			raw:  domain.StringValue(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := PrepareCell(tt.code, tt.raw, transforms)
			assert.Equal(t, tt.code, cell.Code)
			assert.Equal(t, tt.wantRaw, cell.Raw)
			assert.Equal(t, tt.wantDisplay, cell.Display)
			assert.Equal(t, tt.wantHas, cell.HasNumeric)
			assert.InDelta(t, tt.wantNumeric, cell.Numeric, 1e-12)
			assert.NoError(t, cell.Err)
		})
	}
}

func TestPrepareCell_TransformFailureFallsBack(t *testing.T) {
	transforms := TransformTable{
		"ER1": func(float64) (float64, error) { return 0, errors.New("out of scale") },
		"PA1": func(float64) (float64, error) { panic("boom") },
	}

	for _, code := range []string{"ER1", "PA1"} {
		t.Run(code, func(t *testing.T) {
			cell := PrepareCell(code, domain.NumberValue("2", 2), transforms)
			assert.Equal(t, "2", cell.Display)
			assert.Equal(t, 2.0, cell.Numeric)
			assert.True(t, cell.HasNumeric)
			assert.Error(t, cell.Err)
		})
	}
}

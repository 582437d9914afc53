package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"surveyexport/pkg/contracts/domain"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"integral", 3.0, "3"},
		{"negative integral", -2.0, "-2"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"six significant digits", 3.14159265, "3.14159"},
		{"half", 2.5, "2.5"},
		{"large fraction uses exponent", 1234567.5, "1.23457e+06"},
		{"small", 0.0001, "0.0001"},
		{"tiny uses exponent", 0.00001, "1e-05"},
		{"large integral", 1e20, "100000000000000000000"},
		{"repeating", 10.0 / 3.0, "3.33333"},
		{"nan", math.NaN(), "nan"},
		{"positive infinity", math.Inf(1), "inf"},
		{"negative infinity", math.Inf(-1), "-inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.in))
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Value
		want string
	}{
		{"integer literal", domain.NumberValue("7", 7), "7"},
		{"big integer literal kept exactly", domain.NumberValue("12345678901234567890", 12345678901234567890), "12345678901234567890"},
		{"negative zero literal", domain.NumberValue("-0", 0), "0"},
		{"float literal that is integral", domain.NumberValue("3.0", 3), "3"},
		{"float literal", domain.NumberValue("2.50", 2.5), "2.5"},
		{"exponent literal", domain.NumberValue("1e2", 100), "100"},
		{"computed number", domain.NumberValue("", 3.14159265), "3.14159"},
		{"string passes through", domain.StringValue(" Nam "), " Nam "},
		{"empty string", domain.StringValue(""), ""},
		{"null", domain.NullValue(), ""},
		{"bool", domain.BoolValue(false), "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Value
		want string
	}{
		{"integer literal", domain.NumberValue("1001", 1001), "1001"},
		{"integral float", domain.NumberValue("3.0", 3), "3.0"},
		{"trailing zeros", domain.NumberValue("10.50", 10.5), "10.5"},
		{"exponent literal", domain.NumberValue("1.5e10", 1.5e10), "15000000000.0"},
		{"large float", domain.NumberValue("1e16", 1e16), "1e+16"},
		{"small float", domain.NumberValue("0.00001", 0.00001), "1e-05"},
		{"small fixed", domain.NumberValue("0.0001", 0.0001), "0.0001"},
		{"negative zero", domain.NumberValue("-0.0", math.Copysign(0, -1)), "-0.0"},
		{"overflow", domain.NumberValue("1e400", math.Inf(1)), "inf"},
		{"string", domain.StringValue("HS01"), "HS01"},
		{"null", domain.NullValue(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLiteral(tt.in))
		})
	}
}

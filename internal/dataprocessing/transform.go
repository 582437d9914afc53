package dataprocessing

import (
	"fmt"
	"sort"
)

// LikertScaleSum is the constant a reversed answer is subtracted from
const LikertScaleSum = 5

// TransformFunc maps a column's numeric answer to its scored value
type TransformFunc func(float64) (float64, error)

// TransformTable maps column codes to their transforms; absent codes are identity
type TransformTable map[string]TransformFunc

// reversedColumns are the negatively worded questions of the instrument
var reversedColumns = []string{"BE5", "DH4", "KT4", "PV4", "BL5", "OR5", "YE5", "TQ5"}

// DefaultTransforms returns the reverse-scoring table for the survey instrument
func DefaultTransforms() TransformTable {
	table := make(TransformTable, len(reversedColumns))
	for _, code := range reversedColumns {
		table[code] = ReverseLikert
	}
	return table
}

// ReverseLikert reverse-scores an answer: 5 - v
func ReverseLikert(v float64) (float64, error) {
	return LikertScaleSum - v, nil
}

// Has reports whether code has a transform
func (t TransformTable) Has(code string) bool {
	_, ok := t[code]
	return ok
}

// Apply runs the transform for code. A failing or panicking transform
// leaves v unchanged; the error is returned for logging only.
func (t TransformTable) Apply(code string, v float64) (result float64, err error) {
	fn, ok := t[code]
	if !ok || fn == nil {
		return v, nil
	}

	defer func() {
		if r := recover(); r != nil {
			result = v
			err = fmt.Errorf("transform %s panicked: %v", code, r)
		}
	}()

	out, err := fn(v)
	if err != nil {
		return v, fmt.Errorf("transform %s: %w", code, err)
	}
	return out, nil
}

// Codes returns the transformed column codes in sorted order
func (t TransformTable) Codes() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

package dataprocessing

import (
	"github.com/montanaflynn/stats"
)

// Agreement levels assigned from a row average
const (
	LevelHigh   = "Cao"
	LevelMedium = "Trung bình"
	LevelLow    = "Thấp"
)

// Level band lower bounds; boundary values belong to the higher band
const (
	HighThreshold   = 4.0
	MediumThreshold = 2.0
)

// RowSummary is the per-row, per-family aggregate
type RowSummary struct {
	Sum     float64
	Average float64
	Count   int
	Level   string
}

// HasValues reports whether any column contributed a number
func (s RowSummary) HasValues() bool {
	return s.Count > 0
}

// SumText is the formatted sum, "" when nothing contributed
func (s RowSummary) SumText() string {
	if !s.HasValues() {
		return ""
	}
	return FormatFloat(s.Sum)
}

// AverageText is the formatted average, "" when nothing contributed
func (s RowSummary) AverageText() string {
	if !s.HasValues() {
		return ""
	}
	return FormatFloat(s.Average)
}

// SummarizeRow sums and averages the numeric cells of a row
func SummarizeRow(cells []PreparedCell) RowSummary {
	values := make(stats.Float64Data, 0, len(cells))
	for _, c := range cells {
		if c.HasNumeric {
			values = append(values, c.Numeric)
		}
	}
	return SummarizeValues(values)
}

// SummarizeValues aggregates values; an empty input yields an empty summary
func SummarizeValues(values []float64) RowSummary {
	if len(values) == 0 {
		return RowSummary{}
	}

	data := stats.Float64Data(values)
	sum, err := data.Sum()
	if err != nil {
		return RowSummary{}
	}
	avg := sum / float64(len(values))

	return RowSummary{
		Sum:     sum,
		Average: avg,
		Count:   len(values),
		Level:   DetermineLevel(avg),
	}
}

// DetermineLevel classifies an average: >= 4 Cao, >= 2 Trung bình, else Thấp
func DetermineLevel(average float64) string {
	switch {
	case average >= HighThreshold:
		return LevelHigh
	case average >= MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

package dataprocessing

import (
	"context"
	"log/slog"

	"github.com/montanaflynn/stats"
)

// Summarizer computes per-family statistics over row averages.
type Summarizer struct {
	logger *slog.Logger
}

// FamilySummary is one line of the family summary report.
// Statistic fields are only meaningful when Scored > 0.
type FamilySummary struct {
	Family        string  `json:"family"`
	Columns       int     `json:"columns"`
	Respondents   int     `json:"respondents"`
	Scored        int     `json:"scored"`
	MeanAverage   float64 `json:"mean_average"`
	MedianAverage float64 `json:"median_average"`
	StdDevAverage float64 `json:"stddev_average"`
	High          int     `json:"cao"`
	Medium        int     `json:"trung_binh"`
	Low           int     `json:"thap"`
}

// NewSummarizer creates a family summarizer
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger.With(slog.String("component", "summarizer"))}
}

// Summarize returns one summary per report, in report order
func (s *Summarizer) Summarize(ctx context.Context, reports []FamilyReport) []FamilySummary {
	summaries := make([]FamilySummary, 0, len(reports))
	for _, report := range reports {
		summaries = append(summaries, s.summarizeFamily(report))
	}

	s.logger.InfoContext(ctx, "Generated family summaries",
		slog.Int("family_count", len(summaries)))

	return summaries
}

func (s *Summarizer) summarizeFamily(report FamilyReport) FamilySummary {
	summary := FamilySummary{
		Family:      report.Family,
		Columns:     len(report.Columns),
		Respondents: len(report.Rows),
	}

	averages := make(stats.Float64Data, 0, len(report.Rows))
	for _, row := range report.Rows {
		if !row.Summary.HasValues() {
			continue
		}
		averages = append(averages, row.Summary.Average)
		switch row.Summary.Level {
		case LevelHigh:
			summary.High++
		case LevelMedium:
			summary.Medium++
		default:
			summary.Low++
		}
	}

	summary.Scored = len(averages)
	if summary.Scored == 0 {
		return summary
	}

	// Errors only occur on empty input, which is excluded above.
	summary.MeanAverage, _ = stats.Mean(averages)
	summary.MedianAverage, _ = stats.Median(averages)
	summary.StdDevAverage, _ = stats.StandardDeviation(averages)

	return summary
}

package exporter

import (
	"log/slog"

	"surveyexport/internal/config"
	"surveyexport/internal/dataprocessing"
)

// SummaryExporter writes the per-family statistics report
type SummaryExporter struct {
	csvWriter *CSVWriter
	paths     *config.Paths
	logger    *slog.Logger
}

// NewSummaryExporter creates a new family summary exporter
func NewSummaryExporter(csvWriter *CSVWriter, paths *config.Paths, logger *slog.Logger) *SummaryExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryExporter{
		csvWriter: csvWriter,
		paths:     paths,
		logger:    logger.With(slog.String("component", "summary_exporter")),
	}
}

// Export writes one line per family summary
func (e *SummaryExporter) Export(summaries []dataprocessing.FamilySummary) (string, error) {
	path := e.paths.FamilySummaryFile

	records := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		records = append(records, summaryToCSVRow(summary))
	}

	if err := e.csvWriter.WriteSimpleCSV(path, SummaryHeaders(), records); err != nil {
		return "", err
	}

	e.logger.Info("Exported family summary",
		slog.String("path", path),
		slog.Int("family_count", len(summaries)))
	return path, nil
}

// SummaryHeaders returns the family summary header row
func SummaryHeaders() []string {
	return []string{
		"family", "columns", "respondents", "scored",
		"mean_average", "median_average", "stddev_average",
		"cao", "trung_binh", "thap",
	}
}

func summaryToCSVRow(s dataprocessing.FamilySummary) []string {
	return []string{
		s.Family,
		formatInt(s.Columns),
		formatInt(s.Respondents),
		formatInt(s.Scored),
		formatStat(s.MeanAverage, s.Scored),
		formatStat(s.MedianAverage, s.Scored),
		formatStat(s.StdDevAverage, s.Scored),
		formatInt(s.High),
		formatInt(s.Medium),
		formatInt(s.Low),
	}
}

package exporter

import (
	"log/slog"

	"surveyexport/internal/config"
	"surveyexport/internal/dataprocessing"
	"surveyexport/pkg/contracts/domain"
)

// Trailing columns of the numeric report
const (
	ColumnSum     = "sum"
	ColumnAverage = "average"
	ColumnLevel   = "level"
	RawSuffix     = "_raw"
)

// FamilyExporter writes the numeric and Likert-text report of every family
type FamilyExporter struct {
	csvWriter *CSVWriter
	paths     *config.Paths
	logger    *slog.Logger
}

// NewFamilyExporter creates a new family report exporter
func NewFamilyExporter(csvWriter *CSVWriter, paths *config.Paths, logger *slog.Logger) *FamilyExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FamilyExporter{
		csvWriter: csvWriter,
		paths:     paths,
		logger:    logger.With(slog.String("component", "family_exporter")),
	}
}

// Export writes both files for every report and returns the written paths
func (e *FamilyExporter) Export(reports []dataprocessing.FamilyReport) ([]string, error) {
	written := make([]string, 0, 2*len(reports))

	for _, report := range reports {
		numericPath := e.paths.GetReportPath(report.Family)
		if err := e.csvWriter.WriteSimpleCSV(numericPath, NumericHeaders(report), NumericRows(report)); err != nil {
			return written, err
		}
		written = append(written, numericPath)

		textPath := e.paths.GetTextReportPath(report.Family)
		if err := e.csvWriter.WriteSimpleCSV(textPath, TextHeaders(report), TextRows(report)); err != nil {
			return written, err
		}
		written = append(written, textPath)

		e.logger.Info("Exported family report",
			slog.String("family", report.Family),
			slog.Int("columns", len(report.Columns)),
			slog.Int("rows", len(report.Rows)))
	}

	return written, nil
}

// NumericHeaders returns the header row of a family's numeric report.
// Transformed columns get a <code>_raw field before the transformed value.
func NumericHeaders(report dataprocessing.FamilyReport) []string {
	headers := append([]string{}, domain.RecordHeaders...)
	for _, col := range report.Columns {
		if col.Transformed {
			headers = append(headers, col.Code+RawSuffix)
		}
		headers = append(headers, col.Code)
	}
	return append(headers, ColumnSum, ColumnAverage, ColumnLevel)
}

// NumericRows returns one numeric record per report row
func NumericRows(report dataprocessing.FamilyReport) [][]string {
	records := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		record := row.Record.Fields()
		for i, col := range report.Columns {
			cell := row.Cells[i]
			if col.Transformed {
				record = append(record, cell.Raw)
			}
			record = append(record, cell.Display)
		}
		record = append(record, row.Summary.SumText(), row.Summary.AverageText(), row.Summary.Level)
		records = append(records, record)
	}
	return records
}

// TextHeaders returns the header row of a family's Likert-text report
func TextHeaders(report dataprocessing.FamilyReport) []string {
	headers := append([]string{}, domain.RecordHeaders...)
	for _, col := range report.Columns {
		headers = append(headers, col.Code)
	}
	return append(headers, ColumnLevel)
}

// TextRows returns one Likert-text record per report row.
// Cells show the untransformed answer; the level is the numeric report's.
func TextRows(report dataprocessing.FamilyReport) [][]string {
	records := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		record := row.Record.Fields()
		for _, cell := range row.Cells {
			record = append(record, LikertLabel(cell.Raw))
		}
		record = append(record, row.Summary.Level)
		records = append(records, record)
	}
	return records
}

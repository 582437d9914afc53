package exporter

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"

	"surveyexport/internal/config"
	"surveyexport/internal/dataprocessing"
	apperrors "surveyexport/internal/errors"
	"surveyexport/pkg/contracts/domain"
)

// RecordsSheet is the workbook sheet listing every record
const RecordsSheet = "records"

// defaultSheet is the sheet excelize creates with a new file
const defaultSheet = "Sheet1"

// WorkbookExporter writes every family's numeric view into one xlsx file
type WorkbookExporter struct {
	fs     afero.Fs
	paths  *config.Paths
	logger *slog.Logger
}

// NewWorkbookExporter creates a new workbook exporter
func NewWorkbookExporter(fs afero.Fs, paths *config.Paths, logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{
		fs:     fs,
		paths:  paths,
		logger: logger.With(slog.String("component", "workbook_exporter")),
	}
}

// Export writes the records sheet followed by one sheet per family
func (e *WorkbookExporter) Export(reports []dataprocessing.FamilyReport, records []domain.Record) (string, error) {
	path := e.paths.WorkbookFile

	data, err := BuildWorkbook(reports, records)
	if err != nil {
		return "", apperrors.NewStorageError("failed to build workbook", err).
			WithContext("path", path)
	}
	if err := writeFile(e.fs, path, data); err != nil {
		return "", err
	}

	e.logger.Info("Exported workbook",
		slog.String("path", path),
		slog.Int("sheet_count", len(reports)+1))
	return path, nil
}

// BuildWorkbook renders the workbook to bytes
func BuildWorkbook(reports []dataprocessing.FamilyReport, records []domain.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, RecordsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}

	recordRows := make([][]string, 0, len(records))
	for _, record := range records {
		recordRows = append(recordRows, record.Fields())
	}
	if err := writeSheet(f, RecordsSheet, domain.RecordHeaders, recordRows, len(domain.RecordHeaders)); err != nil {
		return nil, err
	}

	for _, report := range reports {
		if _, err := f.NewSheet(report.Family); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", report.Family, err)
		}
		if err := writeSheet(f, report.Family, NumericHeaders(report), NumericRows(report), len(domain.RecordHeaders)); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheet writes a header row and data rows; data values from column
// index numericFrom onward are stored as numbers when they parse as one
func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string, numericFrom int) error {
	if err := setRow(f, sheet, 1, headers, len(headers)); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row, numericFrom); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowIdx int, values []string, numericFrom int) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}

	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
		if i >= numericFrom {
			if n, ok := sheetNumber(v); ok {
				row[i] = n
			}
		}
	}

	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, rowIdx, err)
	}
	return nil
}

func sheetNumber(v string) (float64, bool) {
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || !isFinite(n) {
		return 0, false
	}
	return n, true
}

package dataprocessing

import (
	"fmt"
	"log/slog"

	"surveyexport/pkg/contracts/domain"
)

// ReportColumn is one question column of a family report
type ReportColumn struct {
	Code        string
	Header      string
	Transformed bool
}

// ReportRow is one respondent's prepared cells for a family
type ReportRow struct {
	Record  domain.Record
	Cells   []PreparedCell
	Summary RowSummary
}

// FamilyReport is the fully prepared table for one column family.
// Both the numeric and the Likert-text outputs render from it, so the
// level shown in each is computed once.
type FamilyReport struct {
	Family  string
	Columns []ReportColumn
	Rows    []ReportRow
}

// ReportBuilder prepares family reports from grouped rows
type ReportBuilder struct {
	transforms TransformTable
	logger     *slog.Logger
}

// NewReportBuilder creates a builder with the given transform table
func NewReportBuilder(transforms TransformTable, logger *slog.Logger) *ReportBuilder {
	if transforms == nil {
		transforms = TransformTable{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportBuilder{
		transforms: transforms,
		logger:     logger.With(slog.String("component", "report_builder")),
	}
}

// Build prepares one report per family in first-seen order.
// records must be aligned with the table's row indexes.
func (b *ReportBuilder) Build(groups *GroupTable, records []domain.Record) ([]FamilyReport, error) {
	if groups.RowCount() != len(records) {
		return nil, fmt.Errorf("group table has %d rows but %d records were extracted", groups.RowCount(), len(records))
	}

	families := groups.Families()
	reports := make([]FamilyReport, 0, len(families))

	for _, group := range families {
		codes := group.SortedCodes()
		if len(codes) == 0 {
			continue
		}
		reports = append(reports, b.buildFamily(group, codes, records))
	}

	return reports, nil
}

func (b *ReportBuilder) buildFamily(group *FamilyGroup, codes []string, records []domain.Record) FamilyReport {
	report := FamilyReport{
		Family:  group.Family,
		Columns: make([]ReportColumn, 0, len(codes)),
		Rows:    make([]ReportRow, 0, len(records)),
	}

	for _, code := range codes {
		report.Columns = append(report.Columns, ReportColumn{
			Code:        code,
			Header:      group.Headers[code],
			Transformed: b.transforms.Has(code),
		})
	}

	failures := 0
	for i, record := range records {
		index := i + 1
		cells := make([]PreparedCell, 0, len(codes))
		for _, code := range codes {
			cell := PrepareCell(code, group.Value(index, code), b.transforms)
			if cell.Err != nil {
				failures++
				b.logger.Debug("Transform failed, keeping untransformed value",
					slog.String("family", group.Family),
					slog.String("code", code),
					slog.Int("row", index),
					slog.String("error", cell.Err.Error()))
			}
			cells = append(cells, cell)
		}
		report.Rows = append(report.Rows, ReportRow{
			Record:  record,
			Cells:   cells,
			Summary: SummarizeRow(cells),
		})
	}

	if failures > 0 {
		b.logger.Warn("Transforms fell back to raw values",
			slog.String("family", group.Family),
			slog.Int("failures", failures))
	}

	return report
}

// Scored returns the number of rows with at least one numeric cell
func (r FamilyReport) Scored() int {
	n := 0
	for _, row := range r.Rows {
		if row.Summary.HasValues() {
			n++
		}
	}
	return n
}

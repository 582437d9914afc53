// Package exporter writes the survey family reports.
//
// CSVWriter: core CSV writing over an afero filesystem, with optional UTF-8
// BOM and CRLF line endings. Every file is built in memory and written whole.
//
// FamilyExporter: one numeric report (<family>.csv) and one Likert-text
// report (text/<family>_text.csv) per column family.
//
// MetadataExporter: _column_labels.json and _records_metadata.csv.
//
// WorkbookExporter and SummaryExporter: the optional _report.xlsx and
// _family_summary.csv outputs.
//
// Example usage:
//
//	csvWriter := exporter.NewCSVWriter(afero.NewOsFs(), paths, cfg.Output, logger)
//	families := exporter.NewFamilyExporter(csvWriter, paths, logger)
//	written, err := families.Export(reports)
package exporter

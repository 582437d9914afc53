// Package dataprocessing turns survey response documents into per-family
// report tables.
//
// # Architecture
//
// The pipeline runs in five steps, each a plain function over in-memory data:
//
//  1. Loader: reads {"rows": [...]} and drops rows without content
//  2. ExtractRecords: pulls id, gender, grade and school from columns A, C, D, E
//  3. CollectGroups: classifies each header into a column family
//  4. SortColumns: orders each family's codes by question digit
//  5. ReportBuilder: applies reverse scoring and aggregates each row
//
// # Usage
//
//	loader := dataprocessing.NewLoader(afero.NewOsFs(), logger)
//	result, err := loader.Load("data.json")
//	if err != nil {
//	    return err
//	}
//	records := dataprocessing.ExtractRecords(result.Rows)
//	groups := dataprocessing.CollectGroups(result.Rows)
//	builder := dataprocessing.NewReportBuilder(dataprocessing.DefaultTransforms(), logger)
//	reports, err := builder.Build(groups, records)
//
// # Column Families
//
// A header such as "[BE5] Tôi thấy..." belongs to family BE with code BE5.
// Headers without a two-letter-plus-digit run go to MISC, coded by their
// ASCII slug.
//
// # Error Handling
//
// Only the loader fails: a missing file is an INPUT error and a malformed
// document a PARSING error (see internal/errors). Cells that do not parse
// as numbers pass through as text, and a failing transform keeps the
// untransformed number.
package dataprocessing

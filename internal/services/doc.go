// Package services wires the export pipeline together.
//
// ExportService owns one run: it loads the survey document, extracts the
// respondent records, groups cells into column families, builds the family
// reports and hands them to the exporters. Each stage runs inside a trace
// span and records its duration; row, cell and file counts go to the run
// metrics.
//
//	svc, err := services.NewExportService(cfg, paths, afero.NewOsFs(), telemetry, logger)
//	if err != nil {
//	    return err
//	}
//	result, err := svc.Run(ctx)
//
// Errors returned by Run are *errors.AppError values typed INPUT, PARSING,
// VALIDATION or STORAGE.
package services

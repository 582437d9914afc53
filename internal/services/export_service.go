package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/afero"

	"surveyexport/internal/config"
	"surveyexport/internal/dataprocessing"
	apperrors "surveyexport/internal/errors"
	"surveyexport/internal/exporter"
	"surveyexport/internal/infrastructure"
	"surveyexport/internal/validation"
	"surveyexport/pkg/contracts/domain"
)

// ExportService runs the survey export pipeline: load, extract records,
// group by family, build reports, write every output file
type ExportService struct {
	cfg        *config.Config
	paths      *config.Paths
	fs         afero.Fs
	telemetry  *infrastructure.Telemetry
	validator  *validation.FileValidator
	transforms dataprocessing.TransformTable
	logger     *slog.Logger
}

// RunResult describes a completed export
type RunResult struct {
	RunID       string
	RowsKept    int
	RowsDropped int
	Families    []string
	Files       []string
}

// NewExportService creates an export service.
// A nil telemetry runs with tracing and metrics disabled.
func NewExportService(cfg *config.Config, paths *config.Paths, fs afero.Fs, telemetry *infrastructure.Telemetry, logger *slog.Logger) (*ExportService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if telemetry == nil {
		tel, err := infrastructure.InitializeTelemetry(infrastructure.DefaultTelemetryConfig(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		telemetry = tel
	}

	return &ExportService{
		cfg:        cfg,
		paths:      paths,
		fs:         fs,
		telemetry:  telemetry,
		validator:  validation.NewFileValidator(fs, logger),
		transforms: dataprocessing.DefaultTransforms(),
		logger:     infrastructure.WithComponent(logger, "export_service"),
	}, nil
}

// Run performs one export. Any load, parse or write failure aborts the run.
func (s *ExportService) Run(ctx context.Context) (*RunResult, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	result := &RunResult{RunID: infrastructure.GetRunID(ctx)}
	started := time.Now()

	s.logger.InfoContext(ctx, "Starting survey export",
		slog.String("input", s.paths.InputFile),
		slog.String("output_dir", s.paths.OutputDir),
		slog.String("reversed_columns", strings.Join(s.transforms.Codes(), ",")))

	var loaded *dataprocessing.LoadResult
	err := s.stage(ctx, infrastructure.StageLoad, func(ctx context.Context) error {
		if err := s.validator.ValidateInputFile(s.paths.InputFile); err != nil {
			return err
		}
		var err error
		loaded, err = dataprocessing.NewLoader(s.fs, s.logger).Load(s.paths.InputFile)
		if err != nil {
			return err
		}
		result.RowsKept = len(loaded.Rows)
		result.RowsDropped = loaded.Dropped
		s.telemetry.Metrics.RowsKept.Add(ctx, int64(result.RowsKept))
		s.telemetry.Metrics.RowsDropped.Add(ctx, int64(result.RowsDropped))
		return nil
	})
	if err != nil {
		return nil, err
	}

	var records []domain.Record
	err = s.stage(ctx, infrastructure.StageMetadata, func(ctx context.Context) error {
		records = dataprocessing.ExtractRecords(loaded.Rows)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var groups *dataprocessing.GroupTable
	err = s.stage(ctx, infrastructure.StageGroup, func(ctx context.Context) error {
		groups = dataprocessing.CollectGroups(loaded.Rows)
		s.telemetry.Metrics.CellsGrouped.Add(ctx, int64(groups.CellCount()))
		s.logger.DebugContext(ctx, "Grouped cells",
			slog.Int("family_count", len(groups.Families())),
			slog.Int("cell_count", groups.CellCount()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	var reports []dataprocessing.FamilyReport
	var summaries []dataprocessing.FamilySummary
	err = s.stage(ctx, infrastructure.StageReport, func(ctx context.Context) error {
		var err error
		reports, err = dataprocessing.NewReportBuilder(s.transforms, s.logger).Build(groups, records)
		if err != nil {
			return apperrors.NewValidationError("failed to build family reports", err)
		}
		if s.cfg.Output.Summary {
			summaries = dataprocessing.NewSummarizer(s.logger).Summarize(ctx, reports)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.stage(ctx, infrastructure.StageWrite, func(ctx context.Context) error {
		files, err := s.write(ctx, groups, records, reports, summaries)
		result.Files = files
		s.telemetry.Metrics.FilesWritten.Add(ctx, int64(len(files)))
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, report := range reports {
		result.Families = append(result.Families, report.Family)
	}

	s.logger.InfoContext(ctx, "Survey export complete",
		slog.Int("rows_kept", result.RowsKept),
		slog.Int("rows_dropped", result.RowsDropped),
		slog.Int("family_count", len(result.Families)),
		slog.Int("files_written", len(result.Files)),
		slog.Duration("duration", time.Since(started)))

	return result, nil
}

// write produces every output file and returns the paths written so far
func (s *ExportService) write(ctx context.Context, groups *dataprocessing.GroupTable, records []domain.Record,
	reports []dataprocessing.FamilyReport, summaries []dataprocessing.FamilySummary) ([]string, error) {

	if err := s.paths.EnsureDirectories(s.fs); err != nil {
		return nil, apperrors.NewStorageError("failed to create output directories", err)
	}
	for _, dir := range []string{s.paths.OutputDir, s.paths.TextDir} {
		if err := s.validator.ValidateOutputDirectory(dir); err != nil {
			return nil, err
		}
	}

	csvWriter := exporter.NewCSVWriter(s.fs, s.paths, s.cfg.Output, s.logger)

	files, err := exporter.NewFamilyExporter(csvWriter, s.paths, s.logger).Export(reports)
	if err != nil {
		return files, err
	}

	metadata := exporter.NewMetadataExporter(csvWriter, s.paths, s.logger)
	labelsPath, err := metadata.ExportColumnLabels(groups)
	if err != nil {
		return files, err
	}
	files = append(files, labelsPath)

	recordsPath, err := metadata.ExportRecords(records)
	if err != nil {
		return files, err
	}
	files = append(files, recordsPath)

	if s.cfg.Output.Workbook {
		path, err := exporter.NewWorkbookExporter(s.fs, s.paths, s.logger).Export(reports, records)
		if err != nil {
			return files, err
		}
		files = append(files, path)
	}

	if s.cfg.Output.Summary {
		path, err := exporter.NewSummaryExporter(csvWriter, s.paths, s.logger).Export(summaries)
		if err != nil {
			return files, err
		}
		files = append(files, path)
	}

	s.logger.DebugContext(ctx, "Wrote output files", slog.Int("file_count", len(files)))
	return files, nil
}

// stage runs fn inside a traced, timed pipeline stage
func (s *ExportService) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := s.telemetry.StartStage(ctx, name)
	started := time.Now()

	err := fn(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Export stage failed",
			slog.String("stage", name),
			slog.String("error", err.Error()))
	}

	s.telemetry.EndStage(ctx, span, name, started, err)
	return err
}

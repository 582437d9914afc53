package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"surveyexport/internal/config"
	apperrors "surveyexport/internal/errors"
	"surveyexport/internal/infrastructure"
	"surveyexport/internal/services"
	"surveyexport/pkg/contracts"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("Survey export failed",
			slog.String("error", err.Error()),
			slog.String("error_type", string(apperrors.TypeOf(err))))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// A .env file is optional; the process environment always wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperrors.NewConfigError("failed to load .env file", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return apperrors.NewConfigError("failed to load configuration", err)
	}

	paths, err := config.NewPaths(cfg)
	if err != nil {
		return apperrors.NewConfigError("failed to resolve paths", err)
	}
	if paths.LogFile != "" {
		cfg.Logging.FilePath = paths.LogFile
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize logger", err)
	}
	defer infrastructure.CloseLogFile()

	version := contracts.GetVersionInfo()
	logger.Info(contracts.GetVersionString(),
		slog.String("commit", version.GitCommit),
		slog.String("build_time", version.BuildTime),
		slog.String("go_version", version.GoVersion),
		slog.String("output_format", version.OutputFormat))

	paths.LogPathResolution(logger)

	telemetry, err := infrastructure.InitializeTelemetry(&infrastructure.TelemetryConfig{
		ServiceName:    infrastructure.ServiceName,
		ServiceVersion: infrastructure.ServiceVersion,
		TraceExporter:  cfg.Telemetry.TraceExporter,
		MetricsFile:    paths.MetricsFile,
	}, logger)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize telemetry", err)
	}
	defer func() {
		if err := telemetry.Shutdown(context.Background()); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	svc, err := services.NewExportService(cfg, paths, afero.NewOsFs(), telemetry, logger)
	if err != nil {
		return fmt.Errorf("failed to create export service: %w", err)
	}

	_, err = svc.Run(ctx)
	return err
}

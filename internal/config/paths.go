package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Well-known output file names
const (
	ColumnLabelsFileName    = "_column_labels.json"
	RecordsMetadataFileName = "_records_metadata.csv"
	WorkbookFileName        = "_report.xlsx"
	FamilySummaryFileName   = "_family_summary.csv"
)

// Paths contains every resolved path used by an export run.
// This is the single source of truth for file locations.
type Paths struct {
	BaseDir   string
	InputFile string
	OutputDir string
	TextDir   string
	LogsDir   string

	// Log and metrics destinations
	LogFile     string
	MetricsFile string

	// Well-known output files
	ColumnLabelsFile    string
	RecordsMetadataFile string
	WorkbookFile        string
	FamilySummaryFile   string
}

// NewPaths resolves cfg against its base directory, or the working directory
// when no base directory is configured
func NewPaths(cfg *Config) (*Paths, error) {
	baseDir := cfg.Paths.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	baseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	outputDir := resolve(baseDir, cfg.Paths.OutputDir)
	logsDir := resolve(baseDir, cfg.Paths.LogsDir)

	paths := &Paths{
		BaseDir:   baseDir,
		InputFile: resolve(baseDir, cfg.Paths.InputFile),
		OutputDir: outputDir,
		TextDir:   resolve(outputDir, cfg.Paths.TextSubdir),
		LogsDir:   logsDir,

		ColumnLabelsFile:    filepath.Join(outputDir, ColumnLabelsFileName),
		RecordsMetadataFile: filepath.Join(outputDir, RecordsMetadataFileName),
		WorkbookFile:        filepath.Join(outputDir, WorkbookFileName),
		FamilySummaryFile:   filepath.Join(outputDir, FamilySummaryFileName),
	}

	if cfg.Logging.FilePath != "" {
		paths.LogFile = paths.GetLogPath(cfg.Logging.FilePath)
	}
	if cfg.Telemetry.MetricsFile != "" {
		paths.MetricsFile = resolve(baseDir, cfg.Telemetry.MetricsFile)
	}

	return paths, nil
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// EnsureDirectories creates the output directories if they don't exist
func (p *Paths) EnsureDirectories(fs afero.Fs) error {
	for _, dir := range []string{p.OutputDir, p.TextDir} {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetOutputPath returns the path for a file in the output directory
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetReportPath returns the numeric report path for a family, e.g. be.csv
func (p *Paths) GetReportPath(family string) string {
	return filepath.Join(p.OutputDir, strings.ToLower(family)+".csv")
}

// GetTextReportPath returns the Likert-text report path for a family, e.g. text/be_text.csv
func (p *Paths) GetTextReportPath(family string) string {
	return filepath.Join(p.TextDir, strings.ToLower(family)+"_text.csv")
}

// GetLogPath resolves a log file name against the logs directory.
// Absolute names are kept.
func (p *Paths) GetLogPath(filename string) string {
	return resolve(p.LogsDir, filename)
}

// LogPathResolution logs the resolved layout at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		return
	}

	logger.Debug("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("output", p.OutputDir),
			slog.String("text", p.TextDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("files",
			slog.String("input", p.InputFile),
			slog.String("column_labels", p.ColumnLabelsFile),
			slog.String("records_metadata", p.RecordsMetadataFile),
			slog.String("log", p.LogFile),
			slog.String("metrics", p.MetricsFile),
		))
}

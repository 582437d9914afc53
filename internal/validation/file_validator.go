package validation

import (
	"log/slog"
	"os"

	"github.com/spf13/afero"

	apperrors "surveyexport/internal/errors"
)

// writeProbePattern names the temporary file created and removed to check
// that a directory accepts files
const writeProbePattern = ".write_test-*"

// FileValidator checks the input file and output directory before a run touches them
type FileValidator struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(fs afero.Fs, logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		fs:     fs,
		logger: logger,
	}
}

// ValidateInputFile checks that path exists and is a regular file
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := v.fs.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist",
			slog.String("file", path))
		return apperrors.NewInputError("survey data file not found", err).
			WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat input file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewInputError("failed to stat survey data file", err).
			WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewInputError("survey data path is a directory", nil).
			WithContext("path", path)
	}

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory checks that dir is an existing, writable directory
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	info, err := v.fs.Stat(dir)
	if err != nil {
		v.logger.Error("Output directory is not accessible",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory is not accessible", err).
			WithContext("path", dir)
	}
	if !info.IsDir() {
		v.logger.Error("Output path is not a directory",
			slog.String("path", dir))
		return apperrors.NewStorageError("output path is not a directory", nil).
			WithContext("path", dir)
	}

	file, err := afero.TempFile(v.fs, dir, writeProbePattern)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory is not writable", err).
			WithContext("path", dir)
	}
	probe := file.Name()
	closeErr := file.Close()
	if err := v.fs.Remove(probe); err != nil {
		v.logger.Warn("Failed to remove write check file",
			slog.String("path", probe),
			slog.String("error", err.Error()))
	}
	if closeErr != nil {
		return apperrors.NewStorageError("output directory is not writable", closeErr).
			WithContext("path", dir)
	}

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

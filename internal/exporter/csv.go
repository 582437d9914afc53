package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"surveyexport/internal/config"
	apperrors "surveyexport/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	fs     afero.Fs
	paths  *config.Paths
	output config.OutputConfig
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance.
// output supplies the default BOM and line ending for WriteSimpleCSV.
func NewCSVWriter(fs afero.Fs, paths *config.Paths, output config.OutputConfig, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		fs:     fs,
		paths:  paths,
		output: output,
		logger: logger,
	}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
	UseCRLF   bool
}

// WriteCSV writes data to a CSV file with the given options.
// The whole file is built in memory and written in one call.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	data, err := EncodeCSV(options)
	if err != nil {
		return apperrors.NewStorageError("failed to encode CSV", err).
			WithContext("path", fullPath)
	}

	return writeFile(w.fs, fullPath, data)
}

// WriteSimpleCSV writes headers and records using the configured encoding
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: w.output.BOM,
		UseCRLF:   w.output.CRLF,
	})
}

// EncodeCSV renders headers and records to bytes.
// UseCRLF only changes the record terminator; newlines inside quoted
// fields are written unchanged.
func EncodeCSV(options WriteOptions) ([]byte, error) {
	var buf bytes.Buffer

	if options.BOMPrefix {
		buf.Write(utf8BOM)
	}

	writer := csv.NewWriter(&buf)

	if len(options.Headers) > 0 {
		if err := writeRecord(writer, &buf, options.Headers, options.UseCRLF); err != nil {
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writeRecord(writer, &buf, record, options.UseCRLF); err != nil {
			return nil, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return buf.Bytes(), nil
}

// writeRecord encodes one record into buf and swaps its "\n" terminator
// for "\r\n" when crlf is set
func writeRecord(writer *csv.Writer, buf *bytes.Buffer, record []string, crlf bool) error {
	if err := writer.Write(record); err != nil {
		return err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	if crlf {
		buf.Truncate(buf.Len() - 1)
		buf.WriteString("\r\n")
	}
	return nil
}

// resolvePath keeps absolute paths and places relative ones in the output directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return w.paths.GetOutputPath(filePath)
}

// writeFile creates the parent directory and replaces path with data
func writeFile(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err).
			WithContext("path", filepath.Dir(path))
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return apperrors.NewStorageError("failed to write file", err).
			WithContext("path", path)
	}
	return nil
}

package exporter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/iancoleman/orderedmap"

	"surveyexport/internal/config"
	"surveyexport/internal/dataprocessing"
	apperrors "surveyexport/internal/errors"
	"surveyexport/pkg/contracts/domain"
)

// MetadataExporter writes the column label map and the records listing
type MetadataExporter struct {
	csvWriter *CSVWriter
	paths     *config.Paths
	logger    *slog.Logger
}

// NewMetadataExporter creates a new metadata exporter
func NewMetadataExporter(csvWriter *CSVWriter, paths *config.Paths, logger *slog.Logger) *MetadataExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetadataExporter{
		csvWriter: csvWriter,
		paths:     paths,
		logger:    logger.With(slog.String("component", "metadata_exporter")),
	}
}

// ExportColumnLabels writes family -> code -> header as indented JSON
func (e *MetadataExporter) ExportColumnLabels(groups *dataprocessing.GroupTable) (string, error) {
	path := e.paths.ColumnLabelsFile

	data, err := EncodeColumnLabels(groups)
	if err != nil {
		return "", apperrors.NewStorageError("failed to encode column labels", err).
			WithContext("path", path)
	}
	if err := writeFile(e.csvWriter.fs, path, data); err != nil {
		return "", err
	}

	e.logger.Info("Exported column labels",
		slog.String("path", path),
		slog.Int("family_count", len(groups.Families())))
	return path, nil
}

// ExportRecords writes the identity fields of every record in row order
func (e *MetadataExporter) ExportRecords(records []domain.Record) (string, error) {
	path := e.paths.RecordsMetadataFile

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.Fields())
	}
	if err := e.csvWriter.WriteSimpleCSV(path, domain.RecordHeaders, rows); err != nil {
		return "", err
	}

	e.logger.Info("Exported records metadata",
		slog.String("path", path),
		slog.Int("record_count", len(records)))
	return path, nil
}

// ColumnLabels builds the label map: families in first-seen order,
// codes sorted lexicographically within each family
func ColumnLabels(groups *dataprocessing.GroupTable) *orderedmap.OrderedMap {
	labels := orderedmap.New()
	labels.SetEscapeHTML(false)

	for _, group := range groups.Families() {
		codes := group.Codes()
		sort.Strings(codes)

		family := orderedmap.New()
		family.SetEscapeHTML(false)
		for _, code := range codes {
			family.Set(code, group.Headers[code])
		}
		labels.Set(group.Family, family)
	}
	return labels
}

// EncodeColumnLabels renders the label map with two-space indentation and a
// trailing newline; HTML and non-ASCII characters are written as-is
func EncodeColumnLabels(groups *dataprocessing.GroupTable) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(ColumnLabels(groups)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

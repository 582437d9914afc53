package dataprocessing

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/afero"
	"github.com/valyala/fastjson"

	apperrors "surveyexport/internal/errors"
	"surveyexport/pkg/contracts/domain"
)

// LoadResult holds the rows accepted from a survey document
type LoadResult struct {
	Rows       []domain.Row
	Candidates int
	Dropped    int
}

// Loader reads survey documents from a filesystem
type Loader struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewLoader creates a loader over fs
func NewLoader(fs afero.Fs, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fs:     fs,
		logger: logger.With(slog.String("component", "loader")),
	}
}

// Load reads and parses the document at path.
// A missing or unreadable file is an INPUT error, malformed JSON a PARSING error.
func (l *Loader) Load(path string) (*LoadResult, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		appErr := apperrors.NewInputError("failed to read survey data", err).WithContext("path", path)
		if os.IsNotExist(err) {
			appErr.Message = "survey data file not found"
		}
		return nil, appErr
	}

	result, err := ParseRows(data)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			return nil, appErr.WithContext("path", path)
		}
		return nil, err
	}

	l.logger.Info("Loaded survey rows",
		slog.String("path", path),
		slog.Int("bytes", len(data)),
		slog.Int("candidates", result.Candidates),
		slog.Int("kept", len(result.Rows)),
		slog.Int("dropped", result.Dropped))

	return result, nil
}

// ParseRows decodes a {"rows": [...]} document.
// Rows that are not objects, or whose cells carry neither a header nor a
// value, are dropped and counted.
func ParseRows(data []byte) (*LoadResult, error) {
	var p fastjson.Parser
	doc, err := p.ParseBytes(data)
	if err != nil {
		return nil, apperrors.NewParsingError("invalid JSON document", err)
	}

	top, err := doc.Object()
	if err != nil {
		return nil, apperrors.NewParsingError("top-level JSON value must be an object", nil).
			WithContext("type", doc.Type().String())
	}

	// Repeated keys resolve to the last occurrence.
	var rowsValue *fastjson.Value
	top.Visit(func(key []byte, v *fastjson.Value) {
		if string(key) == "rows" {
			rowsValue = v
		}
	})

	result := &LoadResult{}
	if rowsValue == nil {
		return result, nil
	}

	candidates, err := rowsValue.Array()
	if err != nil {
		return nil, apperrors.NewParsingError("rows must be an array", nil).
			WithContext("type", rowsValue.Type().String())
	}

	result.Candidates = len(candidates)
	result.Rows = make([]domain.Row, 0, len(candidates))

	for _, candidate := range candidates {
		row, ok := decodeRow(candidate)
		if !ok || !row.HasContent() {
			result.Dropped++
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

// decodeRow converts an object row into cells in document order.
// Duplicate column keys keep the first position and the last value.
// Entries that are not cell objects are skipped.
func decodeRow(v *fastjson.Value) (domain.Row, bool) {
	obj, err := v.Object()
	if err != nil {
		return domain.Row{}, false
	}

	type entry struct {
		key   string
		value *fastjson.Value
	}
	var entries []entry
	index := make(map[string]int)

	obj.Visit(func(key []byte, value *fastjson.Value) {
		k := string(key)
		if i, seen := index[k]; seen {
			entries[i].value = value
			return
		}
		index[k] = len(entries)
		entries = append(entries, entry{key: k, value: value})
	})

	row := domain.Row{Cells: make([]domain.Cell, 0, len(entries))}
	for _, e := range entries {
		cell, ok := decodeCell(e.key, e.value)
		if !ok {
			continue
		}
		row.Cells = append(row.Cells, cell)
	}

	return row, true
}

func decodeCell(column string, v *fastjson.Value) (domain.Cell, bool) {
	obj, err := v.Object()
	if err != nil {
		return domain.Cell{}, false
	}

	cell := domain.Cell{Column: column, Value: domain.NullValue()}

	if header := obj.Get("header"); header != nil {
		cell.Header = decodeValue(header).String()
	}
	if value := obj.Get("value"); value != nil {
		cell.Value = decodeValue(value)
	}

	return cell, true
}

// decodeValue maps a JSON value onto a tagged primitive
func decodeValue(v *fastjson.Value) domain.Value {
	switch v.Type() {
	case fastjson.TypeNull:
		return domain.NullValue()
	case fastjson.TypeTrue:
		return domain.BoolValue(true)
	case fastjson.TypeFalse:
		return domain.BoolValue(false)
	case fastjson.TypeString:
		return domain.StringValue(string(v.GetStringBytes()))
	case fastjson.TypeNumber:
		literal := v.String()
		n, err := v.Float64()
		if err != nil {
			// Out-of-range literals saturate to ±Inf.
			n, _ = strconv.ParseFloat(literal, 64)
		}
		return domain.NumberValue(literal, n)
	default:
		return domain.StructuredValue(v.String())
	}
}

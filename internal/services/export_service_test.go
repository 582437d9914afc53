package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyexport/internal/config"
	apperrors "surveyexport/internal/errors"
	"surveyexport/internal/infrastructure"
	"surveyexport/internal/shared/testutil"
)

const surveyDocument = `{
  "rows": [
    {
      "A": {"header": "Mã", "value": "HS01"},
      "C": {"header": "Giới tính", "value": "Nữ"},
      "D": {"header": "Lớp", "value": 10},
      "E": {"header": "Trường", "value": "THPT A"},
      "F": {"header": "[BE1] Tôi thấy vui", "value": 3},
      "G": {"header": "[BE5] Tôi thấy chán", "value": 2}
    },
    "not a row",
    {"A": {"header": "", "value": null}},
    {
      "C": {"header": "Giới tính", "value": "Nam"},
      "F": {"header": "[BE1] Tôi thấy vui", "value": 5},
      "H": {"header": "[PU1] Tôi thích", "value": 4}
    }
  ]
}`

func newTestService(t *testing.T, mutate func(cfg *config.Config), tel *infrastructure.Telemetry) (*ExportService, afero.Fs, *config.Paths, *testutil.BufferedSlogHandler) {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.BaseDir = "/survey"
	if mutate != nil {
		mutate(cfg)
	}
	paths, err := config.NewPaths(cfg)
	require.NoError(t, err)

	logger, handler := testutil.NewTestLogger(t)
	fs := afero.NewMemMapFs()

	svc, err := NewExportService(cfg, paths, fs, tel, logger)
	require.NoError(t, err)
	return svc, fs, paths, handler
}

func writeInput(t *testing.T, fs afero.Fs, paths *config.Paths, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, paths.InputFile, []byte(content), 0644))
}

func readOutput(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(content)
}

func TestExportService_Run(t *testing.T) {
	svc, fs, paths, handler := newTestService(t, nil, nil)
	writeInput(t, fs, paths, surveyDocument)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 2, result.RowsKept)
	assert.Equal(t, 2, result.RowsDropped)
	assert.Equal(t, []string{"MISC", "BE", "PU"}, result.Families)
	assert.Equal(t, []string{
		"/survey/data/csv/misc.csv",
		"/survey/data/csv/text/misc_text.csv",
		"/survey/data/csv/be.csv",
		"/survey/data/csv/text/be_text.csv",
		"/survey/data/csv/pu.csv",
		"/survey/data/csv/text/pu_text.csv",
		"/survey/data/csv/_column_labels.json",
		"/survey/data/csv/_records_metadata.csv",
	}, result.Files)

	assert.Equal(t,
		"id,gender,grade,school,BE1,BE5_raw,BE5,sum,average,level\r\n"+
			"HS01,Nữ,10,THPT A,3,2,3,6,3,Trung bình\r\n"+
			"2,Nam,,,5,,,5,5,Cao\r\n",
		readOutput(t, fs, paths.GetReportPath("BE")))

	assert.Equal(t,
		"id,gender,grade,school,PU1,level\r\n"+
			"HS01,Nữ,10,THPT A,,\r\n"+
			"2,Nam,,,Đồng ý,Cao\r\n",
		readOutput(t, fs, paths.GetTextReportPath("PU")))

	assert.Equal(t,
		"id,gender,grade,school\r\nHS01,Nữ,10,THPT A\r\n2,Nam,,\r\n",
		readOutput(t, fs, paths.RecordsMetadataFile))

	exists, err := afero.Exists(fs, paths.WorkbookFile)
	require.NoError(t, err)
	assert.False(t, exists, "workbook is opt-in")

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Survey export complete")
	testutil.AssertLogAttr(t, handler, "component", "export_service")
	testutil.AssertLogAttr(t, handler, "reversed_columns", "BE5,BL5,DH4,KT4,OR5,PV4,TQ5,YE5")
	testutil.AssertNoErrors(t, handler)
}

func TestExportService_OptionalOutputs(t *testing.T) {
	svc, fs, paths, _ := newTestService(t, func(cfg *config.Config) {
		cfg.Output.Workbook = true
		cfg.Output.Summary = true
		cfg.Output.BOM = true
	}, nil)
	writeInput(t, fs, paths, surveyDocument)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, result.Files, paths.WorkbookFile)
	assert.Contains(t, result.Files, paths.FamilySummaryFile)

	summary := readOutput(t, fs, paths.FamilySummaryFile)
	assert.Contains(t, summary, "\xEF\xBB\xBFfamily,columns,respondents,scored")
	assert.Contains(t, summary, "BE,2,2,2,4,4,1,1,1,0\r\n")
}

func TestExportService_EmptyInput(t *testing.T) {
	svc, fs, paths, _ := newTestService(t, nil, nil)
	writeInput(t, fs, paths, `{"rows": []}`)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, result.Families)
	assert.Equal(t, "{}\n", readOutput(t, fs, paths.ColumnLabelsFile))
	assert.Equal(t, "id,gender,grade,school\r\n", readOutput(t, fs, paths.RecordsMetadataFile))
}

func TestExportService_InputErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  *string
		wantType apperrors.ErrorType
	}{
		{name: "missing file", content: nil, wantType: apperrors.ErrTypeInput},
		{name: "empty file", content: ptr(""), wantType: apperrors.ErrTypeParsing},
		{name: "malformed json", content: ptr(`{"rows": [`), wantType: apperrors.ErrTypeParsing},
		{name: "rows not a list", content: ptr(`{"rows": {}}`), wantType: apperrors.ErrTypeParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, fs, paths, handler := newTestService(t, nil, nil)
			if tt.content != nil {
				writeInput(t, fs, paths, *tt.content)
			}

			result, err := svc.Run(context.Background())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)

			exists, _ := afero.DirExists(fs, paths.OutputDir)
			assert.False(t, exists, "nothing is written on input failure")
			testutil.AssertLogContains(t, handler, slog.LevelError, "Export stage failed")
		})
	}
}

func TestExportService_InputIsDirectory(t *testing.T) {
	svc, fs, paths, _ := newTestService(t, nil, nil)
	require.NoError(t, fs.MkdirAll(paths.InputFile, 0755))

	_, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInput))
}

func TestExportService_StorageError(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.BaseDir = "/survey"
	paths, err := config.NewPaths(cfg)
	require.NoError(t, err)

	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, paths.InputFile, []byte(surveyDocument), 0644))

	svc, err := NewExportService(cfg, paths, afero.NewReadOnlyFs(base), nil, slog.Default())
	require.NoError(t, err)

	_, err = svc.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestExportService_RunMetrics(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "survey.prom")
	telCfg := infrastructure.DefaultTelemetryConfig()
	telCfg.MetricsFile = metricsFile

	logger, _ := testutil.NewTestLogger(t)
	tel, err := infrastructure.InitializeTelemetry(telCfg, logger)
	require.NoError(t, err)

	svc, fs, paths, _ := newTestService(t, nil, tel)
	writeInput(t, fs, paths, surveyDocument)

	ctx := infrastructure.WithRunID(context.Background(), "run-123")
	result, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-123", result.RunID)

	require.NoError(t, tel.Shutdown(context.Background()))

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "survey_rows_kept_total")
	assert.Contains(t, text, "survey_files_written_total")
	for _, stage := range []string{"load", "metadata", "group", "report", "write"} {
		assert.Contains(t, text, `stage="`+stage+`"`)
	}
}

func ptr(s string) *string {
	return &s
}

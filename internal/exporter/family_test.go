package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyexport/internal/config"
	"surveyexport/internal/dataprocessing"
	"surveyexport/pkg/contracts/domain"
)

func surveyRows() []domain.Row {
	cell := func(column, header string, value domain.Value) domain.Cell {
		return domain.Cell{Column: column, Header: header, Value: value}
	}
	return []domain.Row{
		{Cells: []domain.Cell{
			cell("A", "Mã", domain.StringValue("HS01")),
			cell("C", "Giới tính", domain.StringValue("Nữ")),
			cell("D", "Lớp", domain.NumberValue("10", 10)),
			cell("E", "Trường", domain.StringValue("THPT A")),
			cell("F", "[BE1] Tôi thấy vui", domain.NumberValue("3", 3)),
			cell("G", "[BE5] Tôi thấy chán", domain.NumberValue("2", 2)),
		}},
		{Cells: []domain.Cell{
			cell("C", "Giới tính", domain.StringValue("Nam")),
			cell("F", "[BE1] Tôi thấy vui", domain.StringValue("không rõ")),
		}},
	}
}

func surveyReports(t *testing.T) ([]dataprocessing.FamilyReport, *dataprocessing.GroupTable, []domain.Record) {
	t.Helper()
	rows := surveyRows()
	groups := dataprocessing.CollectGroups(rows)
	records := dataprocessing.ExtractRecords(rows)
	reports, err := dataprocessing.NewReportBuilder(dataprocessing.DefaultTransforms(), quietLogger()).
		Build(groups, records)
	require.NoError(t, err)
	return reports, groups, records
}

func reportFor(t *testing.T, reports []dataprocessing.FamilyReport, family string) dataprocessing.FamilyReport {
	t.Helper()
	for _, r := range reports {
		if r.Family == family {
			return r
		}
	}
	require.FailNow(t, "family not found", family)
	return dataprocessing.FamilyReport{}
}

func TestNumericReport(t *testing.T) {
	reports, _, _ := surveyReports(t)
	be := reportFor(t, reports, "BE")

	assert.Equal(t,
		[]string{"id", "gender", "grade", "school", "BE1", "BE5_raw", "BE5", "sum", "average", "level"},
		NumericHeaders(be))

	assert.Equal(t, [][]string{
		{"HS01", "Nữ", "10", "THPT A", "3", "2", "3", "6", "3", "Trung bình"},
		{"2", "Nam", "", "", "không rõ", "", "", "", "", ""},
	}, NumericRows(be))
}

func TestTextReport(t *testing.T) {
	reports, _, _ := surveyReports(t)
	be := reportFor(t, reports, "BE")

	assert.Equal(t, []string{"id", "gender", "grade", "school", "BE1", "BE5", "level"}, TextHeaders(be))
	assert.Equal(t, [][]string{
		{"HS01", "Nữ", "10", "THPT A", "Phân vân / Bình thường", "Không đồng ý", "Trung bình"},
		{"2", "Nam", "", "", "không rõ", "", ""},
	}, TextRows(be))
}

func TestFamilyExporter_Export(t *testing.T) {
	writer, fs, paths := setupTestEnv(t, config.OutputConfig{CRLF: true})
	reports, _, _ := surveyReports(t)

	written, err := NewFamilyExporter(writer, paths, quietLogger()).Export(reports)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/survey/data/csv/misc.csv",
		"/survey/data/csv/text/misc_text.csv",
		"/survey/data/csv/be.csv",
		"/survey/data/csv/text/be_text.csv",
	}, written)

	assert.Equal(t,
		"id,gender,grade,school,BE1,BE5_raw,BE5,sum,average,level\r\n"+
			"HS01,Nữ,10,THPT A,3,2,3,6,3,Trung bình\r\n"+
			"2,Nam,,,không rõ,,,,,\r\n",
		readFile(t, fs, "/survey/data/csv/be.csv"))

	assert.Equal(t,
		"id,gender,grade,school,BE1,BE5,level\r\n"+
			"HS01,Nữ,10,THPT A,Phân vân / Bình thường,Không đồng ý,Trung bình\r\n"+
			"2,Nam,,,không rõ,,\r\n",
		readFile(t, fs, "/survey/data/csv/text/be_text.csv"))
}

func TestFamilyExporter_MiscColumns(t *testing.T) {
	reports, _, _ := surveyReports(t)
	misc := reportFor(t, reports, domain.MiscFamily)

	assert.Equal(t,
		[]string{"id", "gender", "grade", "school", "GIOI_TINH", "LOP", "MA", "TRUONG", "sum", "average", "level"},
		NumericHeaders(misc))

	rows := NumericRows(misc)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"HS01", "Nữ", "10", "THPT A", "Nữ", "10", "HS01", "THPT A", "10", "10", "Cao"}, rows[0])
}

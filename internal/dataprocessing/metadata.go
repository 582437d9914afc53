package dataprocessing

import (
	"strconv"

	"surveyexport/pkg/contracts/domain"
)

// ExtractRecords pulls the identity fields of every row.
// Numbers keep their source form, so a 3.0 id stays "3.0".
// An empty id column falls back to the row's 1-based position.
func ExtractRecords(rows []domain.Row) []domain.Record {
	records := make([]domain.Record, 0, len(rows))
	for i, row := range rows {
		record := domain.Record{
			ID:     columnText(row, domain.ColumnID),
			Gender: columnText(row, domain.ColumnGender),
			Grade:  columnText(row, domain.ColumnGrade),
			School: columnText(row, domain.ColumnSchool),
		}
		if record.ID == "" {
			record.ID = strconv.Itoa(i + 1)
		}
		records = append(records, record)
	}
	return records
}

func columnText(row domain.Row, column string) string {
	cell, ok := row.Cell(column)
	if !ok {
		return ""
	}
	return FormatLiteral(NormalizeValue(cell.Value))
}

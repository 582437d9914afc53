package dataprocessing

import (
	"strings"

	"surveyexport/pkg/contracts/domain"
)

// FamilyGroup holds one column family's headers and per-row values
type FamilyGroup struct {
	Family  string
	Headers map[string]string
	rows    map[int]map[string]domain.Value
}

// GroupTable maps families to their groups, remembering first-seen order
type GroupTable struct {
	families map[string]*FamilyGroup
	order    []string
	rowCount int
	cells    int
}

// NewGroupTable creates an empty table
func NewGroupTable() *GroupTable {
	return &GroupTable{families: make(map[string]*FamilyGroup)}
}

// Family returns the group for name, creating it on first use
func (t *GroupTable) Family(name string) *FamilyGroup {
	if g, ok := t.families[name]; ok {
		return g
	}
	g := &FamilyGroup{
		Family:  name,
		Headers: make(map[string]string),
		rows:    make(map[int]map[string]domain.Value),
	}
	t.families[name] = g
	t.order = append(t.order, name)
	return g
}

// Lookup returns an existing group without creating one
func (t *GroupTable) Lookup(name string) (*FamilyGroup, bool) {
	g, ok := t.families[name]
	return g, ok
}

// Families returns every group in first-seen order
func (t *GroupTable) Families() []*FamilyGroup {
	out := make([]*FamilyGroup, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.families[name])
	}
	return out
}

// RowCount is the number of rows every family is padded to
func (t *GroupTable) RowCount() int {
	return t.rowCount
}

// CellCount is the number of cells assigned to a family during collection
func (t *GroupTable) CellCount() int {
	return t.cells
}

// Pad gives every family an entry for each row index 1..total
func (t *GroupTable) Pad(total int) {
	if total > t.rowCount {
		t.rowCount = total
	}
	for _, name := range t.order {
		t.families[name].pad(t.rowCount)
	}
}

// Set stores a value under row and code, remembering header as the code's label
func (g *FamilyGroup) Set(row int, code, header string, value domain.Value) {
	g.Headers[code] = header
	g.row(row)[code] = value
}

// row returns the values for index, creating the entry on first use
func (g *FamilyGroup) row(index int) map[string]domain.Value {
	values, ok := g.rows[index]
	if !ok {
		values = make(map[string]domain.Value)
		g.rows[index] = values
	}
	return values
}

func (g *FamilyGroup) pad(total int) {
	for i := 1; i <= total; i++ {
		g.row(i)
	}
}

// HasRow reports whether an entry exists for index
func (g *FamilyGroup) HasRow(index int) bool {
	_, ok := g.rows[index]
	return ok
}

// Value returns the normalized value at row and code; missing cells are ""
func (g *FamilyGroup) Value(row int, code string) domain.Value {
	if v, ok := g.rows[row][code]; ok {
		return v
	}
	return domain.StringValue("")
}

// Codes returns the family's column codes in unspecified order
func (g *FamilyGroup) Codes() []string {
	codes := make([]string, 0, len(g.Headers))
	for code := range g.Headers {
		codes = append(codes, code)
	}
	return codes
}

// SortedCodes returns the codes in report column order
func (g *FamilyGroup) SortedCodes() []string {
	return SortColumns(g.Family, g.Codes())
}

// CollectGroups assigns every labeled cell to its family.
// Row indexes are 1-based positions in rows; every family is padded to len(rows).
func CollectGroups(rows []domain.Row) *GroupTable {
	table := NewGroupTable()

	for i, row := range rows {
		index := i + 1
		for _, cell := range row.Cells {
			header := strings.TrimSpace(cell.Header)
			if header == "" {
				continue
			}
			c := ClassifyHeader(header)
			table.Family(c.Family).Set(index, c.Code, header, NormalizeValue(cell.Value))
			table.cells++
		}
	}

	table.Pad(len(rows))
	return table
}

// NormalizeValue reduces a cell value to a string or a number:
// null becomes "", booleans "true"/"false", structured values their JSON text
func NormalizeValue(v domain.Value) domain.Value {
	switch v.Kind {
	case domain.ValueKindNumber, domain.ValueKindString:
		return v
	case domain.ValueKindBool, domain.ValueKindStructured:
		return domain.StringValue(v.String())
	default:
		return domain.StringValue("")
	}
}

package dataset

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/zatekoja/facilityqualityinsights/pkg/errors"
)

// FacilityColumn is the column every dataset identifies facilities by.
const FacilityColumn = "Facility Name"

// Table is an immutable in-memory tabular dataset. Cells are kept as raw
// strings; the normalized facility column is computed once at build time so
// per-request filtering never re-normalizes.
type Table struct {
	name         string
	columns      []string
	index        map[string]int
	rows         [][]string
	facilityNorm []string
}

// NewTable builds a table from a header row and data rows. Short rows are
// padded so every cell lookup is safe.
func NewTable(name string, header []string, rows [][]string) *Table {
	index := make(map[string]int, len(header))
	columns := make([]string, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		columns[i] = col
		if _, exists := index[col]; !exists {
			index[col] = i
		}
	}

	padded := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) < len(columns) {
			grown := make([]string, len(columns))
			copy(grown, row)
			row = grown
		}
		padded[i] = row
	}

	t := &Table{
		name:    name,
		columns: columns,
		index:   index,
		rows:    padded,
	}

	if col, ok := t.index[FacilityColumn]; ok {
		t.facilityNorm = make([]string, len(t.rows))
		for i, row := range t.rows {
			t.facilityNorm[i] = Normalize(row[col])
		}
	}

	return t
}

// Name returns the table's display name, used in schema errors.
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// EnsureColumns verifies the required columns exist, returning a schema error
// naming the table and every missing column otherwise.
func (t *Table) EnsureColumns(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := t.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewSchemaError(
			fmt.Sprintf("%s is missing columns: %s", t.name, strings.Join(missing, ", ")),
		)
	}
	return nil
}

// Cell returns the trimmed value at row i in the named column. Unknown
// columns yield an empty string; callers guard with EnsureColumns first.
func (t *Table) Cell(i int, column string) string {
	col, ok := t.index[column]
	if !ok || i < 0 || i >= len(t.rows) {
		return ""
	}
	return strings.TrimSpace(t.rows[i][col])
}

// FacilityRows returns the indices of rows whose normalized facility name
// equals the normalized input.
func (t *Table) FacilityRows(facility string) []int {
	if t.facilityNorm == nil {
		return nil
	}
	want := Normalize(facility)
	var out []int
	for i, norm := range t.facilityNorm {
		if norm == want {
			out = append(out, i)
		}
	}
	return out
}

// FacilityNames returns the distinct non-blank raw facility names in this
// table, sorted for deterministic iteration.
func (t *Table) FacilityNames() []string {
	col, ok := t.index[FacilityColumn]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	for _, row := range t.rows {
		name := strings.TrimSpace(row[col])
		if name == "" {
			continue
		}
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalize maps a raw facility name to its comparison key.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

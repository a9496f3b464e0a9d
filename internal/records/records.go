// Package records defines the in-memory table model shared by the parser,
// the transformer chain, and the storage backends.
//
// A Record maps canonical column names to cell values. Cell values are one
// of: string, int64, or nil (missing). A Table pairs an ordered column list
// with a slice of Records; the column list is the single source of truth for
// column existence and output order, since Go maps do not preserve order.
package records

// Record is a single row keyed by canonical column name.
type Record map[string]any

// Table is an ordered collection of rows sharing one column set. Rows carry
// no identity; position is the only reference.
type Table struct {
	Columns []string
	Rows    []Record
}

// New returns an empty Table with the given column order.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

// HasColumn reports whether name is part of the table's column set.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends name to the column order. Existing rows are not touched;
// a row without a value for the new column reads as nil. Adding an existing
// column is a no-op.
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
}

// DropColumn removes name from the column order and deletes its values from
// every row. Dropping an absent column is a no-op.
func (t *Table) DropColumn(name string) {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	t.Columns = append(t.Columns[:idx], t.Columns[idx+1:]...)
	for _, r := range t.Rows {
		delete(r, name)
	}
}

// Head truncates the table to its first n rows. A non-positive n empties the
// table; n beyond the row count leaves it unchanged.
func (t *Table) Head(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(t.Rows) {
		t.Rows = t.Rows[:n]
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// RowValues returns one row's cells in column order. Missing cells are nil.
func (t *Table) RowValues(i int) []any {
	row := t.Rows[i]
	out := make([]any, len(t.Columns))
	for j, c := range t.Columns {
		out[j] = row[c]
	}
	return out
}

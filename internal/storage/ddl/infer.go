// Package ddl infers column definitions for the replace-load from the
// in-memory table. The cleaned catalog only carries two value shapes, text
// and integer, so inference is a scan for int64 cells per column.
package ddl

import "catalogetl/internal/records"

// Kind is the inferred storage type of one column.
type Kind int

const (
	// Text holds free-form strings; the fallback for all-nil columns.
	Text Kind = iota
	// Integer holds nullable 64-bit integers (the Prices column).
	Integer
)

// Infer returns one Kind per table column, in column order. A column is
// Integer when at least one cell is int64 and no cell is a string; mixed
// columns degrade to Text so no value is lost on load.
func Infer(t *records.Table) []Kind {
	kinds := make([]Kind, len(t.Columns))
	for i, col := range t.Columns {
		sawInt := false
		sawString := false
		for _, r := range t.Rows {
			switch r[col].(type) {
			case int64:
				sawInt = true
			case string:
				sawString = true
			}
		}
		if sawInt && !sawString {
			kinds[i] = Integer
		}
	}
	return kinds
}

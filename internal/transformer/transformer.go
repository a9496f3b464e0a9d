// Package transformer defines the column-scoped transformation contract used
// by the cleaning stage. Transformers mutate a Table in place; a Chain runs
// them in order. Order matters: later steps may assume earlier ones ran.
package transformer

import "catalogetl/internal/records"

// Transformer applies one cleaning rule to a table in place. Implementations
// must tolerate absent columns and non-string cells (both are no-ops) and
// must never fail on malformed cell values.
type Transformer interface {
	Apply(t *records.Table)
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs every transformer in order.
func (c Chain) Apply(t *records.Table) {
	for _, step := range c {
		step.Apply(t)
	}
}

package builtin

import (
	"strings"

	"catalogetl/internal/records"
)

// Replacement is one literal substring rewrite.
type Replacement struct {
	Old string
	New string
}

// ReplaceLiteral applies an ordered list of literal substring replacements to
// every string cell in Column. Replacements run sequentially, so later pairs
// see the output of earlier ones; the pair order is part of the rule
// definition and must not be reordered. Cells matching no pair pass through
// unchanged, malformed values included.
type ReplaceLiteral struct {
	Column string
	Pairs  []Replacement
}

func (rl ReplaceLiteral) Apply(t *records.Table) {
	if !t.HasColumn(rl.Column) {
		return
	}
	for _, r := range t.Rows {
		s, ok := r[rl.Column].(string)
		if !ok {
			continue
		}
		for _, p := range rl.Pairs {
			s = strings.ReplaceAll(s, p.Old, p.New)
		}
		r[rl.Column] = s
	}
}

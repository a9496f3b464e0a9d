package builtin

import (
	"strings"

	"catalogetl/internal/records"
)

// KeepTokens shortens every string cell in Column to its first N
// whitespace-delimited tokens, rejoined with single spaces. Cells with fewer
// than N tokens keep everything they have; an all-whitespace cell becomes "".
type KeepTokens struct {
	Column string
	N      int
}

func (k KeepTokens) Apply(t *records.Table) {
	if !t.HasColumn(k.Column) || k.N <= 0 {
		return
	}
	for _, r := range t.Rows {
		s, ok := r[k.Column].(string)
		if !ok {
			continue
		}
		fields := strings.Fields(s)
		if len(fields) > k.N {
			fields = fields[:k.N]
		}
		r[k.Column] = strings.Join(fields, " ")
	}
}

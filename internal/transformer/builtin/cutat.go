package builtin

import (
	"strings"

	"catalogetl/internal/records"
)

// CutAt truncates every string cell in Column at the first occurrence of Sep
// and trims the surrounding whitespace. Cells without Sep are only trimmed.
// Used to drop parenthesised suffixes such as clock speeds and codenames.
type CutAt struct {
	Column string
	Sep    string
}

func (c CutAt) Apply(t *records.Table) {
	if !t.HasColumn(c.Column) {
		return
	}
	for _, r := range t.Rows {
		s, ok := r[c.Column].(string)
		if !ok {
			continue
		}
		head, _, _ := strings.Cut(s, c.Sep)
		r[c.Column] = strings.TrimSpace(head)
	}
}

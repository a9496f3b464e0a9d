package builtin

import (
	"strings"

	"catalogetl/internal/records"
)

// DropPrefix removes every column whose name starts with Prefix. Spreadsheet
// exports insert unnamed index columns ("Unnamed: 0", "Unnamed: 0.1", ...);
// this is the rule that strips them.
type DropPrefix struct {
	Prefix string
}

func (d DropPrefix) Apply(t *records.Table) {
	if d.Prefix == "" {
		return
	}
	var doomed []string
	for _, c := range t.Columns {
		if strings.HasPrefix(c, d.Prefix) {
			doomed = append(doomed, c)
		}
	}
	for _, c := range doomed {
		t.DropColumn(c)
	}
}

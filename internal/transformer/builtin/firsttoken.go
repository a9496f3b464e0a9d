package builtin

import (
	"strings"

	"catalogetl/internal/records"
)

// FirstToken derives Target from the first whitespace-delimited token of
// Source, then optionally drops Source. An empty, missing, or non-string
// source cell yields a nil target.
//
// When the Source column is absent from the table the transform is a no-op,
// which keeps a second pass over already-cleaned output from clobbering the
// derived column.
type FirstToken struct {
	Source     string
	Target     string
	DropSource bool
}

func (f FirstToken) Apply(t *records.Table) {
	if !t.HasColumn(f.Source) {
		return
	}
	t.AddColumn(f.Target)
	for _, r := range t.Rows {
		var token any
		if s, ok := r[f.Source].(string); ok {
			if fields := strings.Fields(s); len(fields) > 0 {
				token = fields[0]
			}
		}
		r[f.Target] = token
	}
	if f.DropSource {
		t.DropColumn(f.Source)
	}
}

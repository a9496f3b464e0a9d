// Package builtin contains the reusable column transforms that the catalog
// cleaning rules are assembled from. Every transform follows the same
// fail-soft contract: absent columns and non-string cells are left alone,
// and no cell value ever causes an error.
package builtin

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"catalogetl/internal/records"
)

// Normalize canonicalizes every string cell in the table: NFC unicode
// normalization, NO-BREAK SPACE to ASCII space, and edge-whitespace trim.
// It runs before any column rule so that token splitting and literal
// replacements see consistent input.
type Normalize struct{}

const nbsp = " "

func (Normalize) Apply(t *records.Table) {
	for _, r := range t.Rows {
		for k, v := range r {
			s, ok := v.(string)
			if !ok {
				continue
			}
			s = norm.NFC.String(s)
			s = strings.ReplaceAll(s, nbsp, " ")
			r[k] = strings.TrimSpace(s)
		}
	}
}

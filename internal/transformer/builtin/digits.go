package builtin

import (
	"strconv"
	"strings"

	"catalogetl/internal/records"
)

// DigitsToInt converts every string cell in Column to an int64 count of
// minor currency units: thousands-separator commas are stripped first, then
// every remaining non-digit rune (currency symbols, text, a lone minus
// sign). A cell that ends up empty or unparsable becomes nil rather than
// failing the run. Cells already numeric are left untouched.
//
// Stripping the minus sign means negative-looking inputs silently become
// positive integers. That matches the upstream feed's observed behavior and
// is deliberately not corrected here.
type DigitsToInt struct {
	Column string
}

func (d DigitsToInt) Apply(t *records.Table) {
	if !t.HasColumn(d.Column) {
		return
	}
	for _, r := range t.Rows {
		s, ok := r[d.Column].(string)
		if !ok {
			continue
		}
		s = strings.ReplaceAll(s, ",", "")
		var b strings.Builder
		for _, c := range s {
			if c >= '0' && c <= '9' {
				b.WriteRune(c)
			}
		}
		n, err := strconv.ParseInt(b.String(), 10, 64)
		if err != nil {
			r[d.Column] = nil
			continue
		}
		r[d.Column] = n
	}
}

// Package csv parses the vendor catalog export into a records.Table.
//
// The export is a fixed-shape file with a header row, so parsing is strict
// where structure is concerned (a broken header or unreadable CSV aborts the
// run) and lenient where cell content is concerned (values are kept verbatim
// as strings; cleaning them is the transformer chain's job).
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"catalogetl/internal/records"
)

// Options configures parsing. Zero values select the defaults used by the
// catalog feed.
type Options struct {
	// Comma is the field delimiter; ',' when zero.
	Comma rune

	// LazyQuotes tolerates unescaped quotes inside fields. The vendor export
	// occasionally ships these in free-text titles.
	LazyQuotes bool
}

// Parser turns CSV bytes into a Table. Safe to reuse across inputs.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

const utf8BOM = "\xef\xbb\xbf"

// Parse reads all of r into a Table. The first row is the header: cells are
// trimmed, a UTF-8 BOM on the first cell is stripped, and duplicate names
// get a ".1", ".2", ... suffix the way prior spreadsheet exports already
// disambiguate them. Body rows narrower than the header leave the missing
// trailing cells nil; wider rows have their extras ignored.
//
// Any csv-level read error is fatal and no table is returned.
func (p *Parser) Parse(r io.Reader) (*records.Table, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.LazyQuotes = p.opt.LazyQuotes
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}
	columns := canonicalHeader(header)
	tbl := records.New(columns)

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "csv: read row at line %d", line)
		}
		rec := make(records.Record, len(columns))
		for i, col := range columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		tbl.Rows = append(tbl.Rows, rec)
	}

	return tbl, nil
}

// canonicalHeader trims header cells, strips the BOM, and de-duplicates
// repeated names with numeric suffixes.
func canonicalHeader(h []string) []string {
	seen := map[string]int{}
	out := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if n, dup := seen[c]; dup {
			seen[c] = n + 1
			c = fmt.Sprintf("%s.%d", c, n)
		} else {
			seen[c] = 1
		}
		out[i] = c
	}
	return out
}

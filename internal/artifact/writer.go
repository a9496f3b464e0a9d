// Package artifact persists table snapshots to the local artifacts
// directory. The run saves two: the raw table right after fetch and the
// cleaned table right after normalization (full row count, before the load
// truncation). They exist for audit and debugging, not for downstream
// consumption.
package artifact

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"

	"catalogetl/internal/records"
)

// Conventional snapshot file names, matching what the scheduled job has
// always produced.
const (
	RawName     = "raw_data.csv"
	CleanedName = "transformed_data.csv"
)

// Writer saves snapshots under one directory.
type Writer struct {
	dir string
	log *zap.Logger
}

// NewWriter ensures dir exists and returns a Writer bound to it.
func NewWriter(dir string, log *zap.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "artifact: create dir %s", dir)
	}
	return &Writer{dir: dir, log: log}, nil
}

// Save writes the table as CSV to name inside the artifacts directory and
// returns the full path. Column order is preserved; nil cells serialize as
// empty strings and integers as plain decimals. The write is logged with
// row count and an xxh3 checksum of the file bytes.
func (w *Writer) Save(name string, t *records.Table) (string, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(t.Columns); err != nil {
		return "", eris.Wrap(err, "artifact: write header")
	}
	row := make([]string, len(t.Columns))
	for i := 0; i < t.Len(); i++ {
		for j, v := range t.RowValues(i) {
			row[j] = cellString(v)
		}
		if err := cw.Write(row); err != nil {
			return "", eris.Wrapf(err, "artifact: write row %d", i)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", eris.Wrap(err, "artifact: flush csv")
	}

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", eris.Wrapf(err, "artifact: write %s", path)
	}

	w.log.Info("artifact saved",
		zap.String("path", path),
		zap.Int("rows", t.Len()),
		zap.String("xxh3", fmt.Sprintf("%016x", xxh3.Hash(buf.Bytes()))),
	)
	return path, nil
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(t)
	}
}

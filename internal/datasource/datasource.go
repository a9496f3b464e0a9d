// Package datasource abstracts where the raw catalog export comes from.
// Implementations return a byte stream; parsing is the csv parser's job.
package datasource

import (
	"context"
	"io"
)

// Source opens the raw input for one run. A failed Open is a fatal retrieval
// error: no partial table is ever produced from it.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

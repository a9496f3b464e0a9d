// Package file implements a local filesystem data source, used for offline
// runs against an already-downloaded export and by tests.
package file

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// Local opens a catalog export from the local disk.
type Local struct{ path string }

// NewLocal returns a Local source bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open opens the configured path for reading. A context that is already done
// fails fast without touching the filesystem. Filesystem errors are wrapped
// with the path; errors.Is(err, os.ErrNotExist) still works through the wrap.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, eris.Wrapf(err, "file source: open %s", l.path)
	}
	return f, nil
}

// Package storage contains the warehouse-loading contract and the backend
// factory. Backends implement a single destructive operation: replace a
// table's full contents with the given rows. There is no merge, append, or
// upsert mode; that is the contract the scheduled job has with its
// consumers.
package storage

import (
	"context"

	"github.com/rotisserie/eris"

	"catalogetl/internal/records"
	"catalogetl/internal/storage/postgres"
	"catalogetl/internal/storage/sqlite"
)

// Repository loads one cleaned table into the warehouse.
type Repository interface {
	// Replace drops and recreates the named table, inferring column DDL
	// from the table's values, then bulk-inserts every row. It returns the
	// number of rows written. Once the replace begins, a failure may leave
	// the target empty or partial depending on the warehouse's own
	// transactional guarantees.
	Replace(ctx context.Context, table string, t *records.Table) (int64, error)

	// Close releases the underlying connections.
	Close()
}

// Config selects and parameterizes a backend.
type Config struct {
	Kind string // "postgres" or "sqlite"
	DSN  string
}

// New opens the backend selected by cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	switch cfg.Kind {
	case "postgres":
		return postgres.NewRepository(ctx, cfg.DSN)
	case "sqlite":
		return sqlite.NewRepository(ctx, cfg.DSN)
	default:
		return nil, eris.Errorf("storage: unknown kind %q", cfg.Kind)
	}
}

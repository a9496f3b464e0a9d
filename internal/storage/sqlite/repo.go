// Package sqlite implements the warehouse replace-load on database/sql with
// the modernc SQLite driver. SQLite has no COPY, so the load is a prepared
// INSERT per row inside one transaction, which is plenty for a 50-row
// catalog and lets the end-to-end path run without a warehouse.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"catalogetl/internal/records"
	"catalogetl/internal/storage/ddl"
)

// Repository is a SQLite-backed replace loader.
type Repository struct {
	db *sql.DB
}

// NewRepository opens the SQLite database at dsn, e.g. "catalog.db" or
// "file::memory:?cache=shared", and pings it to fail fast on bad paths.
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, eris.New("sqlite: DSN must not be empty")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: ping")
	}
	return &Repository{db: db}, nil
}

// DB exposes the underlying handle for test assertions.
func (r *Repository) DB() *sql.DB { return r.db }

// Replace drops and recreates table, then inserts every row in one
// transaction.
func (r *Repository) Replace(ctx context.Context, table string, t *records.Table) (int64, error) {
	if len(t.Columns) == 0 {
		return 0, eris.New("sqlite: table has no columns")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
		return 0, eris.Wrapf(err, "sqlite: drop %s", table)
	}
	if _, err := tx.ExecContext(ctx, createStmt(table, t)); err != nil {
		return 0, eris.Wrapf(err, "sqlite: create %s", table)
	}

	placeholders := make([]string, len(t.Columns))
	quoted := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		placeholders[i] = "?"
		quoted[i] = quoteIdent(c)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "),
	))
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	var n int64
	for i := 0; i < t.Len(); i++ {
		if _, err := stmt.ExecContext(ctx, t.RowValues(i)...); err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert row %d", i)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit")
	}
	return n, nil
}

// Close closes the database handle.
func (r *Repository) Close() { r.db.Close() }

func createStmt(table string, t *records.Table) string {
	kinds := ddl.Infer(t)
	defs := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		sqlType := "TEXT"
		if kinds[i] == ddl.Integer {
			sqlType = "INTEGER"
		}
		defs[i] = quoteIdent(col) + " " + sqlType
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
}

// quoteIdent quotes an identifier with double quotes, SQLite style.
func quoteIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// Package postgres implements the warehouse replace-load on pgx v5. The
// target is any Postgres-protocol warehouse (including Redshift-compatible
// endpoints): inside one transaction the table is dropped, recreated with
// inferred DDL, and bulk-filled via COPY.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"catalogetl/internal/records"
	"catalogetl/internal/storage/ddl"
)

// Pool is the slice of pgxpool.Pool the repository uses. pgxmock's pool
// interface satisfies it, which keeps the repository unit-testable without
// a database.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Repository is a Postgres-backed replace loader.
type Repository struct {
	pool Pool
}

// NewRepository connects a pool to dsn and pings it so that bad credentials
// or an unreachable host fail the run before any data moves.
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &Repository{pool: pool}, nil
}

// NewWithPool wraps an existing pool; used by tests.
func NewWithPool(pool Pool) *Repository { return &Repository{pool: pool} }

// Replace drops and recreates table, then COPYs every row in. The whole
// operation runs in one transaction, so on Postgres a failed load leaves
// the previous contents intact; warehouses with weaker transactional DDL
// may be left empty or partial.
func (r *Repository) Replace(ctx context.Context, table string, t *records.Table) (int64, error) {
	if len(t.Columns) == 0 {
		return 0, eris.New("postgres: table has no columns")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: begin")
	}
	defer tx.Rollback(ctx) // no-op after commit

	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+pgFQN(table)); err != nil {
		return 0, eris.Wrapf(err, "postgres: drop %s", table)
	}
	if _, err := tx.Exec(ctx, createStmt(table, t)); err != nil {
		return 0, eris.Wrapf(err, "postgres: create %s", table)
	}

	rows := make([][]any, t.Len())
	for i := range rows {
		rows[i] = t.RowValues(i)
	}
	n, err := tx.CopyFrom(ctx, splitFQN(table), t.Columns, pgx.CopyFromRows(rows))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return 0, eris.Errorf("postgres: copy into %s: %s (%s)", table, pgErr.Detail, pgErr.SQLState())
		}
		return 0, eris.Wrapf(err, "postgres: copy into %s", table)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "postgres: commit")
	}
	return n, nil
}

// Close releases the pool.
func (r *Repository) Close() { r.pool.Close() }

func createStmt(table string, t *records.Table) string {
	kinds := ddl.Infer(t)
	defs := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		sqlType := "TEXT"
		if kinds[i] == ddl.Integer {
			sqlType = "BIGINT"
		}
		defs[i] = pgIdent(col) + " " + sqlType
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", pgFQN(table), strings.Join(defs, ", "))
}

// pgIdent quotes a single identifier segment.
func pgIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// pgFQN quotes a possibly schema-qualified name, "public.catalog" becoming
// "public"."catalog".
func pgFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
	}
	return strings.Join(parts, ".")
}

// splitFQN converts "schema.table" into a pgx.Identifier.
func splitFQN(fqn string) pgx.Identifier {
	parts := strings.Split(fqn, ".")
	id := make(pgx.Identifier, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			id = append(id, p)
		}
	}
	return id
}

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogetl/internal/records"
)

func cleanedTable() *records.Table {
	return &records.Table{
		Columns: []string{"Brand_Name", "Prices"},
		Rows: []records.Record{
			{"Brand_Name": "Dell", "Prices": int64(74990)},
			{"Brand_Name": "HP", "Prices": nil},
		},
	}
}

func newMockRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewWithPool(mock), mock
}

func TestReplace(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DROP TABLE IF EXISTS "public"."catalog"`).
		WillReturnResult(pgxmock.NewResult("DROP", 0))
	mock.ExpectExec(`CREATE TABLE "public"."catalog" ("Brand_Name" TEXT, "Prices" BIGINT)`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"public", "catalog"}, []string{"Brand_Name", "Prices"}).
		WillReturnResult(2)
	mock.ExpectCommit()
	mock.ExpectRollback() // deferred rollback after commit is a no-op

	n, err := repo.Replace(context.Background(), "public.catalog", cleanedTable())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCopyFailureAborts(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DROP TABLE IF EXISTS "catalog"`).
		WillReturnResult(pgxmock.NewResult("DROP", 0))
	mock.ExpectExec(`CREATE TABLE "catalog" ("Brand_Name" TEXT, "Prices" BIGINT)`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"catalog"}, []string{"Brand_Name", "Prices"}).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.Replace(context.Background(), "catalog", cleanedTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copy into catalog")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceNoColumns(t *testing.T) {
	repo, _ := newMockRepo(t)
	_, err := repo.Replace(context.Background(), "catalog", records.New(nil))
	require.Error(t, err)
}

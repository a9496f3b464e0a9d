package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogetl/internal/records"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(repo.Close)
	return repo
}

func TestReplace(t *testing.T) {
	repo := newTestRepo(t)

	tbl := &records.Table{
		Columns: []string{"Brand_Name", "Prices", "Rating"},
		Rows: []records.Record{
			{"Brand_Name": "Dell", "Prices": int64(74990), "Rating": "4.3"},
			{"Brand_Name": "HP", "Prices": nil, "Rating": "4.5"},
		},
	}

	n, err := repo.Replace(context.Background(), "catalog", tbl)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	rows, err := repo.DB().Query(`SELECT "Brand_Name", "Prices", "Rating" FROM "catalog" ORDER BY "Brand_Name"`)
	require.NoError(t, err)
	defer rows.Close()

	type got struct {
		brand  string
		prices *int64
		rating string
	}
	var all []got
	for rows.Next() {
		var g got
		require.NoError(t, rows.Scan(&g.brand, &g.prices, &g.rating))
		all = append(all, g)
	}
	require.NoError(t, rows.Err())
	require.Len(t, all, 2)

	assert.Equal(t, "Dell", all[0].brand)
	require.NotNil(t, all[0].prices)
	assert.Equal(t, int64(74990), *all[0].prices)
	assert.Equal(t, "HP", all[1].brand)
	assert.Nil(t, all[1].prices)
}

// A second Replace fully overwrites the first load.
func TestReplaceIsDestructive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &records.Table{
		Columns: []string{"Brand_Name"},
		Rows:    []records.Record{{"Brand_Name": "Dell"}, {"Brand_Name": "HP"}, {"Brand_Name": "Asus"}},
	}
	_, err := repo.Replace(ctx, "catalog", first)
	require.NoError(t, err)

	second := &records.Table{
		Columns: []string{"Brand_Name"},
		Rows:    []records.Record{{"Brand_Name": "Lenovo"}},
	}
	_, err = repo.Replace(ctx, "catalog", second)
	require.NoError(t, err)

	var count int
	require.NoError(t, repo.DB().QueryRow(`SELECT COUNT(*) FROM "catalog"`).Scan(&count))
	assert.Equal(t, 1, count)

	var brand string
	require.NoError(t, repo.DB().QueryRow(`SELECT "Brand_Name" FROM "catalog"`).Scan(&brand))
	assert.Equal(t, "Lenovo", brand)
}

func TestNewRepositoryEmptyDSN(t *testing.T) {
	_, err := NewRepository(context.Background(), "  ")
	require.Error(t, err)
}

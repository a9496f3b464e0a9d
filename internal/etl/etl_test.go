package etl

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"catalogetl/internal/artifact"
	"catalogetl/internal/datasource/file"
	"catalogetl/internal/storage/sqlite"
)

// writeExport writes an n-row catalog export in the vendor's shape,
// index column included, and returns its path.
func writeExport(t *testing.T, dir string, n int) string {
	t.Helper()

	path := filepath.Join(dir, "export.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write([]string{
		"Unnamed: 0", "Title", "Processor", "RAM", "Operating_System",
		"Warranty", "Prices", "Rating",
	}))
	for i := 0; i < n; i++ {
		require.NoError(t, w.Write([]string{
			fmt.Sprint(i),
			"Dell Inspiron 15",
			"Intel Core 7 Processor (12th Gen)",
			"8 GB DDR4 3200MHz",
			"64 bit Windows 11 Home Operating System",
			"1 Years Warranty",
			"₹45,990",
			"45,990",
		}))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return path
}

func runPipeline(t *testing.T, rows int) (*Result, *sql.DB, string) {
	t.Helper()

	dir := t.TempDir()
	export := writeExport(t, dir, rows)

	repo, err := sqlite.NewRepository(context.Background(), filepath.Join(dir, "warehouse.db"))
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	artifacts := filepath.Join(dir, "artifacts")
	writer, err := artifact.NewWriter(artifacts, zap.NewNop())
	require.NoError(t, err)

	p := &Pipeline{
		Source:    file.NewLocal(export),
		Repo:      repo,
		Artifacts: writer,
		Table:     "product_catalog",
		Logger:    zap.NewNop(),
	}
	res, err := p.Run(context.Background())
	require.NoError(t, err)
	return res, repo.DB(), artifacts
}

func TestRunEndToEnd(t *testing.T) {
	res, db, artifacts := runPipeline(t, 200)

	assert.Equal(t, 200, res.RowsExtracted)
	assert.Equal(t, int64(50), res.RowsLoaded)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "product_catalog"`).Scan(&count))
	assert.Equal(t, 50, count)

	var brand, processor, ram, osys, warranty, rating string
	var price int64
	row := db.QueryRow(`SELECT "Brand_Name", "Processor", "RAM", "Operating_System", "Warranty", "Prices", "Rating" FROM "product_catalog" LIMIT 1`)
	require.NoError(t, row.Scan(&brand, &processor, &ram, &osys, &warranty, &price, &rating))

	assert.Equal(t, "Dell", brand)
	assert.Equal(t, "Intel Core i7 Processor", processor)
	assert.Equal(t, "8 GB", ram)
	assert.Equal(t, "64 bit Windows 11 Operating System", osys)
	assert.Equal(t, "1 Year", warranty)
	assert.Equal(t, int64(45990), price)
	// Rating fixups cover two specific values only; this one is not among
	// them and must survive untouched.
	assert.Equal(t, "45,990", rating)

	// The raw snapshot keeps the index column and every row; the cleaned
	// snapshot drops it, swaps Title for Brand_Name, and still has every
	// row since truncation happens at load time.
	raw := readSnapshot(t, filepath.Join(artifacts, artifact.RawName))
	require.Len(t, raw, 201)
	assert.Equal(t, "Unnamed: 0", raw[0][0])
	assert.Equal(t, "Title", raw[0][1])

	cleaned := readSnapshot(t, filepath.Join(artifacts, artifact.CleanedName))
	require.Len(t, cleaned, 201)
	assert.NotContains(t, cleaned[0], "Unnamed: 0")
	assert.NotContains(t, cleaned[0], "Title")
	assert.Contains(t, cleaned[0], "Brand_Name")
	assert.Equal(t, "45990", cleaned[1][indexOf(t, cleaned[0], "Prices")])
}

func TestRunFewerRowsThanLimit(t *testing.T) {
	res, db, _ := runPipeline(t, 7)

	assert.Equal(t, 7, res.RowsExtracted)
	assert.Equal(t, int64(7), res.RowsLoaded)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "product_catalog"`).Scan(&count))
	assert.Equal(t, 7, count)
}

func TestRunMissingSource(t *testing.T) {
	dir := t.TempDir()
	repo, err := sqlite.NewRepository(context.Background(), filepath.Join(dir, "warehouse.db"))
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	p := &Pipeline{
		Source: file.NewLocal(filepath.Join(dir, "missing.csv")),
		Repo:   repo,
		Table:  "product_catalog",
	}
	_, err = p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract")
}

func TestRunNoArtifactsWriter(t *testing.T) {
	dir := t.TempDir()
	export := writeExport(t, dir, 3)

	repo, err := sqlite.NewRepository(context.Background(), filepath.Join(dir, "warehouse.db"))
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	p := &Pipeline{
		Source: file.NewLocal(export),
		Repo:   repo,
		Table:  "product_catalog",
	}
	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.RowsLoaded)
}

func readSnapshot(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func indexOf(t *testing.T, header []string, name string) int {
	t.Helper()
	for i, c := range header {
		if c == name {
			return i
		}
	}
	t.Fatalf("column %q not in header %v", name, header)
	return -1
}

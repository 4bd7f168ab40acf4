package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONStoreMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "series.json"))

	series, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, series)
	assert.Empty(t, series)
}

func TestJSONStoreFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "series.json")
	store := NewJSONStore(path)

	require.NoError(t, store.Save([]TrackedSeries{{ID: 1, Name: "Daredevil"}}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"Daredevil"}]`, string(content))

	require.NoError(t, store.Save(nil))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(content))
}

func TestJSONStoreReadsHandWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":24396,"name":"Daredevil (2023 - Present)"},{"id":38806}]`), 0644))

	series, err := NewJSONStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []TrackedSeries{
		{ID: 24396, Name: "Daredevil (2023 - Present)"},
		{ID: 38806},
	}, series)
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err := NewJSONStore(path).Load()
	assert.Error(t, err)
}

func TestJSONStoreSaveFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the file makes the write fail.
	path := filepath.Join(dir, "series.json")
	require.NoError(t, os.Mkdir(path, 0755))

	err := NewJSONStore(path).Save([]TrackedSeries{{ID: 1}})
	assert.Error(t, err)
}

func setupTestDB(t *testing.T) *DuckDBStore {
	t.Helper()

	store, err := NewDuckDBStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitDuckDBCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	db, err := InitDuckDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var tableCount int
	err = db.QueryRow(`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = 'tracked_series'`).Scan(&tableCount)
	require.NoError(t, err)
	assert.Equal(t, 1, tableCount)
}

func TestDuckDBStoreRoundTrip(t *testing.T) {
	store := setupTestDB(t)

	series, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, series)

	want := []TrackedSeries{
		{ID: 30, Name: "C"},
		{ID: 10, Name: "A"},
		{ID: 30, Name: "C again"},
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Save([]TrackedSeries{{ID: 10, Name: "A"}}))
	got, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, []TrackedSeries{{ID: 10, Name: "A"}}, got)
}

func TestDuckDBStoreBacksRegistry(t *testing.T) {
	store := setupTestDB(t)
	registry, err := OpenRegistry(store)
	require.NoError(t, err)

	require.NoError(t, registry.Add(TrackedSeries{ID: 42, Name: "Example"}))
	require.NoError(t, registry.Add(TrackedSeries{ID: 43, Name: "Other"}))
	require.NoError(t, registry.Remove(43))

	reloaded, err := OpenRegistry(store)
	require.NoError(t, err)
	assert.Equal(t, []TrackedSeries{{ID: 42, Name: "Example"}}, reloaded.List())
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenStore("json", filepath.Join(dir, "series.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, store)

	store, err = OpenStore("duckdb", filepath.Join(dir, "series.db"))
	require.NoError(t, err)
	assert.IsType(t, &DuckDBStore{}, store)
	store.(*DuckDBStore).Close()

	_, err = OpenStore("redis", "")
	assert.Error(t, err)
}

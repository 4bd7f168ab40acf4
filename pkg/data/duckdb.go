package data

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"
)

const createTrackedSeries = `
CREATE TABLE IF NOT EXISTS tracked_series (
	position INTEGER NOT NULL,
	id       BIGINT NOT NULL,
	name     VARCHAR NOT NULL
)`

func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(createTrackedSeries); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// DuckDBStore keeps the tracked list in a DuckDB table. Position preserves
// insertion order since duplicate ids are allowed.
type DuckDBStore struct {
	db *sql.DB
}

func NewDuckDBStore(path string) (*DuckDBStore, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &DuckDBStore{db: db}, nil
}

func (s *DuckDBStore) Load() ([]TrackedSeries, error) {
	rows, err := s.db.Query(`SELECT id, name FROM tracked_series ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	series := []TrackedSeries{}
	for rows.Next() {
		var entry TrackedSeries
		if err := rows.Scan(&entry.ID, &entry.Name); err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		series = append(series, entry)
	}
	return series, rows.Err()
}

// Save replaces the table contents in one transaction.
func (s *DuckDBStore) Save(series []TrackedSeries) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tracked_series`); err != nil {
		return fmt.Errorf("failed to clear series: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tracked_series (position, id, name) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range series {
		if _, err := stmt.Exec(i, entry.ID, entry.Name); err != nil {
			return fmt.Errorf("failed to insert series %d: %w", entry.ID, err)
		}
	}

	return tx.Commit()
}

func (s *DuckDBStore) Close() error {
	return s.db.Close()
}

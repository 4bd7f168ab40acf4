package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SeriesStore loads and saves the whole tracked list at once.
type SeriesStore interface {
	Load() ([]TrackedSeries, error)
	Save(series []TrackedSeries) error
}

// JSONStore keeps the tracked list in a single JSON array file.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string {
	return s.path
}

// Load returns an empty list when the file does not exist yet.
func (s *JSONStore) Load() ([]TrackedSeries, error) {
	content, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []TrackedSeries{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var series []TrackedSeries
	if err := json.Unmarshal(content, &series); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if series == nil {
		series = []TrackedSeries{}
	}
	return series, nil
}

// Save rewrites the file in full.
func (s *JSONStore) Save(series []TrackedSeries) error {
	if series == nil {
		series = []TrackedSeries{}
	}
	content, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("failed to encode series: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return os.WriteFile(s.path, content, 0644)
}

// OpenStore returns the store for the given driver ("json" or "duckdb").
func OpenStore(driver, path string) (SeriesStore, error) {
	switch driver {
	case "", "json":
		return NewJSONStore(path), nil
	case "duckdb":
		return NewDuckDBStore(path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

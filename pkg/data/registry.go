package data

import (
	"errors"
	"fmt"
	"sync"
)

// ErrRegistryWrite is returned by Add and Remove when the store rejected the
// rewrite. The in-memory list has already changed at that point.
var ErrRegistryWrite = errors.New("registry write failed")

// Registry is the in-memory tracked list, written through to a SeriesStore
// on every mutation.
type Registry struct {
	mu     sync.RWMutex
	store  SeriesStore
	series []TrackedSeries
}

// OpenRegistry loads the tracked list from store.
func OpenRegistry(store SeriesStore) (*Registry, error) {
	series, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}
	return &Registry{store: store, series: series}, nil
}

// List returns the tracked series in insertion order.
func (r *Registry) List() []TrackedSeries {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]TrackedSeries, len(r.series))
	copy(out, r.series)
	return out
}

// Snapshot is List under the name the scheduler uses.
func (r *Registry) Snapshot() []TrackedSeries {
	return r.List()
}

// Add appends series. Duplicate ids are not rejected.
func (r *Registry) Add(series TrackedSeries) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.series = append(r.series, series)
	return r.persist()
}

// Remove drops every entry with the given id. Removing an unknown id
// still rewrites the store.
func (r *Registry) Remove(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.series[:0:0]
	for _, s := range r.series {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	r.series = kept
	return r.persist()
}

func (r *Registry) Contains(id int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.series {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (r *Registry) persist() error {
	snapshot := make([]TrackedSeries, len(r.series))
	copy(snapshot, r.series)
	if err := r.store.Save(snapshot); err != nil {
		return fmt.Errorf("%w: %w", ErrRegistryWrite, err)
	}
	return nil
}

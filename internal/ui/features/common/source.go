// Package common provides shared types and utilities for UI features.
package common

import (
	"errors"
	"reflect"
	"sort"
	"sync"

	"github.com/leapstack-labs/archdocs/internal/diagram"
)

// LoadFunc produces a fresh diagram catalog, typically by reading the
// diagrams directory.
type LoadFunc func() (*diagram.Catalog, error)

// Source holds the catalog the UI serves and swaps it on reload.
// It is safe for concurrent use.
type Source struct {
	mu      sync.RWMutex
	load    LoadFunc
	catalog *diagram.Catalog
}

// NewSource loads the catalog once and keeps load for later reloads.
func NewSource(load LoadFunc) (*Source, error) {
	if load == nil {
		return nil, errors.New("ui: catalog loader is required")
	}
	catalog, err := load()
	if err != nil {
		return nil, err
	}
	return &Source{load: load, catalog: orEmpty(catalog)}, nil
}

// StaticSource serves a fixed catalog; Reload is a no-op.
func StaticSource(catalog *diagram.Catalog) *Source {
	return &Source{
		load:    func() (*diagram.Catalog, error) { return catalog, nil },
		catalog: orEmpty(catalog),
	}
}

// Catalog returns the current catalog.
func (s *Source) Catalog() *diagram.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Get returns the diagram with the given id from the current catalog.
func (s *Source) Get(id string) (*diagram.Store, error) {
	return s.Catalog().Get(id)
}

// Reload replaces the catalog and returns the sorted ids of diagrams that
// were added, removed or edited. On error the current catalog is kept.
func (s *Source) Reload() ([]string, error) {
	next, err := s.load()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	prev := s.catalog
	next = orEmpty(next)
	s.catalog = next
	s.mu.Unlock()

	return changedDiagrams(prev, next), nil
}

func changedDiagrams(prev, next *diagram.Catalog) []string {
	ids := make(map[string]struct{})
	for _, id := range prev.IDs() {
		ids[id] = struct{}{}
	}
	for _, id := range next.IDs() {
		ids[id] = struct{}{}
	}

	var changed []string
	for id := range ids {
		a, errA := prev.Get(id)
		b, errB := next.Get(id)
		if errA != nil || errB != nil || !reflect.DeepEqual(a.Definition(), b.Definition()) {
			changed = append(changed, id)
		}
	}
	sort.Strings(changed)
	return changed
}

func orEmpty(c *diagram.Catalog) *diagram.Catalog {
	if c != nil {
		return c
	}
	empty, _ := diagram.NewCatalog()
	return empty
}

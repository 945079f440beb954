package diagram

import (
	"fmt"
	"sort"
)

// Catalog holds several independent diagrams keyed by id.
type Catalog struct {
	stores map[string]*Store
}

// NewCatalog builds a catalog. Two stores sharing an id is an error.
func NewCatalog(stores ...*Store) (*Catalog, error) {
	c := &Catalog{stores: make(map[string]*Store, len(stores))}
	for _, s := range stores {
		if err := c.add(s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(s *Store) error {
	if s == nil {
		return fmt.Errorf("diagram: nil store")
	}
	if _, exists := c.stores[s.ID()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateStore, s.ID())
	}
	c.stores[s.ID()] = s
	return nil
}

// Get returns the diagram with the given id.
func (c *Catalog) Get(id string) (*Store, error) {
	if s, ok := c.stores[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// List returns every diagram sorted by id.
func (c *Catalog) List() []*Store {
	out := make([]*Store, 0, len(c.stores))
	for _, s := range c.stores {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// IDs returns the sorted diagram ids.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.stores))
	for id := range c.stores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of diagrams.
func (c *Catalog) Len() int { return len(c.stores) }

// Merge returns a new catalog holding the diagrams of both c and other.
// Neither input is modified.
func (c *Catalog) Merge(other *Catalog) (*Catalog, error) {
	merged, err := NewCatalog(c.List()...)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return merged, nil
	}
	for _, s := range other.List() {
		if err := merged.add(s); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

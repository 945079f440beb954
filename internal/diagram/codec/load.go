package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/leapstack-labs/archdocs/internal/diagram"
)

// IsDiagramFile reports whether path has a diagram file extension.
func IsDiagramFile(path string) bool {
	_, err := ParseFormat(filepath.Ext(path))
	return err == nil
}

// LoadFile decodes one diagram file, picking the format from its extension.
func LoadFile(path string, opts ...diagram.Option) (*diagram.Store, error) {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path) //nolint:gosec // path comes from the diagrams directory or the command line
	if err != nil {
		return nil, fmt.Errorf("failed to open diagram: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := Decode(f, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// DiagramFiles lists the diagram files directly inside dir, sorted.
func DiagramFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagrams directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsDiagramFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// LoadDir loads every diagram file in dir into a catalog.
// The first failing file aborts the load.
func LoadDir(dir string, opts ...diagram.Option) (*diagram.Catalog, error) {
	files, err := DiagramFiles(dir)
	if err != nil {
		return nil, err
	}

	stores := make([]*diagram.Store, 0, len(files))
	for _, path := range files {
		s, err := LoadFile(path, opts...)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}

	catalog, err := diagram.NewCatalog(stores...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	return catalog, nil
}

// Package codec reads and writes the diagram authoring format.
//
// A diagram file is a static table of nodes and edges, authored as YAML or
// JSON. Unknown keys are rejected so typos surface instead of silently
// producing an empty field. Derived state such as dimming is not part of
// the format.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
	"gopkg.in/yaml.v3"
)

// Format is a diagram file encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for an unknown format or file extension.
var ErrUnsupportedFormat = errors.New("codec: unsupported format")

// ParseFormat maps a format name ("yaml", "yml", "json") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// document is the on-disk shape of one diagram.
type document struct {
	ID          string         `yaml:"id" json:"id"`
	Title       string         `yaml:"title,omitempty" json:"title,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Flows       []diagram.Flow `yaml:"flows,omitempty" json:"flows,omitempty"`
	Nodes       []nodeDoc      `yaml:"nodes" json:"nodes"`
	Edges       []edgeDoc      `yaml:"edges" json:"edges"`
}

type nodeDoc struct {
	ID          string             `yaml:"id" json:"id"`
	Kind        flowgraph.NodeKind `yaml:"kind,omitempty" json:"kind,omitempty"`
	Label       string             `yaml:"label,omitempty" json:"label,omitempty"`
	Category    string             `yaml:"category,omitempty" json:"category,omitempty"`
	Color       string             `yaml:"color,omitempty" json:"color,omitempty"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
	Position    flowgraph.Position `yaml:"position" json:"position"`
	Flows       flowgraph.FlowSet  `yaml:"flows,omitempty" json:"flows,omitempty"`
}

type edgeDoc struct {
	ID       string            `yaml:"id" json:"id"`
	Source   string            `yaml:"source" json:"source"`
	Target   string            `yaml:"target" json:"target"`
	Label    string            `yaml:"label,omitempty" json:"label,omitempty"`
	Color    string            `yaml:"color,omitempty" json:"color,omitempty"`
	Animated bool              `yaml:"animated,omitempty" json:"animated,omitempty"`
	Flows    flowgraph.FlowSet `yaml:"flows,omitempty" json:"flows,omitempty"`
}

// Decode reads one diagram from r and validates it.
func Decode(r io.Reader, format Format, opts ...diagram.Option) (*diagram.Store, error) {
	var doc document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("failed to parse YAML: empty document")
			}
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return diagram.New(doc.definition(), opts...)
}

// Encode writes the authored form of s to w.
func Encode(w io.Writer, s *diagram.Store, format Format) error {
	doc := fromDefinition(s.Definition())

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to write YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (d document) definition() diagram.Definition {
	def := diagram.Definition{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Flows:       d.Flows,
		Nodes:       make([]flowgraph.Node, 0, len(d.Nodes)),
		Edges:       make([]flowgraph.Edge, 0, len(d.Edges)),
	}
	for _, n := range d.Nodes {
		def.Nodes = append(def.Nodes, flowgraph.Node{
			ID:          n.ID,
			Kind:        n.Kind,
			Position:    n.Position,
			Label:       n.Label,
			Category:    n.Category,
			Color:       n.Color,
			Description: n.Description,
			Flows:       n.Flows,
		})
	}
	for _, e := range d.Edges {
		def.Edges = append(def.Edges, flowgraph.Edge{
			ID:       e.ID,
			Source:   e.Source,
			Target:   e.Target,
			Label:    e.Label,
			Color:    e.Color,
			Animated: e.Animated,
			Flows:    e.Flows,
		})
	}
	return def
}

func fromDefinition(def diagram.Definition) document {
	doc := document{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Flows:       def.Flows,
		Nodes:       make([]nodeDoc, 0, len(def.Nodes)),
		Edges:       make([]edgeDoc, 0, len(def.Edges)),
	}
	for _, n := range def.Nodes {
		doc.Nodes = append(doc.Nodes, nodeDoc{
			ID:          n.ID,
			Kind:        n.Kind,
			Label:       n.Label,
			Category:    n.Category,
			Color:       n.Color,
			Description: n.Description,
			Position:    n.Position,
			Flows:       n.Flows,
		})
	}
	for _, e := range def.Edges {
		doc.Edges = append(doc.Edges, edgeDoc{
			ID:       e.ID,
			Source:   e.Source,
			Target:   e.Target,
			Label:    e.Label,
			Color:    e.Color,
			Animated: e.Animated,
			Flows:    e.Flows,
		})
	}
	return doc
}

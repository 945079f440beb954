// Package diagram holds validated, immutable architecture diagrams.
//
// A Store is built once from an authored Definition and then only read.
// Construction fails fast: dangling edges, duplicate ids and flow tags
// outside the declared universe are reported together in a *ValidationError
// and no Store is returned.
package diagram

import (
	"log/slog"
	"sort"

	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
)

// Flow describes one selectable flow in a diagram's legend.
type Flow struct {
	ID          flowgraph.FlowID `json:"id" yaml:"id"`
	Label       string           `json:"label,omitempty" yaml:"label,omitempty"`
	Color       string           `json:"color,omitempty" yaml:"color,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
}

// Definition is the authored form of a diagram.
type Definition struct {
	ID          string
	Title       string
	Description string
	// Flows declares the closed flow universe. When empty, the universe is
	// the union of the tags used by nodes and edges.
	Flows []Flow
	Nodes []flowgraph.Node
	Edges []flowgraph.Edge
}

// Option configures Store construction.
type Option func(*options)

type options struct {
	strictFlows bool
	logger      *slog.Logger
}

// WithStrictFlows checks every flow tag against the declared universe, even
// when the diagram declares none. An untagged diagram still passes.
func WithStrictFlows() Option {
	return func(o *options) { o.strictFlows = true }
}

// WithLogger sets the logger used for construction debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Store is an immutable, validated diagram.
type Store struct {
	id          string
	title       string
	description string
	flows       []Flow
	declared    bool
	graph       flowgraph.Graph
	index       *Index
}

// New validates def and builds a Store from it.
// Authored Dimmed values are discarded.
func New(def Definition, opts ...Option) (*Store, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	var errs problems
	if def.ID == "" {
		errs.add(ErrEmptyID, "diagram id")
	}

	universe, declared := checkFlows(def.Flows, &errs)
	checkStrict := declared || o.strictFlows

	nodeIDs := make(map[string]struct{}, len(def.Nodes))
	for i, n := range def.Nodes {
		switch {
		case n.ID == "":
			errs.add(ErrEmptyID, "node at index %d", i)
		case has(nodeIDs, n.ID):
			errs.add(ErrDuplicateNode, "%q", n.ID)
		default:
			nodeIDs[n.ID] = struct{}{}
		}
		if checkStrict {
			checkTags(&errs, "node", n.ID, n.Flows, universe)
		} else {
			checkReserved(&errs, "node", n.ID, n.Flows)
		}
	}

	edgeIDs := make(map[string]struct{}, len(def.Edges))
	for i, e := range def.Edges {
		switch {
		case e.ID == "":
			errs.add(ErrEmptyID, "edge at index %d", i)
		case has(edgeIDs, e.ID):
			errs.add(ErrDuplicateEdge, "%q", e.ID)
		default:
			edgeIDs[e.ID] = struct{}{}
		}
		if !has(nodeIDs, e.Source) {
			errs.add(ErrDanglingEdge, "edge %q source %q", e.ID, e.Source)
		}
		if !has(nodeIDs, e.Target) {
			errs.add(ErrDanglingEdge, "edge %q target %q", e.ID, e.Target)
		}
		if checkStrict {
			checkTags(&errs, "edge", e.ID, e.Flows, universe)
		} else {
			checkReserved(&errs, "edge", e.ID, e.Flows)
		}
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Diagram: def.ID, Problems: errs}
	}

	g := flowgraph.ApplyFlowFilter(flowgraph.Graph{Nodes: def.Nodes, Edges: def.Edges}, flowgraph.AllFlows()).Clone()

	flows := make([]Flow, len(def.Flows))
	copy(flows, def.Flows)
	if !declared {
		flows = usedFlows(g)
	}

	s := &Store{
		id:          def.ID,
		title:       def.Title,
		description: def.Description,
		flows:       flows,
		declared:    declared,
		graph:       g,
	}
	s.index = newIndex(g)

	o.logger.Debug("diagram loaded",
		slog.String("diagram", s.id),
		slog.Int("nodes", len(g.Nodes)),
		slog.Int("edges", len(g.Edges)),
		slog.Int("flows", len(flows)),
		slog.Bool("declared_flows", declared))

	return s, nil
}

// MustNew is like New but panics on a construction defect.
// It is meant for diagrams compiled into the binary.
func MustNew(def Definition, opts ...Option) *Store {
	s, err := New(def, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// ID returns the diagram id.
func (s *Store) ID() string { return s.id }

// Title returns the display title, falling back to the id.
func (s *Store) Title() string {
	if s.title == "" {
		return s.id
	}
	return s.title
}

// Description returns the diagram description.
func (s *Store) Description() string { return s.description }

// Flows returns the flow universe in declaration order, or sorted by id when
// the diagram declares none.
func (s *Store) Flows() []Flow {
	out := make([]Flow, len(s.flows))
	copy(out, s.flows)
	return out
}

// Flow returns the flow with the given id.
func (s *Store) Flow(id flowgraph.FlowID) (Flow, bool) {
	for _, f := range s.flows {
		if f.ID == id {
			return f, true
		}
	}
	return Flow{}, false
}

// DeclaresFlows reports whether the flow universe was authored explicitly.
func (s *Store) DeclaresFlows() bool { return s.declared }

// Graph returns an independent copy of the authored graph. Nothing is dimmed.
func (s *Store) Graph() flowgraph.Graph {
	return s.graph.Clone()
}

// View filters the authored graph for sel.
func (s *Store) View(sel flowgraph.Selection) flowgraph.Graph {
	return flowgraph.ApplyFlowFilter(s.Graph(), sel)
}

// Index returns the adjacency index of the diagram.
func (s *Store) Index() *Index { return s.index }

// Definition returns the authored form of the diagram. The flow list is
// empty when the universe was not declared.
func (s *Store) Definition() Definition {
	g := s.Graph()
	def := Definition{
		ID:          s.id,
		Title:       s.title,
		Description: s.description,
		Nodes:       g.Nodes,
		Edges:       g.Edges,
	}
	if s.declared {
		def.Flows = s.Flows()
	}
	return def
}

func checkFlows(flows []Flow, errs *problems) (map[flowgraph.FlowID]struct{}, bool) {
	universe := make(map[flowgraph.FlowID]struct{}, len(flows))
	for i, f := range flows {
		switch {
		case f.ID == "":
			errs.add(ErrEmptyID, "flow at index %d", i)
		case f.ID.Reserved():
			errs.add(ErrReservedFlow, "%q means all flows", f.ID)
		case has(universe, f.ID):
			errs.add(ErrDuplicateFlow, "%q", f.ID)
		default:
			universe[f.ID] = struct{}{}
		}
	}
	return universe, len(flows) > 0
}

func checkTags(errs *problems, kind, id string, tags flowgraph.FlowSet, universe map[flowgraph.FlowID]struct{}) {
	for _, f := range tags {
		if !has(universe, f) {
			errs.add(ErrUnknownFlow, "%s %q tagged %q", kind, id, f)
		}
	}
}

func checkReserved(errs *problems, kind, id string, tags flowgraph.FlowSet) {
	for _, f := range tags {
		if f.Reserved() {
			errs.add(ErrReservedFlow, "%s %q tagged %q", kind, id, f)
		}
	}
}

func usedFlows(g flowgraph.Graph) []Flow {
	seen := make(map[flowgraph.FlowID]struct{})
	var out []Flow
	add := func(tags flowgraph.FlowSet) {
		for _, f := range tags {
			if !has(seen, f) {
				seen[f] = struct{}{}
				out = append(out, Flow{ID: f})
			}
		}
	}
	for _, n := range g.Nodes {
		add(n.Flows)
	}
	for _, e := range g.Edges {
		add(e.Flows)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func has[K comparable](m map[K]struct{}, k K) bool {
	_, ok := m[k]
	return ok
}

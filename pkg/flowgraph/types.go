package flowgraph

// FlowID names a user-journey trace through the architecture (e.g. "pricing").
type FlowID string

// FlowSet is the set of flows an entity participates in.
// A nil FlowSet is the empty set, so an absent `flows` field needs no special casing.
type FlowSet []FlowID

// Has reports whether f is a member of the set.
func (s FlowSet) Has(f FlowID) bool {
	for _, id := range s {
		if id == f {
			return true
		}
	}
	return false
}

// Len returns the number of flows in the set.
func (s FlowSet) Len() int {
	return len(s)
}

// NodeKind is a rendering hint for a node. It is never read by the filter.
type NodeKind string

// Node kinds understood by the renderer.
const (
	NodeKindComponent NodeKind = "component"
	NodeKindDatastore NodeKind = "datastore"
	NodeKindExternal  NodeKind = "external"
	NodeKindJob       NodeKind = "job"
)

// Position is the authored 2D coordinate of a node.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is one architectural component.
type Node struct {
	// ID is unique within the graph
	ID string `json:"id"`
	// Kind is a cosmetic hint ("component", "datastore", ...)
	Kind NodeKind `json:"kind,omitempty"`
	// Position is consumed only by the renderer
	Position    Position `json:"position"`
	Label       string   `json:"label"`
	Category    string   `json:"category,omitempty"`
	Color       string   `json:"color,omitempty"`
	Description string   `json:"description,omitempty"`
	// Flows are the flows this node participates in
	Flows FlowSet `json:"flows"`
	// Dimmed is derived by ApplyFlowFilter and never authored
	Dimmed bool `json:"dimmed"`
}

// Edge is one directed interaction between two nodes.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
	Color  string `json:"color,omitempty"`
	// Animated marks an edge the renderer should pulse
	Animated bool    `json:"animated"`
	Flows    FlowSet `json:"flows"`
	Dimmed   bool    `json:"dimmed"`
}

// Graph is a set of nodes and the directed edges between them.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Edge returns the edge with the given id.
func (g Graph) Edge(id string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

// Clone returns a deep copy of the graph, including every Flows slice.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		n.Flows = cloneFlows(n.Flows)
		out.Nodes[i] = n
	}
	for i, e := range g.Edges {
		e.Flows = cloneFlows(e.Flows)
		out.Edges[i] = e
	}
	return out
}

func cloneFlows(s FlowSet) FlowSet {
	if s == nil {
		return nil
	}
	out := make(FlowSet, len(s))
	copy(out, s)
	return out
}

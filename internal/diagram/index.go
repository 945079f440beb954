package diagram

import (
	"sort"

	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
)

// Index answers adjacency questions about a diagram.
// It is built once per Store and never changes.
type Index struct {
	nodes    []string            // sorted node ids
	children map[string][]string // source -> targets
	parents  map[string][]string // target -> sources
	// edges keyed by node id, covering both directions
	incident map[string][]int
	graph    flowgraph.Graph
}

func newIndex(g flowgraph.Graph) *Index {
	idx := &Index{
		nodes:    make([]string, 0, len(g.Nodes)),
		children: make(map[string][]string, len(g.Nodes)),
		parents:  make(map[string][]string, len(g.Nodes)),
		incident: make(map[string][]int, len(g.Nodes)),
		graph:    g,
	}
	for _, n := range g.Nodes {
		idx.nodes = append(idx.nodes, n.ID)
	}
	sort.Strings(idx.nodes)

	for i, e := range g.Edges {
		idx.children[e.Source] = appendUnique(idx.children[e.Source], e.Target)
		idx.parents[e.Target] = appendUnique(idx.parents[e.Target], e.Source)
		idx.incident[e.Source] = append(idx.incident[e.Source], i)
		if e.Target != e.Source {
			idx.incident[e.Target] = append(idx.incident[e.Target], i)
		}
	}
	for id := range idx.children {
		sort.Strings(idx.children[id])
	}
	for id := range idx.parents {
		sort.Strings(idx.parents[id])
	}
	return idx
}

// Upstream returns the ids of nodes with an edge into id, sorted.
func (x *Index) Upstream(id string) []string {
	return cloneStrings(x.parents[id])
}

// Downstream returns the ids of nodes id has an edge to, sorted.
func (x *Index) Downstream(id string) []string {
	return cloneStrings(x.children[id])
}

// Reachable returns every node reachable from id by following edges
// forward, excluding id itself unless it lies on a cycle.
func (x *Index) Reachable(id string) []string {
	seen := make(map[string]bool)

	var walk func(nodeID string)
	walk = func(nodeID string) {
		for _, childID := range x.children[nodeID] {
			if !seen[childID] {
				seen[childID] = true
				walk(childID)
			}
		}
	}
	walk(id)

	return sortedKeys(seen)
}

// Roots returns nodes without incoming edges.
func (x *Index) Roots() []string {
	var roots []string
	for _, id := range x.nodes {
		if len(x.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Leaves returns nodes without outgoing edges.
func (x *Index) Leaves() []string {
	var leaves []string
	for _, id := range x.nodes {
		if len(x.children[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// Neighborhood returns the subgraph made of id, its direct neighbours and
// the edges touching id. It is empty when id is not a node.
func (x *Index) Neighborhood(id string) flowgraph.Graph {
	if _, ok := x.graph.Node(id); !ok {
		return flowgraph.Graph{}
	}

	keep := map[string]bool{id: true}
	var edges []flowgraph.Edge
	for _, i := range x.incident[id] {
		e := x.graph.Edges[i]
		keep[e.Source] = true
		keep[e.Target] = true
		edges = append(edges, e)
	}

	var nodes []flowgraph.Node
	for _, n := range x.graph.Nodes {
		if keep[n.ID] {
			nodes = append(nodes, n)
		}
	}
	return flowgraph.Graph{Nodes: nodes, Edges: edges}.Clone()
}

// FlowMembers returns the ids of the nodes and edges tagged with f, in
// authoring order.
func (x *Index) FlowMembers(f flowgraph.FlowID) (nodes, edges []string) {
	for _, n := range x.graph.Nodes {
		if n.Flows.Has(f) {
			nodes = append(nodes, n.ID)
		}
	}
	for _, e := range x.graph.Edges {
		if e.Flows.Has(f) {
			edges = append(edges, e.ID)
		}
	}
	return nodes, edges
}

// HasCycle reports whether the diagram contains a directed cycle, along
// with one cycle path. Cycles are legal in architecture diagrams; the
// module-dependency diagram is expected to have none.
func (x *Index) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make(map[string]string)

	var cyclePath []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		recStack[id] = true

		for _, childID := range x.children[id] {
			if !visited[childID] {
				path[childID] = id
				if dfs(childID) {
					return true
				}
			} else if recStack[childID] {
				cyclePath = []string{childID}
				for curr := id; curr != childID; curr = path[curr] {
					cyclePath = append([]string{curr}, cyclePath...)
				}
				cyclePath = append([]string{childID}, cyclePath...)
				return true
			}
		}

		recStack[id] = false
		return false
	}

	for _, id := range x.nodes {
		if !visited[id] && dfs(id) {
			return true, cyclePath
		}
	}
	return false, nil
}

func appendUnique(slice []string, s string) []string {
	for _, v := range slice {
		if v == s {
			return slice
		}
	}
	return append(slice, s)
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

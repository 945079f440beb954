package flowgraph

// ApplyFlowFilter returns a copy of g where every node and edge carries a
// freshly computed Dimmed value for sel.
//
// With all flows selected nothing is dimmed. Otherwise an entity is dimmed
// unless its own Flows contain the selected flow; nodes and edges are judged
// independently. A flow that nothing declares dims everything.
//
// g is never modified. The returned slices are newly allocated, while
// untouched fields such as Flows are shared with g and must be treated as
// read-only.
func ApplyFlowFilter(g Graph, sel Selection) Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}

	flow, active := sel.Flow()

	for i, n := range g.Nodes {
		n.Dimmed = active && !n.Flows.Has(flow)
		out.Nodes[i] = n
	}
	for i, e := range g.Edges {
		e.Dimmed = active && !e.Flows.Has(flow)
		out.Edges[i] = e
	}

	return out
}

// Stats counts the nodes and edges of g that are not dimmed.
func Stats(g Graph) (visibleNodes, visibleEdges int) {
	for _, n := range g.Nodes {
		if !n.Dimmed {
			visibleNodes++
		}
	}
	for _, e := range g.Edges {
		if !e.Dimmed {
			visibleEdges++
		}
	}
	return visibleNodes, visibleEdges
}

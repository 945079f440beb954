package diagrams

import (
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/internal/docs"
	"github.com/leapstack-labs/archdocs/internal/selection"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
)

// FlowSummary is one legend entry.
type FlowSummary struct {
	ID    flowgraph.FlowID `json:"id"`
	Label string           `json:"label"`
	Color string           `json:"color,omitempty"`
}

// DiagramSummary is a diagram in the index listing.
type DiagramSummary struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	NodeCount   int           `json:"node_count"`
	EdgeCount   int           `json:"edge_count"`
	Flows       []FlowSummary `json:"flows"`
}

// DiagramView is a diagram filtered by one selection.
type DiagramView struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Selection    string          `json:"selection"`
	Flows        []FlowSummary   `json:"flows"`
	Graph        flowgraph.Graph `json:"graph"`
	VisibleNodes int             `json:"visible_nodes"`
	VisibleEdges int             `json:"visible_edges"`

	selected flowgraph.Selection
}

func flowSummaries(s *diagram.Store) []FlowSummary {
	flows := s.Flows()
	out := make([]FlowSummary, 0, len(flows))
	for _, f := range flows {
		out = append(out, FlowSummary{ID: f.ID, Label: docs.FlowLabel(f), Color: f.Color})
	}
	return out
}

func summarize(s *diagram.Store) DiagramSummary {
	g := s.Graph()
	return DiagramSummary{
		ID:          s.ID(),
		Title:       s.Title(),
		Description: s.Description(),
		NodeCount:   len(g.Nodes),
		EdgeCount:   len(g.Edges),
		Flows:       flowSummaries(s),
	}
}

// buildView derives the view from the store's original graph, never from a
// previously filtered one.
func buildView(s *diagram.Store, sel flowgraph.Selection) DiagramView {
	g := selection.NewWith(s, sel).View()
	nodes, edges := flowgraph.Stats(g)
	return DiagramView{
		ID:           s.ID(),
		Title:        s.Title(),
		Description:  s.Description(),
		Selection:    sel.String(),
		Flows:        flowSummaries(s),
		Graph:        g,
		VisibleNodes: nodes,
		VisibleEdges: edges,
		selected:     sel,
	}
}

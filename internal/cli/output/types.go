package output

import "github.com/leapstack-labs/archdocs/pkg/flowgraph"

// JSON output types shared by the commands.

// ListOutput is the JSON output of `archdocs list`.
type ListOutput struct {
	Diagrams []DiagramInfo `json:"diagrams"`
	Summary  ListSummary   `json:"summary"`
}

// DiagramInfo summarizes one diagram.
type DiagramInfo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Nodes       int        `json:"nodes"`
	Edges       int        `json:"edges"`
	Flows       []FlowInfo `json:"flows"`
}

// ListSummary totals the listed diagrams.
type ListSummary struct {
	TotalDiagrams int `json:"total_diagrams"`
	TotalNodes    int `json:"total_nodes"`
	TotalEdges    int `json:"total_edges"`
}

// FlowInfo describes one flow of a diagram.
type FlowInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// ShowOutput is the JSON output of `archdocs show`.
type ShowOutput struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Selection   string          `json:"selection"`
	Flows       []FlowInfo      `json:"flows"`
	Node        string          `json:"node,omitempty"`
	Upstream    []string        `json:"upstream,omitempty"`
	Downstream  []string        `json:"downstream,omitempty"`
	Visible     VisibleCounts   `json:"visible"`
	Graph       flowgraph.Graph `json:"graph"`
}

// VisibleCounts compares highlighted entities with the totals.
type VisibleCounts struct {
	Nodes      int `json:"nodes"`
	Edges      int `json:"edges"`
	TotalNodes int `json:"total_nodes"`
	TotalEdges int `json:"total_edges"`
}

// ValidateOutput is the JSON output of `archdocs validate`.
type ValidateOutput struct {
	Valid bool           `json:"valid"`
	Files []FileValidity `json:"files"`
}

// FileValidity is the validation result of one diagram file.
type FileValidity struct {
	Path     string   `json:"path"`
	Diagram  string   `json:"diagram,omitempty"`
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

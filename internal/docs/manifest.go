package docs

import (
	"sort"
	"time"
)

// Manifest is the minimal data needed to render the site navigation.
type Manifest struct {
	ProjectName string     `json:"project_name"`
	GeneratedAt time.Time  `json:"generated_at"`
	BuildID     string     `json:"build_id"`
	NavTree     []NavGroup `json:"nav_tree"`
	Stats       Stats      `json:"stats"`
}

// NavGroup is one diagram and the flows it can be filtered by.
type NavGroup struct {
	Diagram string    `json:"diagram"`
	Title   string    `json:"title"`
	Flows   []NavItem `json:"flows"`
}

// NavItem is a single flow link.
type NavItem struct {
	Flow  string `json:"flow"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// Stats contains counts for the overview page.
type Stats struct {
	DiagramCount int `json:"diagram_count"`
	NodeCount    int `json:"node_count"`
	EdgeCount    int `json:"edge_count"`
	// FlowCount counts distinct flow ids across diagrams
	FlowCount int `json:"flow_count"`
}

// GenerateManifest creates a Manifest from a Catalog.
func GenerateManifest(catalog *Catalog) *Manifest {
	navTree := make([]NavGroup, 0, len(catalog.Diagrams))
	flows := make(map[string]struct{})
	stats := Stats{DiagramCount: len(catalog.Diagrams)}

	for _, d := range catalog.Diagrams {
		group := NavGroup{
			Diagram: d.ID,
			Title:   d.Title,
			Flows:   make([]NavItem, 0, len(d.Flows)),
		}
		for _, f := range d.Flows {
			group.Flows = append(group.Flows, NavItem{
				Flow:  string(f.ID),
				Label: f.Label,
				Color: f.Color,
			})
			flows[string(f.ID)] = struct{}{}
		}
		navTree = append(navTree, group)

		stats.NodeCount += d.NodeCount
		stats.EdgeCount += d.EdgeCount
	}
	stats.FlowCount = len(flows)

	sort.Slice(navTree, func(i, j int) bool { return navTree[i].Diagram < navTree[j].Diagram })

	return &Manifest{
		ProjectName: catalog.ProjectName,
		GeneratedAt: catalog.GeneratedAt,
		BuildID:     catalog.BuildID,
		NavTree:     navTree,
		Stats:       stats,
	}
}

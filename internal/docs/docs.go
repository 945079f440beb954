// Package docs generates the static architecture documentation site.
// It exports every diagram, its flow legend and a precomputed view per flow
// to JSON, and writes a self-contained static site that can be hosted on
// GitHub Pages or opened straight from disk.
package docs

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed static/*
var staticFiles embed.FS

// FlowDoc is one entry of a diagram's flow legend.
type FlowDoc struct {
	ID           flowgraph.FlowID `json:"id"`
	Label        string           `json:"label"`
	Color        string           `json:"color,omitempty"`
	Description  string           `json:"description,omitempty"`
	VisibleNodes int              `json:"visible_nodes"`
	VisibleEdges int              `json:"visible_edges"`
}

// DiagramDoc represents a diagram for documentation purposes.
type DiagramDoc struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Graph       flowgraph.Graph `json:"graph"`
	Flows       []FlowDoc       `json:"flows"`
	// Views holds the filtered graph for every flow in the legend, so the
	// static site can switch flows without a server.
	Views     map[flowgraph.FlowID]flowgraph.Graph `json:"views"`
	Roots     []string                             `json:"roots"`
	Leaves    []string                             `json:"leaves"`
	NodeCount int                                  `json:"node_count"`
	EdgeCount int                                  `json:"edge_count"`
}

// Catalog represents the full documentation catalog.
type Catalog struct {
	GeneratedAt time.Time     `json:"generated_at"`
	BuildID     string        `json:"build_id"`
	ProjectName string        `json:"project_name"`
	Diagrams    []*DiagramDoc `json:"diagrams"`
}

// Generator generates documentation from a diagram catalog.
type Generator struct {
	diagrams    *diagram.Catalog
	projectName string
	now         func() time.Time
}

// NewGenerator creates a new documentation generator.
func NewGenerator(projectName string, diagrams *diagram.Catalog) *Generator {
	return &Generator{
		diagrams:    diagrams,
		projectName: projectName,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ProjectName returns the name shown in the site header.
func (g *Generator) ProjectName() string { return g.projectName }

// GenerateCatalog generates the documentation catalog.
func (g *Generator) GenerateCatalog() *Catalog {
	catalog := &Catalog{
		GeneratedAt: g.now(),
		BuildID:     uuid.NewString(),
		ProjectName: g.projectName,
		Diagrams:    []*DiagramDoc{},
	}
	if g.diagrams == nil {
		return catalog
	}

	for _, s := range g.diagrams.List() {
		catalog.Diagrams = append(catalog.Diagrams, diagramDoc(s))
	}
	return catalog
}

func diagramDoc(s *diagram.Store) *DiagramDoc {
	graph := s.Graph()
	idx := s.Index()

	doc := &DiagramDoc{
		ID:          s.ID(),
		Title:       s.Title(),
		Description: s.Description(),
		Graph:       graph,
		Flows:       make([]FlowDoc, 0, len(s.Flows())),
		Views:       make(map[flowgraph.FlowID]flowgraph.Graph, len(s.Flows())),
		Roots:       nonNil(idx.Roots()),
		Leaves:      nonNil(idx.Leaves()),
		NodeCount:   len(graph.Nodes),
		EdgeCount:   len(graph.Edges),
	}

	for _, f := range s.Flows() {
		view := flowgraph.ApplyFlowFilter(graph, flowgraph.Only(f.ID))
		nodes, edges := flowgraph.Stats(view)
		doc.Views[f.ID] = view
		doc.Flows = append(doc.Flows, FlowDoc{
			ID:           f.ID,
			Label:        FlowLabel(f),
			Color:        f.Color,
			Description:  f.Description,
			VisibleNodes: nodes,
			VisibleEdges: edges,
		})
	}
	return doc
}

var titleCaser = cases.Title(language.English)

// FlowLabel returns the authored label, or a title-cased form of the id
// ("salesforce-sync" becomes "Salesforce Sync").
func FlowLabel(f diagram.Flow) string {
	if f.Label != "" {
		return f.Label
	}
	words := strings.NewReplacer("-", " ", "_", " ").Replace(string(f.ID))
	return titleCaser.String(words)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// templateData feeds static/index.html.
type templateData struct {
	ProjectName string
	CSS         template.CSS
	JS          template.JS
	CatalogJSON template.JS
	LiveReload  bool
}

// renderPage renders the single-page site with the catalog and assets inlined.
func renderPage(catalog *Catalog, assets *BuildResult, liveReload bool) ([]byte, error) {
	raw, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to read page template: %w", err)
	}
	tmpl, err := template.New("docs").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	catalogJSON, err := json.Marshal(catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}

	data := templateData{
		ProjectName: catalog.ProjectName,
		CSS:         template.CSS(assets.CSS), //nolint:gosec // G203: trusted build output
		JS:          template.JS(assets.JS),   //nolint:gosec // G203: trusted build output
		CatalogJSON: template.JS(catalogJSON), //nolint:gosec // G203: json.Marshal escapes <, > and &
		LiveReload:  liveReload,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// Build generates the static site to the output directory.
func (g *Generator) Build(outputDir string) error {
	catalog := g.GenerateCatalog()

	// Create data directory
	dataDir := filepath.Join(outputDir, "data")
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := WriteJSON(filepath.Join(dataDir, "catalog.json"), catalog); err != nil {
		return fmt.Errorf("failed to write catalog.json: %w", err)
	}
	if err := WriteJSON(filepath.Join(dataDir, "manifest.json"), GenerateManifest(catalog)); err != nil {
		return fmt.Errorf("failed to write manifest.json: %w", err)
	}

	assets, err := BuildAssets(true)
	if err != nil {
		return err
	}

	assetsDir := filepath.Join(outputDir, "assets")
	if err := os.MkdirAll(assetsDir, 0750); err != nil {
		return fmt.Errorf("failed to create assets directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(assetsDir, "app.js"), []byte(assets.JS), 0600); err != nil {
		return fmt.Errorf("failed to write app.js: %w", err)
	}
	if err := os.WriteFile(filepath.Join(assetsDir, "style.css"), []byte(assets.CSS), 0600); err != nil {
		return fmt.Errorf("failed to write style.css: %w", err)
	}

	page, err := renderPage(catalog, assets, false)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "index.html"), page, 0600); err != nil {
		return fmt.Errorf("failed to write index.html: %w", err)
	}

	return nil
}

// WriteJSON writes any data structure to a JSON file.
func WriteJSON(path string, data any) error {
	f, err := os.Create(path) //nolint:gosec // G304: path is from trusted source
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return writeJSON(f, data)
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

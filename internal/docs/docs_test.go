package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/internal/diagrams"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCatalog(t *testing.T) {
	gen := NewGenerator("Dealer Platform", checkoutCatalog(t))
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	gen.now = func() time.Time { return fixed }

	catalog := gen.GenerateCatalog()

	assert.Equal(t, "Dealer Platform", catalog.ProjectName)
	assert.Equal(t, fixed, catalog.GeneratedAt)
	assert.NotEmpty(t, catalog.BuildID)
	require.Len(t, catalog.Diagrams, 1)

	d := catalog.Diagrams[0]
	assert.Equal(t, "checkout", d.ID)
	assert.Equal(t, "Checkout", d.Title)
	assert.Equal(t, 3, d.NodeCount)
	assert.Equal(t, 1, d.EdgeCount)
	assert.Equal(t, []string{"audit", "web"}, d.Roots)
	assert.Equal(t, []string{"audit", "redis"}, d.Leaves)

	for _, n := range d.Graph.Nodes {
		assert.False(t, n.Dimmed, "base graph is unfiltered: %s", n.ID)
	}
}

func TestGenerateCatalog_FlowLegend(t *testing.T) {
	catalog := NewGenerator("p", checkoutCatalog(t)).GenerateCatalog()
	d := catalog.Diagrams[0]

	require.Len(t, d.Flows, 2)
	assert.Equal(t, FlowDoc{
		ID:           "pricing",
		Label:        "Pricing lookup",
		Color:        "#2563eb",
		VisibleNodes: 2,
		VisibleEdges: 1,
	}, d.Flows[0])
	assert.Equal(t, FlowDoc{
		ID:           "cache",
		Label:        "Cache",
		VisibleNodes: 1,
		VisibleEdges: 0,
	}, d.Flows[1])
}

func TestGenerateCatalog_Views(t *testing.T) {
	catalog := NewGenerator("p", checkoutCatalog(t)).GenerateCatalog()
	d := catalog.Diagrams[0]

	require.Len(t, d.Views, 2)

	cache := d.Views["cache"]
	dimmed := map[string]bool{}
	for _, n := range cache.Nodes {
		dimmed[n.ID] = n.Dimmed
	}
	assert.Equal(t, map[string]bool{"web": true, "redis": false, "audit": true}, dimmed)
	require.Len(t, cache.Edges, 1)
	assert.True(t, cache.Edges[0].Dimmed)
}

func TestGenerateCatalog_NilCatalog(t *testing.T) {
	catalog := NewGenerator("empty", nil).GenerateCatalog()
	assert.NotNil(t, catalog.Diagrams)
	assert.Empty(t, catalog.Diagrams)

	data, err := json.Marshal(catalog)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"diagrams":[]`)
}

func TestGenerateCatalog_Builtin(t *testing.T) {
	catalog := NewGenerator("p", diagrams.Builtin()).GenerateCatalog()

	live := findDiagram(t, catalog, diagrams.LiveFlowID)
	assert.NotEmpty(t, live.Flows)
	for _, f := range live.Flows {
		view, ok := live.Views[f.ID]
		require.True(t, ok, "missing view for %s", f.ID)
		nodes, edges := flowgraph.Stats(view)
		assert.Equal(t, f.VisibleNodes, nodes)
		assert.Equal(t, f.VisibleEdges, edges)
	}
}

func TestFlowLabel(t *testing.T) {
	tests := []struct {
		name string
		flow diagram.Flow
		want string
	}{
		{"authored label wins", diagram.Flow{ID: "pricing", Label: "Price a deal"}, "Price a deal"},
		{"single word", diagram.Flow{ID: "tax"}, "Tax"},
		{"dashes", diagram.Flow{ID: "salesforce-sync"}, "Salesforce Sync"},
		{"underscores", diagram.Flow{ID: "oem_incentives"}, "Oem Incentives"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlowLabel(tt.flow))
		})
	}
}

func TestBuild(t *testing.T) {
	out := t.TempDir()
	gen := NewGenerator("Dealer Platform", checkoutCatalog(t))

	require.NoError(t, gen.Build(out))

	for _, name := range []string{
		"index.html",
		filepath.Join("data", "catalog.json"),
		filepath.Join("data", "manifest.json"),
		filepath.Join("assets", "app.js"),
		filepath.Join("assets", "style.css"),
	} {
		assert.FileExists(t, filepath.Join(out, name))
	}

	raw, err := os.ReadFile(filepath.Join(out, "data", "catalog.json"))
	require.NoError(t, err)
	var catalog Catalog
	require.NoError(t, json.Unmarshal(raw, &catalog))
	require.Len(t, catalog.Diagrams, 1)
	assert.Equal(t, "checkout", catalog.Diagrams[0].ID)

	page, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, "<title>Dealer Platform - Architecture</title>")
	assert.Contains(t, html, "window.ARCHDOCS_CATALOG")
	assert.Contains(t, html, `"checkout"`)
	assert.NotContains(t, html, "__reload", "static build has no live reload")
}

func TestRenderPage_LiveReload(t *testing.T) {
	catalog := NewGenerator("p", checkoutCatalog(t)).GenerateCatalog()
	assets := &BuildResult{JS: "console.log(1)", CSS: "body{}"}

	page, err := renderPage(catalog, assets, true)
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, "@get('/__reload')")
	assert.Contains(t, html, "datastar")
	assert.Contains(t, html, "console.log(1)")
}

func TestRenderPage_EscapesCatalog(t *testing.T) {
	catalog := &Catalog{ProjectName: "p", Diagrams: []*DiagramDoc{{ID: "x", Title: "</script><b>"}}}

	page, err := renderPage(catalog, &BuildResult{}, false)
	require.NoError(t, err)

	html := string(page)
	assert.Equal(t, 2, strings.Count(html, "</script>"), "catalog payload must not close the script element")
	assert.NotContains(t, html, "<b>")
}

func TestBuildAssets(t *testing.T) {
	dev, err := BuildAssets(false)
	require.NoError(t, err)
	prod, err := BuildAssets(true)
	require.NoError(t, err)

	assert.NotEmpty(t, dev.JS)
	assert.NotEmpty(t, dev.CSS)
	assert.Less(t, len(prod.JS), len(dev.JS))
	assert.Less(t, len(prod.CSS), len(dev.CSS))
	assert.Contains(t, prod.JS, "ARCHDOCS_CATALOG")
}

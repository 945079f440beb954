package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/archdocs/internal/cli/output"
	"github.com/leapstack-labs/archdocs/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_JSON(t *testing.T) {
	out, _, err := execute(t, NewListCommand(), testConfig(t, "json"))
	require.NoError(t, err)

	var got output.ListOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Diagrams, 1)

	d := got.Diagrams[0]
	assert.Equal(t, "checkout", d.ID)
	assert.Equal(t, "Checkout", d.Title)
	assert.Equal(t, 3, d.Nodes)
	assert.Equal(t, 1, d.Edges)
	assert.Equal(t, []output.FlowInfo{
		{ID: "pricing", Label: "Pricing lookup", Color: "#2563eb"},
		{ID: "cache", Label: "Cache"},
	}, d.Flows)
	assert.Equal(t, output.ListSummary{TotalDiagrams: 1, TotalNodes: 3, TotalEdges: 1}, got.Summary)
}

func TestList_Markdown(t *testing.T) {
	out, _, err := execute(t, NewListCommand(), testConfig(t, "markdown"))
	require.NoError(t, err)

	assert.Contains(t, out, "# Diagrams (1 total)")
	assert.Contains(t, out, "| ID | Title | Components | Interactions | Flows |")
	assert.Contains(t, out, "| checkout | Checkout |")
	assert.Contains(t, out, "pricing, cache")
	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
}

func TestList_Empty(t *testing.T) {
	cfg := testConfig(t, "markdown")
	cfg.DiagramsDir = t.TempDir()

	out, _, err := execute(t, NewListCommand(), cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "No diagrams found.")
}

func TestList_MissingDir(t *testing.T) {
	cfg := testConfig(t, "markdown")
	cfg.DiagramsDir = filepath.Join(t.TempDir(), "missing")

	_, _, err := execute(t, NewListCommand(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--diagrams-dir")
}

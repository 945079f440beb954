package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/archdocs/internal/diagrams"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownWriter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Header(2, "Flows")
	w.Table([]string{"Flow", "Label"}, [][]string{{InlineCode("pricing"), "a | b"}})
	w.BulletList([]string{"one"})
	w.CodeBlock("bash", "archdocs list\n")

	assert.Equal(t, "## Flows\n\n"+
		"| Flow | Label |\n| --- | --- |\n| `pricing` | a \\| b |\n\n"+
		"- one\n\n"+
		"```bash\narchdocs list\n```\n\n", string(w.Bytes()))
}

func TestCleanExample(t *testing.T) {
	assert.Equal(t, "# List\narchdocs list", cleanExample("  # List\n  archdocs list\n"))
}

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	read := func(name string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		return string(data)
	}

	index := read("index.md")
	assert.Contains(t, index, "[`show`](/cli/show)")
	assert.Contains(t, index, "[`docs build`](/cli/docs-build)")
	assert.Contains(t, index, "`--strict-flows`")
	assert.Contains(t, index, "## Flow Selection")
	assert.Contains(t, index, "| `ui.port` | `ARCHDOCS_UI_PORT` | `8765` |")
	assert.Contains(t, index, "`json`: machine-readable output")

	show := read("show.md")
	assert.Contains(t, show, "archdocs show <diagram>")
	assert.Contains(t, show, "## Flow Selection")
	assert.Contains(t, show, "`--flow all`")

	assert.Contains(t, read("ui.md"), "`POST /diagrams/{id}/select`")
	assert.Contains(t, read("explore.md"), "| `0/esc` | all flows |")

	build := read("docs-build.md")
	assert.Contains(t, build, "# docs build")
	assert.Contains(t, build, "archdocs docs build [flags]")
	assert.NotContains(t, build, "## Flow Selection")
	assert.Contains(t, read("docs.md"), "[`docs serve`](/cli/docs-serve)")
}

func TestPageName(t *testing.T) {
	root := &cobra.Command{Use: "archdocs"}
	docs := &cobra.Command{Use: "docs"}
	build := &cobra.Command{Use: "build"}
	root.AddCommand(docs)
	docs.AddCommand(build)

	assert.Equal(t, "docs", pageName(docs))
	assert.Equal(t, "docs-build", pageName(build))
	assert.Equal(t, []*cobra.Command{docs, build}, documentedCommands(root))
}

func TestGenerateDiagramDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateDiagramDocs(dir))

	for _, id := range diagrams.Builtin().IDs() {
		data, err := os.ReadFile(filepath.Join(dir, id+".md"))
		require.NoError(t, err, id)
		page := string(data)
		assert.True(t, strings.HasPrefix(page, "---\ntitle: "), id)
		assert.Contains(t, page, "## Flows")
		assert.Contains(t, page, "## Components")
	}
}

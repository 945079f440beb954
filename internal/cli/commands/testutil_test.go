package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/leapstack-labs/archdocs/internal/cli/config"
	"github.com/leapstack-labs/archdocs/internal/testutil"
	"github.com/spf13/cobra"
)

// untaggedYAML tags flows without declaring them.
const untaggedYAML = `id: untagged
nodes:
  - {id: a, label: A, flows: [sync]}
  - {id: b, label: B, flows: [sync]}
edges:
  - {id: a-b, source: a, target: b, flows: [sync]}
`

// danglingYAML has an edge to a node that does not exist.
const danglingYAML = `id: broken
nodes:
  - {id: a, label: A}
edges:
  - {id: a-b, source: a, target: b}
`

// testConfig returns a config over a fresh diagrams directory holding the
// checkout diagram. Built-in diagrams are off.
func testConfig(t *testing.T, mode string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "checkout.yaml", testutil.CheckoutYAML)
	return &config.Config{
		ProjectRoot:  dir,
		DiagramsDir:  dir,
		OutputFormat: mode,
		Docs:         config.DocsConfig{OutputDir: t.TempDir(), ProjectName: "Test Project"},
		UI:           config.UIConfig{Port: config.DefaultUIPort, Debounce: config.DefaultDebounce},
	}
}

// execute runs cmd with cfg in its context and captures both streams.
func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ctx := config.WithLogger(context.Background(), testutil.NewTestLogger(t))
	ctx = config.WithConfig(ctx, cfg)
	err = cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

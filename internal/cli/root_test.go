package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/archdocs/internal/cli/output"
	"github.com/leapstack-labs/archdocs/internal/cli/testutil"
	"github.com/leapstack-labs/archdocs/internal/diagrams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func listedIDs(t *testing.T, out string) []string {
	t.Helper()
	var got output.ListOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	ids := make([]string, len(got.Diagrams))
	for i, d := range got.Diagrams {
		ids[i] = d.ID
	}
	return ids
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"version", "list", "show", "validate", "docs", "ui", "explore", "completion"} {
		found, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
	for _, flag := range []string{"config", "diagrams-dir", "no-builtin", "strict-flows", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_ProjectConfig(t *testing.T) {
	t.Chdir(testutil.SetupTestProject(t))

	out, _, err := run(t, "list", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, []string{"checkout"}, listedIDs(t, out))
}

func TestRootCmd_BuiltinDiagrams(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := run(t, "list", "--output", "json")
	require.NoError(t, err)
	assert.ElementsMatch(t, diagrams.Builtin().IDs(), listedIDs(t, out))
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	out, _, err := run(t, "show", "checkout", "--flow", "cache", "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "**Selection:** cache")
	testutil.AssertValidMarkdown(t, out)

	out, _, err = run(t, "--config", filepath.Join(dir, "archdocs.yaml"), "--no-builtin", "--diagrams-dir", t.TempDir(), "list", "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "No diagrams found.")
}

func TestRootCmd_VerboseLogsToStderr(t *testing.T) {
	t.Chdir(testutil.SetupTestProject(t))

	out, errOut, err := run(t, "list", "-v", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, errOut, "using config file")
	assert.Contains(t, errOut, "loaded diagrams")
	assert.NotContains(t, out, "level=DEBUG")
}

func TestRootCmd_InvalidOutput(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := run(t, "list", "-o", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRootCmd_Version(t *testing.T) {
	out, _, err := run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "archdocs "+Version+"\nArchitecture diagrams with flow highlighting\n", out)
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := run(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "archdocs")
		})
	}

	_, _, err := run(t, "completion", "tcsh")
	require.Error(t, err)
}

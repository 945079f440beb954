package commands

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/archdocs/internal/cli/output"
	"github.com/leapstack-labs/archdocs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DiagramsDir(t *testing.T) {
	cfg := testConfig(t, "markdown")

	out, _, err := execute(t, NewValidateCommand(), cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "# Validation")
	assert.Contains(t, out, "✓ "+filepath.Join(cfg.DiagramsDir, "checkout.yaml")+" (checkout)")
	assert.Contains(t, out, "1 diagram files are valid")
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := testConfig(t, "json")
	good := filepath.Join(cfg.DiagramsDir, "checkout.yaml")
	broken := testutil.WriteFile(t, cfg.DiagramsDir, "broken.yaml", danglingYAML)
	dup := testutil.WriteFile(t, t.TempDir(), "again.yml", testutil.CheckoutYAML)
	bad := testutil.WriteFile(t, t.TempDir(), "syntax.yaml", "id: [")

	out, _, err := execute(t, NewValidateCommand(), cfg, good, broken, dup, bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDiagrams))
	assert.Contains(t, err.Error(), "3 of 4 files failed")
	assert.NotContains(t, out, "Usage:", "a failed run prints the report only")

	var got output.ValidateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Valid)
	require.Len(t, got.Files, 4)

	assert.True(t, got.Files[0].Valid)
	assert.Equal(t, "checkout", got.Files[0].Diagram)

	assert.False(t, got.Files[1].Valid)
	assert.Equal(t, "broken", got.Files[1].Diagram)
	require.Len(t, got.Files[1].Problems, 1)
	assert.Contains(t, got.Files[1].Problems[0], "edge references unknown node")

	assert.False(t, got.Files[2].Valid)
	assert.Contains(t, got.Files[2].Problems[0], "duplicate diagram id")
	assert.Contains(t, got.Files[2].Problems[0], good)

	assert.False(t, got.Files[3].Valid)
	assert.Contains(t, got.Files[3].Problems[0], "failed to parse YAML")
}

func TestValidate_StrictFlows(t *testing.T) {
	cfg := testConfig(t, "json")
	path := testutil.WriteFile(t, cfg.DiagramsDir, "untagged.yaml", untaggedYAML)

	_, _, err := execute(t, NewValidateCommand(), cfg, path)
	require.NoError(t, err)

	cfg.StrictFlows = true
	out, _, err := execute(t, NewValidateCommand(), cfg, path)
	require.Error(t, err)

	var got output.ValidateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	// two nodes and one edge carry the undeclared tag
	assert.Len(t, got.Files[0].Problems, 3)
}

func TestValidate_TextListsProblems(t *testing.T) {
	cfg := testConfig(t, "text")
	broken := testutil.WriteFile(t, cfg.DiagramsDir, "broken.yaml", danglingYAML)

	out, _, err := execute(t, NewValidateCommand(), cfg, broken)
	require.Error(t, err)
	assert.Contains(t, out, "✗ "+broken+" (broken)")
	assert.Contains(t, out, "  - diagram: edge references unknown node")
}

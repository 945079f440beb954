package commands

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/archdocs/internal/cli/output"
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/internal/diagrams"
	"github.com/leapstack-labs/archdocs/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommandContext_UsesContextConfig(t *testing.T) {
	cfg := testConfig(t, "json")

	var cc *CommandContext
	cmd := &cobra.Command{
		Use: "probe",
		RunE: func(c *cobra.Command, _ []string) error {
			var err error
			cc, err = NewCommandContext(c)
			return err
		},
	}
	_, _, err := execute(t, cmd, cfg)
	require.NoError(t, err)

	assert.Same(t, cfg, cc.Cfg)
	assert.NotNil(t, cc.Logger)
	assert.Equal(t, output.ModeJSON, cc.Renderer.EffectiveMode())
}

func TestLoadCatalog(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) *CommandContext
		wantIDs []string
		wantErr error
	}{
		{
			name: "diagrams dir only",
			setup: func(t *testing.T) *CommandContext {
				return &CommandContext{Cfg: testConfig(t, "json"), Logger: testutil.NewTestLogger(t)}
			},
			wantIDs: []string{"checkout"},
		},
		{
			name: "merged with builtin",
			setup: func(t *testing.T) *CommandContext {
				cfg := testConfig(t, "json")
				cfg.Builtin = true
				return &CommandContext{Cfg: cfg, Logger: testutil.NewTestLogger(t)}
			},
			wantIDs: append([]string{"checkout"}, diagrams.Builtin().IDs()...),
		},
		{
			name: "missing dir with builtin",
			setup: func(t *testing.T) *CommandContext {
				cfg := testConfig(t, "json")
				cfg.DiagramsDir = filepath.Join(t.TempDir(), "missing")
				cfg.Builtin = true
				return &CommandContext{Cfg: cfg, Logger: testutil.NewTestLogger(t)}
			},
			wantIDs: diagrams.Builtin().IDs(),
		},
		{
			name: "undeclared flows are accepted",
			setup: func(t *testing.T) *CommandContext {
				cfg := testConfig(t, "json")
				testutil.WriteFile(t, cfg.DiagramsDir, "untagged.yaml", untaggedYAML)
				return &CommandContext{Cfg: cfg, Logger: testutil.NewTestLogger(t)}
			},
			wantIDs: []string{"checkout", "untagged"},
		},
		{
			name: "strict flows reject undeclared tags",
			setup: func(t *testing.T) *CommandContext {
				cfg := testConfig(t, "json")
				cfg.StrictFlows = true
				testutil.WriteFile(t, cfg.DiagramsDir, "untagged.yaml", untaggedYAML)
				return &CommandContext{Cfg: cfg, Logger: testutil.NewTestLogger(t)}
			},
			wantErr: diagram.ErrUnknownFlow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := tt.setup(t).LoadCatalog()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.wantIDs, catalog.IDs())
		})
	}
}

func TestLoadCatalog_MissingDirWithoutBuiltin(t *testing.T) {
	cfg := testConfig(t, "json")
	cfg.DiagramsDir = filepath.Join(t.TempDir(), "missing")
	cc := &CommandContext{Cfg: cfg, Logger: testutil.NewTestLogger(t)}

	_, err := cc.LoadCatalog()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diagrams directory does not exist")
}

func TestWatchDirs(t *testing.T) {
	cfg := testConfig(t, "json")
	cc := &CommandContext{Cfg: cfg}
	assert.Equal(t, []string{cfg.DiagramsDir}, cc.WatchDirs())

	cfg.DiagramsDir = filepath.Join(t.TempDir(), "missing")
	assert.Empty(t, cc.WatchDirs())
}

func TestCompleteDiagramIDs(t *testing.T) {
	cfg := testConfig(t, "json")

	var ids []string
	cmd := &cobra.Command{
		Use: "probe",
		RunE: func(c *cobra.Command, args []string) error {
			var directive cobra.ShellCompDirective
			ids, directive = completeDiagramIDs(c, args, "")
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
			return nil
		},
	}
	_, _, err := execute(t, cmd, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"checkout"}, ids)
}

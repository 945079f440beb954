package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/leapstack-labs/archdocs/internal/cli/config"
	"github.com/leapstack-labs/archdocs/internal/cli/output"
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/internal/diagram/codec"
	"github.com/leapstack-labs/archdocs/internal/diagrams"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config, logger and renderer for cmd.
// The root command stores the config in the context; commands run on
// their own (shell completion, tests) load it from the working directory.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		var err error
		cfg, err = config.Load("", nil)
		if err != nil {
			return nil, err
		}
	}

	mode := output.Mode(cfg.OutputFormat)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}, nil
}

// StoreOptions returns the diagram construction options for the config.
func (c *CommandContext) StoreOptions() []diagram.Option {
	opts := []diagram.Option{diagram.WithLogger(c.Logger)}
	if c.Cfg.StrictFlows {
		opts = append(opts, diagram.WithStrictFlows())
	}
	return opts
}

// LoadCatalog loads the diagrams directory, merged with the built-in
// diagrams unless they are disabled.
func (c *CommandContext) LoadCatalog() (*diagram.Catalog, error) {
	loaded, err := c.loadDiagramsDir()
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded diagrams", slog.String("dir", c.Cfg.DiagramsDir), slog.Int("count", loaded.Len()))

	if !c.Cfg.Builtin {
		return loaded, nil
	}
	merged, err := diagrams.Builtin().Merge(loaded)
	if err != nil {
		return nil, fmt.Errorf("failed to merge built-in diagrams: %w", err)
	}
	return merged, nil
}

// Loader returns LoadCatalog as a reload callback for the servers.
func (c *CommandContext) Loader() func() (*diagram.Catalog, error) {
	return c.LoadCatalog
}

// WatchDirs returns the directories to watch for diagram changes.
func (c *CommandContext) WatchDirs() []string {
	if info, err := os.Stat(c.Cfg.DiagramsDir); err == nil && info.IsDir() {
		return []string{c.Cfg.DiagramsDir}
	}
	return nil
}

func (c *CommandContext) loadDiagramsDir() (*diagram.Catalog, error) {
	if _, err := os.Stat(c.Cfg.DiagramsDir); errors.Is(err, fs.ErrNotExist) {
		if err := c.Cfg.ValidateDirectories(); err != nil {
			return nil, err
		}
		return diagram.NewCatalog()
	}
	return codec.LoadDir(c.Cfg.DiagramsDir, c.StoreOptions()...)
}

// completeDiagramIDs completes the first positional argument with diagram ids.
func completeDiagramIDs(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	catalog, err := cc.LoadCatalog()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return catalog.IDs(), cobra.ShellCompDirectiveNoFileComp
}

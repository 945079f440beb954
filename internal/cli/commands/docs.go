package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/leapstack-labs/archdocs/internal/docs"
	"github.com/spf13/cobra"
)

// NewDocsCommand creates the docs command with subcommands.
func NewDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate and serve documentation site",
		Long: `Generate a static documentation site or serve it locally.

The site has one page per diagram with a flow legend. Selecting a flow
highlights its components and interactions without a server.`,
	}

	cmd.AddCommand(newDocsBuildCommand())
	cmd.AddCommand(newDocsServeCommand())

	return cmd
}

func newDocsBuildCommand() *cobra.Command {
	var outputPath string
	var projectName string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate static documentation site",
		Long:  `Generate a static HTML documentation site for your diagrams.`,
		Example: `  # Build docs with defaults
  archdocs docs build

  # Build to custom directory
  archdocs docs build --output ./public

  # Build with custom project name
  archdocs docs build --project "Quote Service"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDocsBuild(cmd, outputPath, projectName)
		},
	}

	cmd.Flags().StringVar(&outputPath, "output", "", "Output directory for generated site (default: docs.output_dir)")
	cmd.Flags().StringVar(&projectName, "project", "", "Project name for documentation (default: docs.project_name)")

	return cmd
}

func newDocsServeCommand() *cobra.Command {
	var projectName string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve documentation locally with live reload",
		Long: `Build the documentation in memory and serve it on a local HTTP server.
The page reloads whenever a diagram file changes.`,
		Example: `  # Serve docs on default port
  archdocs docs serve

  # Serve on custom port
  archdocs docs serve --port 3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDocsServe(cmd, projectName, port)
		},
	}

	cmd.Flags().StringVar(&projectName, "project", "", "Project name for documentation (default: docs.project_name)")
	cmd.Flags().IntVar(&port, "port", 8080, "Port to serve on")

	return cmd
}

func runDocsBuild(cmd *cobra.Command, outputPath, projectName string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	if outputPath == "" {
		outputPath = cmdCtx.Cfg.Docs.OutputDir
	}
	if projectName == "" {
		projectName = cmdCtx.Cfg.Docs.ProjectName
	}

	catalog, err := cmdCtx.LoadCatalog()
	if err != nil {
		return err
	}

	r.Header(1, "Building documentation")
	r.KeyValue("Diagrams", fmt.Sprintf("%d", catalog.Len()))
	r.KeyValue("Output", outputPath)
	r.KeyValue("Project", projectName)
	r.Println("")

	gen := docs.NewGenerator(projectName, catalog)
	if err := gen.Build(outputPath); err != nil {
		return fmt.Errorf("failed to build docs: %w", err)
	}

	r.Success("Documentation generated successfully!")
	r.Muted(fmt.Sprintf("Open %s in your browser", filepath.Join(outputPath, "index.html")))
	return nil
}

func runDocsServe(cmd *cobra.Command, projectName string, port int) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	if projectName == "" {
		projectName = cmdCtx.Cfg.Docs.ProjectName
	}

	server, err := docs.NewDevServer(docs.DevConfig{
		ProjectName: projectName,
		Load:        cmdCtx.Loader(),
		WatchDirs:   cmdCtx.WatchDirs(),
		Port:        port,
		Debounce:    cmdCtx.Cfg.UI.Debounce,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	r.Printf("Serving documentation on http://localhost:%d\n", port)
	r.Muted("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

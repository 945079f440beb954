package commands

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/archdocs/internal/cli/output"
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/internal/docs"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all diagrams and their flows",
		Long: `List every diagram with its component, interaction and flow counts.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List diagrams (auto-detect output format)
  archdocs list

  # List diagrams as JSON
  archdocs list --output json

  # Only the diagrams in ./arch
  archdocs list --diagrams-dir ./arch --no-builtin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	catalog, err := cmdCtx.LoadCatalog()
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(listOutput(catalog))
	}

	list := catalog.List()
	if len(list) == 0 {
		r.Muted("No diagrams found.")
		return nil
	}

	r.Header(1, fmt.Sprintf("Diagrams (%d total)", len(list)))
	r.Println("")

	rows := make([]table.Row, 0, len(list))
	for _, s := range list {
		g := s.Graph()
		rows = append(rows, table.Row{s.ID(), s.Title(), len(g.Nodes), len(g.Edges), flowIDs(s)})
	}
	r.Table(table.Row{"ID", "Title", "Components", "Interactions", "Flows"}, rows)
	return nil
}

func listOutput(catalog *diagram.Catalog) output.ListOutput {
	out := output.ListOutput{Diagrams: []output.DiagramInfo{}}
	for _, s := range catalog.List() {
		info := diagramInfo(s)
		out.Diagrams = append(out.Diagrams, info)
		out.Summary.TotalNodes += info.Nodes
		out.Summary.TotalEdges += info.Edges
	}
	out.Summary.TotalDiagrams = len(out.Diagrams)
	return out
}

func diagramInfo(s *diagram.Store) output.DiagramInfo {
	g := s.Graph()
	return output.DiagramInfo{
		ID:          s.ID(),
		Title:       s.Title(),
		Description: s.Description(),
		Nodes:       len(g.Nodes),
		Edges:       len(g.Edges),
		Flows:       flowInfos(s),
	}
}

func flowInfos(s *diagram.Store) []output.FlowInfo {
	flows := s.Flows()
	out := make([]output.FlowInfo, len(flows))
	for i, f := range flows {
		out[i] = output.FlowInfo{ID: string(f.ID), Label: docs.FlowLabel(f), Color: f.Color}
	}
	return out
}

// flowIDs renders the flow universe as "pricing, cache" or "-".
func flowIDs(s *diagram.Store) string {
	flows := s.Flows()
	ids := make([]string, len(flows))
	for i, f := range flows {
		ids[i] = string(f.ID)
	}
	if len(ids) > 3 {
		return output.JoinOrNone(ids[:3]) + ", +" + strconv.Itoa(len(ids)-3)
	}
	return output.JoinOrNone(ids)
}

package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/archdocs/internal/cli/output"
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
	"github.com/spf13/cobra"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	Flow string
	Node string
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <diagram>",
		Short: "Show a diagram with one flow highlighted",
		Long: `Show the components and interactions of a diagram.

With --flow, entities outside the flow are reported as dimmed. An unknown
flow dims everything. With --node, only the node and its direct neighbours
are shown, together with its upstream and downstream components.`,
		Example: `  # Show every component of the checkout diagram
  archdocs show checkout

  # Highlight the pricing flow
  archdocs show checkout --flow pricing

  # Inspect the neighbourhood of one component as JSON
  archdocs show checkout --node redis -o json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Flow, "flow", "", "Flow to highlight (empty or 'all' shows every flow)")
	cmd.Flags().StringVar(&opts.Node, "node", "", "Only show this node and its direct neighbours")

	return cmd
}

func runShow(cmd *cobra.Command, id string, opts *ShowOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	catalog, err := cmdCtx.LoadCatalog()
	if err != nil {
		return err
	}
	store, err := catalog.Get(id)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	sel := flowgraph.ParseSelection(opts.Flow)
	if f, ok := sel.Flow(); ok {
		if _, known := store.Flow(f); !known {
			r.Warning(fmt.Sprintf("flow %q is not part of diagram %q, nothing is highlighted", f, store.ID()))
		}
	}

	result, err := buildShowOutput(store, sel, opts.Node)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(result)
	}
	renderShow(r, result)
	return nil
}

func buildShowOutput(store *diagram.Store, sel flowgraph.Selection, node string) (*output.ShowOutput, error) {
	full := store.Graph()
	result := &output.ShowOutput{
		ID:          store.ID(),
		Title:       store.Title(),
		Description: store.Description(),
		Selection:   sel.String(),
		Flows:       flowInfos(store),
	}

	if node == "" {
		result.Graph = store.View(sel)
	} else {
		if _, ok := full.Node(node); !ok {
			return nil, fmt.Errorf("%w: node %q in diagram %q", diagram.ErrNotFound, node, store.ID())
		}
		idx := store.Index()
		result.Node = node
		result.Upstream = idx.Upstream(node)
		result.Downstream = idx.Downstream(node)
		result.Graph = flowgraph.ApplyFlowFilter(idx.Neighborhood(node), sel)
	}

	result.Visible.Nodes, result.Visible.Edges = flowgraph.Stats(result.Graph)
	result.Visible.TotalNodes = len(result.Graph.Nodes)
	result.Visible.TotalEdges = len(result.Graph.Edges)
	return result, nil
}

func renderShow(r *output.Renderer, s *output.ShowOutput) {
	r.Header(1, s.Title)
	if s.Description != "" {
		r.Println(s.Description)
	}
	r.Println("")
	r.KeyValue("Diagram", s.ID)
	r.KeyValue("Selection", s.Selection)
	if s.Node != "" {
		r.KeyValue("Node", s.Node)
		r.KeyValue("Upstream", output.JoinOrNone(s.Upstream))
		r.KeyValue("Downstream", output.JoinOrNone(s.Downstream))
	}
	r.KeyValue("Highlighted", fmt.Sprintf("%d of %d components, %d of %d interactions",
		s.Visible.Nodes, s.Visible.TotalNodes, s.Visible.Edges, s.Visible.TotalEdges))

	if len(s.Flows) > 0 {
		r.Println("")
		r.Header(2, "Flows")
		rows := make([]table.Row, 0, len(s.Flows))
		for _, f := range s.Flows {
			rows = append(rows, table.Row{f.ID, f.Label, selectedMark(s.Selection == f.ID)})
		}
		r.Table(table.Row{"ID", "Label", "Selected"}, rows)
	}

	r.Println("")
	r.Header(2, "Components")
	nodeRows := make([]table.Row, 0, len(s.Graph.Nodes))
	for _, n := range s.Graph.Nodes {
		nodeRows = append(nodeRows, table.Row{
			n.ID, n.Label, string(n.Kind), flowList(n.Flows), highlightMark(n.Dimmed),
		})
	}
	r.Table(table.Row{"ID", "Label", "Kind", "Flows", "Highlighted"}, nodeRows)

	r.Println("")
	r.Header(2, "Interactions")
	if len(s.Graph.Edges) == 0 {
		r.Muted("No interactions.")
		return
	}
	edgeRows := make([]table.Row, 0, len(s.Graph.Edges))
	for _, e := range s.Graph.Edges {
		edgeRows = append(edgeRows, table.Row{
			e.ID, e.Source + " → " + e.Target, e.Label, flowList(e.Flows), highlightMark(e.Dimmed),
		})
	}
	r.Table(table.Row{"ID", "Direction", "Label", "Flows", "Highlighted"}, edgeRows)
}

func flowList(flows flowgraph.FlowSet) string {
	ids := make([]string, len(flows))
	for i, f := range flows {
		ids[i] = string(f)
	}
	return output.JoinOrNone(ids)
}

func highlightMark(dimmed bool) string {
	if dimmed {
		return "no"
	}
	return "yes"
}

func selectedMark(selected bool) string {
	if selected {
		return "*"
	}
	return ""
}

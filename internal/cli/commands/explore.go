package commands

import (
	"github.com/leapstack-labs/archdocs/internal/tui"
	"github.com/spf13/cobra"
)

// NewExploreCommand creates the explore command.
func NewExploreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [diagram]",
		Short: "Explore diagrams by flow in the terminal",
		Long: `Open an interactive terminal explorer.

Number keys toggle flows, 0 or esc shows every flow, tab switches diagram
and q quits. Each diagram keeps its own selection.`,
		Example: `  # Explore starting at the first diagram
  archdocs explore

  # Start at the checkout diagram
  archdocs explore checkout`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDiagramIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			catalog, err := cmdCtx.LoadCatalog()
			if err != nil {
				return err
			}

			var start string
			if len(args) == 1 {
				start = args[0]
			}
			return tui.Run(cmd.Context(), catalog, start, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	return cmd
}

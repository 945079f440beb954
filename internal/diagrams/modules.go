package diagrams

import (
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
)

// modulesDefinition is the compile-time dependency graph between the
// platform's Go modules. An edge points from importer to imported module.
func modulesDefinition() diagram.Definition {
	return diagram.Definition{
		ID:          ModulesID,
		Title:       "Module dependencies",
		Description: "Which platform modules import which. Highlight a flow to see the code it touches.",
		Flows: []diagram.Flow{
			platformFlows[0],
			platformFlows[1],
			platformFlows[2],
			platformFlows[4],
		},
		Nodes: []flowgraph.Node{
			{ID: "cmd-api", Kind: flowgraph.NodeKindComponent, Position: at(0, 160),
				Label: "cmd/api", Category: "Binaries", Color: colorService,
				Flows: flows(FlowPricing, FlowTax, FlowQuote)},
			{ID: "cmd-worker", Kind: flowgraph.NodeKindJob, Position: at(0, 360),
				Label: "cmd/worker", Category: "Binaries", Color: colorJob,
				Flows: flows(FlowSalesforce)},
			{ID: "quote", Kind: flowgraph.NodeKindComponent, Position: at(240, 160),
				Label: "quote", Category: "Domain", Color: colorService,
				Flows: flows(FlowQuote)},
			{ID: "pricing", Kind: flowgraph.NodeKindComponent, Position: at(480, 60),
				Label: "pricing", Category: "Domain", Color: colorService,
				Flows: flows(FlowPricing, FlowQuote)},
			{ID: "tax", Kind: flowgraph.NodeKindComponent, Position: at(480, 260),
				Label: "tax", Category: "Domain", Color: colorService,
				Flows: flows(FlowTax, FlowQuote)},
			{ID: "inventory", Kind: flowgraph.NodeKindComponent, Position: at(720, 0),
				Label: "inventory", Category: "Domain", Color: colorService,
				Flows: flows(FlowPricing)},
			{ID: "crm", Kind: flowgraph.NodeKindComponent, Position: at(240, 360),
				Label: "crm/salesforce", Category: "Integrations", Color: colorExternal,
				Flows: flows(FlowSalesforce)},
			{ID: "money", Kind: flowgraph.NodeKindComponent, Position: at(720, 160),
				Label: "money", Category: "Shared", Color: colorJob,
				Flows: flows(FlowPricing, FlowTax, FlowQuote)},
			{ID: "store", Kind: flowgraph.NodeKindDatastore, Position: at(720, 320),
				Label: "store (pgx)", Category: "Shared", Color: colorData,
				Flows: flows(FlowPricing, FlowQuote, FlowSalesforce)},
			{ID: "telemetry", Kind: flowgraph.NodeKindComponent, Position: at(960, 160),
				Label: "telemetry", Category: "Shared", Color: colorJob},
		},
		Edges: []flowgraph.Edge{
			{ID: "api-quote", Source: "cmd-api", Target: "quote", Flows: flows(FlowQuote)},
			{ID: "api-pricing", Source: "cmd-api", Target: "pricing", Flows: flows(FlowPricing)},
			{ID: "api-tax", Source: "cmd-api", Target: "tax", Flows: flows(FlowTax)},
			{ID: "worker-crm", Source: "cmd-worker", Target: "crm", Flows: flows(FlowSalesforce)},
			{ID: "worker-store", Source: "cmd-worker", Target: "store", Flows: flows(FlowSalesforce)},
			{ID: "quote-pricing", Source: "quote", Target: "pricing", Flows: flows(FlowQuote)},
			{ID: "quote-tax", Source: "quote", Target: "tax", Flows: flows(FlowQuote)},
			{ID: "quote-store", Source: "quote", Target: "store", Flows: flows(FlowQuote)},
			{ID: "pricing-inventory", Source: "pricing", Target: "inventory", Flows: flows(FlowPricing)},
			{ID: "pricing-money", Source: "pricing", Target: "money", Flows: flows(FlowPricing, FlowQuote)},
			{ID: "pricing-store", Source: "pricing", Target: "store", Flows: flows(FlowPricing)},
			{ID: "tax-money", Source: "tax", Target: "money", Flows: flows(FlowTax, FlowQuote)},
			{ID: "money-telemetry", Source: "money", Target: "telemetry"},
			{ID: "store-telemetry", Source: "store", Target: "telemetry"},
		},
	}
}

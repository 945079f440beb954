// Package diagrams contains the architecture diagrams compiled into archdocs.
//
// They describe the vehicle-inventory and F&I pricing platform: a live
// request-flow diagram and a module-dependency diagram. Both are validated
// at package initialisation, so a broken edit fails every test and build
// that imports this package.
package diagrams

import (
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
)

// Flows traced through the platform.
const (
	FlowPricing    flowgraph.FlowID = "pricing"
	FlowTax        flowgraph.FlowID = "tax"
	FlowQuote      flowgraph.FlowID = "quote"
	FlowCache      flowgraph.FlowID = "cache"
	FlowSalesforce flowgraph.FlowID = "salesforce"
)

// Diagram ids.
const (
	LiveFlowID = "live-flow"
	ModulesID  = "modules"
)

var platformFlows = []diagram.Flow{
	{ID: FlowPricing, Label: "Pricing lookup", Color: "#2563eb",
		Description: "Dealer asks for a vehicle price with F&I products applied."},
	{ID: FlowTax, Label: "Tax calculation", Color: "#16a34a",
		Description: "Jurisdiction tax and fees for a deal."},
	{ID: FlowQuote, Label: "Quote creation", Color: "#9333ea",
		Description: "Pricing and tax combined into a persisted customer quote."},
	{ID: FlowCache, Label: "Cache warm-up", Color: "#ea580c",
		Description: "Nightly cron ingests lender and OEM programs and warms Redis."},
	{ID: FlowSalesforce, Label: "Salesforce sync", Color: "#0891b2",
		Description: "Quotes are pushed to the dealer CRM from the outbox table."},
}

var (
	liveFlow = diagram.MustNew(liveFlowDefinition())
	modules  = diagram.MustNew(modulesDefinition())
	builtin  = mustCatalog(liveFlow, modules)
)

// LiveFlow returns the live request-flow diagram.
func LiveFlow() *diagram.Store { return liveFlow }

// Modules returns the module-dependency diagram.
func Modules() *diagram.Store { return modules }

// Builtin returns every compiled-in diagram.
func Builtin() *diagram.Catalog { return builtin }

func mustCatalog(stores ...*diagram.Store) *diagram.Catalog {
	c, err := diagram.NewCatalog(stores...)
	if err != nil {
		panic(err)
	}
	return c
}

func flows(ids ...flowgraph.FlowID) flowgraph.FlowSet {
	return flowgraph.FlowSet(ids)
}

func at(x, y float64) flowgraph.Position {
	return flowgraph.Position{X: x, Y: y}
}

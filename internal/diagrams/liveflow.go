package diagrams

import (
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
)

const (
	colorFrontend = "#0ea5e9"
	colorService  = "#6366f1"
	colorData     = "#f59e0b"
	colorJob      = "#64748b"
	colorExternal = "#94a3b8"
)

func liveFlowDefinition() diagram.Definition {
	return diagram.Definition{
		ID:    LiveFlowID,
		Title: "Live request flow",
		Description: "How a dealer request travels through the inventory and F&I pricing " +
			"platform, from the web app to the data stores and third-party feeds.",
		Flows: platformFlows,
		Nodes: []flowgraph.Node{
			{
				ID: "dealer-web", Kind: flowgraph.NodeKindComponent, Position: at(0, 200),
				Label: "Dealer Web App", Category: "Frontend", Color: colorFrontend,
				Description: "Desk and showroom UI used by dealership staff.",
				Flows:       flows(FlowPricing, FlowTax, FlowQuote, FlowCache),
			},
			{
				ID: "admin-console", Kind: flowgraph.NodeKindComponent, Position: at(0, 420),
				Label: "Admin Console", Category: "Frontend", Color: colorFrontend,
				Description: "Internal tooling for support staff. Not part of any traced flow.",
			},
			{
				ID: "api-gateway", Kind: flowgraph.NodeKindComponent, Position: at(240, 200),
				Label: "API Gateway", Category: "Edge", Color: colorService,
				Description: "Authenticates dealers and routes requests to services.",
				Flows:       flows(FlowPricing, FlowTax, FlowQuote, FlowCache),
			},
			{
				ID: "pricing-svc", Kind: flowgraph.NodeKindComponent, Position: at(500, 80),
				Label: "Pricing Service", Category: "Backend", Color: colorService,
				Description: "Applies lender programs, incentives and F&I products to a vehicle.",
				Flows:       flows(FlowPricing, FlowQuote, FlowCache),
			},
			{
				ID: "inventory-svc", Kind: flowgraph.NodeKindComponent, Position: at(760, 0),
				Label: "Inventory Service", Category: "Backend", Color: colorService,
				Description: "Vehicle stock, VIN decoding and dealer lot data.",
				Flows:       flows(FlowPricing),
			},
			{
				ID: "tax-svc", Kind: flowgraph.NodeKindComponent, Position: at(500, 320),
				Label: "Tax Service", Category: "Backend", Color: colorService,
				Description: "Resolves jurisdiction and computes taxes and fees.",
				Flows:       flows(FlowTax, FlowQuote),
			},
			{
				ID: "quote-svc", Kind: flowgraph.NodeKindComponent, Position: at(500, 200),
				Label: "Quote Service", Category: "Backend", Color: colorService,
				Description: "Assembles priced, taxed quotes and writes them with an outbox row.",
				Flows:       flows(FlowQuote, FlowSalesforce),
			},
			{
				ID: "redis", Kind: flowgraph.NodeKindDatastore, Position: at(760, 120),
				Label: "Redis Cache", Category: "Data", Color: colorData,
				Description: "Rate sheets and incentive lookups keyed by program and region.",
				Flows:       flows(FlowPricing, FlowCache),
			},
			{
				ID: "postgres", Kind: flowgraph.NodeKindDatastore, Position: at(760, 260),
				Label: "PostgreSQL", Category: "Data", Color: colorData,
				Description: "System of record for inventory, programs, quotes and the outbox.",
				Flows:       flows(FlowPricing, FlowQuote, FlowCache, FlowSalesforce),
			},
			{
				ID: "tax-provider", Kind: flowgraph.NodeKindExternal, Position: at(760, 400),
				Label: "Tax Rate Provider", Category: "Third party", Color: colorExternal,
				Description: "External tax rate API.",
				Flows:       flows(FlowTax),
			},
			{
				ID: "incentive-cron", Kind: flowgraph.NodeKindJob, Position: at(1020, 120),
				Label: "Incentive Ingest Cron", Category: "Pipelines", Color: colorJob,
				Description: "Nightly job pulling lender rate sheets and OEM incentives.",
				Flows:       flows(FlowCache),
			},
			{
				ID: "lender-feeds", Kind: flowgraph.NodeKindExternal, Position: at(1280, 40),
				Label: "Lender Rate Feeds", Category: "Third party", Color: colorExternal,
				Description: "Captive and bank lender rate sheets.",
				Flows:       flows(FlowCache),
			},
			{
				ID: "oem-incentives", Kind: flowgraph.NodeKindExternal, Position: at(1280, 200),
				Label: "OEM Incentives", Category: "Third party", Color: colorExternal,
				Description: "Manufacturer rebates and special APR programs.",
				Flows:       flows(FlowCache),
			},
			{
				ID: "salesforce-sync", Kind: flowgraph.NodeKindJob, Position: at(1020, 320),
				Label: "Salesforce Sync", Category: "Pipelines", Color: colorJob,
				Description: "Drains the quote outbox into the dealer CRM.",
				Flows:       flows(FlowSalesforce),
			},
			{
				ID: "salesforce", Kind: flowgraph.NodeKindExternal, Position: at(1280, 320),
				Label: "Salesforce", Category: "Third party", Color: colorExternal,
				Description: "Dealer CRM.",
				Flows:       flows(FlowSalesforce),
			},
		},
		Edges: []flowgraph.Edge{
			{ID: "web-gateway", Source: "dealer-web", Target: "api-gateway", Label: "HTTPS",
				Animated: true, Flows: flows(FlowPricing, FlowTax, FlowQuote, FlowCache)},
			{ID: "admin-gateway", Source: "admin-console", Target: "api-gateway", Label: "HTTPS"},
			{ID: "gateway-pricing", Source: "api-gateway", Target: "pricing-svc", Label: "GET /price",
				Animated: true, Flows: flows(FlowPricing, FlowCache)},
			{ID: "gateway-tax", Source: "api-gateway", Target: "tax-svc", Label: "POST /tax",
				Animated: true, Flows: flows(FlowTax)},
			{ID: "gateway-quote", Source: "api-gateway", Target: "quote-svc", Label: "POST /quotes",
				Animated: true, Flows: flows(FlowQuote)},
			{ID: "pricing-inventory", Source: "pricing-svc", Target: "inventory-svc", Label: "vehicle lookup",
				Flows: flows(FlowPricing)},
			{ID: "pricing-redis", Source: "pricing-svc", Target: "redis", Label: "rate sheet",
				Color: colorData, Flows: flows(FlowPricing, FlowCache)},
			{ID: "pricing-postgres", Source: "pricing-svc", Target: "postgres", Label: "cache miss",
				Flows: flows(FlowPricing)},
			{ID: "inventory-postgres", Source: "inventory-svc", Target: "postgres", Label: "SQL",
				Flows: flows(FlowPricing)},
			{ID: "quote-pricing", Source: "quote-svc", Target: "pricing-svc", Label: "price deal",
				Flows: flows(FlowQuote)},
			{ID: "quote-tax", Source: "quote-svc", Target: "tax-svc", Label: "tax deal",
				Flows: flows(FlowQuote)},
			{ID: "quote-postgres", Source: "quote-svc", Target: "postgres", Label: "quote + outbox",
				Flows: flows(FlowQuote, FlowSalesforce)},
			{ID: "tax-provider-call", Source: "tax-svc", Target: "tax-provider", Label: "rates API",
				Color: colorExternal, Flows: flows(FlowTax)},
			{ID: "cron-lender", Source: "incentive-cron", Target: "lender-feeds", Label: "SFTP pull",
				Flows: flows(FlowCache)},
			{ID: "cron-oem", Source: "incentive-cron", Target: "oem-incentives", Label: "REST pull",
				Flows: flows(FlowCache)},
			{ID: "cron-postgres", Source: "incentive-cron", Target: "postgres", Label: "upsert programs",
				Flows: flows(FlowCache)},
			{ID: "cron-redis", Source: "incentive-cron", Target: "redis", Label: "warm keys",
				Animated: true, Color: colorData, Flows: flows(FlowCache)},
			{ID: "sync-postgres", Source: "salesforce-sync", Target: "postgres", Label: "read outbox",
				Flows: flows(FlowSalesforce)},
			{ID: "sync-salesforce", Source: "salesforce-sync", Target: "salesforce", Label: "upsert Opportunity",
				Animated: true, Flows: flows(FlowSalesforce)},
		},
	}
}

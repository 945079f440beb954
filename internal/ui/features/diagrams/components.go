package diagrams

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/archdocs/internal/ui/features/common"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
)

// Node box size in diagram units.
const (
	nodeWidth  = 168
	nodeHeight = 56
	canvasPad  = 48
)

// IndexPage renders the diagram listing.
func IndexPage(isDev bool, diagrams []DiagramSummary) templ.Component {
	return common.Page("Diagrams", isDev, common.Component(func(h *common.HTML) {
		h.Raw(`<h1>Architecture diagrams</h1>`)
		if len(diagrams) == 0 {
			h.Raw(`<p class="muted">No diagrams found.</p>`)
			return
		}
		h.Raw(`<ul class="diagram-list">`)
		for _, d := range diagrams {
			h.Raw(`<li><a`)
			h.Attr("href", diagramPath(d.ID))
			h.Raw(`>`)
			h.Text(d.Title)
			h.Raw(`</a> <span class="muted">`)
			h.Text(fmt.Sprintf("%d components, %d interactions, %d flows", d.NodeCount, d.EdgeCount, len(d.Flows)))
			h.Raw(`</span>`)
			if d.Description != "" {
				h.Raw(`<p>`)
				h.Text(d.Description)
				h.Raw(`</p>`)
			}
			h.Raw(`</li>`)
		}
		h.Raw(`</ul>`)
	}))
}

// DiagramPage renders a full diagram page and opens its update stream.
func DiagramPage(isDev bool, view DiagramView) templ.Component {
	return common.Page(view.Title, isDev, common.Component(func(h *common.HTML) {
		h.Raw(`<div class="diagram-page"`)
		h.Attr("data-init", fmt.Sprintf("@get('%s/updates')", diagramPath(view.ID)))
		h.Raw(`>`)
		h.Raw(`<h1>`)
		h.Text(view.Title)
		h.Raw(`</h1>`)
		if view.Description != "" {
			h.Raw(`<p class="muted">`)
			h.Text(view.Description)
			h.Raw(`</p>`)
		}
		h.Component(DiagramFragment(view))
		h.Raw(`</div>`)
	}))
}

// FragmentID is the element id patched by selection and update events.
func FragmentID(diagramID string) string {
	return "diagram-" + diagramID
}

// DiagramFragment renders the flow legend and the filtered graph.
func DiagramFragment(view DiagramView) templ.Component {
	return common.Component(func(h *common.HTML) {
		h.Raw(`<section class="diagram"`)
		h.Attr("id", FragmentID(view.ID))
		h.Attr("data-selection", view.Selection)
		h.Raw(`>`)

		renderLegend(h, view)
		renderGraph(h, view.Graph)

		h.Raw(`<p class="stats muted">`)
		h.Text(fmt.Sprintf("%d of %d components, %d of %d interactions highlighted",
			view.VisibleNodes, len(view.Graph.Nodes), view.VisibleEdges, len(view.Graph.Edges)))
		h.Raw(`</p></section>`)
	})
}

func renderLegend(h *common.HTML, view DiagramView) {
	h.Raw(`<div class="legend" role="toolbar" aria-label="Flows">`)
	flowButton(h, view.ID, flowgraph.AllFlows(), "All flows", "", view.selected.IsAll())

	current, active := view.selected.Flow()
	for _, f := range view.Flows {
		flowButton(h, view.ID, flowgraph.Only(f.ID), f.Label, f.Color, active && current == f.ID)
	}
	h.Raw(`</div>`)
}

func flowButton(h *common.HTML, diagramID string, sel flowgraph.Selection, label, color string, selected bool) {
	class := "flow-button"
	if selected {
		class += " selected"
	}
	action := fmt.Sprintf("@post('%s/select?flow=%s')", diagramPath(diagramID), url.QueryEscape(sel.String()))

	h.Raw(`<button type="button"`)
	h.Attr("class", class)
	h.Attr("data-flow", sel.String())
	h.Attr("aria-pressed", strconv.FormatBool(selected))
	h.Attr("data-on:click", action)
	h.Raw(`>`)
	if color != "" {
		h.Raw(`<span class="swatch"`)
		h.Attr("style", "background:"+color)
		h.Raw(`></span>`)
	}
	h.Text(label)
	h.Raw(`</button>`)
}

type point struct{ x, y float64 }

func renderGraph(h *common.HTML, g flowgraph.Graph) {
	if len(g.Nodes) == 0 {
		h.Raw(`<p class="muted">This diagram has no components.</p>`)
		return
	}

	centres := make(map[string]point, len(g.Nodes))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range g.Nodes {
		centres[n.ID] = point{n.Position.X + nodeWidth/2, n.Position.Y + nodeHeight/2}
		minX = math.Min(minX, n.Position.X)
		minY = math.Min(minY, n.Position.Y)
		maxX = math.Max(maxX, n.Position.X+nodeWidth)
		maxY = math.Max(maxY, n.Position.Y+nodeHeight)
	}

	h.Rawf(`<svg class="graph" xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`,
		num(minX-canvasPad), num(minY-canvasPad), num(maxX-minX+2*canvasPad), num(maxY-minY+2*canvasPad))
	h.Raw(`<defs><marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse">` +
		`<path d="M 0 0 L 10 5 L 0 10 z" fill="context-stroke"></path></marker></defs>`)

	for _, e := range g.Edges {
		a, okA := centres[e.Source]
		b, okB := centres[e.Target]
		if !okA || !okB {
			continue
		}
		from, to := border(a, b), border(b, a)

		h.Raw(`<g`)
		h.Attr("class", entityClass("edge", e.Dimmed, e.Animated))
		h.Attr("data-id", e.ID)
		h.Raw(`>`)
		h.Rawf(`<line x1="%s" y1="%s" x2="%s" y2="%s" marker-end="url(#arrow)"`, num(from.x), num(from.y), num(to.x), num(to.y))
		if e.Color != "" {
			h.Attr("stroke", e.Color)
		}
		h.Raw(`></line>`)
		if e.Label != "" {
			h.Rawf(`<text class="edge-label" x="%s" y="%s">`, num((from.x+to.x)/2), num((from.y+to.y)/2-6))
			h.Text(e.Label)
			h.Raw(`</text>`)
		}
		h.Raw(`</g>`)
	}

	for _, n := range g.Nodes {
		kind := n.Kind
		if kind == "" {
			kind = flowgraph.NodeKindComponent
		}
		h.Raw(`<g`)
		h.Attr("class", entityClass("node kind-"+string(kind), n.Dimmed, false))
		h.Attr("data-id", n.ID)
		h.Rawf(` transform="translate(%s,%s)">`, num(n.Position.X), num(n.Position.Y))
		if n.Description != "" {
			h.Raw(`<title>`)
			h.Text(n.Description)
			h.Raw(`</title>`)
		}
		rx := 8
		if kind == flowgraph.NodeKindDatastore {
			rx = 18
		}
		h.Rawf(`<rect width="%d" height="%d" rx="%d"`, nodeWidth, nodeHeight, rx)
		if n.Color != "" {
			h.Attr("stroke", n.Color)
		}
		h.Raw(`></rect>`)

		label := n.Label
		if label == "" {
			label = n.ID
		}
		labelY := 32
		if n.Category != "" {
			labelY = 24
		}
		h.Rawf(`<text class="node-label" x="%d" y="%d">`, nodeWidth/2, labelY)
		h.Text(label)
		h.Raw(`</text>`)
		if n.Category != "" {
			h.Rawf(`<text class="node-category" x="%d" y="42">`, nodeWidth/2)
			h.Text(n.Category)
			h.Raw(`</text>`)
		}
		h.Raw(`</g>`)
	}
	h.Raw(`</svg>`)
}

// border is where the segment from the centre of box a towards b leaves a.
func border(a, b point) point {
	dx, dy := b.x-a.x, b.y-a.y
	if dx == 0 && dy == 0 {
		return a
	}
	sx, sy := math.Inf(1), math.Inf(1)
	if dx != 0 {
		sx = (nodeWidth / 2) / math.Abs(dx)
	}
	if dy != 0 {
		sy = (nodeHeight / 2) / math.Abs(dy)
	}
	s := math.Min(sx, sy)
	return point{a.x + dx*s, a.y + dy*s}
}

func entityClass(base string, dimmed, animated bool) string {
	if dimmed {
		base += " dimmed"
	}
	if animated {
		base += " animated"
	}
	return base
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func diagramPath(id string) string {
	return "/diagrams/" + url.PathEscape(id)
}

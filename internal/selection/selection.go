// Package selection holds the flow selection a user toggles while viewing a
// diagram.
//
// The state lives with the caller (one Controller per TUI loop or browser
// session), never inside the filter. Every view is derived from the
// diagram's original graph, so switching flows cannot accumulate stale
// dimming.
package selection

import (
	"github.com/leapstack-labs/archdocs/internal/diagram"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
)

// State is the selection state of a Controller.
type State int

const (
	// Unfiltered shows every node and edge.
	Unfiltered State = iota
	// FilteredBy highlights a single flow.
	FilteredBy
)

func (s State) String() string {
	switch s {
	case Unfiltered:
		return "unfiltered"
	case FilteredBy:
		return "filtered"
	default:
		return "unknown"
	}
}

// Controller tracks the selected flow for one diagram.
// It is not safe for concurrent use.
type Controller struct {
	store *diagram.Store
	sel   flowgraph.Selection
}

// New returns a Controller in the Unfiltered state.
func New(store *diagram.Store) *Controller {
	return &Controller{store: store}
}

// NewWith returns a Controller starting from sel, e.g. a selection restored
// from a session.
func NewWith(store *diagram.Store, sel flowgraph.Selection) *Controller {
	return &Controller{store: store, sel: sel}
}

// SelectFlow moves to FilteredBy(f) from any state.
func (c *Controller) SelectFlow(f flowgraph.FlowID) {
	c.sel = flowgraph.Only(f)
}

// Reset moves to Unfiltered from any state.
func (c *Controller) Reset() {
	c.sel = flowgraph.AllFlows()
}

// Toggle selects f, or resets when f is already selected.
func (c *Controller) Toggle(f flowgraph.FlowID) {
	if current, ok := c.sel.Flow(); ok && current == f {
		c.Reset()
		return
	}
	c.SelectFlow(f)
}

// Apply sets the selection directly.
func (c *Controller) Apply(sel flowgraph.Selection) {
	c.sel = sel
}

// State returns the current state.
func (c *Controller) State() State {
	if c.sel.IsAll() {
		return Unfiltered
	}
	return FilteredBy
}

// Selection returns the current selection.
func (c *Controller) Selection() flowgraph.Selection {
	return c.sel
}

// Store returns the diagram being viewed.
func (c *Controller) Store() *diagram.Store {
	return c.store
}

// View filters the diagram's original graph with the current selection.
func (c *Controller) View() flowgraph.Graph {
	return c.store.View(c.sel)
}

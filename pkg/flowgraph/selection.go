package flowgraph

import "strings"

// AllFlowsKeyword is the textual form of the reset selection.
const AllFlowsKeyword = "all"

// Selection is the flow currently highlighted, or no flow at all.
// The zero value selects all flows (nothing is dimmed).
type Selection struct {
	flow   FlowID
	active bool
}

// AllFlows returns the reset selection.
func AllFlows() Selection {
	return Selection{}
}

// Only returns a selection of the single flow f.
func Only(f FlowID) Selection {
	return Selection{flow: f, active: true}
}

// Flow returns the selected flow and true, or "" and false for all flows.
func (s Selection) Flow() (FlowID, bool) {
	return s.flow, s.active
}

// IsAll reports whether no specific flow is selected.
func (s Selection) IsAll() bool {
	return !s.active
}

// String returns the flow id, or "all" for the reset selection.
func (s Selection) String() string {
	if !s.active {
		return AllFlowsKeyword
	}
	return string(s.flow)
}

// Reserved reports whether f collides with the reset keyword and so cannot
// name a flow.
func (f FlowID) Reserved() bool {
	return strings.EqualFold(strings.TrimSpace(string(f)), AllFlowsKeyword)
}

// ParseSelection converts user input into a Selection.
// Empty input and "all" (case-insensitive) select all flows; anything else,
// including a flow no diagram declares, selects that flow. A flow named
// "all" could never be selected this way, so diagram construction rejects
// it (see FlowID.Reserved).
func ParseSelection(s string) Selection {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, AllFlowsKeyword) {
		return AllFlows()
	}
	return Only(FlowID(s))
}

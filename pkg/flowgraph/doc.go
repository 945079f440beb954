// Package flowgraph defines the flow-scoped architecture graph model.
//
// This package contains:
//   - Graph entities (Node, Edge, Graph) with their display metadata
//   - Flow membership types (FlowID, FlowSet, Selection)
//   - The flow filter (ApplyFlowFilter), which derives a dimmed view of a
//     graph for one selected flow
//
// pkg/flowgraph imports only the standard library and performs no I/O.
// Diagram authoring, validation and rendering all live elsewhere.
package flowgraph

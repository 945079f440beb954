package diagram

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/archdocs/internal/testutil"
	"github.com/leapstack-labs/archdocs/pkg/flowgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDefinition() Definition {
	return Definition{
		ID:    "checkout",
		Title: "Checkout",
		Flows: []Flow{
			{ID: "pricing", Label: "Pricing lookup"},
			{ID: "cache"},
			{ID: "tax"},
		},
		Nodes: []flowgraph.Node{
			{ID: "A", Label: "A", Flows: flowgraph.FlowSet{"pricing"}},
			{ID: "B", Label: "B", Flows: flowgraph.FlowSet{"pricing", "cache"}},
			{ID: "C", Label: "C", Flows: flowgraph.FlowSet{"tax"}},
			{ID: "D", Label: "D"},
		},
		Edges: []flowgraph.Edge{
			{ID: "e1", Source: "A", Target: "B", Flows: flowgraph.FlowSet{"pricing"}},
		},
	}
}

func TestNew_Valid(t *testing.T) {
	s, err := New(validDefinition(), WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)

	assert.Equal(t, "checkout", s.ID())
	assert.Equal(t, "Checkout", s.Title())
	assert.True(t, s.DeclaresFlows())
	assert.Len(t, s.Flows(), 3)

	g := s.Graph()
	assert.Len(t, g.Nodes, 4)
	assert.Len(t, g.Edges, 1)

	f, ok := s.Flow("pricing")
	require.True(t, ok)
	assert.Equal(t, "Pricing lookup", f.Label)
}

func TestNew_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Definition)
		want   error
	}{
		{
			name:   "empty diagram id",
			mutate: func(d *Definition) { d.ID = "" },
			want:   ErrEmptyID,
		},
		{
			name: "empty node id",
			mutate: func(d *Definition) {
				d.Nodes = append(d.Nodes, flowgraph.Node{Label: "nameless"})
			},
			want: ErrEmptyID,
		},
		{
			name: "duplicate node",
			mutate: func(d *Definition) {
				d.Nodes = append(d.Nodes, flowgraph.Node{ID: "A"})
			},
			want: ErrDuplicateNode,
		},
		{
			name: "duplicate edge",
			mutate: func(d *Definition) {
				d.Edges = append(d.Edges, flowgraph.Edge{ID: "e1", Source: "B", Target: "C"})
			},
			want: ErrDuplicateEdge,
		},
		{
			name: "dangling source",
			mutate: func(d *Definition) {
				d.Edges = append(d.Edges, flowgraph.Edge{ID: "e2", Source: "ghost", Target: "C"})
			},
			want: ErrDanglingEdge,
		},
		{
			name: "dangling target",
			mutate: func(d *Definition) {
				d.Edges = append(d.Edges, flowgraph.Edge{ID: "e2", Source: "C", Target: "ghost"})
			},
			want: ErrDanglingEdge,
		},
		{
			name: "unknown node flow",
			mutate: func(d *Definition) {
				d.Nodes[0].Flows = flowgraph.FlowSet{"pricnig"}
			},
			want: ErrUnknownFlow,
		},
		{
			name: "unknown edge flow",
			mutate: func(d *Definition) {
				d.Edges[0].Flows = flowgraph.FlowSet{"quote"}
			},
			want: ErrUnknownFlow,
		},
		{
			name: "duplicate flow declaration",
			mutate: func(d *Definition) {
				d.Flows = append(d.Flows, Flow{ID: "tax"})
			},
			want: ErrDuplicateFlow,
		},
		{
			name: "reserved flow declaration",
			mutate: func(d *Definition) {
				d.Flows = append(d.Flows, Flow{ID: "All"})
			},
			want: ErrReservedFlow,
		},
		{
			name: "empty flow declaration",
			mutate: func(d *Definition) {
				d.Flows = append(d.Flows, Flow{Label: "nothing"})
			},
			want: ErrEmptyID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition()
			tt.mutate(&def)

			s, err := New(def)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, tt.want)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Len(t, verr.Problems, 1)
		})
	}
}

func TestNew_NodeAndEdgeIDSpacesAreIndependent(t *testing.T) {
	def := validDefinition()
	def.Edges[0].ID = "A"

	_, err := New(def)
	assert.NoError(t, err)
}

func TestNew_CollectsAllProblems(t *testing.T) {
	def := validDefinition()
	def.Nodes = append(def.Nodes, flowgraph.Node{ID: "A"})
	def.Edges = append(def.Edges,
		flowgraph.Edge{ID: "e1", Source: "A", Target: "B"},
		flowgraph.Edge{ID: "e3", Source: "nowhere", Target: "B", Flows: flowgraph.FlowSet{"typo"}},
	)

	_, err := New(def)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "checkout", verr.Diagram)
	assert.Len(t, verr.Problems, 4)
	assert.ErrorIs(t, err, ErrDuplicateNode)
	assert.ErrorIs(t, err, ErrDuplicateEdge)
	assert.ErrorIs(t, err, ErrDanglingEdge)
	assert.ErrorIs(t, err, ErrUnknownFlow)
	assert.Contains(t, err.Error(), "4 problems")
	assert.Contains(t, err.Error(), `"nowhere"`)
}

func TestNew_UndeclaredUniverse(t *testing.T) {
	def := validDefinition()
	def.Flows = nil
	def.Nodes[0].Flows = flowgraph.FlowSet{"anything"}

	s, err := New(def)
	require.NoError(t, err)
	assert.False(t, s.DeclaresFlows())

	var ids []flowgraph.FlowID
	for _, f := range s.Flows() {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []flowgraph.FlowID{"anything", "cache", "pricing", "tax"}, ids)
}

func TestNew_ReservedFlowTag(t *testing.T) {
	def := validDefinition()
	def.Flows = nil
	def.Edges[0].Flows = flowgraph.FlowSet{"all"}

	_, err := New(def)
	assert.ErrorIs(t, err, ErrReservedFlow)
	assert.Contains(t, err.Error(), `edge "e1" tagged "all"`)

	// with a declared universe the tag is simply unknown
	declared := validDefinition()
	declared.Nodes[0].Flows = flowgraph.FlowSet{"all"}
	_, err = New(declared)
	assert.ErrorIs(t, err, ErrUnknownFlow)
}

func TestNew_StrictFlows(t *testing.T) {
	def := validDefinition()
	def.Flows = nil

	_, err := New(def, WithStrictFlows())
	assert.ErrorIs(t, err, ErrUnknownFlow)

	untagged := Definition{
		ID:    "plain",
		Nodes: []flowgraph.Node{{ID: "x"}},
	}
	_, err = New(untagged, WithStrictFlows())
	assert.NoError(t, err)
}

func TestNew_DiscardsAuthoredDimmed(t *testing.T) {
	def := validDefinition()
	def.Nodes[1].Dimmed = true
	def.Edges[0].Dimmed = true

	s := MustNew(def)

	for _, n := range s.Graph().Nodes {
		assert.False(t, n.Dimmed, n.ID)
	}
	assert.False(t, s.Graph().Edges[0].Dimmed)
}

func TestNew_DoesNotAliasDefinition(t *testing.T) {
	def := validDefinition()
	s := MustNew(def)

	def.Nodes[0].Label = "mutated"
	def.Nodes[0].Flows[0] = "tax"

	n, ok := s.Graph().Node("A")
	require.True(t, ok)
	assert.Equal(t, "A", n.Label)
	assert.Equal(t, flowgraph.FlowSet{"pricing"}, n.Flows)
}

func TestStore_GraphIsIndependentCopy(t *testing.T) {
	s := MustNew(validDefinition())

	g := s.Graph()
	g.Nodes[0].Dimmed = true
	g.Nodes[0].Flows[0] = "cache"
	g.Edges = nil

	again := s.Graph()
	assert.Equal(t, s.Graph(), again)
	assert.False(t, again.Nodes[0].Dimmed)
	assert.Equal(t, flowgraph.FlowID("pricing"), again.Nodes[0].Flows[0])
	assert.Len(t, again.Edges, 1)
}

func TestStore_View(t *testing.T) {
	s := MustNew(validDefinition())

	pricing := s.View(flowgraph.Only("pricing"))
	nodes, edges := flowgraph.Stats(pricing)
	assert.Equal(t, 2, nodes)
	assert.Equal(t, 1, edges)

	// Switching flows always starts from the baseline.
	cache := s.View(flowgraph.Only("cache"))
	assert.Equal(t, flowgraph.ApplyFlowFilter(s.Graph(), flowgraph.Only("cache")), cache)
}

func TestStore_Definition(t *testing.T) {
	def := validDefinition()
	s := MustNew(def)

	got := s.Definition()
	assert.Equal(t, def.ID, got.ID)
	assert.Equal(t, def.Flows, got.Flows)
	assert.Equal(t, def.Nodes, got.Nodes)
	assert.Equal(t, def.Edges, got.Edges)
}

func TestStore_TitleFallback(t *testing.T) {
	s := MustNew(Definition{ID: "bare"})
	assert.Equal(t, "bare", s.Title())
	assert.Empty(t, s.Flows())
}

func TestMustNew_Panics(t *testing.T) {
	def := validDefinition()
	def.Edges[0].Target = "missing"

	assert.Panics(t, func() { MustNew(def) })
}

// Package core_test holds shared fixtures for the core tests.
//
// Fixture shape:
//   - every chain vertex has three APs: 0 towards the parent, 1 towards the
//     next chain vertex, 2 free for side groups or ring-closing vertices;
//   - classes default to "c:0", accepted by apclass.SameRule with each other.
package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragevo/apclass"
	"github.com/katalvlaran/fragevo/core"
)

var (
	clsC  = apclass.MustParse("c:0")
	clsX  = apclass.MustParse("x:0")
	clsRC = apclass.RingClosingNeutral
)

// Building-block IDs used by fixtures.
const (
	bbChain = 1
	bbSide  = 2
	bbRCV   = 90
	bbCap   = 99
)

// frag returns a detached fragment with one AP per class.
func frag(id core.VertexID, bb int, classes ...apclass.Class) *core.Vertex {
	aps := make([]*core.AttachmentPoint, len(classes))
	for i, c := range classes {
		aps[i] = core.NewAP(c)
	}
	return core.NewFragment(id, core.BuildingBlock{ID: bb, Role: core.RoleFragment}, aps...)
}

// chainVertex returns a three-AP chain fragment.
func chainVertex(id core.VertexID) *core.Vertex {
	return frag(id, bbChain, clsC, clsC, clsC)
}

// newChain builds v0 -> v1 -> ... -> v(n-1) through AP1 -> AP0 links.
func newChain(t *testing.T, n int, opts ...core.GraphOption) (*core.Graph, []*core.Vertex) {
	t.Helper()
	g := core.NewGraph(opts...)
	vs := make([]*core.Vertex, n)
	vs[0] = chainVertex(0)
	require.NoError(t, g.AddVertex(vs[0]))
	for i := 1; i < n; i++ {
		vs[i] = chainVertex(core.VertexID(i))
		require.NoError(t, g.AppendVertex(vs[i-1].AP(1), vs[i], vs[i].AP(0), core.BondSingle))
	}
	return g, vs
}

// appendRCV hangs a ring-closing vertex on ap and returns it.
func appendRCV(t *testing.T, g *core.Graph, ap *core.AttachmentPoint) *core.Vertex {
	t.Helper()
	rcv := core.NewRingClosingVertex(g.NextVertexID(), bbRCV, clsC)
	require.NoError(t, g.AppendVertex(ap, rcv, rcv.AP(0), core.BondSingle))
	return rcv
}

// appendSide hangs a three-AP side fragment on ap and returns it.
func appendSide(t *testing.T, g *core.Graph, ap *core.AttachmentPoint) *core.Vertex {
	t.Helper()
	s := frag(g.NextVertexID(), bbSide, clsC, clsC, clsC)
	require.NoError(t, g.AppendVertex(ap, s, s.AP(0), core.BondSingle))
	return s
}

// appendCap hangs a capping group on ap and returns it.
func appendCap(t *testing.T, g *core.Graph, ap *core.AttachmentPoint) *core.Vertex {
	t.Helper()
	c := core.NewCap(g.NextVertexID(), bbCap, core.NewAP(clsC))
	require.NoError(t, g.AppendVertex(ap, c, c.AP(0), core.BondSingle))
	return c
}

// ids lists vertex IDs in order.
func ids(vs []*core.Vertex) []core.VertexID {
	out := make([]core.VertexID, len(vs))
	for i, v := range vs {
		out[i] = v.ID()
	}
	return out
}

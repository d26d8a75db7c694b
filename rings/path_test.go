package rings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragevo/apclass"
	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/rings"
)

var cls = apclass.MustParse("c:0")

func vertex(id core.VertexID, bb int) *core.Vertex {
	return core.NewFragment(id, core.BuildingBlock{ID: bb, Role: core.RoleFragment},
		core.NewAP(cls), core.NewAP(cls), core.NewAP(cls))
}

func rcv(id core.VertexID) *core.Vertex {
	return core.NewRingClosingVertex(id, 90, cls)
}

// forkFixture: r (bb 10) with a (bb 11) on AP1 and b (bb 12) on AP2; an RCV
// hangs on AP1 of both a and b.
func forkFixture(t *testing.T) (g *core.Graph, r, a, b, ra, rb *core.Vertex) {
	t.Helper()
	g = core.NewGraph()
	r, a, b = vertex(0, 10), vertex(1, 11), vertex(2, 12)
	ra, rb = rcv(3), rcv(4)
	require.NoError(t, g.AddVertex(r))
	require.NoError(t, g.AppendVertex(r.AP(1), a, a.AP(0), core.BondSingle))
	require.NoError(t, g.AppendVertex(r.AP(2), b, b.AP(0), core.BondSingle))
	require.NoError(t, g.AppendVertex(a.AP(1), ra, ra.AP(0), core.BondSingle))
	require.NoError(t, g.AppendVertex(b.AP(1), rb, rb.AP(0), core.BondSingle))
	return g, r, a, b, ra, rb
}

func TestFindPath_Fork(t *testing.T) {
	g, r, a, b, ra, rb := forkFixture(t)

	p, ok := rings.FindPath(ra, rb)
	require.True(t, ok)

	assert.Same(t, r, p.TurningPoint)
	assert.Equal(t, []*core.Vertex{ra, a, r, b, rb}, p.Vertices)
	require.Len(t, p.Steps, 4)
	assert.Same(t, g.EdgeToParent(ra), p.Steps[0].Edge)
	assert.Same(t, g.EdgeToParent(rb), p.Steps[3].Edge)
	assert.Equal(t, []bool{false, false, true, true},
		[]bool{p.Steps[0].Reversed, p.Steps[1].Reversed, p.Steps[2].Reversed, p.Steps[3].Reversed})
	assert.Equal(t, "11/F/ap1ap0_10/F/ap1ap2_12/F/ap0ap1_%1", p.ChainID)
	assert.Equal(t, "12/F/ap1ap0_10/F/ap2ap1_11/F/ap0ap1_%1", p.RevChainID)
	assert.Len(t, p.ChainIDs(), 6)
	assert.Contains(t, p.ChainIDs(), "10/F/ap1ap2_12/F/ap0ap1_11/F/ap1ap0_%1")
	assert.Equal(t, 3, p.RingSize())
	assert.Equal(t, []*core.Vertex{a, r, b}, p.Interior())
}

func TestFindPath_ReverseIsSynonym(t *testing.T) {
	_, _, _, _, ra, rb := forkFixture(t)

	p, ok := rings.FindPath(ra, rb)
	require.True(t, ok)
	q, ok := rings.FindPath(rb, ra)
	require.True(t, ok)

	assert.Equal(t, p.RevChainID, q.ChainID)
	assert.Equal(t, p.ChainID, q.RevChainID)
	assert.ElementsMatch(t, p.ChainIDs(), q.ChainIDs())
	assert.Same(t, p.TurningPoint, q.TurningPoint)
}

// A six-vertex chain walked from the root to the last vertex: the turning
// point is the root itself and four interior vertices give four tokens.
func TestFindPath_Chain(t *testing.T) {
	g := core.NewGraph()
	vs := make([]*core.Vertex, 6)
	vs[0] = vertex(0, 20)
	require.NoError(t, g.AddVertex(vs[0]))
	for i := 1; i < 6; i++ {
		vs[i] = vertex(core.VertexID(i), 20+i)
		require.NoError(t, g.AppendVertex(vs[i-1].AP(1), vs[i], vs[i].AP(0), core.BondSingle))
	}

	p, ok := rings.FindPath(vs[0], vs[5])
	require.True(t, ok)

	assert.Same(t, vs[0], p.TurningPoint)
	assert.Equal(t, vs, p.Vertices)
	assert.Equal(t, "21/F/ap0ap1_22/F/ap0ap1_23/F/ap0ap1_24/F/ap0ap1_%-1", p.ChainID)
	assert.Equal(t, "24/F/ap1ap0_23/F/ap1ap0_22/F/ap1ap0_21/F/ap1ap0_%-1", p.RevChainID)
	assert.Len(t, p.ChainIDs(), 8)
	for _, s := range p.Steps {
		assert.True(t, s.Reversed)
	}
}

func TestFindPath_NoPath(t *testing.T) {
	g, _, a, _, _, _ := forkFixture(t)
	other := core.NewGraph()
	lone := vertex(0, 10)
	require.NoError(t, other.AddVertex(lone))

	_, ok := rings.FindPath(a, lone)
	assert.False(t, ok)

	_, ok = rings.FindPath(a, a)
	assert.False(t, ok)

	p, ok := rings.FindPath(nil, a)
	assert.False(t, ok)
	assert.True(t, p.IsZero())
	assert.NotNil(t, g)
}

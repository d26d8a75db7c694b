package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragevo/apclass"
	"github.com/katalvlaran/fragevo/core"
)

// ringFixture builds v0..v3 with an RCV on v3.AP1 and one on v0.AP2, then
// closes the ring rcvH, v3, v2, v1, v0, rcvT.
func ringFixture(t *testing.T) (*core.Graph, []*core.Vertex, *core.Ring) {
	t.Helper()
	g, vs := newChain(t, 4)
	rcvH := appendRCV(t, g, vs[3].AP(1))
	rcvT := appendRCV(t, g, vs[0].AP(2))
	r, err := g.CloseRing(rcvH, rcvT, core.BondSingle)
	require.NoError(t, err)
	return g, vs, r
}

func TestCloseRing(t *testing.T) {
	g, vs, r := ringFixture(t)

	assert.Equal(t, 6, r.Size())
	assert.Equal(t, []core.VertexID{4, 3, 2, 1, 0, 5}, ids(r.Vertices()))
	assert.True(t, r.Contains(vs[2]))
	assert.Equal(t, 2, r.PositionOf(vs[2]))
	assert.Equal(t, 1, r.Distance(r.Head(), r.Tail()))
	assert.Equal(t, 3, r.Distance(r.Head(), vs[1]))
	assert.Len(t, g.RingsInvolving(vs[1]), 1)
	assert.Empty(t, g.FreeRCVertices())

	r.SetBondType(core.BondDouble)
	assert.Equal(t, core.BondDouble, r.BondType())

	_, err := g.CloseRing(r.Head(), r.Tail(), core.BondSingle)
	assert.ErrorIs(t, err, core.ErrCapacity)
}

func TestAddRing_BadPath(t *testing.T) {
	g, vs := newChain(t, 3)
	rcv := appendRCV(t, g, vs[2].AP(1))

	_, err := g.AddRing([]*core.Vertex{rcv, vs[2]}, core.BondSingle)
	assert.ErrorIs(t, err, core.ErrBadRing)

	_, err = g.AddRing([]*core.Vertex{rcv, vs[2], vs[1], vs[0]}, core.BondSingle)
	assert.ErrorIs(t, err, core.ErrBadRing)

	_, err = g.AddRing([]*core.Vertex{rcv, vs[1], vs[0]}, core.BondSingle)
	assert.ErrorIs(t, err, core.ErrBadRing)
	assert.Empty(t, g.Rings())
}

func TestRemoveRing(t *testing.T) {
	g, _, r := ringFixture(t)

	require.NoError(t, g.RemoveRing(r))

	assert.Empty(t, g.Rings())
	assert.Len(t, g.FreeRCVertices(), 2)
	assert.ErrorIs(t, g.RemoveRing(r), core.ErrBadRing)
}

func TestRemoveBranch_DropsRing(t *testing.T) {
	g, vs, _ := ringFixture(t)

	require.NoError(t, g.RemoveBranch(vs[2]))

	assert.Empty(t, g.Rings())
	// The RCV left on v0 lost its partner and goes with the ring.
	assert.Equal(t, []core.VertexID{0, 1}, ids(g.Vertices()))
	require.NoError(t, g.Validate())
}

func TestRemoveVertexAndWeld_ShrinksRing(t *testing.T) {
	g, vs, r := ringFixture(t)

	require.NoError(t, g.RemoveVertexAndWeld(vs[2]))

	require.Len(t, g.Rings(), 1)
	assert.Equal(t, []core.VertexID{4, 3, 1, 0, 5}, ids(g.Rings()[0].Vertices()))
	assert.Same(t, r, g.Rings()[0])
	assert.Equal(t, vs[1], g.Parent(vs[3]))
}

func TestRemoveVertexAndWeld_TurningPoint(t *testing.T) {
	g, vs := newChain(t, 2)
	a := appendSide(t, g, vs[1].AP(1))
	b := appendSide(t, g, vs[1].AP(2))
	rcvA := appendRCV(t, g, a.AP(1))
	rcvB := appendRCV(t, g, b.AP(1))
	_, err := g.CloseRing(rcvA, rcvB, core.BondSingle)
	require.NoError(t, err)
	before := g.Snapshot()

	err = g.RemoveVertexAndWeld(vs[1])

	assert.ErrorIs(t, err, core.ErrDisconnection)
	assert.Equal(t, before, g.Snapshot())
}

func TestRemoveChainUpToBranching_NotInRing(t *testing.T) {
	g, vs := newChain(t, 3)

	assert.ErrorIs(t, g.RemoveChainUpToBranching(vs[1]), core.ErrNotInRing)
}

func TestRemoveChainUpToBranching_WholeRing(t *testing.T) {
	g, vs, _ := ringFixture(t)
	before := g.Snapshot()

	err := g.RemoveChainUpToBranching(vs[2])

	assert.ErrorIs(t, err, core.ErrDisconnection)
	assert.Equal(t, before, g.Snapshot())
}

// The chain between the branching v1 and the root spans the chord, so both
// halves are dropped.
func TestRemoveChainUpToBranching_AcrossChord(t *testing.T) {
	g, vs, _ := ringFixture(t)
	s := appendSide(t, g, vs[1].AP(2))

	require.NoError(t, g.RemoveChainUpToBranching(vs[2]))

	assert.Equal(t, []core.VertexID{0, 1, s.ID()}, ids(g.Vertices()))
	assert.Empty(t, g.Rings())
	assert.Equal(t, 2, g.EdgeCount())
	require.NoError(t, g.Validate())
}

// u -> c -> w -> a -> rcvH, w -> s, u -> rcvT. Removing c opens the ring
// and re-roots the a-w side under u through the former chord.
func TestRemoveChainUpToBranching_Reroot(t *testing.T) {
	g := core.NewGraph()
	u := chainVertex(0)
	require.NoError(t, g.AddVertex(u))
	c := chainVertex(1)
	require.NoError(t, g.AppendVertex(u.AP(1), c, c.AP(0), core.BondSingle))
	w := chainVertex(2)
	require.NoError(t, g.AppendVertex(c.AP(1), w, w.AP(0), core.BondSingle))
	a := chainVertex(3)
	require.NoError(t, g.AppendVertex(w.AP(1), a, a.AP(0), core.BondSingle))
	rcvH := appendRCV(t, g, a.AP(1))
	s := appendSide(t, g, w.AP(2))
	rcvT := appendRCV(t, g, u.AP(2))
	_, err := g.CloseRing(rcvH, rcvT, core.BondDouble)
	require.NoError(t, err)

	require.NoError(t, g.RemoveChainUpToBranching(c))

	assert.Equal(t, []core.VertexID{0, 2, 3, s.ID()}, ids(g.Vertices()))
	assert.Empty(t, g.Rings())
	assert.Equal(t, u, g.Root())

	ua := g.EdgeToParent(a)
	require.NotNil(t, ua)
	assert.Same(t, u.AP(2), ua.Src())
	assert.Same(t, a.AP(1), ua.Trg())
	assert.Equal(t, core.BondDouble, ua.BondType())

	aw := g.EdgeToParent(w)
	require.NotNil(t, aw)
	assert.Same(t, a.AP(0), aw.Src())
	assert.Same(t, w.AP(1), aw.Trg())
	assert.Equal(t, w, g.Parent(s))
	assert.True(t, u.AP(1).IsAvailable())
	require.NoError(t, g.Validate())
}

func TestExtractAndGraft_RoundTrip(t *testing.T) {
	g, vs := newChain(t, 5)
	original := g.Clone()

	sub, patch, err := g.ExtractSubgraph(vs[1], []*core.Vertex{vs[3]})
	require.NoError(t, err)

	assert.Equal(t, []core.VertexID{1, 2}, ids(sub.Vertices()))
	assert.Equal(t, []core.VertexID{0}, ids(g.Vertices()))
	assert.Same(t, vs[0].AP(1), patch.ParentAP)
	assert.Equal(t, 0, patch.RootAP)
	require.Len(t, patch.Links, 1)
	assert.Equal(t, []core.VertexID{3, 4}, ids(patch.Links[0].Branch.Vertices()))
	assert.Equal(t, core.APRef{Vertex: 2, AP: 1}, patch.Links[0].RegionAP)

	require.NoError(t, g.GraftSubgraph(sub, patch.RootAP, patch, patch.OriginalTargets()))

	assert.Equal(t, 5, g.VertexCount())
	assert.Equal(t, 0, sub.VertexCount())
	assert.True(t, g.IsIsomorphicTo(original))
	require.NoError(t, g.Validate())
}

func TestGraftSubgraph_Incompatible(t *testing.T) {
	g, vs := newChain(t, 3)
	sub, patch, err := g.ExtractSubgraph(vs[2], nil)
	require.NoError(t, err)

	other := core.NewGraph()
	x := frag(50, bbSide, clsX)
	require.NoError(t, other.AddVertex(x))

	strict := core.NewGraph(core.WithRule(apclass.SameRule))
	root := chainVertex(0)
	require.NoError(t, strict.AddVertex(root))
	err = strict.GraftSubgraph(other, 0, &core.CutPatch{ParentAP: root.AP(1)}, nil)
	assert.ErrorIs(t, err, core.ErrIncompatibleAP)
	assert.Equal(t, 1, other.VertexCount())

	require.NoError(t, g.GraftSubgraph(sub, patch.RootAP, patch, nil))
	assert.Equal(t, 3, g.VertexCount())
}

func TestExtractSubgraph_Errors(t *testing.T) {
	g, vs, _ := ringFixture(t)
	before := g.Snapshot()

	_, _, err := g.ExtractSubgraph(vs[0], nil)
	assert.ErrorIs(t, err, core.ErrDisconnection)

	_, _, err = g.ExtractSubgraph(vs[2], nil)
	assert.ErrorIs(t, err, core.ErrDisconnection)

	_, _, err = g.ExtractSubgraph(vs[2], []*core.Vertex{vs[1]})
	assert.ErrorIs(t, err, core.ErrDisconnection)

	assert.Equal(t, before, g.Snapshot())
}

func TestNeighbors(t *testing.T) {
	g, vs, r := ringFixture(t)

	assert.Equal(t, []core.VertexID{0, 2}, ids(g.Neighbors(vs[1])))
	assert.Equal(t, []core.VertexID{3, 5}, ids(g.Neighbors(r.Head())))
	assert.Equal(t, []core.VertexID{0, 4}, ids(g.Neighbors(r.Tail())))
	assert.Nil(t, g.Neighbors(chainVertex(42)))
}

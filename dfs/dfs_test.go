package dfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragevo/apclass"
	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/dfs"
)

var clsC = apclass.MustParse("c:0")

func node(id core.VertexID) *core.Vertex {
	return core.NewFragment(id, core.BuildingBlock{ID: 1, Role: core.RoleFragment},
		core.NewAP(clsC), core.NewAP(clsC), core.NewAP(clsC))
}

// molecule builds v0..v(n-1) linked AP1 -> AP0. With ring set, RCVs n and
// n+1 hang on v(n-1).AP1 and v0.AP2 and close a ring.
func molecule(t *testing.T, n int, ring bool) (*core.Graph, []*core.Vertex) {
	t.Helper()
	g := core.NewGraph()
	vs := make([]*core.Vertex, n)
	for i := range vs {
		vs[i] = node(core.VertexID(i))
		if i == 0 {
			require.NoError(t, g.AddVertex(vs[0]))
			continue
		}
		require.NoError(t, g.AppendVertex(vs[i-1].AP(1), vs[i], vs[i].AP(0), core.BondSingle))
	}
	if ring {
		head := core.NewRingClosingVertex(core.VertexID(n), 90, clsC)
		tail := core.NewRingClosingVertex(core.VertexID(n+1), 90, clsC)
		require.NoError(t, g.AppendVertex(vs[n-1].AP(1), head, head.AP(0), core.BondSingle))
		require.NoError(t, g.AppendVertex(vs[0].AP(2), tail, tail.AP(0), core.BondSingle))
		_, err := g.CloseRing(head, tail, core.BondSingle)
		require.NoError(t, err)
	}
	return g, vs
}

func ids(vs []*core.Vertex) []core.VertexID {
	out := make([]core.VertexID, len(vs))
	for i, v := range vs {
		out[i] = v.ID()
	}
	return out
}

func TestDFS_NilGraph(t *testing.T) {
	res, err := dfs.DFS(nil, nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
}

func TestDFS_StartNotFound(t *testing.T) {
	g, _ := molecule(t, 2, false)
	res, err := dfs.DFS(g, node(9))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, dfs.ErrStartVertexNotFound)
}

func TestDFS_ChainOrders(t *testing.T) {
	g, vs := molecule(t, 3, false)

	res, err := dfs.DFS(g, vs[0])
	require.NoError(t, err)
	assert.Equal(t, []core.VertexID{0, 1, 2}, ids(res.PreOrder))
	assert.Equal(t, []core.VertexID{2, 1, 0}, ids(res.Order))
	assert.Equal(t, core.VertexID(1), res.Parent[2])
	assert.Equal(t, 2, res.Depth[2])
	_, hasParent := res.Parent[0]
	assert.False(t, hasParent)

	// Bonds are walked both ways.
	res, err = dfs.DFS(g, vs[2])
	require.NoError(t, err)
	assert.Equal(t, []core.VertexID{2, 1, 0}, ids(res.PreOrder))
}

func TestDFS_RingChord(t *testing.T) {
	g, vs := molecule(t, 4, true)

	res, err := dfs.DFS(g, vs[0])
	require.NoError(t, err)
	// v0 -> v1 -> v2 -> v3 -> head(4) -> tail(5); tail is reached through the chord.
	assert.Equal(t, []core.VertexID{0, 1, 2, 3, 4, 5}, ids(res.PreOrder))
	assert.Equal(t, core.VertexID(4), res.Parent[5])
	assert.Equal(t, 5, res.Depth[5])
}

func TestDFS_MaxDepthAndFilter(t *testing.T) {
	g, vs := molecule(t, 3, false)

	res, err := dfs.DFS(g, vs[0], dfs.WithMaxDepth(0))
	require.NoError(t, err)
	assert.Equal(t, []core.VertexID{0}, ids(res.Order))
	assert.False(t, res.Visited[1])

	res, err = dfs.DFS(g, vs[0], dfs.WithFilterNeighbor(func(v *core.Vertex) bool { return v.ID() != 2 }))
	require.NoError(t, err)
	assert.Equal(t, []core.VertexID{1, 0}, ids(res.Order))
	assert.Equal(t, 1, res.SkippedNeighbors)
}

func TestDFS_FullTraversal(t *testing.T) {
	g, _ := molecule(t, 3, true)

	res, err := dfs.DFS(g, nil, dfs.WithFullTraversal())
	require.NoError(t, err)
	assert.Len(t, res.Order, g.VertexCount())
	assert.True(t, res.Visited[4])
}

func TestDFS_HookErrors(t *testing.T) {
	g, vs := molecule(t, 2, false)
	halt := errors.New("halt")

	res, err := dfs.DFS(g, vs[0], dfs.WithOnExit(func(v *core.Vertex) error {
		if v.ID() == 1 {
			return halt
		}
		return nil
	}))
	require.NotNil(t, res)
	assert.ErrorIs(t, err, halt)
	assert.ErrorContains(t, err, "OnExit hook for 1")
	assert.Empty(t, res.Order)

	_, err = dfs.DFS(g, vs[0], dfs.WithOnVisit(func(_ *core.Vertex, d int) error {
		if d > 0 {
			return halt
		}
		return nil
	}))
	assert.ErrorIs(t, err, halt)
}

func TestDFS_Cancellation(t *testing.T) {
	g, vs := molecule(t, 50, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := dfs.DFS(g, vs[0], dfs.WithContext(ctx))
	require.NotNil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Order)
}

func TestDetectCycles(t *testing.T) {
	has, cycles := dfs.DetectCycles(nil)
	assert.False(t, has)
	assert.Nil(t, cycles)

	g, _ := molecule(t, 4, false)
	has, _ = dfs.DetectCycles(g)
	assert.False(t, has)

	g, _ = molecule(t, 4, true)
	has, cycles = dfs.DetectCycles(g)
	require.True(t, has)
	require.Len(t, cycles, len(g.Rings()))
	assert.Equal(t, []core.VertexID{0, 1, 2, 3, 4, 5, 0}, cycles[0])
}

func TestMinimalRotation(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, dfs.MinimalRotation([]int{2, 3, 1}))
	assert.Equal(t, []string{"a", "b", "a", "c"}, dfs.MinimalRotation([]string{"a", "c", "a", "b"}))
	assert.Nil(t, dfs.MinimalRotation([]int(nil)))
	assert.Equal(t, []int{3, 2, 1}, dfs.Reverse([]int{1, 2, 3}))
	assert.Equal(t, 1, dfs.IndexOf([]int{5, 6}, 6))
	assert.Equal(t, -1, dfs.IndexOf([]int{5, 6}, 7))
}

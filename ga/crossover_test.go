package ga_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/fragspace"
	"github.com/katalvlaran/fragevo/ga"
)

// parents builds A = core3 - link - link and B = core3 - fork.
func parents(t *testing.T, l *fragspace.Library) (a, b *core.Graph, va, vb *core.Vertex) {
	t.Helper()
	a, as := chain(t, l, 2)
	b, s := seed(t, l, bbCore3)
	vb = attach(t, b, l, s.AP(0), bbFork, 0)
	return a, b, as[1], vb
}

func TestCrossover_Branch(t *testing.T) {
	l := newLibrary(t)
	a, b, va, vb := parents(t, l)

	req := ga.CrossoverRequest{Mode: ga.Branch, A: a, B: b, VA: va, VB: vb}
	require.NoError(t, ga.Crossover(context.Background(), ga.NewRunContext(1), req))

	assert.Equal(t, 2, heavy(a))
	assert.Equal(t, 3, heavy(b))
	kids := heavyChildren(a, a.Root())
	require.Len(t, kids, 1)
	assert.Equal(t, bbFork, kids[0].BuildingBlock().ID)
	require.NoError(t, a.Validate())
	require.NoError(t, b.Validate())

	seen := map[core.VertexID]bool{}
	for _, g := range []*core.Graph{a, b} {
		for _, v := range g.Vertices() {
			assert.False(t, seen[v.ID()], "id %d used twice", v.ID())
			seen[v.ID()] = true
		}
	}
}

func TestCrossover_Commutative(t *testing.T) {
	l := newLibrary(t)
	a1, b1, va1, vb1 := parents(t, l)
	a2, b2, va2, vb2 := parents(t, l)
	rc := ga.NewRunContext(2)

	require.NoError(t, ga.Crossover(context.Background(), rc, ga.CrossoverRequest{A: a1, B: b1, VA: va1, VB: vb1}))
	require.NoError(t, ga.Crossover(context.Background(), rc, ga.CrossoverRequest{A: b2, B: a2, VA: vb2, VB: va2}))

	assert.True(t, a1.IsIsomorphicTo(a2))
	assert.True(t, b1.IsIsomorphicTo(b2))
}

func TestCrossover_Incompatible(t *testing.T) {
	l := newLibrary(t)
	a, s := seed(t, l, bbCore3)
	va := attach(t, a, l, s.AP(0), bbAmide, 0) // bound through n:0
	b, q := seed(t, l, bbQCore)
	vb := attach(t, b, l, q.AP(0), bbLink, 0)
	beforeA, beforeB := a.Snapshot(), b.Snapshot()

	err := ga.Crossover(context.Background(), ga.NewRunContext(3), ga.CrossoverRequest{A: a, B: b, VA: va, VB: vb})
	assert.ErrorIs(t, err, core.ErrIncompatibleAP)
	assert.True(t, ga.IsRecoverable(err))
	assert.Equal(t, beforeA, a.Snapshot())
	assert.Equal(t, beforeB, b.Snapshot())
}

func TestCrossover_Subgraph(t *testing.T) {
	l := newLibrary(t)
	a, as := chain(t, l, 3)
	b, s := seed(t, l, bbCore3)
	f := attach(t, b, l, s.AP(0), bbFork, 0)
	f2 := attach(t, b, l, f.AP(1), bbLink, 0)

	req := ga.CrossoverRequest{
		Mode: ga.Subgraph,
		A:    a, B: b,
		VA: as[1], VB: f,
		BoundaryA: []*core.Vertex{as[3]},
		BoundaryB: []*core.Vertex{f2},
	}
	require.NoError(t, ga.Crossover(context.Background(), ga.NewRunContext(4), req))

	// A: core3 - fork - link; B: core3 - link - link - link.
	assert.Equal(t, 3, heavy(a))
	assert.Equal(t, 4, heavy(b))
	fork := heavyChildren(a, a.Root())
	require.Len(t, fork, 1)
	assert.Equal(t, bbFork, fork[0].BuildingBlock().ID)
	assert.Len(t, heavyChildren(a, fork[0]), 1)
	require.NoError(t, a.Validate())
	require.NoError(t, b.Validate())
}

func TestCrossover_BadRequest(t *testing.T) {
	l := newLibrary(t)
	a, b, va, vb := parents(t, l)
	rc := ga.NewRunContext(5)
	ctx := context.Background()

	err := ga.Crossover(ctx, rc, ga.CrossoverRequest{A: a, B: a, VA: va, VB: va})
	assert.ErrorIs(t, err, ga.ErrBadRequest)

	err = ga.Crossover(ctx, rc, ga.CrossoverRequest{A: a, B: b, VA: va, VB: vb, BoundaryA: []*core.Vertex{va}})
	assert.ErrorIs(t, err, ga.ErrBadRequest)

	err = ga.Crossover(ctx, rc, ga.CrossoverRequest{A: a, B: b, VA: vb, VB: va})
	assert.ErrorIs(t, err, core.ErrVertexNotFound)

	err = ga.Crossover(ctx, rc, ga.CrossoverRequest{A: a, B: b, VA: a.Root(), VB: vb})
	assert.Equal(t, ga.Disconnection, ga.Classify(err))
}

func TestParseCrossoverMode(t *testing.T) {
	m, err := ga.ParseCrossoverMode("subgraph")
	require.NoError(t, err)
	assert.Equal(t, ga.Subgraph, m)
	assert.Equal(t, "BRANCH", ga.Branch.String())
	_, err = ga.ParseCrossoverMode("graft")
	assert.Error(t, err)
}

func TestFindCrossoverSites(t *testing.T) {
	l := newLibrary(t)
	a, b, _, _ := parents(t, l)

	sites := ga.FindCrossoverSites(a, b)
	assert.Len(t, sites, 2)
	for _, s := range sites {
		assert.True(t, a.Contains(s.VA))
		assert.True(t, b.Contains(s.VB))
	}

	_, q := seed(t, l, bbQCore)
	assert.Empty(t, ga.FindCrossoverSites(a, q.Graph()))
}

func TestRandomCrossover(t *testing.T) {
	l := newLibrary(t)
	for _, mode := range []ga.CrossoverMode{ga.Branch, ga.Subgraph} {
		a, b, _, _ := parents(t, l)
		total := heavy(a) + heavy(b)

		err := ga.RandomCrossover(context.Background(), ga.NewRunContext(6), a, b, mode)
		if err != nil {
			require.True(t, ga.IsRecoverable(err), "%s: %v", mode, err)
			continue
		}
		assert.Equal(t, total, heavy(a)+heavy(b))
		require.NoError(t, a.Validate())
		require.NoError(t, b.Validate())
	}
}

package builder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragevo/builder"
	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/ga"
)

func TestBuildGraph_Errors(t *testing.T) {
	ctx := context.Background()
	rc := ga.NewRunContext(1)
	l := newLibrary(t)

	_, err := builder.BuildGraph(ctx, rc, nil, nil, builder.Scaffold(0))
	assert.ErrorIs(t, err, builder.ErrNilLibrary)

	_, err = builder.BuildGraph(ctx, rc, l, nil, builder.Scaffold(9))
	assert.ErrorIs(t, err, builder.ErrNoScaffold)

	_, err = builder.BuildGraph(ctx, rc, l, nil, builder.Scaffold(0), nil)
	assert.ErrorIs(t, err, builder.ErrConstructFailed)

	_, err = builder.BuildGraph(ctx, rc, l, nil, builder.Scaffold(0), builder.Scaffold(0))
	assert.ErrorIs(t, err, builder.ErrConstructFailed)

	_, err = builder.BuildGraph(ctx, rc, l, nil, builder.Scaffold(0), builder.Grow(0))
	assert.ErrorIs(t, err, builder.ErrTooFewVertices)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = builder.BuildGraph(cctx, rc, l, nil, builder.Scaffold(0))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScaffoldAndCap(t *testing.T) {
	g, err := builder.BuildGraph(context.Background(), ga.NewRunContext(2), newLibrary(t), nil,
		builder.Scaffold(bbCore3), builder.Cap())
	require.NoError(t, err)

	assert.Equal(t, 1, heavy(g))
	assert.Len(t, g.CapVertices(), 3)
	assert.Equal(t, core.RoleScaffold, g.Root().BuildingBlock().Role)
	require.NoError(t, g.Validate())
}

func TestGrow(t *testing.T) {
	l := newLibrary(t)
	opts := []builder.BuilderOption{builder.WithMaxVertices(10), builder.WithMaxLevel(4)}

	g, err := builder.BuildGraph(context.Background(), ga.NewRunContext(3), l, opts,
		builder.Scaffold(0), builder.Grow(6))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, heavy(g), 6)
	assert.LessOrEqual(t, heavy(g), 10)
	assert.Empty(t, g.AvailableAPs(), "growth leaves every AP bound or capped")
	for _, v := range g.Vertices() {
		assert.LessOrEqual(t, g.Level(v), 5)
	}
	require.NoError(t, g.Validate())
}

func TestGrow_Deterministic(t *testing.T) {
	l := newLibrary(t)
	build := func() *core.Graph {
		g, err := builder.BuildGraph(context.Background(), ga.NewRunContext(4), l,
			[]builder.BuilderOption{builder.WithRingProbability(1)},
			builder.Seeding(8)...)
		require.NoError(t, err)
		return g
	}
	a, b := build(), build()
	assert.Equal(t, a.Snapshot(), b.Snapshot())
	assert.True(t, a.IsIsomorphicTo(b))
}

func TestRings(t *testing.T) {
	l := newLibrary(t)
	g, err := builder.BuildGraph(context.Background(), ga.NewRunContext(5), l,
		[]builder.BuilderOption{builder.WithRingProbability(1)},
		builder.Scaffold(0), builder.Grow(8), builder.Rings(5), builder.Cap())
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	assert.Empty(t, g.FreeRCVertices())
	for _, r := range g.Rings() {
		assert.True(t, r.Head().IsRCV())
		assert.True(t, r.Tail().IsRCV())
	}

	g, err = builder.BuildGraph(context.Background(), ga.NewRunContext(5), l,
		[]builder.BuilderOption{builder.WithRingProbability(0)},
		builder.Scaffold(0), builder.Grow(8), builder.Rings(5))
	require.NoError(t, err)
	assert.Empty(t, g.Rings())
}

func TestPopulation(t *testing.T) {
	l := newLibrary(t)
	ctx := context.Background()

	_, err := builder.Population(ctx, ga.NewRunContext(6), l, 0, nil, builder.Seeding(5)...)
	assert.ErrorIs(t, err, builder.ErrTooFewVertices)

	pop, err := builder.Population(ctx, ga.NewRunContext(6), l, 4, nil, builder.Seeding(5)...)
	require.NoError(t, err)
	require.Len(t, pop, 4)
	for _, g := range pop {
		require.NoError(t, g.Validate())
		assert.GreaterOrEqual(t, heavy(g), 5)
	}

	again, err := builder.Population(ctx, ga.NewRunContext(6), l, 4, nil, builder.Seeding(5)...)
	require.NoError(t, err)
	for i := range pop {
		assert.Equal(t, pop[i].Snapshot(), again[i].Snapshot())
	}
}

func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { builder.WithMaxVertices(0) })
	assert.Panics(t, func() { builder.WithMaxLevel(0) })
	assert.Panics(t, func() { builder.WithRingProbability(1.5) })
	assert.Panics(t, func() { builder.WithAttempts(0) })
	assert.Panics(t, func() { builder.WithMutator(nil) })
}

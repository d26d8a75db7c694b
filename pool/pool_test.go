package pool_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/ga"
	"github.com/katalvlaran/fragevo/pool"
)

func TestRun_Evaluate(t *testing.T) {
	cands := population(t, 5)
	p := pool.New(pool.WithWorkers(3))
	assert.Equal(t, 3, p.Workers())

	rep, err := p.Run(context.Background(), ga.NewRunContext(1), cands, pool.Evaluate(pool.Compactness{}))
	require.NoError(t, err)
	assert.Equal(t, 5, rep.Done)
	assert.Zero(t, rep.Failed)
	assert.Zero(t, rep.Skipped)
	for _, c := range cands {
		assert.True(t, c.Evaluated)
		assert.NoError(t, c.Err)
	}
}

func TestRun_FailureIsolated(t *testing.T) {
	cands := population(t, 6)
	boom := errors.New("boom")
	task := func(_ context.Context, _ *ga.RunContext, c *pool.Candidate) error {
		if c.Graph.VertexCount()%2 == 0 {
			return boom
		}
		return nil
	}

	rep, err := pool.New().Run(context.Background(), ga.NewRunContext(1), cands, task)
	require.NoError(t, err)
	assert.Equal(t, 6, rep.Done+rep.Failed)
	assert.Positive(t, rep.Failed)
	for _, c := range cands {
		if c.Graph.VertexCount()%2 == 0 {
			assert.ErrorIs(t, c.Err, boom)
		} else {
			assert.NoError(t, c.Err)
		}
	}
}

func TestRun_Canceled(t *testing.T) {
	t.Run("before start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cands := population(t, 3)
		var calls atomic.Int32
		rep, err := pool.New().Run(ctx, ga.NewRunContext(1), cands, func(context.Context, *ga.RunContext, *pool.Candidate) error {
			calls.Add(1)
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 3, rep.Skipped)
		assert.Zero(t, calls.Load())
		for _, c := range cands {
			assert.ErrorIs(t, c.Err, context.Canceled)
		}
	})

	t.Run("during run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		cands := population(t, 4)
		rep, err := pool.New(pool.WithWorkers(1)).Run(ctx, ga.NewRunContext(1), cands, func(context.Context, *ga.RunContext, *pool.Candidate) error {
			cancel()
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, rep.Done)
		assert.Equal(t, 3, rep.Skipped)
	})
}

func TestRun_ForkedStreams(t *testing.T) {
	draws := func() []uint64 {
		cands := population(t, 4)
		idx := map[uuid.UUID]int{}
		for i, c := range cands {
			idx[c.ID] = i
		}
		out := make([]uint64, len(cands))
		_, err := pool.New(pool.WithWorkers(4)).Run(context.Background(), ga.NewRunContext(9), cands,
			func(_ context.Context, rc *ga.RunContext, c *pool.Candidate) error {
				out[idx[c.ID]] = rc.Rand.Uint64()
				return nil
			})
		require.NoError(t, err)
		return out
	}
	assert.Equal(t, draws(), draws())
}

func TestRun_NilTask(t *testing.T) {
	_, err := pool.New().Run(context.Background(), ga.NewRunContext(1), nil, nil)
	assert.ErrorIs(t, err, pool.ErrNilTask)
}

func TestChain(t *testing.T) {
	var order []string
	step := func(name string, err error) pool.Task {
		return func(context.Context, *ga.RunContext, *pool.Candidate) error {
			order = append(order, name)
			return err
		}
	}
	stop := errors.New("stop")
	err := pool.Chain(step("a", nil), step("b", stop), step("c", nil))(context.Background(), ga.NewRunContext(1), &pool.Candidate{})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestCompactness(t *testing.T) {
	ctx := context.Background()
	f := pool.Compactness{RingWeight: 2}

	s, err := f.Score(ctx, linear(t, 0))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s, 1e-9) // one heavy vertex at depth 0

	s, err = f.Score(ctx, linear(t, 3))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s, 1e-9) // four heavy vertices, three bonds deep

	_, err = f.Score(ctx, core.NewGraph())
	assert.ErrorIs(t, err, pool.ErrEmptyGraph)

	_, err = pool.Evaluate(f)(ctx, nil, &pool.Candidate{})
	assert.ErrorIs(t, err, pool.ErrEmptyGraph)
}

func TestRank(t *testing.T) {
	a := &pool.Candidate{Fitness: 1, Evaluated: true}
	b := &pool.Candidate{Fitness: 3, Evaluated: true}
	c := &pool.Candidate{Err: errors.New("x")}
	d := &pool.Candidate{Fitness: 2, Evaluated: true}
	cands := []*pool.Candidate{a, c, b, d}
	pool.Rank(cands)
	assert.Equal(t, []*pool.Candidate{b, d, a, c}, cands)
}

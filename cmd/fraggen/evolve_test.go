package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragevo/pool"
)

func TestEvolver_Run(t *testing.T) {
	cfg := smallConfig(writeFile(t, "lib.yaml", libraryYAML))
	e := newTestEvolver(t, cfg)

	best, err := e.run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, best)
	assert.LessOrEqual(t, len(best), cfg.Run.Population)
	for i, c := range best {
		assert.True(t, c.Evaluated)
		assert.NoError(t, c.Err)
		require.NoError(t, c.Graph.Validate())
		if i > 0 {
			assert.GreaterOrEqual(t, best[i-1].Fitness, c.Fitness)
		}
	}
	assert.Positive(t, e.monitor.Total())
}

func TestEvolver_Deterministic(t *testing.T) {
	path := writeFile(t, "lib.yaml", libraryYAML)
	scores := func() []float64 {
		best, err := newTestEvolver(t, smallConfig(path)).run(context.Background())
		require.NoError(t, err)
		out := make([]float64, len(best))
		for i, c := range best {
			out[i] = c.Fitness
		}
		return out
	}
	assert.Equal(t, scores(), scores())
}

func TestEvolver_Canceled(t *testing.T) {
	e := newTestEvolver(t, smallConfig(writeFile(t, "lib.yaml", libraryYAML)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSurvivors(t *testing.T) {
	a := &pool.Candidate{Fitness: 1, Evaluated: true}
	b := &pool.Candidate{Fitness: 5, Evaluated: true}
	c := &pool.Candidate{Fitness: 9}
	d := &pool.Candidate{Fitness: 3, Evaluated: true}
	assert.Equal(t, []*pool.Candidate{b, d}, survivors([]*pool.Candidate{a, b, c, d}, 2))
}

package pool_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/ga"
	"github.com/katalvlaran/fragevo/pool"
)

// ExamplePool_Run scores three candidates with a custom fitness.
func ExamplePool_Run() {
	cands := []*pool.Candidate{
		pool.NewCandidate(core.NewGraph(), 0),
		pool.NewCandidate(core.NewGraph(), 0),
		pool.NewCandidate(core.NewGraph(), 0),
	}
	score := pool.FitnessFunc(func(context.Context, *core.Graph) (float64, error) { return 1, nil })

	rep, err := pool.New(pool.WithWorkers(2)).Run(context.Background(), ga.NewRunContext(1), cands, pool.Evaluate(score))
	fmt.Println(rep.Done, rep.Failed, rep.Skipped, err)
	// Output:
	// 3 0 0 <nil>
}

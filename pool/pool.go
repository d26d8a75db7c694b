// File: pool.go
// Role: Bounded fan-out of candidate tasks with per-candidate failures.
//
// Algorithm:
//   1. For each candidate, stop launching once the context is done.
//   2. Launch the task through errgroup with SetLimit(workers); each task
//      gets its own forked RunContext (stream = candidate index).
//   3. Inside the task, check the context again, run, record the outcome
//      on the candidate. Tasks never return errors to the group.
//   4. Wait, log a summary, return the report and the context error.

package pool

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fragevo/ga"
)

// DefaultWorkers is the worker count of a Pool built without WithWorkers.
const DefaultWorkers = 4

// ErrNilTask is returned by Run without a task.
var ErrNilTask = errors.New("pool: nil task")

// Task runs one candidate pipeline. rc is private to the task.
type Task func(ctx context.Context, rc *ga.RunContext, c *Candidate) error

// Report counts the outcomes of one Run.
type Report struct {
	Done    int
	Failed  int
	Skipped int
	Elapsed time.Duration
}

// Pool runs tasks on at most Workers goroutines.
type Pool struct {
	workers int
	logger  *zap.Logger
}

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers sets the worker limit. Values below 1 keep the default.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets the logger. nil keeps zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a Pool.
func New(opts ...Option) *Pool {
	p := &Pool{workers: DefaultWorkers, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Workers returns the worker limit.
func (p *Pool) Workers() int { return p.workers }

// Run applies task to every candidate. A task error is stored in the
// candidate's Err and counted as failed; it does not stop the run. The
// returned error is the context error when the run was canceled, nil
// otherwise. Candidates that never ran get the context error as Err.
func (p *Pool) Run(ctx context.Context, rc *ga.RunContext, cands []*Candidate, task Task) (Report, error) {
	if task == nil {
		return Report{}, ErrNilTask
	}
	start := time.Now()
	var done, failed, skipped atomic.Int64

	// 1-2. Launch.
	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, c := range cands {
		if err := ctx.Err(); err != nil {
			for _, rest := range cands[i:] {
				rest.Err = err
			}
			skipped.Add(int64(len(cands) - i))
			break
		}
		trc := rc.Fork(uint64(i))
		g.Go(func() error {
			// 3. Run and record.
			if err := ctx.Err(); err != nil {
				c.Err = err
				skipped.Add(1)
				return nil
			}
			c.Err = task(ctx, trc, c)
			if c.Err != nil {
				failed.Add(1)
				trc.Logger.Debug("candidate failed",
					zap.String("candidate", c.ID.String()),
					zap.String("kind", ga.Classify(c.Err).String()),
					zap.Error(c.Err))
				return nil
			}
			done.Add(1)
			return nil
		})
	}

	// 4. Wait and report.
	_ = g.Wait()
	rep := Report{
		Done:    int(done.Load()),
		Failed:  int(failed.Load()),
		Skipped: int(skipped.Load()),
		Elapsed: time.Since(start),
	}
	p.logger.Info("pool run finished",
		zap.Int("candidates", len(cands)),
		zap.Int("done", rep.Done),
		zap.Int("failed", rep.Failed),
		zap.Int("skipped", rep.Skipped),
		zap.Duration("elapsed", rep.Elapsed))
	return rep, ctx.Err()
}

// Evaluate returns a task that scores the candidate's graph with f.
func Evaluate(f Fitness) Task {
	return func(ctx context.Context, _ *ga.RunContext, c *Candidate) error {
		if c.Graph == nil {
			return errors.Wrap(ErrEmptyGraph, "pool: candidate without graph")
		}
		s, err := f.Score(ctx, c.Graph)
		if err != nil {
			return errors.Wrap(err, "pool: fitness")
		}
		c.Fitness, c.Evaluated = s, true
		return nil
	}
}

// Chain runs tasks in order and stops at the first error.
func Chain(tasks ...Task) Task {
	return func(ctx context.Context, rc *ga.RunContext, c *Candidate) error {
		for _, t := range tasks {
			if err := t(ctx, rc, c); err != nil {
				return err
			}
		}
		return nil
	}
}

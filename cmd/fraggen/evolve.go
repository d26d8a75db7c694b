// File: evolve.go
// Role: Generational loop of the fraggen driver.
//
// Algorithm:
//   1. Seed the population with builder.Population and score it on the pool.
//   2. Per generation, draw parents by binary tournament, clone them and
//      queue one offspring per population slot: by mutation with
//      probability Mutation.Rate, by crossover otherwise.
//   3. Run vary+evaluate on the pool; failed offspring are dropped.
//   4. Merge parents and offspring, rank, keep the best Population.
//
// Determinism:
//   - Generation g draws from a RunContext seeded with seed+g; offspring i
//     of that generation gets stream i of it through the pool.

package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/fragevo/builder"
	"github.com/katalvlaran/fragevo/config"
	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/fragspace"
	"github.com/katalvlaran/fragevo/ga"
	"github.com/katalvlaran/fragevo/monitor"
	"github.com/katalvlaran/fragevo/pool"
	"github.com/katalvlaran/fragevo/rings"
)

// ErrPopulationLost is returned when no candidate survives evaluation.
var ErrPopulationLost = errors.New("fraggen: no evaluated candidate left")

type evolver struct {
	cfg     *config.Config
	lib     *fragspace.Library
	mutator *ga.Mutator
	mode    ga.CrossoverMode
	pool    *pool.Pool
	fitness pool.Fitness
	monitor *monitor.Monitor
	logger  *zap.Logger
}

// newEvolver wires the operators described by cfg around lib.
func newEvolver(cfg *config.Config, lib *fragspace.Library, mon *monitor.Monitor, logger *zap.Logger) (*evolver, error) {
	checker, err := rings.NewChecker(cfg.Rings, rings.WithArchive(rings.NewArchive()))
	if err != nil {
		return nil, errors.Wrap(err, "fraggen: ring checker")
	}
	weights, err := cfg.MutationWeights()
	if err != nil {
		return nil, err
	}
	mut, err := ga.NewMutator(lib,
		ga.WithChecker(checker),
		ga.WithExcludedTypes(cfg.Mutation.Excluded),
		ga.WithWeights(weights),
		ga.WithSymmetryProbability(cfg.Mutation.SymmetryProbability),
		ga.WithExtendProbability(cfg.Mutation.ExtendProbability),
		ga.WithGrowthLimits(cfg.Growth.MaxVertices, cfg.Growth.MaxLevel),
	)
	if err != nil {
		return nil, err
	}
	mode, err := ga.ParseCrossoverMode(cfg.Crossover.Mode)
	if err != nil {
		return nil, err
	}
	return &evolver{
		cfg:     cfg,
		lib:     lib,
		mutator: mut,
		mode:    mode,
		pool:    pool.New(pool.WithWorkers(cfg.Run.Workers), pool.WithLogger(logger)),
		fitness: pool.Compactness{RingWeight: 1},
		monitor: mon,
		logger:  logger,
	}, nil
}

// runContext returns the context of generation gen.
func (e *evolver) runContext(runID uuid.UUID, gen int) *ga.RunContext {
	return ga.NewRunContext(e.cfg.Run.Seed+uint64(gen),
		ga.WithLogger(e.logger),
		ga.WithMonitor(e.monitor),
		ga.WithRunID(runID))
}

// run evolves a population and returns it ranked, best first.
func (e *evolver) run(ctx context.Context) ([]*pool.Candidate, error) {
	runID := uuid.New()

	// 1. Seed.
	rc := e.runContext(runID, 0)
	bopts := []builder.BuilderOption{
		builder.WithMutator(e.mutator),
		builder.WithMaxVertices(e.cfg.Growth.MaxVertices),
		builder.WithMaxLevel(e.cfg.Growth.MaxLevel),
		builder.WithRingProbability(e.cfg.Growth.RingProbability),
		builder.WithAttempts(e.cfg.Run.MaxAttempts),
	}
	graphs, err := builder.Population(ctx, rc, e.lib, e.cfg.Run.Population, bopts,
		builder.Seeding(max(1, e.cfg.Growth.MaxVertices/2))...)
	if err != nil {
		return nil, err
	}
	pop := make([]*pool.Candidate, len(graphs))
	for i, g := range graphs {
		pop[i] = pool.NewCandidate(g, 0)
	}
	if _, err := e.pool.Run(ctx, rc, pop, pool.Evaluate(e.fitness)); err != nil {
		return nil, err
	}
	pop = survivors(pop, len(pop))
	if len(pop) == 0 {
		return nil, ErrPopulationLost
	}

	for gen := 1; gen <= e.cfg.Run.Generations; gen++ {
		// 2. Breed.
		grc := e.runContext(runID, gen)
		offspring, mates := e.breed(grc, pop, gen)

		// 3. Vary and evaluate.
		vary := func(ctx context.Context, rc *ga.RunContext, c *pool.Candidate) error {
			if mate := mates[c.ID]; mate != nil {
				return ga.Attempt(ctx, rc, e.cfg.Run.MaxAttempts, func(int) error {
					return ga.RandomCrossover(ctx, rc, c.Graph, mate, e.mode)
				})
			}
			return ga.Attempt(ctx, rc, e.cfg.Run.MaxAttempts, func(int) error {
				_, err := e.mutator.Mutate(ctx, rc, c.Graph)
				return err
			})
		}
		rep, err := e.pool.Run(ctx, grc, offspring, pool.Chain(vary, pool.Evaluate(e.fitness)))
		if err != nil {
			return ranked(pop), err
		}

		// 4. Select.
		pop = survivors(append(pop, offspring...), e.cfg.Run.Population)
		e.logger.Info("generation done",
			zap.Int("generation", gen),
			zap.Int("offspring", rep.Done),
			zap.Int("failed", rep.Failed),
			zap.Float64("best", pop[0].Fitness))
	}
	e.monitor.Dump()
	return pop, nil
}

// breed clones tournament winners into offspring candidates. Crossover
// offspring get a private clone of their second parent in mates.
func (e *evolver) breed(rc *ga.RunContext, pop []*pool.Candidate, gen int) ([]*pool.Candidate, map[uuid.UUID]*core.Graph) {
	out := make([]*pool.Candidate, 0, e.cfg.Run.Population)
	mates := make(map[uuid.UUID]*core.Graph)
	for len(out) < e.cfg.Run.Population {
		a := tournament(rc, pop)
		if len(pop) > 1 && rc.Rand.Float64() >= e.cfg.Mutation.Rate {
			b := tournament(rc, pop)
			if b != a {
				c := pool.NewCandidate(a.Graph.Clone(), gen, a.ID, b.ID)
				mates[c.ID] = b.Graph.Clone()
				out = append(out, c)
				continue
			}
		}
		out = append(out, pool.NewCandidate(a.Graph.Clone(), gen, a.ID))
	}
	return out, mates
}

// tournament returns the fitter of two random members.
func tournament(rc *ga.RunContext, pop []*pool.Candidate) *pool.Candidate {
	a := pop[rc.Rand.IntN(len(pop))]
	b := pop[rc.Rand.IntN(len(pop))]
	if b.Fitness > a.Fitness {
		return b
	}
	return a
}

// survivors keeps the n best evaluated, error-free candidates.
func survivors(cands []*pool.Candidate, n int) []*pool.Candidate {
	kept := make([]*pool.Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Evaluated && c.Err == nil {
			kept = append(kept, c)
		}
	}
	pool.Rank(kept)
	if len(kept) > n {
		kept = kept[:n]
	}
	return kept
}

func ranked(cands []*pool.Candidate) []*pool.Candidate {
	pool.Rank(cands)
	return cands
}

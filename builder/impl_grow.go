// SPDX-License-Identifier: MIT
// Package: fragevo/builder
//
// impl_grow.go: random growth through EXTEND and ADDRING mutations.
//
// Algorithm (Grow):
//   1. Pick a random top-level vertex that can be extended.
//   2. Extend it through the mutator, retrying recoverable failures.
//   3. Stop at the target size, at the mutator's limits, or when no
//      vertex can be extended any more.

package builder

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/ga"
)

// Grow extends random vertices until g holds size heavy (non-cap)
// vertices or no extension succeeds. Running out of growth sites is not
// an error; the graph simply stays smaller.
func Grow(size int) Constructor {
	return func(ctx context.Context, rc *ga.RunContext, g *core.Graph, cfg builderConfig) error {
		if size < 1 {
			return errors.Wrapf(ErrTooFewVertices, "builder: Grow(%d)", size)
		}
		if size > cfg.maxVertices {
			size = cfg.maxVertices
		}
		for heavy(g) < size {
			sites := sitesFor(cfg, g, core.Extend)
			if len(sites) == 0 {
				return nil
			}
			err := ga.Attempt(ctx, rc, cfg.attempts, func(int) error {
				v := sites[rc.Rand.IntN(len(sites))]
				return cfg.mutator.MutateVertex(ctx, rc, g, v, core.Extend)
			})
			if err == nil {
				continue
			}
			if ga.IsRecoverable(err) {
				rc.Logger.Debug("growth stopped", zap.Int("heavy", heavy(g)), zap.Error(err))
				return nil
			}
			return errors.Wrap(err, "builder: Grow")
		}
		return nil
	}
}

// Rings makes up to n ring-closing attempts, each taken with the
// configured ring probability. Failed closures are skipped.
func Rings(n int) Constructor {
	return func(ctx context.Context, rc *ga.RunContext, g *core.Graph, cfg builderConfig) error {
		for i := 0; i < n; i++ {
			if rc.Rand.Float64() >= cfg.ringProbability {
				continue
			}
			sites := sitesFor(cfg, g, core.AddRing)
			if len(sites) == 0 {
				return nil
			}
			v := sites[rc.Rand.IntN(len(sites))]
			err := cfg.mutator.MutateVertex(ctx, rc, g, v, core.AddRing)
			if err != nil && !ga.IsRecoverable(err) {
				return errors.Wrap(err, "builder: Rings")
			}
		}
		return nil
	}
}

// sitesFor lists the top-level vertices that can undergo mt.
func sitesFor(cfg builderConfig, g *core.Graph, mt core.MutationType) []*core.Vertex {
	var out []*core.Vertex
	for _, v := range g.Vertices() {
		if v.IsCap() || v.IsRCV() {
			continue
		}
		if cfg.mutator.Applicable(v).Has(mt) {
			out = append(out, v)
		}
	}
	return out
}

func heavy(g *core.Graph) int {
	n := 0
	for _, v := range g.Vertices() {
		if !v.IsCap() {
			n++
		}
	}
	return n
}

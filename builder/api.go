// SPDX-License-Identifier: MIT
// Package: fragevo/builder
//
// api.go: public entry points for the builder package.
//
// Contract:
//   • One orchestrator: BuildGraph. Creates g, resolves cfg, runs cons in order.
//   • Constructors are declared in impl_*.go.
//   • Determinism: same library, seed, options and constructor order ⇒ same graph.

package builder

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/fragspace"
	"github.com/katalvlaran/fragevo/ga"
)

// Constructor applies one construction step to g using the resolved
// builderConfig. Constructors validate parameters early and return
// sentinel errors; they never panic.
type Constructor func(ctx context.Context, rc *ga.RunContext, g *core.Graph, cfg builderConfig) error

// BuildGraph creates an empty graph under lib's compatibility rule,
// resolves the configuration from bopts, and applies all constructors in
// order. The first constructor error is returned wrapped; the partial
// graph is discarded.
func BuildGraph(ctx context.Context, rc *ga.RunContext, lib *fragspace.Library, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	if lib == nil {
		return nil, ErrNilLibrary
	}
	cfg, err := newBuilderConfig(lib, bopts...)
	if err != nil {
		return nil, errors.Wrap(err, "builder: BuildGraph")
	}
	g := core.NewGraph(core.WithRule(lib.Rule()))
	for i, fn := range cons {
		if fn == nil {
			return nil, errors.Wrapf(ErrConstructFailed, "builder: BuildGraph: nil constructor at index %d", i)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := fn(ctx, rc, g, cfg); err != nil {
			return nil, errors.Wrap(err, "builder: BuildGraph")
		}
	}
	rc.Logger.Debug("graph built",
		zap.Int("vertices", g.VertexCount()),
		zap.Int("rings", len(g.Rings())))
	return g, nil
}

// Population builds n graphs with the same options and constructors. Graph
// i draws from rc.Fork(i), so the population does not depend on how many
// graphs were built before it.
func Population(ctx context.Context, rc *ga.RunContext, lib *fragspace.Library, n int, bopts []BuilderOption, cons ...Constructor) ([]*core.Graph, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrTooFewVertices, "builder: population size %d", n)
	}
	out := make([]*core.Graph, 0, n)
	for i := 0; i < n; i++ {
		g, err := BuildGraph(ctx, rc.Fork(uint64(i)), lib, bopts, cons...)
		if err != nil {
			return nil, errors.Wrapf(err, "builder: member %d", i)
		}
		out = append(out, g)
	}
	return out, nil
}

// Seeding is the default recipe of a first population: a random scaffold
// grown to size heavy vertices, a few ring attempts, then capping.
func Seeding(size int) []Constructor {
	return []Constructor{Scaffold(0), Grow(size), Rings(size / 2), Cap()}
}

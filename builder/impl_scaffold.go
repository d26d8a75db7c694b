// SPDX-License-Identifier: MIT
// Package: fragevo/builder
//
// impl_scaffold.go: root placement and final capping.

package builder

import (
	"context"

	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/fragspace"
	"github.com/katalvlaran/fragevo/ga"
)

// Scaffold places the scaffold with building-block id as the root. id 0
// picks one of the library's scaffolds at random.
func Scaffold(id int) Constructor {
	return func(_ context.Context, rc *ga.RunContext, g *core.Graph, cfg builderConfig) error {
		if id < 0 {
			return errors.Wrapf(ErrNoScaffold, "builder: Scaffold(%d)", id)
		}
		scaffolds := cfg.lib.Scaffolds()
		if len(scaffolds) == 0 {
			return ErrNoScaffold
		}
		var e *fragspace.Entry
		if id == 0 {
			e = scaffolds[rc.Rand.IntN(len(scaffolds))]
		} else {
			var err error
			if e, err = cfg.lib.Lookup(core.BuildingBlock{ID: id, Role: core.RoleScaffold}, false); err != nil {
				return errors.Wrapf(ErrNoScaffold, "builder: Scaffold(%d): %v", id, err)
			}
		}
		if err := g.AddVertex(cfg.lib.Instantiate(e, g.NextVertexID())); err != nil {
			return errors.Wrap(ErrConstructFailed, err.Error())
		}
		return nil
	}
}

// Cap puts capping groups on every free AP that has a capping rule.
func Cap() Constructor {
	return func(_ context.Context, _ *ga.RunContext, g *core.Graph, cfg builderConfig) error {
		if _, err := cfg.lib.CapGraph(g); err != nil {
			return errors.Wrap(ErrConstructFailed, err.Error())
		}
		return nil
	}
}

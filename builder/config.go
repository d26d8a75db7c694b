// SPDX-License-Identifier: MIT
// Package: fragevo/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Defaults:
//   • maxVertices     = 40
//   • maxLevel        = 8
//   • ringProbability = 0.2
//   • attempts        = 10
//   • mutator         = built from the library with the growth limits above

package builder

import (
	"github.com/katalvlaran/fragevo/fragspace"
	"github.com/katalvlaran/fragevo/ga"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	lib     *fragspace.Library
	mutator *ga.Mutator

	maxVertices     int
	maxLevel        int
	ringProbability float64
	attempts        int
}

const (
	defaultMaxVertices     = 40
	defaultMaxLevel        = 8
	defaultRingProbability = 0.2
	defaultAttempts        = 10
)

// newBuilderConfig applies options in order over the defaults and builds
// the mutator when none was given.
func newBuilderConfig(lib *fragspace.Library, opts ...BuilderOption) (builderConfig, error) {
	cfg := builderConfig{
		lib:             lib,
		maxVertices:     defaultMaxVertices,
		maxLevel:        defaultMaxLevel,
		ringProbability: defaultRingProbability,
		attempts:        defaultAttempts,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.mutator == nil {
		m, err := ga.NewMutator(lib, ga.WithGrowthLimits(cfg.maxVertices, cfg.maxLevel))
		if err != nil {
			return cfg, err
		}
		cfg.mutator = m
	}
	return cfg, nil
}

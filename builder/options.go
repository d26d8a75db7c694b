// SPDX-License-Identifier: MIT
// Package: fragevo/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Option constructors validate and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   • Later options override earlier ones.

package builder

import "github.com/katalvlaran/fragevo/ga"

// BuilderOption customizes a builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithMutator grows graphs with m instead of a default mutator. m's own
// growth limits then apply. Panics on nil.
func WithMutator(m *ga.Mutator) BuilderOption {
	if m == nil {
		panic("builder: WithMutator(nil)")
	}
	return func(c *builderConfig) {
		c.mutator = m
	}
}

// WithMaxVertices caps the heavy vertex count of grown graphs. Panics if
// n < 1.
func WithMaxVertices(n int) BuilderOption {
	if n < 1 {
		panic("builder: WithMaxVertices(n<1)")
	}
	return func(c *builderConfig) {
		c.maxVertices = n
	}
}

// WithMaxLevel caps the depth of grown branches. Panics if n < 1.
func WithMaxLevel(n int) BuilderOption {
	if n < 1 {
		panic("builder: WithMaxLevel(n<1)")
	}
	return func(c *builderConfig) {
		c.maxLevel = n
	}
}

// WithRingProbability sets the chance that each Rings step tries to close
// a ring. Panics outside [0,1].
func WithRingProbability(p float64) BuilderOption {
	if p < 0 || p > 1 {
		panic("builder: WithRingProbability(p outside [0,1])")
	}
	return func(c *builderConfig) {
		c.ringProbability = p
	}
}

// WithAttempts sets how many times a failed growth step is retried.
// Panics if n < 1.
func WithAttempts(n int) BuilderOption {
	if n < 1 {
		panic("builder: WithAttempts(n<1)")
	}
	return func(c *builderConfig) {
		c.attempts = n
	}
}

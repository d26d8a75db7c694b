// SPDX-License-Identifier: MIT
// Package: fragevo/builder

// Package builder grows random fragment graphs from a scaffold, the way a
// run seeds its first population.
//
// A graph is assembled by composable constructors applied in order:
//
//	g, err := builder.BuildGraph(ctx, rc, lib,
//	    []builder.BuilderOption{builder.WithMaxVertices(20)},
//	    builder.Scaffold(0),  // random scaffold
//	    builder.Grow(8),      // extend up to 8 heavy vertices
//	    builder.Rings(3),     // up to 3 ring-closing attempts
//	    builder.Cap(),        // cap whatever is left open
//	)
//
// Growth goes through ga.Mutator, so every seeded graph obeys the same
// compatibility, symmetry and ring-closure rules as its offspring will.
// Randomness comes from the ga.RunContext; equal seeds give equal graphs.
//
// Population builds n graphs with one forked random stream each.
package builder

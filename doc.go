// Package fragevo evolves fragment-based molecular graphs with a genetic
// algorithm.
//
// A molecule is a tree of building blocks (scaffolds, fragments, capping
// groups) bonded through typed attachment points, plus ring chords that
// close cycles between ring-closing vertices. Mutation and crossover edit
// these graphs on clones and swap the result in only when every structural
// invariant still holds.
//
// Subpackages:
//
//	apclass/    attachment point classes and compatibility rules
//	core/       Graph, Vertex, AttachmentPoint, Edge, Ring, templates, editing primitives
//	rings/      ring path finder, closability evaluator, closure archive
//	fragspace/  fragment library: building blocks, capping, ring closers (YAML)
//	ga/         mutation, crossover, failure taxonomy, retry loop, run context
//	bfs/, dfs/  bond-graph traversals and cycle detection
//	builder/    random graph construction for seeding populations
//	monitor/    operator counters (prometheus) with periodic zap dumps
//	config/     YAML run settings
//	pool/       bounded worker pool for candidate pipelines, fitness boundary
//
// A tiny molecule, scaffold S with a link L and a ring closed through two
// ring-closing vertices R1 and R2:
//
//	    S───L───R1
//	    │        ┆
//	    R2┄┄┄┄┄┄┄┘
//
// The cmd/fraggen command wires everything into a seed, vary, score loop.
//
//	go install github.com/katalvlaran/fragevo/cmd/fraggen@latest
package fragevo

// Package ga implements the genetic operators on fragment graphs: mutation
// and crossover, with their failure taxonomy and retry loop.
//
// Every operator works on clones and swaps them in only after the edit
// validated, so a failed call leaves its graphs exactly as they were.
// Failures are typed (see FailureKind):
//
//	recoverable:  IncompatibleAP, Capacity, Disconnection, NoMutationSite,
//	              NoApplicableType, SymmetryViolation
//	fatal:        StructuralInvariant (a defect; drop the candidate)
//
// Randomness, logging and counters come from a RunContext passed to every
// call; there is no package state.
//
// Mutation types:
//
//	CHANGEBRANCH  replace a branch with a newly grown one
//	CHANGELINK    replace a vertex with another fragment keeping its bonds
//	DELETELINK    remove a vertex and weld its children to its parent
//	ADDLINK       insert a fragment on an edge to a child
//	EXTEND        grow a fragment on a free AP
//	ADDRING       close rings through new ring-closing vertices
//	DELETE        remove a branch
//	DELETECHAIN   open a ring by removing the chain up to branching points
package ga

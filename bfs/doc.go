// Package bfs provides breadth-first search over a core.Graph, returning
// bond distances, parent links, and visit order.
//
// What
//
//   - Explore vertices in non-decreasing bond distance from a start vertex.
//     Tree edges are walked both ways and every ring chord counts as a
//     bond, so distances are those of the molecule, not of the tree.
//   - Returns a BFSResult containing:
//   - Order: visit sequence
//   - Depth: map from vertex ID to distance from start
//   - Parent: map from vertex ID to its predecessor in the BFS tree
//   - Hooks: OnEnqueue, OnVisit (may abort with an error).
//   - WithFilterNeighbor prunes individual bonds; SkipCaps ignores
//     capping groups.
//   - MaxDepth limit (d>0) or no limit (d==0).
//
// Determinism
//
//	core.Graph.Neighbors lists parent, children in AP order, then ring
//	partners, so the visit sequence is reproducible.
//
// Complexity (V = |Vertices|, B = |bonds|, R = |rings|)
//
//   - Time:   O(V·R + B)
//   - Memory: O(V)
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if start is not a top-level vertex of g.
//   - ErrOptionViolation      if an Option is invalid (negative MaxDepth).
//   - context errors, and wrapped OnVisit errors.
package bfs

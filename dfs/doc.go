// Package dfs implements depth-first traversal and cycle detection on the
// bond graph of a core.Graph: tree edges walked both ways plus one chord
// per ring.
//
// What:
//
//   - DFS: explores as far as possible along each bond before
//     backtracking. Supports:
//   - Pre-order (OnVisit) and post-order (OnExit) hooks
//   - Cancellation via context.Context
//   - Depth limiting and neighbor filtering
//   - Forest traversal over every top-level vertex
//   - DetectCycles: enumerates the simple cycles with three-color marking
//     and back-edge recording; each ring contributes exactly one.
//
// Complexity:
//
//   - DFS:           Time O(V+B), Memory O(V)
//   - DetectCycles:  Time O(V+B+C·L), Memory O(V+L_max)
//
// Errors:
//
//   - ErrGraphNil             graph pointer is nil
//   - ErrStartVertexNotFound  start is not a top-level vertex of g
//   - context.Canceled        DFS canceled via context
//   - hook errors             propagated from OnVisit or OnExit
package dfs

// Package core provides the fragment graph used by the genetic operators:
// a spanning tree of vertices joined through typed attachment points, with
// rings overlaid on the tree and closed by chords.
//
// The Graph G = (V, E, R, S) holds:
//
//   - V: vertices of four kinds (fragment, cap, empty, template). A template
//     owns an inner Graph and exposes each of its free APs outward.
//   - E: tree edges, each joining a source AP (nearer the root) to a target
//     AP, tagged with a BondType.
//   - R: rings, ordered vertex lists running along tree edges from one
//     ring-closing vertex (RCV) to another; the chord between head and tail
//     is the only non-tree connection and is never stored as an Edge.
//   - S: symmetric sets of vertex IDs edited in lock-step.
//
// Invariants (checked by Validate after every edit, recursively):
//
//	– unique vertex IDs within a graph;
//	– every AP used by at most one edge, and that edge belongs to the graph;
//	– E is a tree with a single root (the vertex without a parent edge);
//	– every ring has ≥ 3 members joined by tree edges, RCV ends used once;
//	– template projections are bijections onto the available inner APs.
//
// Edit primitives:
//
//	AddVertex(v)                                  // first vertex, the root
//	AppendVertex(parentAP, child, childAP, bond)  // grow the tree
//	RemoveBranch(v)                               // drop a subtree
//	RemoveVertexAndWeld(v)                        // chain contraction
//	RemoveChainUpToBranching(v)                   // open a ring
//	ReplaceVertex(old, new, apMap)                // substitute a link
//	InsertVertex(edge, link, srcSide, trgSide)    // split an edge
//	ExtractSubgraph(root, boundary)               // lift a region out
//	GraftSubgraph(sub, rootAP, patch, targets)    // put a region in
//	AddRing(path, bond) / CloseRing(head, tail, bond) / RemoveRing(r)
//
// A recoverable error (ErrIncompatibleAP, ErrCapacity, ErrDisconnection)
// leaves the graph untouched. Callers needing all-or-nothing semantics over
// several edits work on Clone() and swap the result in with Adopt.
//
// Compatibility between AP classes is an apclass.Rule injected with
// WithRule; the package never interprets class names itself.
//
// Graphs are not safe for concurrent use; give each goroutine its own.
package core

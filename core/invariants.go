// File: invariants.go
// Role: Structural consistency checks run after every edit.
//
// Checks, recursively into template inner graphs:
//   1. vertex membership and ID uniqueness;
//   2. AP binding consistency (every used AP is an endpoint of exactly the
//      edge that uses it, and that edge belongs to g);
//   3. spanning tree: one root, at most one parent per vertex, n-1 edges,
//      everything reachable from the root;
//   4. rings: at least three members, tree-adjacent, RCV ends used once;
//   5. symmetric sets reference existing vertices;
//   6. template projections are bijections onto available inner APs.

package core

import (
	"github.com/pkg/errors"
)

// Validate checks every structural invariant of g. Errors wrap
// ErrStructuralInvariant.
func (g *Graph) Validate() error {
	if len(g.vertices) == 0 {
		if len(g.edges) != 0 || len(g.rings) != 0 {
			return errors.Wrap(ErrStructuralInvariant, "empty graph with edges or rings")
		}
		return nil
	}

	// 1. Membership and IDs.
	if len(g.byID) != len(g.vertices) {
		return errors.Wrapf(ErrStructuralInvariant, "%d vertices but %d IDs", len(g.vertices), len(g.byID))
	}
	for _, v := range g.vertices {
		if v.graph != g {
			return errors.Wrapf(ErrStructuralInvariant, "vertex %d has a foreign owner", v.id)
		}
		if g.byID[v.id] != v {
			return errors.Wrapf(ErrStructuralInvariant, "vertex ID %d is not unique", v.id)
		}
	}

	// 2. AP binding.
	inEdges := make(map[*Edge]bool, len(g.edges))
	for _, e := range g.edges {
		if inEdges[e] {
			return errors.Wrapf(ErrStructuralInvariant, "edge %s listed twice", e)
		}
		inEdges[e] = true
		if e.src.user != e || e.trg.user != e {
			return errors.Wrapf(ErrStructuralInvariant, "edge %s does not own its APs", e)
		}
		if !g.Contains(e.src.owner) || !g.Contains(e.trg.owner) {
			return errors.Wrapf(ErrStructuralInvariant, "edge %s leaves the graph", e)
		}
		if e.src.owner == e.trg.owner {
			return errors.Wrapf(ErrStructuralInvariant, "edge %s is a loop", e)
		}
	}
	for _, v := range g.vertices {
		for i, ap := range v.aps {
			if ap.owner != v {
				return errors.Wrapf(ErrStructuralInvariant, "AP %d of %d has a foreign owner", i, v.id)
			}
			if ap.user != nil && !inEdges[ap.user] {
				return errors.Wrapf(ErrStructuralInvariant, "AP %d of %d is used by a stray edge", i, v.id)
			}
		}
	}

	// 3. Spanning tree.
	if len(g.edges) != len(g.vertices)-1 {
		return errors.Wrapf(ErrStructuralInvariant, "%d edges for %d vertices", len(g.edges), len(g.vertices))
	}
	var root *Vertex
	for _, v := range g.vertices {
		parents := 0
		for _, ap := range v.aps {
			if ap.user != nil && ap.user.trg == ap {
				parents++
			}
		}
		switch {
		case parents > 1:
			return errors.Wrapf(ErrStructuralInvariant, "vertex %d has %d parents", v.id, parents)
		case parents == 0 && root != nil:
			return errors.Wrapf(ErrStructuralInvariant, "vertices %d and %d are both roots", root.id, v.id)
		case parents == 0:
			root = v
		}
	}
	if root == nil {
		return errors.Wrap(ErrStructuralInvariant, "no root")
	}
	if reached := len(g.Subtree(root, nil)); reached != len(g.vertices) {
		return errors.Wrapf(ErrStructuralInvariant, "%d of %d vertices reachable from root", reached, len(g.vertices))
	}

	// 4. Rings.
	usedEnds := make(map[*Vertex]bool)
	for _, r := range g.rings {
		if len(r.vertices) < 3 {
			return errors.Wrapf(ErrStructuralInvariant, "ring %s is too small", r)
		}
		for i, m := range r.vertices {
			if !g.Contains(m) {
				return errors.Wrapf(ErrStructuralInvariant, "ring %s leaves the graph", r)
			}
			if i > 0 && g.EdgeBetween(r.vertices[i-1], m) == nil {
				return errors.Wrapf(ErrStructuralInvariant, "ring %s is broken at %d", r, m.id)
			}
		}
		for _, end := range []*Vertex{r.Head(), r.Tail()} {
			if usedEnds[end] {
				return errors.Wrapf(ErrStructuralInvariant, "ring end %d is shared", end.id)
			}
			usedEnds[end] = true
		}
	}

	// 5. Symmetric sets.
	for _, s := range g.symSets {
		for _, id := range s.ids {
			if g.byID[id] == nil {
				return errors.Wrapf(ErrStructuralInvariant, "symmetric set member %d is missing", id)
			}
		}
	}

	// 6. Templates.
	for _, v := range g.vertices {
		if v.inner == nil {
			continue
		}
		if err := v.validateProjection(); err != nil {
			return err
		}
		if err := v.inner.Validate(); err != nil {
			return errors.Wrapf(err, "inside template %d", v.id)
		}
	}
	return nil
}

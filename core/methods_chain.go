// File: methods_chain.go
// Role: Opening a ring by removing the chain between two branching points.
//
// Implementation:
//   - Stage 1: Pick the frame: the ring whose head or tail is nearest v.
//   - Stage 2: Mark branching positions (root, scaffolds, vertices with more
//     than two non-cap connections) and cut the branch-free arc holding v.
//   - Stage 3a: If the arc spans the chord, drop both halves as branches.
//   - Stage 3b: Otherwise remove the arc, turn the chord into a tree edge
//     between the parents of the two RCVs and reverse the tree edges on the
//     re-rooted side.

package core

import (
	"github.com/pkg/errors"
)

// RemoveChainUpToBranching removes v and every vertex of its ring that lies
// between the two nearest branching points, opening the ring.
//
// Errors:
//   - ErrNotInRing: v belongs to no ring.
//   - ErrDisconnection: v is itself a branching point, the ring is all
//     there is, or only the two RCVs would go.
func (g *Graph) RemoveChainUpToBranching(v *Vertex) error {
	// 1. Frame ring.
	if !g.Contains(v) {
		return ErrVertexNotFound
	}
	rings := g.RingsInvolving(v)
	if len(rings) == 0 {
		return errors.Wrapf(ErrNotInRing, "core: vertex %d", v.id)
	}
	var frame *Ring
	best := int(^uint(0) >> 1)
	for _, r := range rings {
		d := r.Distance(r.Head(), v)
		if dt := r.Distance(r.Tail(), v); dt < d {
			d = dt
		}
		if d < best {
			best, frame = d, r
		}
	}

	// 2. Branching points along the frame.
	root := g.Root()
	n := frame.Size()
	branching := make([]bool, n)
	frameHasBranching, anyBranching := false, false
	for i, m := range frame.vertices {
		switch {
		case m == root || m.bb.Role == RoleScaffold:
			branching[i], anyBranching = true, true
		case m.nonCapConnections() > 2:
			branching[i], anyBranching, frameHasBranching = true, true, true
		}
	}
	p := frame.PositionOf(v)
	if !anyBranching || branching[p] {
		return errors.Wrapf(ErrDisconnection, "core: vertex %d has no removable chain", v.id)
	}
	if len(rings) == 1 && !frameHasBranching {
		return errors.Wrapf(ErrDisconnection, "core: ring %s is all there is", frame)
	}
	down, up := -1, -1
	for i := 0; i < n; i++ {
		if k := (p + i) % n; branching[k] {
			down = k
			break
		}
	}
	for i := n - 1; i >= 0; i-- {
		if k := (p + i) % n; branching[k] {
			up = k
			break
		}
	}
	var chain []int
	for k := (up + 1) % n; k != down; k = (k + 1) % n {
		chain = append(chain, k)
	}
	if len(chain) == 2 && frame.vertices[chain[0]].rcv && frame.vertices[chain[1]].rcv {
		return errors.Wrap(ErrDisconnection, "core: only the ring-closing vertices would go")
	}
	inChain := make(map[int]bool, len(chain))
	for _, k := range chain {
		inChain[k] = true
	}

	// 3a. The arc spans the chord: both halves hang below a branching point.
	if inChain[0] && inChain[n-1] {
		headSide := g.Subtree(frame.vertices[(down-1+n)%n], nil)
		tailSide := g.Subtree(frame.vertices[(up+1)%n], nil)
		g.removeVertices(append(headSide, tailSide...))
		return g.commit()
	}

	// 3b. Orient the ring so that the arc lies on the head side of the
	// turning point, where ring[i+1] is the parent of ring[i].
	ring := frame.Vertices()
	tpPos := 0
	for i, m := range ring {
		if g.Level(m) < g.Level(ring[tpPos]) {
			tpPos = i
		}
	}
	lo := chain[0]
	for _, k := range chain {
		if k < lo {
			lo = k
		}
	}
	hi := lo + len(chain) - 1
	if lo > tpPos {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
		lo, hi = n-1-hi, n-1-lo
	}
	head, tail := ring[0], ring[n-1]
	headEdge, tailEdge := g.EdgeToParent(head), g.EdgeToParent(tail)
	if headEdge == nil || tailEdge == nil || lo < 2 {
		return errors.Wrap(ErrStructuralInvariant, "core: ring ends are not leaves")
	}
	headParentAP, tailParentAP := headEdge.src, tailEdge.src

	// Collect the arc together with its caps.
	var gone []*Vertex
	stop := map[*Vertex]bool{ring[lo-1]: true}
	gone = append(gone, g.Subtree(ring[hi], stop)...)
	gone = append(gone, head, tail)

	// Remove, reverse the re-rooted side, then bind the former chord.
	bond := frame.bond
	g.removeVertices(gone)
	for i := 1; i+1 <= lo-1; i++ {
		if e := g.EdgeBetween(ring[i], ring[i+1]); e != nil && e.trg.owner == ring[i] {
			e.Reverse()
		}
	}
	if _, err := g.addEdge(tailParentAP, headParentAP, bond, false); err != nil {
		return errors.Wrap(ErrStructuralInvariant, err.Error())
	}
	return g.commit()
}

// File: isomorphism.go
// Role: Structural equivalence ignoring vertex IDs.
//
// Implementation:
//   - Stage 1: Cheap rejections (counts, multiset of vertex signatures).
//   - Stage 2: Anchor the first vertex of g onto each candidate of other
//     with the same signature (the backtracking point).
//   - Stage 3: Propagate the mapping across edges. Because APs are ordered,
//     the neighbour behind AP i must map to the neighbour behind AP i, with
//     the same remote AP index and bond type; no further choice exists.
//   - Stage 4: Compare rings under the mapping, in either orientation.
//
// Edge direction is ignored, so re-rooted copies are still equivalent.
// Templates compare their inner graphs recursively.

package core

import (
	"fmt"
	"strings"
)

// IsIsomorphicTo reports whether g and other have the same structure up to
// vertex renumbering: same building blocks, AP classes, AP indices, bond
// types, rings and nested template content.
func (g *Graph) IsIsomorphicTo(other *Graph) bool {
	// 1. Cheap rejections.
	if other == nil {
		return false
	}
	if len(g.vertices) != len(other.vertices) || len(g.edges) != len(other.edges) || len(g.rings) != len(other.rings) {
		return false
	}
	if len(g.vertices) == 0 {
		return true
	}
	counts := make(map[string]int, len(g.vertices))
	for _, v := range g.vertices {
		counts[v.signature()]++
	}
	for _, v := range other.vertices {
		s := v.signature()
		if counts[s] == 0 {
			return false
		}
		counts[s]--
	}

	// 2-4. Anchor, propagate, compare rings.
	anchor := g.vertices[0]
	sig := anchor.signature()
	for _, cand := range other.vertices {
		if cand.signature() != sig {
			continue
		}
		if m, ok := propagate(g, anchor, cand); ok && ringsMatch(g, other, m) {
			return true
		}
	}
	return false
}

// signature summarises what a vertex must share with its image.
func (v *Vertex) signature() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d/%d/%t/", v.kind, v.bb.ID, v.bb.Role, v.rcv)
	for _, ap := range v.aps {
		b.WriteString(ap.class.String())
		if ap.IsAvailable() {
			b.WriteString("-f")
		} else {
			b.WriteString("-u")
		}
		b.WriteByte(',')
	}
	return b.String()
}

// propagate extends a -> b along the edges of the connected tree of g.
func propagate(g *Graph, a, b *Vertex) (map[*Vertex]*Vertex, bool) {
	m := map[*Vertex]*Vertex{a: b}
	used := map[*Vertex]bool{b: true}
	queue := []*Vertex{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		img := m[cur]
		if !sameVertex(cur, img) {
			return nil, false
		}
		for i, ap := range cur.aps {
			ea, eb := ap.user, img.aps[i].user
			if ea == nil {
				continue
			}
			if eb == nil || ea.bond != eb.bond {
				return nil, false
			}
			ra, rb := ea.Other(ap), eb.Other(img.aps[i])
			if ra.Index() != rb.Index() {
				return nil, false
			}
			na, nb := ra.owner, rb.owner
			if prev, seen := m[na]; seen {
				if prev != nb {
					return nil, false
				}
				continue
			}
			if used[nb] {
				return nil, false
			}
			m[na], used[nb] = nb, true
			queue = append(queue, na)
		}
	}
	return m, len(m) == len(g.vertices)
}

// sameVertex compares two vertices locally, recursing into templates.
func sameVertex(a, b *Vertex) bool {
	if a.signature() != b.signature() {
		return false
	}
	if a.inner == nil && b.inner == nil {
		return true
	}
	if a.inner == nil || b.inner == nil || a.contract != b.contract {
		return false
	}
	return a.inner.IsIsomorphicTo(b.inner)
}

// ringsMatch checks that the mapped rings of g are exactly the rings of other.
func ringsMatch(g, other *Graph, m map[*Vertex]*Vertex) bool {
	claimed := make([]bool, len(other.rings))
	for _, r := range g.rings {
		found := false
		for j, o := range other.rings {
			if !claimed[j] && r.bond == o.bond && sameCycle(r, o, m) {
				claimed[j], found = true, true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sameCycle(r, o *Ring, m map[*Vertex]*Vertex) bool {
	n := len(r.vertices)
	if n != len(o.vertices) {
		return false
	}
	forward, backward := true, true
	for i := 0; i < n; i++ {
		img := m[r.vertices[i]]
		if img != o.vertices[i] {
			forward = false
		}
		if img != o.vertices[n-1-i] {
			backward = false
		}
	}
	return forward || backward
}

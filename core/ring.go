// File: ring.go
// Role: Cycles overlaid on the spanning tree and closed by a chord.

package core

import (
	"fmt"
	"strings"
)

// Ring is an ordered list of at least three vertices. Consecutive vertices
// are joined by tree edges; the chord joins the head (first) and the tail
// (last) vertex and is the only non-tree connection of the cycle.
type Ring struct {
	vertices []*Vertex
	bond     BondType
}

// Vertices returns the ring members from head to tail.
func (r *Ring) Vertices() []*Vertex {
	out := make([]*Vertex, len(r.vertices))
	copy(out, r.vertices)
	return out
}

// Size returns the number of members.
func (r *Ring) Size() int { return len(r.vertices) }

// Head returns the first vertex.
func (r *Ring) Head() *Vertex { return r.vertices[0] }

// Tail returns the last vertex.
func (r *Ring) Tail() *Vertex { return r.vertices[len(r.vertices)-1] }

// BondType returns the chord bond order.
func (r *Ring) BondType() BondType { return r.bond }

// SetBondType sets the chord bond order to b.
func (r *Ring) SetBondType(b BondType) { r.bond = b }

// Contains reports membership.
func (r *Ring) Contains(v *Vertex) bool { return r.PositionOf(v) >= 0 }

// PositionOf returns the index of v in the ring, or -1.
func (r *Ring) PositionOf(v *Vertex) int {
	for i, m := range r.vertices {
		if m == v {
			return i
		}
	}
	return -1
}

// Distance returns the number of steps between two members along the
// cycle, taking the shorter way round, or -1 if either is missing.
func (r *Ring) Distance(a, b *Vertex) int {
	i, j := r.PositionOf(a), r.PositionOf(b)
	if i < 0 || j < 0 {
		return -1
	}
	d := i - j
	if d < 0 {
		d = -d
	}
	if alt := len(r.vertices) - d; alt < d {
		return alt
	}
	return d
}

// String renders "[id id id](bond)".
func (r *Ring) String() string {
	ids := make([]string, len(r.vertices))
	for i, v := range r.vertices {
		ids[i] = fmt.Sprint(v.id)
	}
	return fmt.Sprintf("[%s](%s)", strings.Join(ids, " "), r.bond)
}

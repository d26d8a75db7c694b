// File: symmetry.go
// Role: Sets of vertices edited in lock-step.

package core

import (
	"sort"

	"github.com/pkg/errors"
)

// SymmetricSet is a sorted set of vertex IDs considered equivalent.
type SymmetricSet struct {
	ids []VertexID
}

// NewSymmetricSet returns a set holding the distinct given IDs.
func NewSymmetricSet(ids ...VertexID) *SymmetricSet {
	s := &SymmetricSet{}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

// IDs returns the members in ascending order.
func (s *SymmetricSet) IDs() []VertexID { return append([]VertexID(nil), s.ids...) }

// Size returns the number of members.
func (s *SymmetricSet) Size() int { return len(s.ids) }

// Contains reports membership.
func (s *SymmetricSet) Contains(id VertexID) bool {
	i := sort.Search(len(s.ids), func(i int) bool { return s.ids[i] >= id })
	return i < len(s.ids) && s.ids[i] == id
}

func (s *SymmetricSet) add(id VertexID) {
	i := sort.Search(len(s.ids), func(i int) bool { return s.ids[i] >= id })
	if i < len(s.ids) && s.ids[i] == id {
		return
	}
	s.ids = append(s.ids, 0)
	copy(s.ids[i+1:], s.ids[i:])
	s.ids[i] = id
}

func (s *SymmetricSet) remove(id VertexID) {
	i := sort.Search(len(s.ids), func(i int) bool { return s.ids[i] >= id })
	if i < len(s.ids) && s.ids[i] == id {
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
	}
}

// AddSymmetricSet registers a set of at least two existing vertices. A
// vertex belongs to at most one set; overlapping sets are merged.
func (g *Graph) AddSymmetricSet(ids ...VertexID) error {
	set := NewSymmetricSet(ids...)
	if set.Size() < 2 {
		return errors.New("core: symmetric set needs at least two vertices")
	}
	for _, id := range set.ids {
		if g.byID[id] == nil {
			return errors.Wrapf(ErrVertexNotFound, "core: symmetric member %d", id)
		}
	}
	var kept []*SymmetricSet
	for _, other := range g.symSets {
		overlap := false
		for _, id := range other.ids {
			if set.Contains(id) {
				overlap = true
				break
			}
		}
		if overlap {
			for _, id := range other.ids {
				set.add(id)
			}
			continue
		}
		kept = append(kept, other)
	}
	g.symSets = append(kept, set)
	return nil
}

// SymmetricSetOf returns the set holding v, or nil.
func (g *Graph) SymmetricSetOf(v *Vertex) *SymmetricSet {
	if v == nil {
		return nil
	}
	for _, s := range g.symSets {
		if s.Contains(v.id) {
			return s
		}
	}
	return nil
}

// SymmetricSets returns the registered sets.
func (g *Graph) SymmetricSets() []*SymmetricSet {
	out := make([]*SymmetricSet, len(g.symSets))
	copy(out, g.symSets)
	return out
}

// pruneSymmetry drops IDs not present in g and sets left with fewer than
// two members.
func (g *Graph) pruneSymmetry() {
	var kept []*SymmetricSet
	for _, s := range g.symSets {
		var ids []VertexID
		for _, id := range s.ids {
			if g.byID[id] != nil {
				ids = append(ids, id)
			}
		}
		s.ids = ids
		if len(s.ids) >= 2 {
			kept = append(kept, s)
		}
	}
	g.symSets = kept
}

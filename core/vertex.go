// File: vertex.go
// Role: Vertex variants (fragment, cap, empty, ring-closing) and queries.
//
// Ownership:
//   - A vertex owns its APs; each AP points back to it (non-owning).
//   - A vertex belongs to at most one Graph; the back-reference is set on
//     insertion and cleared on removal.
//   - A template vertex exclusively owns its inner Graph (see template.go).

package core

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/fragevo/apclass"
)

// Vertex is a node of the fragment graph.
type Vertex struct {
	id    VertexID
	kind  Kind
	bb    BuildingBlock
	aps   []*AttachmentPoint
	rcv   bool
	graph *Graph // non-owning

	// allowed is the capability set before contextual filtering.
	allowed MutationSet

	// symAPs groups AP indices that are symmetric to each other.
	symAPs [][]int

	// Properties holds free-form annotations carried through clones.
	Properties map[string]string

	// template-only state
	inner    *Graph
	innerRef []APRef // innerRef[i] is the inner AP projected on aps[i]
	contract ContractLevel
}

// NewFragment returns a detached fragment vertex.
func NewFragment(id VertexID, bb BuildingBlock, aps ...*AttachmentPoint) *Vertex {
	return newVertex(id, KindFragment, bb, aps, AllMutations)
}

// NewCap returns a detached capping-group vertex; caps are never mutated.
func NewCap(id VertexID, bbID int, ap *AttachmentPoint) *Vertex {
	return newVertex(id, KindCap, BuildingBlock{ID: bbID, Role: RoleCap}, []*AttachmentPoint{ap}, NoMutations)
}

// NewEmpty returns a detached placeholder vertex.
func NewEmpty(id VertexID, aps ...*AttachmentPoint) *Vertex {
	return newVertex(id, KindEmpty, BuildingBlock{ID: -1, Role: RoleUndefined}, aps, AllMutations)
}

// NewRingClosingVertex returns a detached ring-closing vertex (RCV) carrying a
// single AP of the given class. Heads and tails of rings are RCVs.
func NewRingClosingVertex(id VertexID, bbID int, class apclass.Class) *Vertex {
	v := newVertex(id, KindFragment, BuildingBlock{ID: bbID, Role: RoleFragment},
		[]*AttachmentPoint{NewAP(class)}, NoMutations)
	v.rcv = true
	return v
}

func newVertex(id VertexID, kind Kind, bb BuildingBlock, aps []*AttachmentPoint, allowed MutationSet) *Vertex {
	v := &Vertex{
		id:         id,
		kind:       kind,
		bb:         bb,
		allowed:    allowed,
		Properties: make(map[string]string),
	}
	for _, ap := range aps {
		v.addAP(ap)
	}
	return v
}

// addAP appends ap to the vertex, taking ownership of it.
func (v *Vertex) addAP(ap *AttachmentPoint) {
	ap.owner = v
	v.aps = append(v.aps, ap)
}

// ID returns the vertex identifier.
func (v *Vertex) ID() VertexID { return v.id }

// Kind returns the variant discriminator.
func (v *Vertex) Kind() Kind { return v.kind }

// BuildingBlock returns the library reference.
func (v *Vertex) BuildingBlock() BuildingBlock { return v.bb }

// IsRCV reports whether the vertex is a ring-closing vertex.
func (v *Vertex) IsRCV() bool { return v.rcv }

// IsCap reports whether the vertex is a capping group.
func (v *Vertex) IsCap() bool { return v.kind == KindCap || v.bb.Role == RoleCap }

// Graph returns the owning graph, or nil when detached.
func (v *Vertex) Graph() *Graph { return v.graph }

// AttachmentPoints returns the APs in chemical position order.
// The slice is a copy; the APs are live.
func (v *Vertex) AttachmentPoints() []*AttachmentPoint {
	out := make([]*AttachmentPoint, len(v.aps))
	copy(out, v.aps)
	return out
}

// AP returns the i-th AP or nil when out of range.
func (v *Vertex) AP(i int) *AttachmentPoint {
	if i < 0 || i >= len(v.aps) {
		return nil
	}
	return v.aps[i]
}

// APCount returns the number of APs.
func (v *Vertex) APCount() int { return len(v.aps) }

// FreeAPs returns the available APs in order.
func (v *Vertex) FreeAPs() []*AttachmentPoint {
	var out []*AttachmentPoint
	for _, ap := range v.aps {
		if ap.IsAvailable() {
			out = append(out, ap)
		}
	}
	return out
}

// UsedAPs returns the APs bound to an edge, in order.
func (v *Vertex) UsedAPs() []*AttachmentPoint {
	var out []*AttachmentPoint
	for _, ap := range v.aps {
		if !ap.IsAvailable() {
			out = append(out, ap)
		}
	}
	return out
}

// CappedAPs returns the APs used by an edge towards a capping group.
func (v *Vertex) CappedAPs() []*AttachmentPoint {
	var out []*AttachmentPoint
	for _, ap := range v.aps {
		if l := ap.LinkedAP(); l != nil && l.owner != nil && l.owner.IsCap() {
			out = append(out, ap)
		}
	}
	return out
}

func (v *Vertex) nonCapConnections() int {
	return len(v.UsedAPs()) - len(v.CappedAPs())
}

// AllowedMutations returns the capability set before contextual filtering.
func (v *Vertex) AllowedMutations() MutationSet { return v.allowed }

// SetAllowedMutations replaces the capability set. Caps and RCVs ignore it.
func (v *Vertex) SetAllowedMutations(s MutationSet) { v.allowed = s }

// SymmetricAPs returns the groups of mutually symmetric AP indices.
func (v *Vertex) SymmetricAPs() [][]int {
	out := make([][]int, len(v.symAPs))
	for i, grp := range v.symAPs {
		out[i] = append([]int(nil), grp...)
	}
	return out
}

// AddSymmetricAPs declares the given AP indices symmetric.
func (v *Vertex) AddSymmetricAPs(idx ...int) error {
	if len(idx) < 2 {
		return nil
	}
	grp := append([]int(nil), idx...)
	sort.Ints(grp)
	for _, i := range grp {
		if i < 0 || i >= len(v.aps) {
			return ErrBadAPIndex
		}
	}
	v.symAPs = append(v.symAPs, grp)
	return nil
}

// SymmetricAPsOf returns the APs symmetric to ap (ap included), or just ap.
func (v *Vertex) SymmetricAPsOf(ap *AttachmentPoint) []*AttachmentPoint {
	idx := ap.Index()
	for _, grp := range v.symAPs {
		for _, i := range grp {
			if i == idx {
				out := make([]*AttachmentPoint, 0, len(grp))
				for _, j := range grp {
					out = append(out, v.aps[j])
				}
				return out
			}
		}
	}
	return []*AttachmentPoint{ap}
}

// CloneDetached returns a deep copy with no owner graph and fresh, unbound
// APs. Templates are copied together with their inner graph.
func (v *Vertex) CloneDetached() *Vertex {
	out := &Vertex{
		id:         v.id,
		kind:       v.kind,
		bb:         v.bb,
		rcv:        v.rcv,
		allowed:    v.allowed,
		contract:   v.contract,
		Properties: make(map[string]string, len(v.Properties)),
	}
	for _, ap := range v.aps {
		out.addAP(ap.clone())
	}
	for k, val := range v.Properties {
		out.Properties[k] = val
	}
	out.symAPs = v.SymmetricAPs()
	if v.inner != nil {
		out.inner = v.inner.Clone()
		out.inner.jacket = out
		out.innerRef = append([]APRef(nil), v.innerRef...)
	}
	return out
}

// WithID returns v after setting its ID. Only valid on detached vertices.
func (v *Vertex) WithID(id VertexID) *Vertex {
	if v.graph == nil {
		v.id = id
	}
	return v
}

// String renders "<id>_<bb>_<role>_<kind>".
func (v *Vertex) String() string {
	return fmt.Sprintf("%d_%d_%s_%s", v.id, v.bb.ID, v.bb.Role, v.kind)
}

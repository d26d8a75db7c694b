// File: template.go
// Role: Template vertices wrapping an exclusively owned inner Graph.
//
// Projection:
//   - Every available AP of the inner graph is exposed as exactly one outer
//     AP of the template (a copy of its class and direction).
//   - innerRef[i] addresses the inner AP behind outer AP i; the mapping is a
//     bijection onto the available inner APs and is checked by Validate.

package core

import (
	"github.com/pkg/errors"
)

// NewTemplate wraps inner into a new detached template vertex. The template
// takes ownership of inner, which must not already belong to another
// template. Each available inner AP is projected outward in inner vertex
// order, then AP order.
func NewTemplate(id VertexID, bb BuildingBlock, inner *Graph, contract ContractLevel) (*Vertex, error) {
	if inner == nil {
		return nil, errors.New("core: template needs an inner graph")
	}
	if inner.jacket != nil {
		return nil, errors.Wrap(ErrAttachedVertex, "core: inner graph already wrapped")
	}
	if err := inner.Validate(); err != nil {
		return nil, err
	}
	t := newVertex(id, KindTemplate, bb, nil, AllMutations)
	t.inner = inner
	t.contract = contract
	inner.jacket = t
	for _, iv := range inner.vertices {
		for _, iap := range iv.aps {
			if iap.IsAvailable() {
				t.addAP(iap.clone())
				t.innerRef = append(t.innerRef, iap.Ref())
			}
		}
	}
	return t, nil
}

// InnerGraph returns the embedded graph, or nil for non-templates.
func (v *Vertex) InnerGraph() *Graph { return v.inner }

// ContractLevel returns the template contract (ContractFree for others).
func (v *Vertex) ContractLevel() ContractLevel { return v.contract }

// ProjectInnerAPToOuter returns the outer AP exposing the given inner AP,
// or nil when the AP is not projected.
func (v *Vertex) ProjectInnerAPToOuter(inner *AttachmentPoint) *AttachmentPoint {
	if v.inner == nil || inner == nil || inner.owner == nil || inner.owner.graph != v.inner {
		return nil
	}
	ref := inner.Ref()
	for i, r := range v.innerRef {
		if r == ref {
			return v.aps[i]
		}
	}
	return nil
}

// InnerAPOf returns the inner AP behind an outer AP of this template.
func (v *Vertex) InnerAPOf(outer *AttachmentPoint) *AttachmentPoint {
	if v.inner == nil || outer == nil || outer.owner != v {
		return nil
	}
	i := outer.Index()
	if i < 0 || i >= len(v.innerRef) {
		return nil
	}
	return v.inner.apAt(v.innerRef[i])
}

// lockedAP reports whether ap, an AP of an inner graph, is projected on an
// outer AP that is in use. Such an AP must stay available.
func (g *Graph) lockedAP(ap *AttachmentPoint) bool {
	if g.jacket == nil {
		return false
	}
	out := g.jacket.ProjectInnerAPToOuter(ap)
	return out != nil && !out.IsAvailable()
}

// anyLocked reports whether some free AP of vs is locked by the jacket.
func (g *Graph) anyLocked(vs []*Vertex) bool {
	if g.jacket == nil {
		return false
	}
	for _, v := range vs {
		for _, ap := range v.FreeAPs() {
			if g.lockedAP(ap) {
				return true
			}
		}
	}
	return false
}

// refreshProjection realigns the outer APs with the available inner APs
// after an edit of the inner graph. Outer APs whose inner AP disappeared or
// became used are dropped if free; if such an outer AP is in use the edit
// cannot be reflected and ErrDisconnection is returned.
func (v *Vertex) refreshProjection() error {
	// 1. Keep the outer APs that still project an available inner AP.
	seen := make(map[APRef]bool, len(v.innerRef))
	keptAPs := make([]*AttachmentPoint, 0, len(v.aps))
	keptRefs := make([]APRef, 0, len(v.innerRef))
	for i, ref := range v.innerRef {
		iap := v.inner.apAt(ref)
		if iap != nil && iap.IsAvailable() && !seen[ref] {
			seen[ref] = true
			keptAPs = append(keptAPs, v.aps[i])
			keptRefs = append(keptRefs, ref)
			continue
		}
		if !v.aps[i].IsAvailable() {
			return errors.Wrapf(ErrDisconnection, "template %d: projected AP %d lost while in use", v.id, i)
		}
	}

	// 2. Expose newly available inner APs.
	for _, iv := range v.inner.vertices {
		for _, iap := range iv.aps {
			ref := iap.Ref()
			if iap.IsAvailable() && !seen[ref] {
				seen[ref] = true
				out := iap.clone()
				out.owner = v
				keptAPs = append(keptAPs, out)
				keptRefs = append(keptRefs, ref)
			}
		}
	}

	// 3. Swap in and drop symmetry groups that point past the new list.
	v.aps = keptAPs
	v.innerRef = keptRefs
	var groups [][]int
	for _, grp := range v.symAPs {
		ok := true
		for _, i := range grp {
			if i >= len(v.aps) {
				ok = false
			}
		}
		if ok {
			groups = append(groups, grp)
		}
	}
	v.symAPs = groups
	return nil
}

// validateProjection checks the bijection between outer APs and the
// available inner APs.
func (v *Vertex) validateProjection() error {
	if v.inner.jacket != v {
		return errors.Wrapf(ErrStructuralInvariant, "template %d: inner graph jacket mismatch", v.id)
	}
	if len(v.innerRef) != len(v.aps) {
		return errors.Wrapf(ErrStructuralInvariant, "template %d: %d outer APs for %d projections", v.id, len(v.aps), len(v.innerRef))
	}
	free := 0
	for _, iv := range v.inner.vertices {
		free += len(iv.FreeAPs())
	}
	if free != len(v.innerRef) {
		return errors.Wrapf(ErrStructuralInvariant, "template %d: %d available inner APs for %d projections", v.id, free, len(v.innerRef))
	}
	seen := make(map[APRef]bool, len(v.innerRef))
	for i, ref := range v.innerRef {
		iap := v.inner.apAt(ref)
		if iap == nil || !iap.IsAvailable() {
			return errors.Wrapf(ErrStructuralInvariant, "template %d: outer AP %d projects %s which is not available", v.id, i, ref)
		}
		if seen[ref] {
			return errors.Wrapf(ErrStructuralInvariant, "template %d: inner AP %s projected twice", v.id, ref)
		}
		seen[ref] = true
	}
	return nil
}

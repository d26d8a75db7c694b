// File: methods_edit.go
// Role: Structural edit primitives.
//
// Contract:
//   - Every public edit checks its preconditions before touching the graph,
//     so a recoverable error (ErrIncompatibleAP, ErrCapacity,
//     ErrDisconnection, ...) leaves g unchanged.
//   - Every successful edit ends with commit(): template projection refresh
//     plus Validate on the outermost graph. A failure there wraps
//     ErrStructuralInvariant and signals a defect, not a bad choice.

package core

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/apclass"
)

// AddVertex inserts the first vertex of an empty graph; it becomes the root.
func (g *Graph) AddVertex(v *Vertex) error {
	if len(g.vertices) > 0 {
		return ErrRootExists
	}
	if err := g.insertVertex(v); err != nil {
		return err
	}
	return g.commit()
}

// AppendVertex binds child to the graph through parentAP -> childAP.
//
// Errors:
//   - ErrVertexNotFound: parentAP's owner is not in g.
//   - ErrDuplicateVertexID: child's ID is taken.
//   - ErrCapacity: either AP is already used.
//   - ErrIncompatibleAP: the rule rejects the pair of classes.
func (g *Graph) AppendVertex(parentAP *AttachmentPoint, child *Vertex, childAP *AttachmentPoint, bond BondType) error {
	// 1. Validate input.
	if parentAP == nil || childAP == nil {
		return ErrNilAP
	}
	if child == nil {
		return ErrNilVertex
	}
	if !g.Contains(parentAP.owner) {
		return errors.Wrap(ErrVertexNotFound, "core: parent AP owner")
	}
	if child.graph != nil {
		return ErrAttachedVertex
	}
	if childAP.owner != child {
		return errors.Wrap(ErrBadAPIndex, "core: child AP not owned by child")
	}
	if _, taken := g.byID[child.id]; taken {
		return errors.Wrapf(ErrDuplicateVertexID, "core: id %d", child.id)
	}
	if !parentAP.IsAvailable() || !childAP.IsAvailable() {
		return errors.Wrapf(ErrCapacity, "core: append %s -> %s", parentAP, childAP)
	}
	if g.lockedAP(parentAP) {
		return errors.Wrapf(ErrCapacity, "core: %s is exposed by the template", parentAP)
	}
	if !parentAP.IsCompatibleWith(childAP, g.rule) {
		return errors.Wrapf(ErrIncompatibleAP, "core: append %s -> %s", parentAP.class, childAP.class)
	}

	// 2. Insert vertex and edge.
	if err := g.insertVertex(child); err != nil {
		return err
	}
	if _, err := g.addEdge(parentAP, childAP, bond, false); err != nil {
		g.detachVertex(child)
		return err
	}
	return g.commit()
}

// RemoveBranch removes v together with all its descendants. Rings touching
// the removed vertices are dropped, and ring-closing vertices left orphan
// by that are removed too. The root cannot be removed this way.
func (g *Graph) RemoveBranch(v *Vertex) error {
	if !g.Contains(v) {
		return ErrVertexNotFound
	}
	if g.EdgeToParent(v) == nil {
		return errors.Wrap(ErrDisconnection, "core: cannot remove the root branch")
	}
	branch := g.Subtree(v, nil)
	if g.anyLocked(branch) {
		return errors.Wrap(ErrDisconnection, "core: branch carries APs exposed by the template")
	}
	g.removeVertices(branch)
	return g.commit()
}

// removeVertices detaches the given vertices, drops the rings they touch,
// removes the orphan RCVs of those rings and prunes symmetric sets.
func (g *Graph) removeVertices(vs []*Vertex) {
	gone := make(map[*Vertex]bool, len(vs))
	for _, v := range vs {
		gone[v] = true
	}
	var orphans []*Vertex
	var kept []*Ring
	for _, r := range g.rings {
		touched := false
		for _, m := range r.vertices {
			if gone[m] {
				touched = true
				break
			}
		}
		if !touched {
			kept = append(kept, r)
			continue
		}
		for _, end := range []*Vertex{r.Head(), r.Tail()} {
			if !gone[end] && end.rcv {
				orphans = append(orphans, end)
			}
		}
	}
	g.rings = kept
	for _, v := range vs {
		g.detachVertex(v)
	}
	for _, o := range orphans {
		if g.Contains(o) && len(g.RingsInvolving(o)) == 0 && len(g.ChildEdges(o)) == 0 {
			g.detachVertex(o)
		}
	}
	g.pruneSymmetry()
}

// RemoveVertexAndWeld removes v and reconnects its children to its parent.
//
// A leaf is simply removed. With one child, the parent AP freed by v is
// bound directly to the child's former AP (chain contraction). With several
// children each child AP is mapped onto the freed parent AP or another free
// AP of the parent; the mapping must satisfy the compatibility rule.
//
// Errors:
//   - ErrDisconnection: v is the root, no weld mapping exists, v is the
//     turning point of a ring, or a ring would shrink below three vertices.
func (g *Graph) RemoveVertexAndWeld(v *Vertex) error {
	// 1. Validate.
	if !g.Contains(v) {
		return ErrVertexNotFound
	}
	pe := g.EdgeToParent(v)
	if pe == nil {
		return errors.Wrap(ErrDisconnection, "core: cannot weld away the root")
	}
	parent := pe.src.owner
	childEdges := g.ChildEdges(v)
	if g.anyLocked([]*Vertex{v}) {
		return errors.Wrapf(ErrDisconnection, "core: vertex %d carries APs exposed by the template", v.id)
	}
	if len(childEdges) == 0 {
		g.removeVertices([]*Vertex{v})
		return g.commit()
	}

	// 2. Rings through v must keep their shape.
	for _, r := range g.RingsInvolving(v) {
		pos := r.PositionOf(v)
		if pos == 0 || pos == r.Size()-1 {
			return errors.Wrapf(ErrDisconnection, "core: vertex %d closes ring %s", v.id, r)
		}
		if r.vertices[pos-1] != parent && r.vertices[pos+1] != parent {
			return errors.Wrapf(ErrDisconnection, "core: vertex %d is the turning point of ring %s", v.id, r)
		}
		if r.Size()-1 < 3 {
			return errors.Wrapf(ErrDisconnection, "core: ring %s would collapse", r)
		}
	}

	// 3. Map every child AP onto a parent AP.
	candidates := []*AttachmentPoint{pe.src}
	for _, ap := range parent.FreeAPs() {
		if !g.lockedAP(ap) {
			candidates = append(candidates, ap)
		}
	}
	childAPs := make([]*AttachmentPoint, len(childEdges))
	for i, e := range childEdges {
		childAPs[i] = e.trg
	}
	mapping, ok := matchAPs(candidates, childAPs, g.rule)
	if !ok {
		return errors.Wrapf(ErrDisconnection, "core: no weld target for children of %d", v.id)
	}

	// 4. Apply.
	bonds := make([]BondType, len(childEdges))
	for i, e := range childEdges {
		bonds[i] = e.bond
	}
	g.detachVertex(v)
	for i, cAP := range childAPs {
		if _, err := g.addEdge(mapping[i], cAP, bonds[i], false); err != nil {
			return errors.Wrap(ErrStructuralInvariant, err.Error())
		}
	}
	for _, r := range g.rings {
		if pos := r.PositionOf(v); pos >= 0 {
			r.vertices = append(r.vertices[:pos], r.vertices[pos+1:]...)
		}
	}
	g.pruneSymmetry()
	return g.commit()
}

// matchAPs assigns each target AP a distinct source AP such that
// rule(source, target) holds. Sources are tried in order, so the first
// source is preferred for the first target.
func matchAPs(sources, targets []*AttachmentPoint, rule apclass.Rule) ([]*AttachmentPoint, bool) {
	out := make([]*AttachmentPoint, len(targets))
	used := make([]bool, len(sources))
	var try func(i int) bool
	try = func(i int) bool {
		if i == len(targets) {
			return true
		}
		for j, s := range sources {
			if used[j] || !rule.Compatible(s.class, targets[i].class) {
				continue
			}
			used[j] = true
			out[i] = s
			if try(i + 1) {
				return true
			}
			used[j] = false
		}
		return false
	}
	return out, try(0)
}

// ReplaceVertex substitutes old with the detached vertex nv. apMap gives,
// for every used AP index of old, the AP index of nv that takes over its
// edge. Rings keep their shape; old leaves any symmetric set.
func (g *Graph) ReplaceVertex(old, nv *Vertex, apMap map[int]int) error {
	// 1. Validate.
	if !g.Contains(old) {
		return ErrVertexNotFound
	}
	if nv == nil {
		return ErrNilVertex
	}
	if nv.graph != nil {
		return ErrAttachedVertex
	}
	if other, taken := g.byID[nv.id]; taken && other != old {
		return errors.Wrapf(ErrDuplicateVertexID, "core: id %d", nv.id)
	}
	if g.anyLocked([]*Vertex{old}) {
		return errors.Wrapf(ErrDisconnection, "core: vertex %d carries APs exposed by the template", old.id)
	}
	usedTargets := make(map[int]bool, len(apMap))
	for _, ap := range old.UsedAPs() {
		idx := ap.Index()
		to, ok := apMap[idx]
		if !ok {
			return errors.Wrapf(ErrDisconnection, "core: AP %d of %d is not mapped", idx, old.id)
		}
		nap := nv.AP(to)
		if nap == nil {
			return errors.Wrapf(ErrBadAPIndex, "core: AP %d on replacement", to)
		}
		if usedTargets[to] {
			return errors.Wrapf(ErrCapacity, "core: AP %d on replacement mapped twice", to)
		}
		usedTargets[to] = true
		e := ap.user
		if e.trg == ap {
			if !e.src.IsCompatibleWith(nap, g.rule) {
				return errors.Wrapf(ErrIncompatibleAP, "core: %s -> %s", e.src.class, nap.class)
			}
		} else if !nap.IsCompatibleWith(e.trg, g.rule) {
			return errors.Wrapf(ErrIncompatibleAP, "core: %s -> %s", nap.class, e.trg.class)
		}
	}

	// 2. Move every edge endpoint from old to nv.
	for _, ap := range old.UsedAPs() {
		e := ap.user
		nap := nv.aps[apMap[ap.Index()]]
		_ = ap.free()
		if e.src == ap {
			e.src = nap
		} else {
			e.trg = nap
		}
		_ = nap.bind(e)
	}

	// 3. Swap the vertex in place.
	pos := g.IndexOf(old)
	g.vertices[pos] = nv
	delete(g.byID, old.id)
	g.byID[nv.id] = nv
	nv.graph = g
	old.graph = nil
	for _, r := range g.rings {
		if i := r.PositionOf(old); i >= 0 {
			r.vertices[i] = nv
		}
	}
	for _, s := range g.symSets {
		s.remove(old.id)
	}
	g.pruneSymmetry()
	return g.commit()
}

// InsertVertex splits edge e with the detached vertex link: e's source AP is
// bound to link's AP srcSide and link's AP trgSide is bound to e's target
// AP. Both new edges keep e's bond type; rings running along e run through
// link afterwards.
func (g *Graph) InsertVertex(e *Edge, link *Vertex, srcSide, trgSide int) error {
	// 1. Validate.
	if e == nil || !g.hasEdge(e) {
		return ErrEdgeNotFound
	}
	if link == nil {
		return ErrNilVertex
	}
	if link.graph != nil {
		return ErrAttachedVertex
	}
	if _, taken := g.byID[link.id]; taken {
		return errors.Wrapf(ErrDuplicateVertexID, "core: id %d", link.id)
	}
	la, lb := link.AP(srcSide), link.AP(trgSide)
	if la == nil || lb == nil || la == lb {
		return ErrBadAPIndex
	}
	if !la.IsAvailable() || !lb.IsAvailable() {
		return ErrCapacity
	}
	if !e.src.IsCompatibleWith(la, g.rule) {
		return errors.Wrapf(ErrIncompatibleAP, "core: %s -> %s", e.src.class, la.class)
	}
	if !lb.IsCompatibleWith(e.trg, g.rule) {
		return errors.Wrapf(ErrIncompatibleAP, "core: %s -> %s", lb.class, e.trg.class)
	}

	// 2. Apply.
	src, trg, bond := e.src, e.trg, e.bond
	a, b := src.owner, trg.owner
	g.removeEdge(e)
	if err := g.insertVertex(link); err != nil {
		return err
	}
	if _, err := g.addEdge(src, la, bond, false); err != nil {
		return errors.Wrap(ErrStructuralInvariant, err.Error())
	}
	if _, err := g.addEdge(lb, trg, bond, false); err != nil {
		return errors.Wrap(ErrStructuralInvariant, err.Error())
	}
	for _, r := range g.rings {
		for i := 0; i+1 < len(r.vertices); i++ {
			x, y := r.vertices[i], r.vertices[i+1]
			if (x == a && y == b) || (x == b && y == a) {
				grown := make([]*Vertex, 0, len(r.vertices)+1)
				grown = append(grown, r.vertices[:i+1]...)
				grown = append(grown, link)
				grown = append(grown, r.vertices[i+1:]...)
				r.vertices = grown
				break
			}
		}
	}
	return g.commit()
}

func (g *Graph) hasEdge(e *Edge) bool {
	for _, x := range g.edges {
		if x == e {
			return true
		}
	}
	return false
}

// AddRing registers a ring over path, which must run along tree edges from
// one free ring-closing vertex to another.
func (g *Graph) AddRing(path []*Vertex, bond BondType) (*Ring, error) {
	if err := g.checkRingPath(path); err != nil {
		return nil, err
	}
	r := &Ring{vertices: append([]*Vertex(nil), path...), bond: bond}
	g.rings = append(g.rings, r)
	if err := g.commit(); err != nil {
		return nil, err
	}
	return r, nil
}

func (g *Graph) checkRingPath(path []*Vertex) error {
	if len(path) < 3 {
		return errors.Wrapf(ErrBadRing, "core: %d vertices", len(path))
	}
	seen := make(map[*Vertex]bool, len(path))
	for i, v := range path {
		if !g.Contains(v) {
			return errors.Wrap(ErrVertexNotFound, "core: ring member")
		}
		if seen[v] {
			return errors.Wrapf(ErrBadRing, "core: vertex %d repeated", v.id)
		}
		seen[v] = true
		if i > 0 && g.EdgeBetween(path[i-1], v) == nil {
			return errors.Wrapf(ErrBadRing, "core: %d and %d are not bonded", path[i-1].id, v.id)
		}
	}
	for _, end := range []*Vertex{path[0], path[len(path)-1]} {
		if !end.rcv {
			return errors.Wrapf(ErrBadRing, "core: end %d is not ring-closing", end.id)
		}
		if len(g.RingsInvolving(end)) > 0 {
			return errors.Wrapf(ErrCapacity, "core: ring-closing vertex %d already used", end.id)
		}
	}
	return nil
}

// CloseRing adds a ring over the tree path between two free ring-closing
// vertices.
func (g *Graph) CloseRing(head, tail *Vertex, bond BondType) (*Ring, error) {
	path := g.PathBetween(head, tail)
	if path == nil {
		return nil, errors.Wrap(ErrBadRing, "core: no path between ring ends")
	}
	return g.AddRing(path, bond)
}

// RemoveRing forgets r. Its ring-closing vertices stay in the graph.
func (g *Graph) RemoveRing(r *Ring) error {
	for i, x := range g.rings {
		if x == r {
			g.rings = append(g.rings[:i], g.rings[i+1:]...)
			return g.commit()
		}
	}
	return errors.Wrap(ErrBadRing, "core: ring not in graph")
}

// RemoveCappingGroups removes the caps bound to v, or every cap when v is
// nil. It returns how many caps were removed.
func (g *Graph) RemoveCappingGroups(v *Vertex) (int, error) {
	var caps []*Vertex
	if v == nil {
		caps = g.CapVertices()
	} else {
		for _, c := range g.Children(v) {
			if c.IsCap() {
				caps = append(caps, c)
			}
		}
	}
	var removable []*Vertex
	for _, c := range caps {
		if g.EdgeToParent(c) != nil && len(g.ChildEdges(c)) == 0 {
			removable = append(removable, c)
		}
	}
	if len(removable) == 0 {
		return 0, nil
	}
	g.removeVertices(removable)
	return len(removable), g.commit()
}

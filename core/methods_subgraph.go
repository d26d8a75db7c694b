// File: methods_subgraph.go
// Role: Lifting a region out of a graph and grafting one back in.
//
// A cut always leaves every piece a valid tree:
//   - the host graph keeps a free AP where the region hung (CutPatch.ParentAP);
//   - the region becomes its own Graph;
//   - each branch hanging below a boundary vertex becomes its own Graph,
//     recorded in the patch as a dangling link to re-bind on graft.

package core

import (
	"github.com/pkg/errors"
)

// DanglingLink is a branch cut off below the extracted region.
type DanglingLink struct {
	// Branch holds the detached branch; its root is the boundary vertex.
	Branch *Graph
	// BranchAP is the index of the branch-root AP that was bound.
	BranchAP int
	// RegionAP addresses, inside the extracted region, the AP that held
	// the branch.
	RegionAP APRef
	// Bond is the bond type of the cut edge.
	Bond BondType
}

// BranchRootAP returns the AP of the branch root that must be re-bound.
func (d *DanglingLink) BranchRootAP() *AttachmentPoint {
	if d.Branch == nil {
		return nil
	}
	root := d.Branch.Root()
	if root == nil {
		return nil
	}
	return root.AP(d.BranchAP)
}

// CutPatch records the open bonds left by ExtractSubgraph.
type CutPatch struct {
	// ParentAP is the free AP left in the host graph.
	ParentAP *AttachmentPoint
	// RootAP is the index of the region-root AP that was bound to ParentAP.
	RootAP int
	// Bond is the bond type of the cut edge.
	Bond BondType
	// Links lists the branches detached below the region.
	Links []DanglingLink
}

// OriginalTargets returns, for each link, the region AP that held it. It is
// the mapping that puts the extracted region back as it was.
func (p *CutPatch) OriginalTargets() []APRef {
	out := make([]APRef, len(p.Links))
	for i, l := range p.Links {
		out[i] = l.RegionAP
	}
	return out
}

// ExtractSubgraph removes the region rooted at root, stopping at (and
// excluding) the boundary vertices, and returns it as a new Graph. Branches
// below boundary vertices are detached into the patch. root itself cannot
// be the graph root.
//
// Errors:
//   - ErrVertexNotFound: root or a boundary vertex is not in g.
//   - ErrDisconnection: root is the graph root, a boundary vertex does not
//     lie below root, or a ring crosses the cut.
func (g *Graph) ExtractSubgraph(root *Vertex, boundary []*Vertex) (*Graph, *CutPatch, error) {
	// 1. Validate.
	if !g.Contains(root) {
		return nil, nil, ErrVertexNotFound
	}
	pe := g.EdgeToParent(root)
	if pe == nil {
		return nil, nil, errors.Wrap(ErrDisconnection, "core: cannot extract from the graph root")
	}
	stop := make(map[*Vertex]bool, len(boundary))
	for _, b := range boundary {
		if !g.Contains(b) {
			return nil, nil, errors.Wrap(ErrVertexNotFound, "core: boundary vertex")
		}
		if !g.IsDescendant(b, root) {
			return nil, nil, errors.Wrapf(ErrDisconnection, "core: boundary vertex %d not below %d", b.id, root.id)
		}
		stop[b] = true
	}

	// 2. Partition: region, one piece per reached boundary vertex, rest.
	region := g.Subtree(root, stop)
	piece := make(map[*Vertex]int, len(g.vertices)) // 0 rest, 1 region, 2+i branch i
	for _, v := range region {
		piece[v] = 1
	}
	var cuts []*Edge
	var branches [][]*Vertex
	for _, v := range region {
		for _, e := range g.ChildEdges(v) {
			if c := e.trg.owner; stop[c] {
				cuts = append(cuts, e)
				br := g.Subtree(c, nil)
				for _, m := range br {
					piece[m] = 2 + len(branches)
				}
				branches = append(branches, br)
			}
		}
	}
	for _, r := range g.rings {
		first := piece[r.vertices[0]]
		for _, m := range r.vertices[1:] {
			if piece[m] != first {
				return nil, nil, errors.Wrapf(ErrDisconnection, "core: ring %s crosses the cut", r)
			}
		}
	}

	if g.anyLocked(region) {
		return nil, nil, errors.Wrap(ErrDisconnection, "core: region carries APs exposed by the template")
	}

	// 3. Record the open bonds, then cut.
	patch := &CutPatch{ParentAP: pe.src, RootAP: pe.trg.Index(), Bond: pe.bond}
	for _, e := range cuts {
		patch.Links = append(patch.Links, DanglingLink{
			BranchAP: e.trg.Index(),
			RegionAP: e.src.Ref(),
			Bond:     e.bond,
		})
	}
	g.removeEdge(pe)
	for _, e := range cuts {
		g.removeEdge(e)
	}

	// 4. Move pieces out.
	sub := g.split(region)
	for i, br := range branches {
		patch.Links[i].Branch = g.split(br)
	}
	g.pruneSymmetry()
	if err := g.commit(); err != nil {
		return nil, nil, err
	}
	if err := sub.Validate(); err != nil {
		return nil, nil, err
	}
	return sub, patch, nil
}

// split moves the given connected vertices, their internal edges, the rings
// lying entirely among them and the symmetric sets they fully hold into a
// new graph sharing g's rule. Edges to the outside must be cut beforehand.
func (g *Graph) split(vs []*Vertex) *Graph {
	out := NewGraph(WithRule(g.rule))
	in := make(map[*Vertex]bool, len(vs))
	for _, v := range vs {
		in[v] = true
	}

	// Vertices keep g's order for determinism.
	var rest []*Vertex
	for _, v := range g.vertices {
		if in[v] {
			delete(g.byID, v.id)
			v.graph = out
			out.vertices = append(out.vertices, v)
			out.byID[v.id] = v
			continue
		}
		rest = append(rest, v)
	}
	g.vertices = rest

	var keptEdges []*Edge
	for _, e := range g.edges {
		if in[e.src.owner] && in[e.trg.owner] {
			out.edges = append(out.edges, e)
			continue
		}
		keptEdges = append(keptEdges, e)
	}
	g.edges = keptEdges

	var keptRings []*Ring
	for _, r := range g.rings {
		if in[r.vertices[0]] {
			out.rings = append(out.rings, r)
			continue
		}
		keptRings = append(keptRings, r)
	}
	g.rings = keptRings

	var keptSets []*SymmetricSet
	for _, s := range g.symSets {
		all := true
		for _, id := range s.ids {
			if out.byID[id] == nil {
				all = false
				break
			}
		}
		if all {
			out.symSets = append(out.symSets, s)
			continue
		}
		keptSets = append(keptSets, s)
	}
	g.symSets = keptSets
	out.pruneSymmetry()
	return out
}

// merge moves all content of other into g. IDs must not clash.
func (g *Graph) merge(other *Graph) {
	for _, v := range other.vertices {
		v.graph = g
		g.vertices = append(g.vertices, v)
		g.byID[v.id] = v
	}
	g.edges = append(g.edges, other.edges...)
	g.rings = append(g.rings, other.rings...)
	g.symSets = append(g.symSets, other.symSets...)
	other.vertices, other.edges, other.rings, other.symSets = nil, nil, nil, nil
	other.byID = make(map[VertexID]*Vertex)
}

// GraftSubgraph attaches sub to g: sub's root AP subRootAP is bound to
// patch.ParentAP, and the branch of each patch link i is bound to the AP of
// sub addressed by targets[i]. Every check runs before any change; sub and
// the patch branches are emptied on success.
//
// Errors:
//   - ErrCapacity: an AP involved is not available, or a target is reused.
//   - ErrIncompatibleAP: the rule rejects a graft point or a link.
//   - ErrDuplicateVertexID: an ID of sub or a branch is taken in g.
func (g *Graph) GraftSubgraph(sub *Graph, subRootAP int, patch *CutPatch, targets []APRef) error {
	// 1. Validate the main graft point.
	if sub == nil || patch == nil || len(sub.vertices) == 0 {
		return errors.New("core: nothing to graft")
	}
	if patch.ParentAP == nil || !g.Contains(patch.ParentAP.owner) {
		return errors.Wrap(ErrVertexNotFound, "core: patch parent AP")
	}
	sroot := sub.Root()
	sap := sroot.AP(subRootAP)
	if sap == nil {
		return ErrBadAPIndex
	}
	if !patch.ParentAP.IsAvailable() || !sap.IsAvailable() {
		return errors.Wrap(ErrCapacity, "core: graft point")
	}
	if !patch.ParentAP.IsCompatibleWith(sap, g.rule) {
		return errors.Wrapf(ErrIncompatibleAP, "core: graft %s -> %s", patch.ParentAP.class, sap.class)
	}

	// 2. Validate the dangling links.
	if len(targets) != len(patch.Links) {
		return errors.Errorf("core: %d targets for %d dangling links", len(targets), len(patch.Links))
	}
	taken := make(map[VertexID]bool)
	for _, v := range g.vertices {
		taken[v.id] = true
	}
	claim := func(pg *Graph) error {
		for _, v := range pg.vertices {
			if taken[v.id] {
				return errors.Wrapf(ErrDuplicateVertexID, "core: id %d", v.id)
			}
			taken[v.id] = true
		}
		return nil
	}
	if err := claim(sub); err != nil {
		return err
	}
	usedTarget := make(map[*AttachmentPoint]bool, len(targets))
	trgAPs := make([]*AttachmentPoint, len(targets))
	for i := range patch.Links {
		link := &patch.Links[i]
		bap := link.BranchRootAP()
		tap := sub.apAt(targets[i])
		if bap == nil || tap == nil {
			return errors.Wrapf(ErrBadAPIndex, "core: dangling link %d", i)
		}
		if tap == sap || usedTarget[tap] || !tap.IsAvailable() || !bap.IsAvailable() {
			return errors.Wrapf(ErrCapacity, "core: dangling link %d", i)
		}
		if !tap.IsCompatibleWith(bap, g.rule) {
			return errors.Wrapf(ErrIncompatibleAP, "core: dangling link %d %s -> %s", i, tap.class, bap.class)
		}
		if err := claim(link.Branch); err != nil {
			return err
		}
		usedTarget[tap] = true
		trgAPs[i] = tap
	}

	// 3. Merge and bind.
	g.merge(sub)
	if _, err := g.addEdge(patch.ParentAP, sap, patch.Bond, false); err != nil {
		return errors.Wrap(ErrStructuralInvariant, err.Error())
	}
	for i := range patch.Links {
		link := &patch.Links[i]
		bap := link.BranchRootAP()
		g.merge(link.Branch)
		if _, err := g.addEdge(trgAPs[i], bap, link.Bond, false); err != nil {
			return errors.Wrap(ErrStructuralInvariant, err.Error())
		}
	}
	return g.commit()
}

// File: methods_clone.go
// Role: Deep copies and renumbering.
//
// Determinism:
//   - Clone keeps vertex, edge, ring and set order, so Address/Resolve and
//     positional lookups agree between a graph and its clone.

package core

// Clone returns a deep copy of g. Template inner graphs are copied
// recursively; the rule is shared. The clone has no jacket.
//
// Complexity: O(V + E + R) plus the size of inner graphs.
func (g *Graph) Clone() *Graph {
	out := NewGraph(WithRule(g.rule))
	twin := make(map[*Vertex]*Vertex, len(g.vertices))

	// 1. Vertices (with APs and inner graphs).
	for _, v := range g.vertices {
		nv := v.CloneDetached()
		nv.graph = out
		out.vertices = append(out.vertices, nv)
		out.byID[nv.id] = nv
		twin[v] = nv
	}

	// 2. Edges, re-bound on the twin APs.
	for _, e := range g.edges {
		src := twin[e.src.owner].aps[e.src.Index()]
		trg := twin[e.trg.owner].aps[e.trg.Index()]
		ne := &Edge{src: src, trg: trg, bond: e.bond}
		src.user, trg.user = ne, ne
		out.edges = append(out.edges, ne)
	}

	// 3. Rings and symmetric sets.
	for _, r := range g.rings {
		nr := &Ring{vertices: make([]*Vertex, len(r.vertices)), bond: r.bond}
		for i, m := range r.vertices {
			nr.vertices[i] = twin[m]
		}
		out.rings = append(out.rings, nr)
	}
	for _, s := range g.symSets {
		out.symSets = append(out.symSets, &SymmetricSet{ids: s.IDs()})
	}
	return out
}

// RenumberVertices assigns start, start+1, ... to the top-level vertices in
// order and returns the next unused ID. Symmetric sets follow the new IDs.
// Inner graphs of templates keep their own numbering.
func (g *Graph) RenumberVertices(start VertexID) VertexID {
	remap := make(map[VertexID]VertexID, len(g.vertices))
	g.byID = make(map[VertexID]*Vertex, len(g.vertices))
	next := start
	for _, v := range g.vertices {
		remap[v.id] = next
		v.id = next
		g.byID[next] = v
		next++
	}
	for _, s := range g.symSets {
		ids := make([]VertexID, 0, len(s.ids))
		for _, id := range s.ids {
			ids = append(ids, remap[id])
		}
		*s = *NewSymmetricSet(ids...)
	}
	if g.jacket != nil {
		for i, ref := range g.jacket.innerRef {
			g.jacket.innerRef[i] = APRef{Vertex: remap[ref.Vertex], AP: ref.AP}
		}
	}
	return next
}

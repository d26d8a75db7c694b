// File: methods_query.go
// Role: Tree navigation and read-only queries.
//
// Determinism:
//   - Children follow the parent's AP order.
//   - Subtree is a pre-order walk in AP order.
//
// Complexity:
//   - Parent/EdgeToParent/Children are O(k) in the vertex AP count.
//   - ParentChain and Level are O(depth · k).

package core

// Root returns the conventional root: the first vertex without a parent edge.
func (g *Graph) Root() *Vertex {
	for _, v := range g.vertices {
		if g.EdgeToParent(v) == nil {
			return v
		}
	}
	return nil
}

// EdgeToParent returns the edge whose target AP belongs to v, or nil.
func (g *Graph) EdgeToParent(v *Vertex) *Edge {
	if !g.Contains(v) {
		return nil
	}
	for _, ap := range v.aps {
		if e := ap.user; e != nil && e.trg == ap {
			return e
		}
	}
	return nil
}

// Parent returns the parent vertex, or nil for the root.
func (g *Graph) Parent(v *Vertex) *Vertex {
	if e := g.EdgeToParent(v); e != nil {
		return e.src.owner
	}
	return nil
}

// ChildEdges returns the edges whose source AP belongs to v, in AP order.
func (g *Graph) ChildEdges(v *Vertex) []*Edge {
	if !g.Contains(v) {
		return nil
	}
	var out []*Edge
	for _, ap := range v.aps {
		if e := ap.user; e != nil && e.src == ap {
			out = append(out, e)
		}
	}
	return out
}

// Children returns the child vertices in AP order.
func (g *Graph) Children(v *Vertex) []*Vertex {
	edges := g.ChildEdges(v)
	out := make([]*Vertex, len(edges))
	for i, e := range edges {
		out[i] = e.trg.owner
	}
	return out
}

// ParentChain returns the ancestors of v from its parent up to the root.
// The root has an empty chain; a vertex outside g yields nil.
func (g *Graph) ParentChain(v *Vertex) []*Vertex {
	if !g.Contains(v) {
		return nil
	}
	chain := []*Vertex{}
	seen := map[*Vertex]bool{v: true}
	for p := g.Parent(v); p != nil; p = g.Parent(p) {
		if seen[p] {
			// Cyclic parent links mean a corrupted tree; stop rather than loop.
			return chain
		}
		seen[p] = true
		chain = append(chain, p)
	}
	return chain
}

// Level returns the number of edges between v and the root, or -1.
func (g *Graph) Level(v *Vertex) int {
	if !g.Contains(v) {
		return -1
	}
	return len(g.ParentChain(v))
}

// Subtree returns v and its descendants in pre-order, stopping at (and
// excluding) any vertex in boundary.
func (g *Graph) Subtree(v *Vertex, boundary map[*Vertex]bool) []*Vertex {
	if !g.Contains(v) || boundary[v] {
		return nil
	}
	var out []*Vertex
	stack := []*Vertex{v}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)
		kids := g.Children(cur)
		for i := len(kids) - 1; i >= 0; i-- {
			if !boundary[kids[i]] {
				stack = append(stack, kids[i])
			}
		}
	}
	return out
}

// IsDescendant reports whether d lies strictly below a.
func (g *Graph) IsDescendant(d, a *Vertex) bool {
	for _, p := range g.ParentChain(d) {
		if p == a {
			return true
		}
	}
	return false
}

// PathBetween returns the tree path from a to b, both included, through
// their turning point. It returns nil when either vertex is outside g.
func (g *Graph) PathBetween(a, b *Vertex) []*Vertex {
	if !g.Contains(a) || !g.Contains(b) {
		return nil
	}
	if a == b {
		return []*Vertex{a}
	}
	chainA := append([]*Vertex{a}, g.ParentChain(a)...)
	chainB := append([]*Vertex{b}, g.ParentChain(b)...)
	posB := make(map[*Vertex]int, len(chainB))
	for i, v := range chainB {
		posB[v] = i
	}
	for i, v := range chainA {
		j, ok := posB[v]
		if !ok {
			continue
		}
		path := make([]*Vertex, 0, i+j+1)
		path = append(path, chainA[:i+1]...)
		for k := j - 1; k >= 0; k-- {
			path = append(path, chainB[k])
		}
		return path
	}
	return nil
}

// EdgeBetween returns the tree edge joining a and b in either direction.
func (g *Graph) EdgeBetween(a, b *Vertex) *Edge {
	if a == nil || b == nil {
		return nil
	}
	for _, ap := range a.aps {
		if e := ap.user; e != nil {
			if o := e.Other(ap); o != nil && o.owner == b {
				return e
			}
		}
	}
	return nil
}

// Neighbors returns the vertices bonded to v: its parent, its children in
// AP order, then the far end of every ring v closes as head or tail.
func (g *Graph) Neighbors(v *Vertex) []*Vertex {
	if !g.Contains(v) {
		return nil
	}
	var out []*Vertex
	if p := g.Parent(v); p != nil {
		out = append(out, p)
	}
	out = append(out, g.Children(v)...)
	for _, r := range g.rings {
		switch v {
		case r.Head():
			out = append(out, r.Tail())
		case r.Tail():
			out = append(out, r.Head())
		}
	}
	return out
}

// RingsInvolving returns the rings that contain v.
func (g *Graph) RingsInvolving(v *Vertex) []*Ring {
	var out []*Ring
	for _, r := range g.rings {
		if r.Contains(v) {
			out = append(out, r)
		}
	}
	return out
}

// FreeRCVertices returns the ring-closing vertices not used by any ring.
func (g *Graph) FreeRCVertices() []*Vertex {
	var out []*Vertex
	for _, v := range g.vertices {
		if v.rcv && len(g.RingsInvolving(v)) == 0 {
			out = append(out, v)
		}
	}
	return out
}

// AvailableAPs returns every free AP of the top-level vertices, in vertex
// then AP order.
func (g *Graph) AvailableAPs() []*AttachmentPoint {
	var out []*AttachmentPoint
	for _, v := range g.vertices {
		out = append(out, v.FreeAPs()...)
	}
	return out
}

// CapVertices returns the capping groups of g.
func (g *Graph) CapVertices() []*Vertex {
	var out []*Vertex
	for _, v := range g.vertices {
		if v.IsCap() {
			out = append(out, v)
		}
	}
	return out
}

// Address returns the IDs locating v from the outermost graph down through
// template jackets. Resolve on any clone of the outermost graph finds the
// matching vertex.
func (v *Vertex) Address() []VertexID {
	var rev []VertexID
	for cur := v; cur != nil; {
		rev = append(rev, cur.id)
		if cur.graph == nil || cur.graph.jacket == nil {
			break
		}
		cur = cur.graph.jacket
	}
	out := make([]VertexID, len(rev))
	for i, id := range rev {
		out[len(rev)-1-i] = id
	}
	return out
}

// Resolve finds the vertex at addr, or nil.
func (g *Graph) Resolve(addr []VertexID) *Vertex {
	cur := g
	var v *Vertex
	for i, id := range addr {
		v = cur.byID[id]
		if v == nil {
			return nil
		}
		if i < len(addr)-1 {
			if v.inner == nil {
				return nil
			}
			cur = v.inner
		}
	}
	return v
}

// WalkVertices visits every vertex of g and, recursively, of the inner
// graphs of its templates, in order. The walk stops when fn returns false.
func (g *Graph) WalkVertices(fn func(v *Vertex) bool) bool {
	for _, v := range g.vertices {
		if !fn(v) {
			return false
		}
		if v.inner != nil && !v.inner.WalkVertices(fn) {
			return false
		}
	}
	return true
}

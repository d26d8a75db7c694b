// File: graph.go
// Role: Graph container, constructor and low-level bookkeeping helpers.
//
// Storage:
//   - vertices keeps insertion order; byID indexes it.
//   - edges holds the spanning tree only. Ring chords live in rings.
//   - Graphs are not safe for concurrent use. Each worker owns its graphs.
//
// Determinism:
//   - Every enumeration (Vertices, Edges, Children, Rings) follows insertion
//     or AP order, never map order.

package core

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/apclass"
)

// Graph owns vertices, tree edges, rings and symmetric sets.
type Graph struct {
	vertices []*Vertex
	byID     map[VertexID]*Vertex
	edges    []*Edge
	rings    []*Ring
	symSets  []*SymmetricSet

	rule   apclass.Rule
	jacket *Vertex // template wrapping this graph, non-owning
}

// GraphOption configures a Graph at construction.
type GraphOption func(g *Graph)

// WithRule injects the AP compatibility rule. Nil keeps apclass.Any.
func WithRule(r apclass.Rule) GraphOption {
	return func(g *Graph) {
		if r != nil {
			g.rule = r
		}
	}
}

// NewGraph returns an empty graph.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		byID: make(map[VertexID]*Vertex),
		rule: apclass.Any,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Rule returns the compatibility rule in force.
func (g *Graph) Rule() apclass.Rule { return g.rule }

// Jacket returns the template vertex wrapping this graph, or nil.
func (g *Graph) Jacket() *Vertex { return g.jacket }

// Outermost follows template jackets up to the top-level graph.
func (g *Graph) Outermost() *Graph {
	top := g
	for top.jacket != nil && top.jacket.graph != nil {
		top = top.jacket.graph
	}
	return top
}

// Vertices returns the vertices in insertion order.
func (g *Graph) Vertices() []*Vertex {
	out := make([]*Vertex, len(g.vertices))
	copy(out, g.vertices)
	return out
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// VertexByID returns the vertex with the given ID, or nil.
func (g *Graph) VertexByID(id VertexID) *Vertex { return g.byID[id] }

// Contains reports whether v is a member of g.
func (g *Graph) Contains(v *Vertex) bool { return v != nil && v.graph == g && g.byID[v.id] == v }

// IndexOf returns the position of v in the vertex list, or -1.
func (g *Graph) IndexOf(v *Vertex) int {
	for i, u := range g.vertices {
		if u == v {
			return i
		}
	}
	return -1
}

// Edges returns the tree edges in insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// EdgeCount returns the number of tree edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Rings returns the rings in insertion order.
func (g *Graph) Rings() []*Ring {
	out := make([]*Ring, len(g.rings))
	copy(out, g.rings)
	return out
}

// NextVertexID returns an ID not used by any top-level vertex.
func (g *Graph) NextVertexID() VertexID {
	var next VertexID
	for _, v := range g.vertices {
		if v.id >= next {
			next = v.id + 1
		}
	}
	return next
}

// insertVertex registers a detached vertex without connecting it.
func (g *Graph) insertVertex(v *Vertex) error {
	if v == nil {
		return ErrNilVertex
	}
	if v.graph != nil {
		return ErrAttachedVertex
	}
	if _, taken := g.byID[v.id]; taken {
		return errors.Wrapf(ErrDuplicateVertexID, "core: id %d", v.id)
	}
	v.graph = g
	g.vertices = append(g.vertices, v)
	g.byID[v.id] = v
	return nil
}

// detachVertex removes v, unbinding every edge that touches it.
// Rings and symmetric sets are left to the caller.
func (g *Graph) detachVertex(v *Vertex) {
	for _, ap := range v.aps {
		if e := ap.user; e != nil {
			g.removeEdge(e)
		}
	}
	for i, u := range g.vertices {
		if u == v {
			g.vertices = append(g.vertices[:i], g.vertices[i+1:]...)
			break
		}
	}
	delete(g.byID, v.id)
	v.graph = nil
}

// addEdge binds src to trg and stores the edge. When check is set the
// compatibility rule is consulted.
func (g *Graph) addEdge(src, trg *AttachmentPoint, bond BondType, check bool) (*Edge, error) {
	var (
		e   *Edge
		err error
	)
	if check {
		e, err = NewEdge(src, trg, bond, g.rule)
	} else {
		e, err = bindEdge(src, trg, bond)
	}
	if err != nil {
		return nil, err
	}
	g.edges = append(g.edges, e)
	return e, nil
}

// removeEdge unbinds e and drops it from the edge list.
func (g *Graph) removeEdge(e *Edge) {
	e.unbind()
	for i, x := range g.edges {
		if x == e {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			return
		}
	}
}

// apAt resolves a reference, or returns nil.
func (g *Graph) apAt(ref APRef) *AttachmentPoint {
	v := g.byID[ref.Vertex]
	if v == nil {
		return nil
	}
	return v.AP(ref.AP)
}

// APAt resolves an owner/index reference, or returns nil.
func (g *Graph) APAt(ref APRef) *AttachmentPoint { return g.apAt(ref) }

// commit finishes a structural edit: it realigns the jacket projection when
// g is an inner graph and validates the outermost graph.
func (g *Graph) commit() error {
	if g.jacket != nil {
		if err := g.jacket.refreshProjection(); err != nil {
			return err
		}
	}
	return g.Outermost().Validate()
}

// adopt moves the content of other into g, which keeps its rule and jacket.
// other is left empty.
func (g *Graph) adopt(other *Graph) {
	g.vertices = other.vertices
	g.byID = other.byID
	g.edges = other.edges
	g.rings = other.rings
	g.symSets = other.symSets
	for _, v := range g.vertices {
		v.graph = g
	}
	other.vertices, other.edges, other.rings, other.symSets = nil, nil, nil, nil
	other.byID = make(map[VertexID]*Vertex)
}

// Adopt replaces the content of g with the content of other, typically an
// edited clone of g. other is left empty. Vertex pointers taken from g
// before the call no longer belong to it.
func (g *Graph) Adopt(other *Graph) {
	if other == nil || other == g {
		return
	}
	g.adopt(other)
}

// File: path.go
// Role: Tree path between two ring-closing vertices and its chain IDs.
//
// Implementation:
//   - Stage 1: Climb from both ends to the root.
//   - Stage 2: Turning point = first vertex of the head chain that also lies
//     on the tail chain.
//   - Stage 3: Walk head → turning point (against edge direction), then
//     turning point → tail (along edge direction, Reversed steps).
//   - Stage 4: Token per interior vertex, forward and reverse strings, all
//     rotations, each tagged with the turning point position.

package rings

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/fragevo/core"
)

// Step is one edge of a path, walked From → To.
type Step struct {
	Edge *core.Edge
	From *core.Vertex
	To   *core.Vertex
	// Reversed is set past the turning point, where the walk follows the
	// edge from source to target instead of climbing towards the root.
	Reversed bool
}

// Path is the tree path from Head to Tail.
type Path struct {
	Head         *core.Vertex
	Tail         *core.Vertex
	TurningPoint *core.Vertex
	// Vertices runs from Head to Tail, both included.
	Vertices []*core.Vertex
	// Steps has len(Vertices)-1 entries.
	Steps []Step
	// ChainID and RevChainID are the forward and reverse identifiers.
	ChainID    string
	RevChainID string

	synonyms []string
}

// FindPath returns the tree path between a and b. ok is false when either
// vertex is nil, they are the same vertex, they live in different graphs,
// or their ancestor chains never meet.
func FindPath(a, b *core.Vertex) (Path, bool) {
	if a == nil || b == nil || a == b {
		return Path{}, false
	}
	g := a.Graph()
	if g == nil || b.Graph() != g {
		return Path{}, false
	}

	// 1. Ancestor chains, each starting at its own end.
	chainA := append([]*core.Vertex{a}, g.ParentChain(a)...)
	chainB := append([]*core.Vertex{b}, g.ParentChain(b)...)
	posB := make(map[*core.Vertex]int, len(chainB))
	for i, v := range chainB {
		posB[v] = i
	}

	// 2. Turning point.
	tpA, tpB := -1, -1
	for i, v := range chainA {
		if j, ok := posB[v]; ok {
			tpA, tpB = i, j
			break
		}
	}
	if tpA < 0 {
		return Path{}, false
	}

	// 3. Walk.
	p := Path{Head: a, Tail: b, TurningPoint: chainA[tpA]}
	p.Vertices = append(p.Vertices, chainA[:tpA+1]...)
	for i := 0; i < tpA; i++ {
		p.Steps = append(p.Steps, Step{Edge: g.EdgeToParent(chainA[i]), From: chainA[i], To: chainA[i+1]})
	}
	for j := tpB - 1; j >= 0; j-- {
		p.Vertices = append(p.Vertices, chainB[j])
		p.Steps = append(p.Steps, Step{Edge: g.EdgeToParent(chainB[j]), From: chainB[j+1], To: chainB[j], Reversed: true})
	}

	// 4. Identifiers.
	p.buildChainIDs(tpA)
	return p, true
}

// apOn returns the AP of v bound by e.
func apOn(e *core.Edge, v *core.Vertex) *core.AttachmentPoint {
	if e.SrcVertex() == v {
		return e.Src()
	}
	return e.Trg()
}

func token(v *core.Vertex, from, to int) string {
	var sb strings.Builder
	bb := v.BuildingBlock()
	sb.WriteString(strconv.Itoa(bb.ID))
	sb.WriteByte('/')
	sb.WriteString(bb.Role.String())
	sb.WriteString("/ap")
	sb.WriteString(strconv.Itoa(from))
	sb.WriteString("ap")
	sb.WriteString(strconv.Itoa(to))
	sb.WriteByte('_')
	return sb.String()
}

func (p *Path) buildChainIDs(tpPos int) {
	n := len(p.Vertices)
	interior := n - 2
	fwd := make([]string, 0, interior)
	rev := make([]string, interior)
	for i := 1; i < n-1; i++ {
		v := p.Vertices[i]
		back := apOn(p.Steps[i-1].Edge, v).Index()
		front := apOn(p.Steps[i].Edge, v).Index()
		fwd = append(fwd, token(v, back, front))
		rev[interior-i] = token(v, front, back)
	}

	tp, tpRev := -1, -1
	if tpPos > 0 && tpPos < n-1 {
		tp = tpPos - 1
		tpRev = n - 2 - tpPos
	}
	sfx, sfxRev := "%"+strconv.Itoa(tp), "%"+strconv.Itoa(tpRev)

	p.ChainID = strings.Join(fwd, "") + sfx
	p.RevChainID = strings.Join(rev, "") + sfxRev

	seen := make(map[string]bool, 2*interior+2)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			p.synonyms = append(p.synonyms, s)
		}
	}
	add(p.ChainID)
	add(p.RevChainID)
	for shift := 1; shift < interior; shift++ {
		add(rotate(fwd, shift) + sfx)
		add(rotate(rev, shift) + sfxRev)
	}
}

func rotate(tokens []string, shift int) string {
	var sb strings.Builder
	for k := range tokens {
		sb.WriteString(tokens[(k+shift)%len(tokens)])
	}
	return sb.String()
}

// ChainIDs returns the synonym set of the path: forward and reverse IDs and
// all their rotations, without duplicates.
func (p Path) ChainIDs() []string { return append([]string(nil), p.synonyms...) }

// IsZero reports whether p is the zero Path returned on failure.
func (p Path) IsZero() bool { return p.Head == nil }

// Interior returns the vertices strictly between Head and Tail.
func (p Path) Interior() []*core.Vertex {
	if len(p.Vertices) < 2 {
		return nil
	}
	return append([]*core.Vertex(nil), p.Vertices[1:len(p.Vertices)-1]...)
}

// RingSize counts the path vertices that are not ring-closing vertices.
func (p Path) RingSize() int {
	n := 0
	for _, v := range p.Vertices {
		if !v.IsRCV() {
			n++
		}
	}
	return n
}

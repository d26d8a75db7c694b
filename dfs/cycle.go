// File: cycle.go
// Role: Enumerate the simple cycles of the bond graph.
//
// Each ring chord closes exactly one cycle of the spanning tree, so on a
// valid graph DetectCycles finds one cycle per Ring. Cycles are reported
// closed ([v0 ... v0]) in canonical rotation (Booth's algorithm on the
// sequence and its reverse) and sorted for deterministic output.
//
// Complexity:
//   - Time:   O(V + B + C·L)   (B bonds, C cycles, L average cycle length)
//   - Memory: O(V + L_max)

package dfs

import (
	"slices"

	"github.com/katalvlaran/fragevo/core"
)

// DetectCycles reports whether g has cycles and lists them by vertex ID.
// A nil graph is treated as cycle-free.
func DetectCycles(g *core.Graph) (bool, [][]core.VertexID) {
	if g == nil {
		return false, nil
	}
	c := &cycleFinder{
		g:     g,
		state: make(map[*core.Vertex]int, g.VertexCount()),
		seen:  make(map[string]bool),
	}
	for _, v := range g.Vertices() {
		if c.state[v] == White {
			c.visit(v, nil)
		}
	}
	slices.SortFunc(c.cycles, func(a, b []core.VertexID) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		return slices.Compare(a, b)
	})
	return len(c.cycles) > 0, c.cycles
}

type cycleFinder struct {
	g      *core.Graph
	state  map[*core.Vertex]int
	path   []core.VertexID
	seen   map[string]bool
	cycles [][]core.VertexID
}

func (c *cycleFinder) visit(v, parent *core.Vertex) {
	c.state[v] = Gray
	c.path = append(c.path, v.ID())
	for _, nbr := range c.g.Neighbors(v) {
		if nbr == parent {
			continue
		}
		switch c.state[nbr] {
		case White:
			c.visit(nbr, v)
		case Gray:
			c.record(nbr.ID())
		}
	}
	c.path = c.path[:len(c.path)-1]
	c.state[v] = Black
}

// record stores the cycle from start to the top of the path.
func (c *cycleFinder) record(start core.VertexID) {
	idx := IndexOf(c.path, start)
	base := append([]core.VertexID(nil), c.path[idx:]...)
	if len(base) < 3 {
		return
	}
	fwd := MinimalRotation(base)
	rev := MinimalRotation(Reverse(base))
	pick := fwd
	if slices.Compare(rev, fwd) < 0 {
		pick = rev
	}
	closed := append(pick, pick[0])
	sig := signature(closed)
	if !c.seen[sig] {
		c.seen[sig] = true
		c.cycles = append(c.cycles, closed)
	}
}

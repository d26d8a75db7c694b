package ga

import (
	"context"

	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/core"
)

// CrossoverSite is a pair of branch roots that can be exchanged.
type CrossoverSite struct {
	VA, VB *core.Vertex
}

// FindCrossoverSites lists the pairs (va, vb) of top-level vertices of a
// and b whose branches can be swapped: neither is a root, a cap or an RCV,
// no ring crosses either cut, and both graft points are compatible.
func FindCrossoverSites(a, b *core.Graph) []CrossoverSite {
	as, bs := branchRoots(a), branchRoots(b)
	var out []CrossoverSite
	for _, va := range as {
		ea := a.EdgeToParent(va)
		for _, vb := range bs {
			eb := b.EdgeToParent(vb)
			if ea.Src().IsCompatibleWith(eb.Trg(), a.Rule()) && eb.Src().IsCompatibleWith(ea.Trg(), b.Rule()) {
				out = append(out, CrossoverSite{VA: va, VB: vb})
			}
		}
	}
	return out
}

func branchRoots(g *core.Graph) []*core.Vertex {
	var out []*core.Vertex
	for _, v := range g.Vertices() {
		if v.IsCap() || v.IsRCV() || g.EdgeToParent(v) == nil || cutCrossesRing(g, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// cutCrossesRing reports whether a ring has members both inside and
// outside the branch rooted at v.
func cutCrossesRing(g *core.Graph, v *core.Vertex) bool {
	in := make(map[*core.Vertex]bool)
	for _, m := range g.Subtree(v, nil) {
		in[m] = true
	}
	for _, r := range g.Rings() {
		n := 0
		for _, m := range r.Vertices() {
			if in[m] {
				n++
			}
		}
		if n > 0 && n < r.Size() {
			return true
		}
	}
	return false
}

// RandomCrossover picks a random site and exchanges the two branches. In
// Subgraph mode each region stops above one random non-cap descendant of
// its root, when there is one.
func RandomCrossover(ctx context.Context, rc *RunContext, a, b *core.Graph, mode CrossoverMode) error {
	sites := FindCrossoverSites(a, b)
	if len(sites) == 0 {
		return errors.Wrap(ErrNoMutationSite, "ga: no crossover site")
	}
	s := sites[rc.Rand.IntN(len(sites))]
	req := CrossoverRequest{Mode: mode, A: a, B: b, VA: s.VA, VB: s.VB}
	if mode == Subgraph {
		req.BoundaryA = randomBoundary(rc, a, s.VA)
		req.BoundaryB = randomBoundary(rc, b, s.VB)
	}
	return Crossover(ctx, rc, req)
}

func randomBoundary(rc *RunContext, g *core.Graph, root *core.Vertex) []*core.Vertex {
	var cands []*core.Vertex
	for _, v := range g.Subtree(root, nil)[1:] {
		if !v.IsCap() && !v.IsRCV() {
			cands = append(cands, v)
		}
	}
	if len(cands) == 0 {
		return nil
	}
	return []*core.Vertex{cands[rc.Rand.IntN(len(cands))]}
}

package fragspace

import (
	"github.com/katalvlaran/fragevo/core"
)

// CapGraph saturates the free APs of g's top-level vertices with capping
// groups, where the capping map has one. Ring-closing vertices and caps are
// left alone. It returns the number of caps added.
func (l *Library) CapGraph(g *core.Graph) (int, error) {
	added := 0
	for _, v := range g.Vertices() {
		if v.IsRCV() || v.IsCap() {
			continue
		}
		for _, ap := range v.FreeAPs() {
			e, ok := l.CapFor(ap.Class())
			if !ok {
				continue
			}
			c := l.Instantiate(e, g.NextVertexID())
			if err := g.AppendVertex(ap, c, c.AP(0), l.BondFor(ap.Class())); err != nil {
				return added, err
			}
			added++
		}
	}
	return added, nil
}

// ForbiddenEnds returns the free APs of g whose class must not stay free.
func (l *Library) ForbiddenEnds(g *core.Graph) []*core.AttachmentPoint {
	var out []*core.AttachmentPoint
	for _, ap := range g.AvailableAPs() {
		if ap.Owner().IsRCV() {
			continue
		}
		if l.IsForbiddenEnd(ap.Class()) {
			out = append(out, ap)
		}
	}
	return out
}

package core_test

import (
	"fmt"

	"github.com/katalvlaran/fragevo/apclass"
	"github.com/katalvlaran/fragevo/core"
)

// ExampleGraph_CloseRing grows a short chain, hangs two ring-closing
// vertices on it and closes a ring between them.
func ExampleGraph_CloseRing() {
	c := apclass.MustParse("c:0")
	bb := core.BuildingBlock{ID: 1, Role: core.RoleFragment}
	newV := func(id core.VertexID) *core.Vertex {
		return core.NewFragment(id, bb, core.NewAP(c), core.NewAP(c), core.NewAP(c))
	}

	g := core.NewGraph(core.WithRule(apclass.SameRule))
	a, b := newV(0), newV(1)
	_ = g.AddVertex(a)
	_ = g.AppendVertex(a.AP(1), b, b.AP(0), core.BondSingle)

	h := core.NewRingClosingVertex(2, 90, c)
	t := core.NewRingClosingVertex(3, 90, c)
	_ = g.AppendVertex(b.AP(1), h, h.AP(0), core.BondSingle)
	_ = g.AppendVertex(a.AP(2), t, t.AP(0), core.BondSingle)

	r, err := g.CloseRing(h, t, core.BondSingle)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(r.Size(), len(g.FreeRCVertices()), g.Validate() == nil)
	// Output: 4 0 true
}

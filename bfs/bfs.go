// Package bfs provides breadth-first search over the bonds of a core.Graph,
// returning bond distances, parent links, and visit order.
package bfs

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/core"
)

type queueItem struct {
	v     *core.Vertex
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   *core.Graph
	opts    BFSOptions
	queue   []queueItem
	visited map[*core.Vertex]bool
	res     *BFSResult
}

// BFS runs breadth-first search on g starting from start. Neighbors are
// the bonded vertices of core.Graph.Neighbors, so ring chords count as
// bonds. Returns ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation,
// a context error, or a wrapped OnVisit error.
func BFS(g *core.Graph, start *core.Vertex, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.Contains(start) {
		return nil, ErrStartVertexNotFound
	}

	n := g.VertexCount()
	w := &walker{
		graph:   g,
		opts:    o,
		queue:   make([]queueItem, 0, n),
		visited: make(map[*core.Vertex]bool, n),
		res: &BFSResult{
			Order:  make([]*core.Vertex, 0, n),
			Depth:  make(map[core.VertexID]int, n),
			Parent: make(map[core.VertexID]core.VertexID, n),
		},
	}
	w.enqueue(start, 0, nil)
	return w.res, w.loop()
}

func (w *walker) enqueue(v *core.Vertex, d int, parent *core.Vertex) {
	w.visited[v] = true
	w.res.Depth[v.ID()] = d
	if parent != nil {
		w.res.Parent[v.ID()] = parent.ID()
	}
	w.opts.OnEnqueue(v, d)
	w.queue = append(w.queue, queueItem{v: v, depth: d})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.opts.Ctx.Err(); err != nil {
			return err
		}
		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.v)
		if err := w.opts.OnVisit(item.v, item.depth); err != nil {
			return errors.Wrapf(err, "bfs: OnVisit error at %d", item.v.ID())
		}

		next := item.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		for _, nbr := range w.graph.Neighbors(item.v) {
			if w.visited[nbr] || !w.opts.FilterNeighbor(item.v, nbr) {
				continue
			}
			w.enqueue(nbr, next, item.v)
		}
	}
	return nil
}

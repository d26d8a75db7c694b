package dfs

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/core"
)

// dfsWalker encapsulates state during DFS.
type dfsWalker struct {
	graph *core.Graph
	opts  DFSOptions
	res   *DFSResult
}

// DFS performs depth-first search on g from start, following the bonds
// listed by core.Graph.Neighbors. With WithFullTraversal start may be nil
// and every component is covered in vertex order.
func DFS(g *core.Graph, start *core.Vertex, opts ...Option) (*DFSResult, error) {
	// 1. Validate input graph
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. Apply options
	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}

	// 3. Single-source mode: verify start
	if !dopts.FullTraversal && !g.Contains(start) {
		return nil, ErrStartVertexNotFound
	}

	// 4. Initialize result
	n := g.VertexCount()
	res := &DFSResult{
		PreOrder: make([]*core.Vertex, 0, n),
		Order:    make([]*core.Vertex, 0, n),
		Depth:    make(map[core.VertexID]int, n),
		Parent:   make(map[core.VertexID]core.VertexID, n),
		Visited:  make(map[core.VertexID]bool, n),
	}
	w := &dfsWalker{graph: g, opts: dopts, res: res}

	// 5. Traverse: forest or single tree
	roots := []*core.Vertex{start}
	if dopts.FullTraversal {
		roots = g.Vertices()
	}
	for _, v := range roots {
		if res.Visited[v.ID()] {
			continue
		}
		if err := w.traverse(v, 0); err != nil {
			return res, err
		}
	}

	// 6. Expose diagnostics
	res.SkippedNeighbors = w.opts.SkippedNeighbors
	return res, nil
}

func (w *dfsWalker) traverse(v *core.Vertex, depth int) error {
	// 1. Cancellation check
	if err := w.opts.Ctx.Err(); err != nil {
		w.res.Order = nil
		return err
	}

	// 2. Depth limit
	if w.opts.MaxDepth >= 0 && depth > w.opts.MaxDepth {
		return nil
	}

	// 3. Mark visited
	w.res.Visited[v.ID()] = true
	w.res.Depth[v.ID()] = depth
	w.res.PreOrder = append(w.res.PreOrder, v)

	// 4. Pre-order hook
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(v, depth); err != nil {
			w.res.Order = nil
			return errors.Wrapf(err, "dfs: OnVisit hook for %d", v.ID())
		}
	}

	// 5. Explore each bonded neighbor
	for _, nbr := range w.graph.Neighbors(v) {
		if w.res.Visited[nbr.ID()] {
			continue
		}
		if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(nbr) {
			w.opts.SkippedNeighbors++
			continue
		}
		if w.opts.MaxDepth >= 0 && depth+1 > w.opts.MaxDepth {
			continue
		}
		w.res.Parent[nbr.ID()] = v.ID()
		if err := w.traverse(nbr, depth+1); err != nil {
			return err
		}
	}

	// 6. Post-order hook
	if w.opts.OnExit != nil {
		if err := w.opts.OnExit(v); err != nil {
			w.res.Order = nil
			return errors.Wrapf(err, "dfs: OnExit hook for %d", v.ID())
		}
	}

	// 7. Record finish order
	w.res.Order = append(w.res.Order, v)
	return nil
}

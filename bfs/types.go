package bfs

import (
	"context"

	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartVertexNotFound is returned when the start vertex is not a
	// top-level vertex of the graph.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures BFS behavior via functional arguments.
// An invalid Option (e.g. negative depth) is recorded and surfaced as
// ErrOptionViolation when BFS is invoked.
type Option func(*BFSOptions)

// BFSOptions holds parameters and callbacks to customize BFS execution.
type BFSOptions struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnEnqueue is called when a vertex is enqueued, with its depth.
	OnEnqueue func(v *core.Vertex, depth int)

	// OnVisit is called when visiting a vertex. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(v *core.Vertex, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// FilterNeighbor can skip bonds by returning false.
	FilterNeighbor func(curr, neighbor *core.Vertex) bool

	err error
}

// DefaultOptions returns a BFSOptions with:
//   - Context.Background()
//   - no depth limit (MaxDepth == 0)
//   - no filtering
//   - no-op hooks
func DefaultOptions() BFSOptions {
	return BFSOptions{
		Ctx:            context.Background(),
		OnEnqueue:      func(*core.Vertex, int) {},
		OnVisit:        func(*core.Vertex, int) error { return nil },
		FilterNeighbor: func(_, _ *core.Vertex) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *BFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(v *core.Vertex, depth int)) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(v *core.Vertex, depth int) error) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: no limit
//	d < 0: ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *BFSOptions) {
		if d < 0 {
			o.err = errors.Wrapf(ErrOptionViolation, "MaxDepth cannot be negative (%d)", d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterNeighbor skips neighbors when fn returns false.
func WithFilterNeighbor(fn func(curr, neighbor *core.Vertex) bool) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// SkipCaps is a neighbor filter that ignores capping groups.
func SkipCaps(_, neighbor *core.Vertex) bool { return !neighbor.IsCap() }

// BFSResult holds the outcome of a BFS traversal:
//   - Order: vertices in visit sequence.
//   - Depth: bonds between the start and each reached vertex.
//   - Parent: predecessor of each reached vertex in the BFS tree.
type BFSResult struct {
	Order  []*core.Vertex
	Depth  map[core.VertexID]int
	Parent map[core.VertexID]core.VertexID
}

// PathTo reconstructs the vertex IDs from the start to dest.
func (r *BFSResult) PathTo(dest core.VertexID) ([]core.VertexID, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, errors.Errorf("bfs: no path to %d", dest)
	}
	path := []core.VertexID{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Eccentricity returns the largest depth reached, i.e. the bond distance
// from the start to the farthest reached vertex.
func (r *BFSResult) Eccentricity() int {
	max := 0
	for _, d := range r.Depth {
		if d > max {
			max = d
		}
	}
	return max
}

// Package dfs defines types and options for depth-first search over the
// bonds of a core.Graph: cancellation, pre-/post-order hooks, depth
// limiting, neighbor filtering, and forest traversal.
package dfs

import (
	"context"

	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/core"
)

// Visitation states of a vertex.
const (
	White = iota // not visited yet
	Gray         // on the recursion stack
	Black        // vertex and descendants fully explored
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound indicates that the start vertex is not a
	// top-level vertex of the graph.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")
)

// Option configures optional behavior of DFS traversal.
type Option func(*DFSOptions)

// DFSOptions holds configurable parameters for DFS traversal.
type DFSOptions struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is invoked when a vertex is discovered
	// (pre-order) with its depth. Returning an error aborts traversal.
	OnVisit func(v *core.Vertex, depth int) error

	// OnExit, if non-nil, is invoked after all descendants of a vertex
	// were explored (post-order). Returning an error aborts traversal.
	OnExit func(v *core.Vertex) error

	// MaxDepth, if non-negative, limits recursion to the given depth.
	// A depth of 0 visits only the start vertex. Default is -1.
	MaxDepth int

	// FilterNeighbor, if non-nil, is called for each neighbor before
	// recursing. Return false to skip it.
	FilterNeighbor func(v *core.Vertex) bool

	// FullTraversal restarts from every unvisited top-level vertex.
	FullTraversal bool

	// SkippedNeighbors counts neighbors rejected by FilterNeighbor.
	SkippedNeighbors int
}

// DefaultOptions returns a DFSOptions struct with:
//   - Background context
//   - No hooks
//   - No depth limit (MaxDepth = -1)
//   - No neighbor filtering
//   - Single-source traversal
func DefaultOptions() DFSOptions {
	return DFSOptions{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext sets the Context for DFS traversal. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *DFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs fn as a pre-order hook.
func WithOnVisit(fn func(v *core.Vertex, depth int) error) Option {
	return func(o *DFSOptions) {
		o.OnVisit = fn
	}
}

// WithOnExit installs fn as a post-order hook.
func WithOnExit(fn func(v *core.Vertex) error) Option {
	return func(o *DFSOptions) {
		o.OnExit = fn
	}
}

// WithMaxDepth limits traversal depth to limit.
func WithMaxDepth(limit int) Option {
	return func(o *DFSOptions) {
		o.MaxDepth = limit
	}
}

// WithFilterNeighbor filters neighbors; rejected ones are counted in
// SkippedNeighbors.
func WithFilterNeighbor(fn func(v *core.Vertex) bool) Option {
	return func(o *DFSOptions) {
		o.FilterNeighbor = fn
	}
}

// WithFullTraversal covers every top-level vertex, not only the component
// of the start vertex.
func WithFullTraversal() Option {
	return func(o *DFSOptions) {
		o.FullTraversal = true
	}
}

// DFSResult captures the outcome of a depth-first traversal.
type DFSResult struct {
	// PreOrder records vertices in discovery sequence.
	PreOrder []*core.Vertex

	// Order records vertices in the sequence they finished (post-order).
	Order []*core.Vertex

	// Depth maps each vertex ID to its depth in the DFS tree.
	Depth map[core.VertexID]int

	// Parent maps each vertex ID to the vertex it was discovered from.
	Parent map[core.VertexID]core.VertexID

	// Visited flags which vertices were reached.
	Visited map[core.VertexID]bool

	// SkippedNeighbors reports neighbors rejected by FilterNeighbor.
	SkippedNeighbors int
}

package pool

import (
	"context"

	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/bfs"
	"github.com/katalvlaran/fragevo/core"
)

// ErrEmptyGraph is returned when scoring a graph without vertices.
var ErrEmptyGraph = errors.New("pool: empty graph")

// Compactness rewards graphs that pack many heavy vertices close to the
// root. The score is
//
//	heavy / (1 + eccentricity) + RingWeight · rings
//
// where heavy counts the non-cap, non-RCV vertices and eccentricity is the
// bond distance from the root to the farthest of them, ring chords
// included.
type Compactness struct {
	RingWeight float64
}

// Score implements Fitness.
func (c Compactness) Score(ctx context.Context, g *core.Graph) (float64, error) {
	root := g.Root()
	if root == nil {
		return 0, ErrEmptyGraph
	}
	res, err := bfs.BFS(g, root, bfs.WithContext(ctx), bfs.WithFilterNeighbor(bfs.SkipCaps))
	if err != nil {
		return 0, err
	}
	heavy, ecc := 0, 0
	for _, v := range res.Order {
		if v.IsRCV() {
			continue
		}
		heavy++
		if d := res.Depth[v.ID()]; d > ecc {
			ecc = d
		}
	}
	return float64(heavy)/float64(1+ecc) + c.RingWeight*float64(len(g.Rings())), nil
}

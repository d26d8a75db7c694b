package pool

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/katalvlaran/fragevo/core"
)

// Fitness scores one graph. Implementations must not modify g.
type Fitness interface {
	Score(ctx context.Context, g *core.Graph) (float64, error)
}

// FitnessFunc adapts a function to Fitness.
type FitnessFunc func(ctx context.Context, g *core.Graph) (float64, error)

// Score calls f.
func (f FitnessFunc) Score(ctx context.Context, g *core.Graph) (float64, error) { return f(ctx, g) }

// Candidate is one member of a population.
type Candidate struct {
	ID         uuid.UUID
	Graph      *core.Graph
	Generation int
	// Parents holds the IDs of the candidates this one was derived from.
	Parents []uuid.UUID

	Fitness   float64
	Evaluated bool
	// Err is the failure of the last task run on this candidate.
	Err error
}

// NewCandidate wraps g with a fresh ID.
func NewCandidate(g *core.Graph, generation int, parents ...uuid.UUID) *Candidate {
	return &Candidate{ID: uuid.New(), Graph: g, Generation: generation, Parents: parents}
}

// Rank sorts cands in place: evaluated candidates by decreasing fitness,
// then the rest in their original order.
func Rank(cands []*Candidate) {
	slices.SortStableFunc(cands, func(a, b *Candidate) int {
		switch {
		case a.Evaluated && !b.Evaluated:
			return -1
		case !a.Evaluated && b.Evaluated:
			return 1
		case !a.Evaluated:
			return 0
		case a.Fitness > b.Fitness:
			return -1
		case a.Fitness < b.Fitness:
			return 1
		}
		return 0
	})
}

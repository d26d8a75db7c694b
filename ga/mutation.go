// File: mutation.go
// Role: Mutation driver: site and type selection, symmetric batches,
// clone-then-swap commit.
//
// Algorithm (MutateVertex):
//   1. Check the target belongs to g and can undergo the type.
//   2. Collect the members: the target, or its whole symmetric set.
//   3. Clone g, resolve the members in the clone, edit each one. In a
//      symmetric batch the first member draws the building block and AP
//      mapping, the others replay that choice, and the new vertices form
//      a symmetric set again.
//   4. Re-cap, validate and swap the clone in.
//
// Any failure before step 4 leaves g exactly as it was.

package ga

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/fragspace"
	"github.com/katalvlaran/fragevo/rings"
)

// Default growth limits.
const (
	DefaultMaxVertices = 100
	DefaultMaxLevel    = 20
)

// Mutator applies mutations that draw building blocks from a fragment
// library. It holds no per-run state and may be shared by workers.
type Mutator struct {
	lib         *fragspace.Library
	checker     *rings.Checker
	excluded    core.MutationSet
	weights     map[core.MutationType]float64
	symProb     float64
	extendProb  float64
	maxVertices int
	maxLevel    int
}

// MutatorOption configures a Mutator.
type MutatorOption func(*Mutator)

// WithChecker sets the ring-closure checker used by add-ring. The default
// checks ring sizes with rings.DefaultParameters.
func WithChecker(c *rings.Checker) MutatorOption {
	return func(m *Mutator) {
		if c != nil {
			m.checker = c
		}
	}
}

// WithExcludedTypes removes types from every vertex's capability set.
func WithExcludedTypes(s core.MutationSet) MutatorOption {
	return func(m *Mutator) { m.excluded = s }
}

// WithWeights sets relative selection weights; missing types weigh 1 and
// a zero weight disables a type.
func WithWeights(w map[core.MutationType]float64) MutatorOption {
	return func(m *Mutator) {
		for t, x := range w {
			m.weights[t] = x
		}
	}
}

// WithSymmetryProbability sets the chance a mutation on a member of a
// symmetric set is applied to the whole set.
func WithSymmetryProbability(p float64) MutatorOption {
	return func(m *Mutator) { m.symProb = p }
}

// WithExtendProbability sets the chance that growth continues one level
// below a freshly added fragment, repeatedly.
func WithExtendProbability(p float64) MutatorOption {
	return func(m *Mutator) { m.extendProb = p }
}

// WithGrowthLimits bounds the number of non-cap vertices and the level of
// added vertices.
func WithGrowthLimits(maxVertices, maxLevel int) MutatorOption {
	return func(m *Mutator) {
		m.maxVertices, m.maxLevel = maxVertices, maxLevel
	}
}

// NewMutator returns a Mutator over lib.
func NewMutator(lib *fragspace.Library, opts ...MutatorOption) (*Mutator, error) {
	if lib == nil {
		return nil, ErrNilLibrary
	}
	m := &Mutator{
		lib:         lib,
		weights:     make(map[core.MutationType]float64),
		maxVertices: DefaultMaxVertices,
		maxLevel:    DefaultMaxLevel,
	}
	for _, t := range core.AllMutationTypes() {
		m.weights[t] = 1
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.checker == nil {
		c, err := rings.NewChecker(rings.DefaultParameters())
		if err != nil {
			return nil, err
		}
		m.checker = c
	}
	return m, nil
}

// Library returns the fragment library in use.
func (m *Mutator) Library() *fragspace.Library { return m.lib }

// MutateOption tunes a single MutateVertex call.
type MutateOption func(*mutateConfig)

type symmetryMode int

const (
	symmetryAuto symmetryMode = iota
	symmetryOn
	symmetryOff
)

type mutateConfig struct {
	symmetry symmetryMode
}

// WithSymmetry forces symmetric mode on or off instead of drawing it with
// the mutator's symmetry probability.
func WithSymmetry(on bool) MutateOption {
	return func(c *mutateConfig) {
		if on {
			c.symmetry = symmetryOn
		} else {
			c.symmetry = symmetryOff
		}
	}
}

// Applicable returns the types v can undergo under this mutator.
func (m *Mutator) Applicable(v *core.Vertex) core.MutationSet {
	set := v.AvailableMutationTypes(m.excluded)
	if h := v.Graph(); h != nil && len(h.RingsInvolving(v)) == 0 {
		set = set.Without(core.DeleteChain)
	}
	for _, t := range set.Types() {
		if m.weights[t] <= 0 {
			set = set.Without(t)
		}
	}
	return set
}

// Mutate picks a random vertex of g (inner graphs included) with at least
// one applicable type, picks a type by weight and applies it.
func (m *Mutator) Mutate(ctx context.Context, rc *RunContext, g *core.Graph) (core.MutationType, error) {
	type site struct {
		v     *core.Vertex
		types []core.MutationType
	}
	var sites []site
	g.WalkVertices(func(v *core.Vertex) bool {
		if ts := m.Applicable(v).Types(); len(ts) > 0 {
			sites = append(sites, site{v: v, types: ts})
		}
		return true
	})
	if len(sites) == 0 {
		return 0, errors.Wrap(ErrNoMutationSite, "ga: no vertex can be mutated")
	}
	s := sites[rc.Rand.IntN(len(sites))]
	mt := m.pickType(rc, s.types)
	return mt, m.MutateVertex(ctx, rc, g, s.v, mt)
}

func (m *Mutator) pickType(rc *RunContext, types []core.MutationType) core.MutationType {
	total := 0.0
	for _, t := range types {
		total += m.weights[t]
	}
	r := rc.Rand.Float64() * total
	for _, t := range types {
		r -= m.weights[t]
		if r < 0 {
			return t
		}
	}
	return types[len(types)-1]
}

// MutateVertex applies mt to v, a vertex of g or of an inner graph of g.
// On error g is unchanged.
//
// Errors:
//   - ErrNoApplicableType: v cannot undergo mt.
//   - ErrNoMutationSite: no building block or partner fits.
//   - ErrSymmetryViolation: a member of v's symmetric set failed.
//   - core.ErrIncompatibleAP, core.ErrCapacity, core.ErrDisconnection:
//     the edit was rejected by the graph.
//   - core.ErrStructuralInvariant: a defect; the candidate must be dropped.
func (m *Mutator) MutateVertex(ctx context.Context, rc *RunContext, g *core.Graph, v *core.Vertex, mt core.MutationType, opts ...MutateOption) error {
	op := strings.ToLower(mt.String())
	start := time.Now()
	rc.Monitor.Attempt(op)
	n, err := m.mutateVertex(ctx, rc, g, v, mt, opts)
	record(rc, op, start, err)
	if err == nil {
		rc.Logger.Debug("mutation applied",
			zap.String("type", mt.String()),
			zap.Int64("vertex", int64(v.ID())),
			zap.Int("members", n))
	}
	return err
}

func (m *Mutator) mutateVertex(ctx context.Context, rc *RunContext, g *core.Graph, v *core.Vertex, mt core.MutationType, opts []MutateOption) (int, error) {
	// 1. Validate the target.
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if v == nil || v.Graph() == nil || v.Graph().Outermost() != g {
		return 0, errors.Wrap(core.ErrVertexNotFound, "ga: mutation target")
	}
	if !m.Applicable(v).Has(mt) {
		return 0, errors.Wrapf(ErrNoApplicableType, "ga: %s on vertex %d", mt, v.ID())
	}

	// 2. Members.
	members := []*core.Vertex{v}
	if m.symmetric(rc, v, opts) {
		h := v.Graph()
		for _, id := range h.SymmetricSetOf(v).IDs() {
			if u := h.VertexByID(id); u != nil && u != v {
				members = append(members, u)
			}
		}
	}

	// 3. Edit a clone.
	work := g.Clone()
	targets := make([]*core.Vertex, len(members))
	for i, u := range members {
		if targets[i] = work.Resolve(u.Address()); targets[i] == nil {
			return 0, errors.Wrapf(core.ErrStructuralInvariant, "ga: vertex %d lost in clone", u.ID())
		}
	}
	var b *batch
	if len(targets) > 1 {
		b = &batch{}
	}
	h := targets[0].Graph()
	for i, t := range targets {
		if i > 0 && (t.Graph() == nil || !m.Applicable(t).Has(mt)) {
			return 0, errors.Wrapf(ErrSymmetryViolation, "ga: %s not applicable to member %d", mt, t.ID())
		}
		err := m.apply(ctx, rc, work, t, mt, b)
		if err == nil {
			continue
		}
		if b != nil && IsRecoverable(err) {
			return 0, errors.Wrapf(ErrSymmetryViolation, "ga: member %d: %v", t.ID(), err)
		}
		return 0, err
	}
	if b != nil && len(b.added) == len(targets) {
		if err := h.AddSymmetricSet(b.added...); err != nil {
			return 0, errors.Wrapf(core.ErrStructuralInvariant, "ga: symmetric set: %v", err)
		}
	}

	// 4. Re-cap, validate, swap in.
	if _, err := m.lib.CapGraph(work); err != nil {
		return 0, cappingError(err)
	}
	if err := work.Validate(); err != nil {
		return 0, err
	}
	g.Adopt(work)
	return len(targets), nil
}

func (m *Mutator) symmetric(rc *RunContext, v *core.Vertex, opts []MutateOption) bool {
	var cfg mutateConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if v.Graph().SymmetricSetOf(v) == nil {
		return false
	}
	switch cfg.symmetry {
	case symmetryOn:
		return true
	case symmetryOff:
		return false
	}
	return rc.Rand.Float64() < m.symProb
}

func (m *Mutator) apply(ctx context.Context, rc *RunContext, work *core.Graph, t *core.Vertex, mt core.MutationType, b *batch) error {
	h := t.Graph()
	switch mt {
	case core.ChangeBranch:
		return m.changeBranch(rc, work, h, t, b)
	case core.ChangeLink:
		return m.changeLink(rc, h, t, b)
	case core.DeleteLink:
		return h.RemoveVertexAndWeld(t)
	case core.AddLink:
		return m.addLink(rc, work, h, t, b)
	case core.Extend:
		return m.extend(rc, work, h, t, b)
	case core.AddRing:
		return m.addRing(ctx, rc, h, t)
	case core.Delete:
		return h.RemoveBranch(t)
	case core.DeleteChain:
		return h.RemoveChainUpToBranching(t)
	}
	return errors.Wrapf(ErrNoApplicableType, "ga: unknown mutation type %d", int(mt))
}

// cappingError keeps the kind of a capping failure the taxonomy knows and
// turns anything else into a structural invariant violation.
func cappingError(err error) error {
	if Classify(err) == Other {
		return errors.Wrapf(core.ErrStructuralInvariant, "ga: capping: %v", err)
	}
	return errors.Wrap(err, "ga: capping")
}

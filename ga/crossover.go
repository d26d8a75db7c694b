// File: crossover.go
// Role: Two-sided sub-graph exchange with a transactional commit.
//
// Algorithm:
//   1. Validate the request and resolve every vertex in clones of A and B.
//   2. Renumber the clones so that IDs are unique across both.
//   3. Extract the two regions.
//   4. Check both graft points and, in subgraph mode, map every dangling
//      link onto a free AP of the incoming region.
//   5. Graft both ways, validate, swap both clones in.
//
// A and B are only touched in step 5, after both grafts succeeded.

package ga

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/fragevo/apclass"
	"github.com/katalvlaran/fragevo/core"
)

// CrossoverMode selects what the exchanged region is.
type CrossoverMode int

const (
	// Branch exchanges a vertex with everything below it.
	Branch CrossoverMode = iota
	// Subgraph exchanges the region between a vertex and an explicit
	// boundary; branches below the boundary stay and are re-bound.
	Subgraph
)

// String returns the configuration name of the mode.
func (m CrossoverMode) String() string {
	if m == Subgraph {
		return "SUBGRAPH"
	}
	return "BRANCH"
}

// ParseCrossoverMode is the case-insensitive inverse of String.
func ParseCrossoverMode(s string) (CrossoverMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BRANCH":
		return Branch, nil
	case "SUBGRAPH":
		return Subgraph, nil
	}
	return 0, errors.Errorf("ga: unknown crossover mode %q", s)
}

// CrossoverRequest names the two parents and the exchanged regions.
type CrossoverRequest struct {
	Mode CrossoverMode
	A, B *core.Graph
	// VA and VB root the exchanged regions; both must be top-level, non-root
	// vertices of A and B.
	VA, VB *core.Vertex
	// BoundaryA and BoundaryB are used in Subgraph mode only.
	BoundaryA, BoundaryB []*core.Vertex
}

// Crossover exchanges the region rooted at VA in A with the region rooted
// at VB in B. On error neither graph is changed.
func Crossover(ctx context.Context, rc *RunContext, req CrossoverRequest) error {
	const op = "crossover"
	start := time.Now()
	rc.Monitor.Attempt(op)
	err := crossover(ctx, req)
	record(rc, op, start, err)
	if err == nil {
		rc.Logger.Debug("crossover applied",
			zap.String("mode", req.Mode.String()),
			zap.Int64("va", int64(req.VA.ID())),
			zap.Int64("vb", int64(req.VB.ID())))
	}
	return err
}

func crossover(ctx context.Context, req CrossoverRequest) error {
	// 1. Validate and resolve in clones.
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.A == nil || req.B == nil || req.A == req.B {
		return errors.Wrap(ErrBadRequest, "ga: crossover needs two distinct graphs")
	}
	if !req.A.Contains(req.VA) || !req.B.Contains(req.VB) {
		return errors.Wrap(core.ErrVertexNotFound, "ga: crossover vertex")
	}
	if req.Mode == Branch && (len(req.BoundaryA) > 0 || len(req.BoundaryB) > 0) {
		return errors.Wrap(ErrBadRequest, "ga: boundary given in branch mode")
	}
	ca, cb := req.A.Clone(), req.B.Clone()
	va, ba, err := resolveRegion(ca, req.VA, req.BoundaryA)
	if err != nil {
		return err
	}
	vb, bb, err := resolveRegion(cb, req.VB, req.BoundaryB)
	if err != nil {
		return err
	}

	// 2. Unique IDs across both graphs.
	cb.RenumberVertices(ca.RenumberVertices(1))

	// 3. Extract.
	subA, patchA, err := ca.ExtractSubgraph(va, ba)
	if err != nil {
		return err
	}
	subB, patchB, err := cb.ExtractSubgraph(vb, bb)
	if err != nil {
		return err
	}

	// 4. Check both sides before grafting either.
	rootA, rootB := subA.Root().AP(patchA.RootAP), subB.Root().AP(patchB.RootAP)
	if !patchA.ParentAP.IsCompatibleWith(rootB, ca.Rule()) {
		return errors.Wrapf(core.ErrIncompatibleAP, "ga: graft into A %s -> %s", patchA.ParentAP.Class(), rootB.Class())
	}
	if !patchB.ParentAP.IsCompatibleWith(rootA, cb.Rule()) {
		return errors.Wrapf(core.ErrIncompatibleAP, "ga: graft into B %s -> %s", patchB.ParentAP.Class(), rootA.Class())
	}
	targetsA, ok := mapLinks(patchA, subB, rootB, patchB.OriginalTargets(), ca.Rule())
	if !ok {
		return errors.Wrap(core.ErrIncompatibleAP, "ga: dangling links of A do not fit the region of B")
	}
	targetsB, ok := mapLinks(patchB, subA, rootA, patchA.OriginalTargets(), cb.Rule())
	if !ok {
		return errors.Wrap(core.ErrIncompatibleAP, "ga: dangling links of B do not fit the region of A")
	}

	// 5. Graft, validate, swap in.
	if err := ca.GraftSubgraph(subB, patchB.RootAP, patchA, targetsA); err != nil {
		return err
	}
	if err := cb.GraftSubgraph(subA, patchA.RootAP, patchB, targetsB); err != nil {
		return err
	}
	if err := ca.Validate(); err != nil {
		return err
	}
	if err := cb.Validate(); err != nil {
		return err
	}
	req.A.Adopt(ca)
	req.B.Adopt(cb)
	return nil
}

func resolveRegion(clone *core.Graph, v *core.Vertex, boundary []*core.Vertex) (*core.Vertex, []*core.Vertex, error) {
	cv := clone.Resolve(v.Address())
	if cv == nil {
		return nil, nil, errors.Wrap(core.ErrVertexNotFound, "ga: crossover vertex")
	}
	out := make([]*core.Vertex, len(boundary))
	for i, b := range boundary {
		if b == nil || b.Graph() != v.Graph() {
			return nil, nil, errors.Wrap(core.ErrVertexNotFound, "ga: boundary vertex")
		}
		if out[i] = clone.Resolve(b.Address()); out[i] == nil {
			return nil, nil, errors.Wrap(core.ErrVertexNotFound, "ga: boundary vertex")
		}
	}
	return cv, out, nil
}

// mapLinks assigns each dangling link of patch to a distinct free AP of
// the incoming region sub, preferring the APs that held sub's own links
// (preferred). rootAP is reserved for the main graft.
func mapLinks(patch *core.CutPatch, sub *core.Graph, rootAP *core.AttachmentPoint, preferred []core.APRef, rule apclass.Rule) ([]core.APRef, bool) {
	if len(patch.Links) == 0 {
		return nil, true
	}
	var cands []*core.AttachmentPoint
	seen := make(map[*core.AttachmentPoint]bool)
	add := func(ap *core.AttachmentPoint) {
		if ap != nil && ap != rootAP && ap.IsAvailable() && !seen[ap] {
			seen[ap] = true
			cands = append(cands, ap)
		}
	}
	for _, ref := range preferred {
		add(sub.APAt(ref))
	}
	for _, ap := range sub.AvailableAPs() {
		add(ap)
	}

	out := make([]core.APRef, len(patch.Links))
	used := make([]bool, len(cands))
	var try func(i int) bool
	try = func(i int) bool {
		if i == len(patch.Links) {
			return true
		}
		bap := patch.Links[i].BranchRootAP()
		for j, ap := range cands {
			if used[j] || !ap.IsCompatibleWith(bap, rule) {
				continue
			}
			used[j], out[i] = true, ap.Ref()
			if try(i + 1) {
				return true
			}
			used[j] = false
		}
		return false
	}
	return out, try(0)
}

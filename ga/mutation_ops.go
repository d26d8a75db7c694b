// File: mutation_ops.go
// Role: One edit per mutation type, applied to a vertex of a working clone.
//
// Each function either completes its edit or returns an error; partial
// edits are fine because the clone is discarded on error.

package ga

import (
	"context"

	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/apclass"
	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/fragspace"
	"github.com/katalvlaran/fragevo/rings"
)

// maxRingPartners bounds the partners tried for one ring-closing vertex.
const maxRingPartners = 20

// batch carries the choice made on the first member of a symmetric batch.
// The other members replay it instead of drawing their own.
type batch struct {
	chosen bool
	entry  *fragspace.Entry
	ap     int         // AP of the new vertex bound towards the host
	host   int         // AP index on the target (extend, add-link)
	out    int         // AP of an inserted link bound towards the child
	apMap  map[int]int // change-link
	added  []core.VertexID
}

func (b *batch) replaying() bool { return b != nil && b.chosen }

func (b *batch) record(id core.VertexID) {
	if b != nil {
		b.added = append(b.added, id)
	}
}

// heavyCount counts the non-cap vertices of g's top level.
func heavyCount(g *core.Graph) int {
	n := 0
	for _, v := range g.Vertices() {
		if !v.IsCap() {
			n++
		}
	}
	return n
}

func (m *Mutator) roomFor(work *core.Graph, n int) error {
	if heavyCount(work)+n > m.maxVertices {
		return errors.Wrapf(ErrNoMutationSite, "ga: graph at size limit %d", m.maxVertices)
	}
	return nil
}

// grow appends one fragment below ap, skipping building block skip. In a
// symmetric batch it replays or records the fragment and its AP.
func (m *Mutator) grow(rc *RunContext, work, h *core.Graph, ap *core.AttachmentPoint, skip core.BuildingBlock, b *batch) (*core.Vertex, error) {
	if err := m.roomFor(work, 1); err != nil {
		return nil, err
	}
	if b.replaying() {
		nv := m.lib.Instantiate(b.entry, h.NextVertexID())
		if err := h.AppendVertex(ap, nv, nv.AP(b.ap), m.lib.BondFor(ap.Class())); err != nil {
			return nil, err
		}
		return nv, nil
	}
	cands := m.lib.CompatibleFragments(ap.Class())
	for _, i := range rc.Rand.Perm(len(cands)) {
		c := cands[i]
		if c.Entry.BuildingBlock() == skip {
			continue
		}
		nv := m.lib.Instantiate(c.Entry, h.NextVertexID())
		err := h.AppendVertex(ap, nv, nv.AP(c.AP), m.lib.BondFor(ap.Class()))
		if err == nil {
			if b != nil {
				b.chosen, b.entry, b.ap = true, c.Entry, c.AP
			}
			return nv, nil
		}
		if !IsRecoverable(err) {
			return nil, err
		}
	}
	return nil, errors.Wrapf(ErrNoMutationSite, "ga: no fragment fits %s", ap)
}

// deepen keeps growing below v while the extend probability allows it.
// Running out of room or candidates just stops the growth.
func (m *Mutator) deepen(rc *RunContext, work, h *core.Graph, v *core.Vertex) error {
	for rc.Rand.Float64() < m.extendProb {
		if h.Level(v)+1 > m.maxLevel {
			return nil
		}
		free := v.FreeAPs()
		if len(free) == 0 {
			return nil
		}
		nv, err := m.grow(rc, work, h, free[rc.Rand.IntN(len(free))], core.BuildingBlock{}, nil)
		if err != nil {
			if IsRecoverable(err) {
				return nil
			}
			return err
		}
		v = nv
	}
	return nil
}

// changeBranch replaces the branch rooted at t with a new one grown on the
// freed parent AP. Symmetric batches replace each branch by a single
// fragment so that every member gets the same one.
func (m *Mutator) changeBranch(rc *RunContext, work, h *core.Graph, t *core.Vertex, b *batch) error {
	pe := h.EdgeToParent(t)
	if pe == nil {
		return errors.Wrap(core.ErrDisconnection, "ga: cannot change the root branch")
	}
	pap, old := pe.Src(), t.BuildingBlock()
	if err := h.RemoveBranch(t); err != nil {
		return err
	}
	nv, err := m.grow(rc, work, h, pap, old, b)
	if err != nil {
		return err
	}
	if b != nil {
		b.record(nv.ID())
		return nil
	}
	return m.deepen(rc, work, h, nv)
}

// changeLink swaps t for another fragment able to take over all its bonds.
func (m *Mutator) changeLink(rc *RunContext, h *core.Graph, t *core.Vertex, b *batch) error {
	if _, err := h.RemoveCappingGroups(t); err != nil {
		return err
	}
	used, cur := t.UsedAPs(), t.BuildingBlock()
	if b.replaying() {
		if len(used) != len(b.apMap) {
			return errors.Wrapf(ErrSymmetryViolation, "ga: vertex %d has %d bonds, expected %d", t.ID(), len(used), len(b.apMap))
		}
		nv := m.lib.Instantiate(b.entry, t.ID())
		if err := h.ReplaceVertex(t, nv, b.apMap); err != nil {
			return err
		}
		b.record(nv.ID())
		return nil
	}
	frags := m.lib.Fragments()
	for _, i := range rc.Rand.Perm(len(frags)) {
		e := frags[i]
		if e.BuildingBlock() == cur || len(e.APs) < len(used) {
			continue
		}
		nv := m.lib.Instantiate(e, t.ID())
		apMap, ok := mapAPs(h.Rule(), used, nv)
		if !ok {
			continue
		}
		err := h.ReplaceVertex(t, nv, apMap)
		if err == nil {
			if b != nil {
				b.chosen, b.entry, b.apMap = true, e, apMap
				b.record(nv.ID())
			}
			return nil
		}
		if !IsRecoverable(err) {
			return err
		}
	}
	return errors.Wrapf(ErrNoMutationSite, "ga: no replacement for vertex %d", t.ID())
}

// mapAPs assigns every used AP of the old vertex to a distinct AP of nv
// that keeps its bond compatible, trying nv's APs in index order.
func mapAPs(rule apclass.Rule, used []*core.AttachmentPoint, nv *core.Vertex) (map[int]int, bool) {
	out := make(map[int]int, len(used))
	taken := make([]bool, nv.APCount())
	var try func(i int) bool
	try = func(i int) bool {
		if i == len(used) {
			return true
		}
		ap := used[i]
		e := ap.User()
		for j := 0; j < nv.APCount(); j++ {
			if taken[j] {
				continue
			}
			nap := nv.AP(j)
			ok := rule.Compatible(nap.Class(), e.Trg().Class())
			if e.Trg() == ap {
				ok = rule.Compatible(e.Src().Class(), nap.Class())
			}
			if !ok {
				continue
			}
			taken[j], out[ap.Index()] = true, j
			if try(i + 1) {
				return true
			}
			taken[j] = false
			delete(out, ap.Index())
		}
		return false
	}
	return out, try(0)
}

// addLink inserts a fragment on one of the edges from t to its children.
func (m *Mutator) addLink(rc *RunContext, work, h *core.Graph, t *core.Vertex, b *batch) error {
	if err := m.roomFor(work, 1); err != nil {
		return err
	}
	if b.replaying() {
		hap := t.AP(b.host)
		if hap == nil || hap.User() == nil || hap.User().Src() != hap {
			return errors.Wrapf(ErrSymmetryViolation, "ga: vertex %d has no child on AP %d", t.ID(), b.host)
		}
		link := m.lib.Instantiate(b.entry, h.NextVertexID())
		if err := h.InsertVertex(hap.User(), link, b.ap, b.out); err != nil {
			return err
		}
		b.record(link.ID())
		return nil
	}
	var edges []*core.Edge
	for _, e := range h.ChildEdges(t) {
		if c := e.TrgVertex(); !c.IsCap() && !c.IsRCV() {
			edges = append(edges, e)
		}
	}
	for _, ei := range rc.Rand.Perm(len(edges)) {
		e := edges[ei]
		cands := m.lib.LinkFragments(e.Src().Class(), e.Trg().Class())
		for _, ci := range rc.Rand.Perm(len(cands)) {
			c := cands[ci]
			link := m.lib.Instantiate(c.Entry, h.NextVertexID())
			host := e.Src().Index()
			err := h.InsertVertex(e, link, c.In, c.Out)
			if err == nil {
				if b != nil {
					b.chosen, b.entry, b.host, b.ap, b.out = true, c.Entry, host, c.In, c.Out
					b.record(link.ID())
				}
				return nil
			}
			if !IsRecoverable(err) {
				return err
			}
		}
	}
	return errors.Wrapf(ErrNoMutationSite, "ga: no link fits below vertex %d", t.ID())
}

// extend grows a fragment on a free AP of t, mirrored on the symmetric APs
// when the library's symmetry probability for the class says so. In a
// symmetric batch every member grows the same fragment on the same AP and
// neither mirroring nor deeper growth happens.
func (m *Mutator) extend(rc *RunContext, work, h *core.Graph, t *core.Vertex, b *batch) error {
	if _, err := h.RemoveCappingGroups(t); err != nil {
		return err
	}
	if h.Level(t)+1 > m.maxLevel {
		return errors.Wrapf(ErrNoMutationSite, "ga: vertex %d at level limit", t.ID())
	}
	if b.replaying() {
		ap := t.AP(b.host)
		if ap == nil || !ap.IsAvailable() {
			return errors.Wrapf(ErrSymmetryViolation, "ga: AP %d of vertex %d is not free", b.host, t.ID())
		}
		nv, err := m.grow(rc, work, h, ap, core.BuildingBlock{}, b)
		if err != nil {
			return err
		}
		b.record(nv.ID())
		return nil
	}
	free := t.FreeAPs()
	for _, i := range rc.Rand.Perm(len(free)) {
		ap := free[i]
		nv, err := m.grow(rc, work, h, ap, core.BuildingBlock{}, b)
		if err != nil {
			if IsRecoverable(err) {
				continue
			}
			return err
		}
		if b != nil {
			b.host = ap.Index()
			b.record(nv.ID())
			return nil
		}
		if err := m.mirror(rc, work, h, ap, nv); err != nil {
			return err
		}
		return m.deepen(rc, work, h, nv)
	}
	return errors.Wrapf(ErrNoMutationSite, "ga: nothing fits on vertex %d", t.ID())
}

// mirror repeats the fragment grown on ap on every free AP symmetric to
// it and registers the copies as a symmetric set. It does nothing unless
// all symmetric APs can take the same fragment.
func (m *Mutator) mirror(rc *RunContext, work, h *core.Graph, ap *core.AttachmentPoint, nv *core.Vertex) error {
	var twins []*core.AttachmentPoint
	for _, s := range ap.Owner().SymmetricAPsOf(ap) {
		if s != ap {
			twins = append(twins, s)
		}
	}
	if len(twins) == 0 || rc.Rand.Float64() >= m.lib.SymmetryProbability(ap.Class()) {
		return nil
	}
	e, err := m.lib.Lookup(nv.BuildingBlock(), false)
	if err != nil {
		return nil
	}
	in := ap.LinkedAP().Index()
	for _, s := range twins {
		if !s.IsAvailable() || !h.Rule().Compatible(s.Class(), e.APs[in].Class) {
			return nil
		}
	}
	if heavyCount(work)+len(twins) > m.maxVertices {
		return nil
	}
	ids := []core.VertexID{nv.ID()}
	for _, s := range twins {
		c := m.lib.Instantiate(e, h.NextVertexID())
		if err := h.AppendVertex(s, c, c.AP(in), m.lib.BondFor(s.Class())); err != nil {
			return err
		}
		ids = append(ids, c.ID())
	}
	return h.AddSymmetricSet(ids...)
}

// addRing hangs ring-closing vertices on free APs of t and closes rings
// towards partners elsewhere in the graph, up to the configured number of
// rings per mutation.
func (m *Mutator) addRing(ctx context.Context, rc *RunContext, h *core.Graph, t *core.Vertex) error {
	if _, err := h.RemoveCappingGroups(nil); err != nil {
		return err
	}
	var hosts []*core.AttachmentPoint
	for _, ap := range t.FreeAPs() {
		if m.lib.CanHostRingCloser(ap.Class()) {
			hosts = append(hosts, ap)
		}
	}
	if len(hosts) == 0 {
		return errors.Wrapf(ErrNoMutationSite, "ga: vertex %d cannot host a ring-closing vertex", t.ID())
	}
	limit := m.checker.Parameters().MaxRingsPerMutation
	closed := 0
	for _, i := range rc.Rand.Perm(len(hosts)) {
		if closed >= limit {
			break
		}
		ok, err := m.closeRingFrom(ctx, rc, h, t, hosts[i])
		if err != nil {
			return err
		}
		if ok {
			closed++
		}
	}
	if closed == 0 {
		return errors.Wrapf(ErrNoMutationSite, "ga: no closable ring from vertex %d", t.ID())
	}
	return nil
}

type ringPartner struct {
	rcv   *core.Vertex // free RCV already in the graph
	ap    *core.AttachmentPoint
	entry *fragspace.Entry // RCV to hang on ap
}

// closeRingFrom hangs an RCV on hap and tries partners until one ring
// passes the checker. Unused RCVs are removed again.
func (m *Mutator) closeRingFrom(ctx context.Context, rc *RunContext, h *core.Graph, t *core.Vertex, hap *core.AttachmentPoint) (bool, error) {
	// 1. Head RCV.
	closers := m.lib.RingClosersFor(hap.Class())
	if len(closers) == 0 {
		return false, nil
	}
	head, err := m.attachRCV(h, hap, closers[rc.Rand.IntN(len(closers))])
	if err != nil {
		if IsRecoverable(err) {
			return false, nil
		}
		return false, err
	}

	// 2. Partners.
	for _, p := range m.ringPartners(rc, h, t, head) {
		tail := p.rcv
		if tail == nil {
			if tail, err = m.attachRCV(h, p.ap, p.entry); err != nil {
				if IsRecoverable(err) {
					continue
				}
				return false, err
			}
		}
		ok := false
		if path, found := rings.FindPath(head, tail); found {
			if ok, err = m.checker.Check(ctx, &path); err != nil {
				return false, err
			}
			if ok {
				_, err = h.AddRing(path.Vertices, m.lib.BondFor(hap.Class()))
				if err == nil {
					return true, nil
				}
				if !IsRecoverable(err) {
					return false, err
				}
			}
		}
		if p.rcv == nil {
			if err := h.RemoveBranch(tail); err != nil {
				return false, err
			}
		}
	}

	// 3. Nothing closed.
	return false, h.RemoveBranch(head)
}

func (m *Mutator) attachRCV(h *core.Graph, ap *core.AttachmentPoint, e *fragspace.Entry) (*core.Vertex, error) {
	v := m.lib.Instantiate(e, h.NextVertexID())
	if err := h.AppendVertex(ap, v, v.AP(0), m.lib.BondFor(ap.Class())); err != nil {
		return nil, err
	}
	return v, nil
}

// ringPartners lists, shuffled and capped, the free RCVs and free APs off
// t that could close a ring with head.
func (m *Mutator) ringPartners(rc *RunContext, h *core.Graph, t, head *core.Vertex) []ringPartner {
	hc := head.AP(0).Class()
	hostClass := head.AP(0).LinkedAP().Class()
	var out []ringPartner
	for _, r := range h.FreeRCVertices() {
		if r == head {
			continue
		}
		pap := r.AP(0).LinkedAP()
		if pap == nil || pap.Owner() == t {
			continue
		}
		if apclass.CanCloseRing(hc, r.AP(0).Class()) && m.lib.RingClosable(hostClass, pap.Class()) {
			out = append(out, ringPartner{rcv: r})
		}
	}
	for _, u := range h.Vertices() {
		if u == t || u.IsRCV() || u.IsCap() {
			continue
		}
		for _, ap := range u.FreeAPs() {
			if !m.lib.RingClosable(hostClass, ap.Class()) {
				continue
			}
			var fits []*fragspace.Entry
			for _, e := range m.lib.RingClosersFor(ap.Class()) {
				if apclass.CanCloseRing(hc, e.APs[0].Class) {
					fits = append(fits, e)
				}
			}
			if len(fits) > 0 {
				out = append(out, ringPartner{ap: ap, entry: fits[rc.Rand.IntN(len(fits))]})
			}
		}
	}
	rc.Rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if len(out) > maxRingPartners {
		out = out[:maxRingPartners]
	}
	return out
}

package fragspace

import (
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/apclass"
	"github.com/katalvlaran/fragevo/core"
)

// Sentinel errors returned by the fragspace package.
var (
	// ErrBadEntry indicates an entry that cannot be used in its pool.
	ErrBadEntry = errors.New("fragspace: malformed entry")

	// ErrDuplicateEntry indicates two entries with the same ID in one pool.
	ErrDuplicateEntry = errors.New("fragspace: duplicate entry")

	// ErrUnknownBuildingBlock indicates a lookup of an ID not in the pool.
	ErrUnknownBuildingBlock = errors.New("fragspace: unknown building block")

	// ErrEmptyLibrary indicates a library without scaffolds.
	ErrEmptyLibrary = errors.New("fragspace: library has no scaffolds")
)

// APSpec describes one AP of an entry.
type APSpec struct {
	Class     apclass.Class `yaml:"class"`
	Direction *[3]float64   `yaml:"direction,omitempty"`
}

// Entry is one building block of the library.
type Entry struct {
	ID           int               `yaml:"id"`
	Name         string            `yaml:"name,omitempty"`
	APs          []APSpec          `yaml:"aps"`
	SymmetricAPs [][]int           `yaml:"symmetricAPs,omitempty"`
	Properties   map[string]string `yaml:"properties,omitempty"`

	role core.Role
	rcv  bool
}

// Role returns the pool role of e.
func (e *Entry) Role() core.Role { return e.role }

// IsRingCloser reports whether e lives in the ring-closer pool.
func (e *Entry) IsRingCloser() bool { return e.rcv }

// BuildingBlock returns the reference stored on instantiated vertices.
func (e *Entry) BuildingBlock() core.BuildingBlock {
	return core.BuildingBlock{ID: e.ID, Role: e.role}
}

// Classes lists the AP classes of e in order.
func (e *Entry) Classes() []apclass.Class {
	out := make([]apclass.Class, len(e.APs))
	for i, ap := range e.APs {
		out[i] = ap.Class
	}
	return out
}

func (s APSpec) newAP() *core.AttachmentPoint {
	if s.Direction == nil {
		return core.NewAP(s.Class)
	}
	d := s.Direction
	return core.NewAPWithDirection(s.Class, v3.Vec{X: d[0], Y: d[1], Z: d[2]})
}

// Candidate is an entry together with the AP index that would bind.
type Candidate struct {
	Entry *Entry
	AP    int
}

// LinkCandidate is an entry that can sit between two APs: In binds the
// upstream AP and Out the downstream one.
type LinkCandidate struct {
	Entry *Entry
	In    int
	Out   int
}

type poolKey struct {
	role core.Role
	rcv  bool
	id   int
}

// Library is the fragment space.
type Library struct {
	scaffolds   []*Entry
	fragments   []*Entry
	caps        []*Entry
	ringClosers []*Entry
	byKey       map[poolKey]*Entry

	compat        *apclass.Matrix
	rcCompat      *apclass.Matrix
	capping       map[apclass.Class]apclass.Class
	forbiddenEnds map[apclass.Class]bool
	bonds         map[string]core.BondType
	symmetry      map[apclass.Class]float64
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{
		byKey:         make(map[poolKey]*Entry),
		compat:        apclass.NewMatrix(),
		rcCompat:      apclass.NewMatrix(),
		capping:       make(map[apclass.Class]apclass.Class),
		forbiddenEnds: make(map[apclass.Class]bool),
		bonds:         make(map[string]core.BondType),
		symmetry:      make(map[apclass.Class]float64),
	}
}

func (l *Library) add(e Entry, role core.Role, rcv bool) (*Entry, error) {
	if len(e.APs) == 0 {
		return nil, errors.Wrapf(ErrBadEntry, "%s %d has no APs", role, e.ID)
	}
	if (role == core.RoleCap || rcv) && len(e.APs) != 1 {
		return nil, errors.Wrapf(ErrBadEntry, "%s %d must have exactly one AP", role, e.ID)
	}
	if rcv && !e.APs[0].Class.IsRingClosing() {
		return nil, errors.Wrapf(ErrBadEntry, "ring closer %d has class %s", e.ID, e.APs[0].Class)
	}
	for _, grp := range e.SymmetricAPs {
		for _, i := range grp {
			if i < 0 || i >= len(e.APs) {
				return nil, errors.Wrapf(ErrBadEntry, "%s %d: symmetric AP %d", role, e.ID, i)
			}
		}
	}
	key := poolKey{role: role, rcv: rcv, id: e.ID}
	if _, dup := l.byKey[key]; dup {
		return nil, errors.Wrapf(ErrDuplicateEntry, "%s %d", role, e.ID)
	}
	stored := e
	stored.role, stored.rcv = role, rcv
	l.byKey[key] = &stored
	return &stored, nil
}

// AddScaffold adds a scaffold entry.
func (l *Library) AddScaffold(e Entry) error {
	s, err := l.add(e, core.RoleScaffold, false)
	if err == nil {
		l.scaffolds = append(l.scaffolds, s)
	}
	return err
}

// AddFragment adds a fragment entry.
func (l *Library) AddFragment(e Entry) error {
	f, err := l.add(e, core.RoleFragment, false)
	if err == nil {
		l.fragments = append(l.fragments, f)
	}
	return err
}

// AddCap adds a capping group; it must have exactly one AP.
func (l *Library) AddCap(e Entry) error {
	c, err := l.add(e, core.RoleCap, false)
	if err == nil {
		l.caps = append(l.caps, c)
	}
	return err
}

// AddRingCloser adds a ring-closing vertex; its only AP must carry a
// ring-closing class.
func (l *Library) AddRingCloser(e Entry) error {
	r, err := l.add(e, core.RoleFragment, true)
	if err == nil {
		l.ringClosers = append(l.ringClosers, r)
	}
	return err
}

// Allow declares src → trg compatible for every trg.
func (l *Library) Allow(src apclass.Class, trg ...apclass.Class) *Library {
	l.compat.Allow(src, trg...)
	return l
}

// AllowRingClosure declares that APs of class a may be joined through a
// ring with APs of any class in b.
func (l *Library) AllowRingClosure(a apclass.Class, b ...apclass.Class) *Library {
	l.rcCompat.Allow(a, b...)
	return l
}

// SetCapping records that free APs of class c are saturated by a cap whose
// AP has class capClass.
func (l *Library) SetCapping(c, capClass apclass.Class) *Library {
	l.capping[c] = capClass
	return l
}

// ForbidEnd marks c as a class that must not stay free.
func (l *Library) ForbidEnd(c apclass.Class) *Library {
	l.forbiddenEnds[c] = true
	return l
}

// SetBond records the bond type of edges whose source class has the given
// cutting-rule name.
func (l *Library) SetBond(rule string, b core.BondType) *Library {
	l.bonds[rule] = b
	return l
}

// SetSymmetry records the probability of symmetric growth on class c.
func (l *Library) SetSymmetry(c apclass.Class, p float64) *Library {
	l.symmetry[c] = p
	return l
}

// Scaffolds returns the scaffold pool.
func (l *Library) Scaffolds() []*Entry { return append([]*Entry(nil), l.scaffolds...) }

// Fragments returns the fragment pool.
func (l *Library) Fragments() []*Entry { return append([]*Entry(nil), l.fragments...) }

// Caps returns the capping pool.
func (l *Library) Caps() []*Entry { return append([]*Entry(nil), l.caps...) }

// RingClosers returns the ring-closer pool.
func (l *Library) RingClosers() []*Entry { return append([]*Entry(nil), l.ringClosers...) }

// Lookup finds the entry a vertex was built from. Ring-closing vertices
// are looked up in the ring-closer pool.
func (l *Library) Lookup(bb core.BuildingBlock, rcv bool) (*Entry, error) {
	e, ok := l.byKey[poolKey{role: bb.Role, rcv: rcv, id: bb.ID}]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBuildingBlock, "%s %d", bb.Role, bb.ID)
	}
	return e, nil
}

// Instantiate builds a detached vertex from e.
func (l *Library) Instantiate(e *Entry, id core.VertexID) *core.Vertex {
	var v *core.Vertex
	switch {
	case e.rcv:
		v = core.NewRingClosingVertex(id, e.ID, e.APs[0].Class)
	case e.role == core.RoleCap:
		v = core.NewCap(id, e.ID, e.APs[0].newAP())
	default:
		aps := make([]*core.AttachmentPoint, len(e.APs))
		for i, s := range e.APs {
			aps[i] = s.newAP()
		}
		v = core.NewFragment(id, e.BuildingBlock(), aps...)
	}
	for _, grp := range e.SymmetricAPs {
		_ = v.AddSymmetricAPs(grp...)
	}
	for k, val := range e.Properties {
		v.Properties[k] = val
	}
	return v
}

// Rule returns the compatibility rule for graphs built from l: the
// compatibility matrix, the capping map, and any ring-closing target on a
// source class listed in the ring-closure matrix.
func (l *Library) Rule() apclass.Rule {
	return apclass.RuleFunc(func(src, trg apclass.Class) bool {
		if trg.IsRingClosing() {
			return l.rcCompat.Has(src)
		}
		if c, ok := l.capping[src]; ok && c == trg {
			return true
		}
		return l.compat.Compatible(src, trg)
	})
}

// Compatible reports src → trg under the compatibility matrix.
func (l *Library) Compatible(src, trg apclass.Class) bool { return l.compat.Compatible(src, trg) }

// BondFor returns the bond type for an edge leaving an AP of class src.
func (l *Library) BondFor(src apclass.Class) core.BondType {
	if b, ok := l.bonds[src.Rule]; ok {
		return b
	}
	return core.BondSingle
}

// CompatibleFragments lists every fragment AP that may bind below an AP of
// class src, in pool then AP order.
func (l *Library) CompatibleFragments(src apclass.Class) []Candidate {
	var out []Candidate
	for _, e := range l.fragments {
		for i, ap := range e.APs {
			if l.compat.Compatible(src, ap.Class) {
				out = append(out, Candidate{Entry: e, AP: i})
			}
		}
	}
	return out
}

// LinkFragments lists fragments that can be inserted on an edge from an AP
// of class src to an AP of class trg.
func (l *Library) LinkFragments(src, trg apclass.Class) []LinkCandidate {
	var out []LinkCandidate
	for _, e := range l.fragments {
		for i, in := range e.APs {
			if !l.compat.Compatible(src, in.Class) {
				continue
			}
			for j, o := range e.APs {
				if j != i && l.compat.Compatible(o.Class, trg) {
					out = append(out, LinkCandidate{Entry: e, In: i, Out: j})
				}
			}
		}
	}
	return out
}

// CapFor returns the capping group for class c.
func (l *Library) CapFor(c apclass.Class) (*Entry, bool) {
	capClass, ok := l.capping[c]
	if !ok {
		return nil, false
	}
	for _, e := range l.caps {
		if e.APs[0].Class == capClass {
			return e, true
		}
	}
	return nil, false
}

// IsForbiddenEnd reports whether c must not stay free.
func (l *Library) IsForbiddenEnd(c apclass.Class) bool { return l.forbiddenEnds[c] }

// CanHostRingCloser reports whether an RCV may hang on an AP of class c.
func (l *Library) CanHostRingCloser(c apclass.Class) bool { return l.rcCompat.Has(c) }

// RingClosable reports whether APs of classes a and b may be joined by a
// ring, in either direction.
func (l *Library) RingClosable(a, b apclass.Class) bool {
	return l.rcCompat.Compatible(a, b) || l.rcCompat.Compatible(b, a)
}

// RingClosersFor returns the ring closers that may hang on class c, sorted
// by class.
func (l *Library) RingClosersFor(c apclass.Class) []*Entry {
	if !l.rcCompat.Has(c) {
		return nil
	}
	out := append([]*Entry(nil), l.ringClosers...)
	sort.SliceStable(out, func(i, j int) bool {
		return apclass.Less(out[i].APs[0].Class, out[j].APs[0].Class)
	})
	return out
}

// SymmetryProbability returns the chance of symmetric growth on class c.
func (l *Library) SymmetryProbability(c apclass.Class) float64 { return l.symmetry[c] }

// Validate checks that l can seed graphs and that every capping target
// exists.
func (l *Library) Validate() error {
	if len(l.scaffolds) == 0 {
		return ErrEmptyLibrary
	}
	for c := range l.capping {
		if _, ok := l.CapFor(c); !ok {
			return errors.Wrapf(ErrUnknownBuildingBlock, "no cap with class %s for %s", l.capping[c], c)
		}
	}
	return nil
}

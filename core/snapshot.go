// File: snapshot.go
// Role: Plain-data view of a graph for serializers and deep comparison.
//
// A Snapshot holds no pointers into the live graph. Restore(Snapshot())
// rebuilds an equal graph, nested templates included. No file format is
// fixed here; the yaml tags only make the structs convenient to encode.

package core

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/apclass"
)

// Snapshot is the plain-data form of a Graph.
type Snapshot struct {
	Vertices      []VertexSnapshot `yaml:"vertices"`
	Edges         []EdgeSnapshot   `yaml:"edges,omitempty"`
	Rings         []RingSnapshot   `yaml:"rings,omitempty"`
	SymmetricSets [][]VertexID     `yaml:"symmetricSets,omitempty"`
}

// VertexSnapshot is the plain-data form of a Vertex.
type VertexSnapshot struct {
	ID            VertexID          `yaml:"id"`
	Kind          Kind              `yaml:"kind"`
	BuildingBlock BuildingBlock     `yaml:"buildingBlock"`
	RCV           bool              `yaml:"rcv,omitempty"`
	APs           []APSnapshot      `yaml:"aps,omitempty"`
	Allowed       MutationSet       `yaml:"allowed"`
	SymmetricAPs  [][]int           `yaml:"symmetricAPs,omitempty"`
	Properties    map[string]string `yaml:"properties,omitempty"`
	Contract      ContractLevel     `yaml:"contract,omitempty"`
	Inner         *Snapshot         `yaml:"inner,omitempty"`
	Projection    []APRef           `yaml:"projection,omitempty"`
}

// APSnapshot is the plain-data form of an AttachmentPoint.
type APSnapshot struct {
	Class     apclass.Class `yaml:"class"`
	Direction *[3]float64   `yaml:"direction,omitempty"`
}

// EdgeSnapshot is the plain-data form of an Edge.
type EdgeSnapshot struct {
	Src  APRef    `yaml:"src"`
	Trg  APRef    `yaml:"trg"`
	Bond BondType `yaml:"bond"`
}

// RingSnapshot is the plain-data form of a Ring.
type RingSnapshot struct {
	Vertices []VertexID `yaml:"vertices"`
	Bond     BondType   `yaml:"bond"`
}

// Snapshot returns the plain-data form of g.
func (g *Graph) Snapshot() *Snapshot {
	s := &Snapshot{}
	for _, v := range g.vertices {
		s.Vertices = append(s.Vertices, v.snapshot())
	}
	for _, e := range g.edges {
		s.Edges = append(s.Edges, EdgeSnapshot{Src: e.src.Ref(), Trg: e.trg.Ref(), Bond: e.bond})
	}
	for _, r := range g.rings {
		rs := RingSnapshot{Bond: r.bond}
		for _, m := range r.vertices {
			rs.Vertices = append(rs.Vertices, m.id)
		}
		s.Rings = append(s.Rings, rs)
	}
	for _, set := range g.symSets {
		s.SymmetricSets = append(s.SymmetricSets, set.IDs())
	}
	return s
}

func (v *Vertex) snapshot() VertexSnapshot {
	vs := VertexSnapshot{
		ID:            v.id,
		Kind:          v.kind,
		BuildingBlock: v.bb,
		RCV:           v.rcv,
		Allowed:       v.allowed,
		SymmetricAPs:  v.SymmetricAPs(),
		Contract:      v.contract,
	}
	if len(v.Properties) > 0 {
		vs.Properties = make(map[string]string, len(v.Properties))
		for k, val := range v.Properties {
			vs.Properties[k] = val
		}
	}
	for _, ap := range v.aps {
		as := APSnapshot{Class: ap.class}
		if ap.dir != nil {
			as.Direction = &[3]float64{ap.dir.X, ap.dir.Y, ap.dir.Z}
		}
		vs.APs = append(vs.APs, as)
	}
	if v.inner != nil {
		vs.Inner = v.inner.Snapshot()
		vs.Projection = append([]APRef(nil), v.innerRef...)
	}
	return vs
}

// Restore rebuilds a graph from its plain-data form and validates it.
// Inner graphs share rule.
func Restore(s *Snapshot, rule apclass.Rule) (*Graph, error) {
	if s == nil {
		return nil, errors.New("core: nil snapshot")
	}
	g := NewGraph(WithRule(rule))

	// 1. Vertices.
	for _, vs := range s.Vertices {
		v, err := restoreVertex(vs, rule)
		if err != nil {
			return nil, err
		}
		if err := g.insertVertex(v); err != nil {
			return nil, err
		}
	}

	// 2. Edges.
	for i, es := range s.Edges {
		src, trg := g.apAt(es.Src), g.apAt(es.Trg)
		if src == nil || trg == nil {
			return nil, errors.Wrapf(ErrBadAPIndex, "core: edge %d", i)
		}
		if _, err := g.addEdge(src, trg, es.Bond, false); err != nil {
			return nil, errors.Wrapf(err, "core: edge %d", i)
		}
	}

	// 3. Rings and symmetric sets.
	for i, rs := range s.Rings {
		r := &Ring{bond: rs.Bond}
		for _, id := range rs.Vertices {
			m := g.byID[id]
			if m == nil {
				return nil, errors.Wrapf(ErrVertexNotFound, "core: ring %d member %d", i, id)
			}
			r.vertices = append(r.vertices, m)
		}
		g.rings = append(g.rings, r)
	}
	for _, ids := range s.SymmetricSets {
		g.symSets = append(g.symSets, NewSymmetricSet(ids...))
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func restoreVertex(vs VertexSnapshot, rule apclass.Rule) (*Vertex, error) {
	v := newVertex(vs.ID, vs.Kind, vs.BuildingBlock, nil, vs.Allowed)
	v.rcv = vs.RCV
	v.contract = vs.Contract
	for _, as := range vs.APs {
		ap := NewAP(as.Class)
		if as.Direction != nil {
			ap = NewAPWithDirection(as.Class, v3.Vec{X: as.Direction[0], Y: as.Direction[1], Z: as.Direction[2]})
		}
		v.addAP(ap)
	}
	for k, val := range vs.Properties {
		v.Properties[k] = val
	}
	for _, grp := range vs.SymmetricAPs {
		if err := v.AddSymmetricAPs(grp...); err != nil {
			return nil, err
		}
	}
	if vs.Inner != nil {
		inner, err := Restore(vs.Inner, rule)
		if err != nil {
			return nil, errors.Wrapf(err, "core: inner graph of %d", vs.ID)
		}
		inner.jacket = v
		v.inner = inner
		v.innerRef = append([]APRef(nil), vs.Projection...)
		if err := v.validateProjection(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

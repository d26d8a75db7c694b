// File: edge.go
// Role: Directed connector between two attachment points.

package core

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/apclass"
)

// Edge joins a source AP (nearer the root) to a target AP. The direction is
// bookkeeping only; chemically the bond is symmetric.
type Edge struct {
	src  *AttachmentPoint
	trg  *AttachmentPoint
	bond BondType
}

// NewEdge validates that both APs are free and compatible under rule, then
// binds them. A nil rule accepts every pair of classes.
func NewEdge(src, trg *AttachmentPoint, bond BondType, rule apclass.Rule) (*Edge, error) {
	// 1. Validate inputs.
	if src == nil || trg == nil {
		return nil, ErrNilAP
	}
	if src == trg || (src.owner != nil && src.owner == trg.owner) {
		return nil, errors.Wrap(ErrIncompatibleAP, "core: edge endpoints on the same vertex")
	}
	if !src.IsAvailable() || !trg.IsAvailable() {
		return nil, errors.Wrapf(ErrCapacity, "core: edge %s -> %s", src, trg)
	}
	if !src.IsCompatibleWith(trg, rule) {
		return nil, errors.Wrapf(ErrIncompatibleAP, "core: %s -> %s", src.class, trg.class)
	}

	// 2. Bind.
	return bindEdge(src, trg, bond)
}

// bindEdge binds both APs without consulting the compatibility rule.
func bindEdge(src, trg *AttachmentPoint, bond BondType) (*Edge, error) {
	e := &Edge{src: src, trg: trg, bond: bond}
	if err := src.bind(e); err != nil {
		return nil, errors.Wrapf(ErrCapacity, "core: source %s", src)
	}
	if err := trg.bind(e); err != nil {
		_ = src.free()
		return nil, errors.Wrapf(ErrCapacity, "core: target %s", trg)
	}
	return e, nil
}

// unbind frees both endpoints.
func (e *Edge) unbind() {
	if e.src.user == e {
		_ = e.src.free()
	}
	if e.trg.user == e {
		_ = e.trg.free()
	}
}

// Src returns the source AP.
func (e *Edge) Src() *AttachmentPoint { return e.src }

// Trg returns the target AP.
func (e *Edge) Trg() *AttachmentPoint { return e.trg }

// SrcVertex returns the owner of the source AP.
func (e *Edge) SrcVertex() *Vertex { return e.src.owner }

// TrgVertex returns the owner of the target AP.
func (e *Edge) TrgVertex() *Vertex { return e.trg.owner }

// BondType returns the bond order tag.
func (e *Edge) BondType() BondType { return e.bond }

// SetBondType replaces the bond order tag.
func (e *Edge) SetBondType(b BondType) { e.bond = b }

// Other returns the endpoint opposite to ap, or nil if ap is not an endpoint.
func (e *Edge) Other(ap *AttachmentPoint) *AttachmentPoint {
	switch ap {
	case e.src:
		return e.trg
	case e.trg:
		return e.src
	}
	return nil
}

// Reverse swaps source and target in place and returns the edge. Used when
// a sub-tree is re-rooted.
func (e *Edge) Reverse() *Edge {
	e.src, e.trg = e.trg, e.src
	return e
}

// String renders "src -> trg (bond)".
func (e *Edge) String() string {
	return fmt.Sprintf("%s -> %s (%s)", e.src, e.trg, e.bond)
}

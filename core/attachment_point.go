// File: attachment_point.go
// Role: Typed connection ports owned by vertices.

package core

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/fragevo/apclass"
)

// AttachmentPoint is a typed port on a vertex. It is used by at most one
// Edge; a nil user means the AP is available.
type AttachmentPoint struct {
	owner *Vertex // non-owning
	class apclass.Class
	dir   *v3.Vec
	user  *Edge
}

// NewAP returns a detached AP of the given class.
func NewAP(class apclass.Class) *AttachmentPoint {
	return &AttachmentPoint{class: class}
}

// NewAPWithDirection returns a detached AP with a direction vector.
// The vector is opaque to this package; geometry builders consume it.
func NewAPWithDirection(class apclass.Class, dir v3.Vec) *AttachmentPoint {
	d := dir
	return &AttachmentPoint{class: class, dir: &d}
}

// Owner returns the vertex holding this AP, or nil when detached.
func (ap *AttachmentPoint) Owner() *Vertex { return ap.owner }

// Class returns the compatibility class.
func (ap *AttachmentPoint) Class() apclass.Class { return ap.class }

// Direction returns a copy of the direction vector, if any.
func (ap *AttachmentPoint) Direction() (v3.Vec, bool) {
	if ap.dir == nil {
		return v3.Vec{}, false
	}
	return *ap.dir, true
}

// Index returns the position of the AP in its owner's list, or -1.
func (ap *AttachmentPoint) Index() int {
	if ap.owner == nil {
		return -1
	}
	for i, other := range ap.owner.aps {
		if other == ap {
			return i
		}
	}
	return -1
}

// Ref returns the owner/index address of the AP.
func (ap *AttachmentPoint) Ref() APRef {
	if ap.owner == nil {
		return APRef{AP: -1}
	}
	return APRef{Vertex: ap.owner.id, AP: ap.Index()}
}

// IsAvailable reports whether no edge uses the AP.
func (ap *AttachmentPoint) IsAvailable() bool { return ap.user == nil }

// User returns the edge using the AP, or nil.
func (ap *AttachmentPoint) User() *Edge { return ap.user }

// LinkedAP returns the AP at the other end of the user edge, or nil.
func (ap *AttachmentPoint) LinkedAP() *AttachmentPoint {
	if ap.user == nil {
		return nil
	}
	return ap.user.Other(ap)
}

// IsRingClosing reports whether the class is one of the ring-closing classes.
func (ap *AttachmentPoint) IsRingClosing() bool { return ap.class.IsRingClosing() }

// IsCompatibleWith reports whether ap (as source, nearer the root) may bond
// to other (as target) under rule. A nil rule accepts everything.
func (ap *AttachmentPoint) IsCompatibleWith(other *AttachmentPoint, rule apclass.Rule) bool {
	if other == nil {
		return false
	}
	if rule == nil {
		return true
	}
	return rule.Compatible(ap.class, other.class)
}

// bind marks the AP as used by e.
func (ap *AttachmentPoint) bind(e *Edge) error {
	if ap.user != nil {
		return ErrAPInUse
	}
	ap.user = e
	return nil
}

// free releases the AP.
func (ap *AttachmentPoint) free() error {
	if ap.user == nil {
		return ErrAPAlreadyFree
	}
	ap.user = nil
	return nil
}

// clone copies class and direction. Binding state is not copied.
func (ap *AttachmentPoint) clone() *AttachmentPoint {
	out := &AttachmentPoint{class: ap.class}
	if ap.dir != nil {
		d := *ap.dir
		out.dir = &d
	}
	return out
}

// String renders "<vertex>:<index>[class]".
func (ap *AttachmentPoint) String() string {
	if ap.owner == nil {
		return fmt.Sprintf("-:-[%s]", ap.class)
	}
	return fmt.Sprintf("%d:%d[%s]", ap.owner.id, ap.Index(), ap.class)
}

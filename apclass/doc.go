// Package apclass defines attachment-point compatibility classes and the
// rules deciding which classes may be bonded together.
//
// A Class is an opaque token of the form "rule:subclass" (e.g. "amine:0").
// The core graph never interprets classes itself: every compatibility
// decision is delegated to a Rule injected at graph construction time.
//
// Provided rules:
//
//	Any        every pair is compatible (fixtures, exploratory runs)
//	SameRule   classes are compatible when their rule names are equal
//	*Matrix    explicit directed table src -> {trg...}, loadable from YAML
//
// Ring-closing classes (ATplus, ATminus, ATneutral) mark the single AP of a
// ring-closing vertex; RingClosingPartner tells which class may close a ring
// with a given one.
package apclass

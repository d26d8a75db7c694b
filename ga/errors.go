// File: errors.go
// Role: Failure taxonomy of the genetic operators.
//
// Every operator error maps to one FailureKind. Recoverable kinds mean
// "this attempt failed, the graph is untouched, try another choice";
// StructuralInvariant means a defect and ends the candidate.

package ga

import (
	"context"

	"github.com/pkg/errors"

	"github.com/katalvlaran/fragevo/core"
)

var (
	// ErrNoMutationSite indicates that no vertex or AP satisfies the
	// preconditions of the requested operation.
	ErrNoMutationSite = errors.New("ga: no mutation site")

	// ErrNoApplicableType indicates that the chosen vertex cannot undergo
	// the requested mutation type.
	ErrNoApplicableType = errors.New("ga: mutation type not applicable")

	// ErrSymmetryViolation indicates that a symmetric batch could not be
	// applied to every member; nothing was applied.
	ErrSymmetryViolation = errors.New("ga: symmetric edit not applicable to all members")

	// ErrNilLibrary is returned by NewMutator without a fragment library.
	ErrNilLibrary = errors.New("ga: nil fragment library")

	// ErrBadRequest indicates a malformed crossover request.
	ErrBadRequest = errors.New("ga: malformed crossover request")
)

// FailureKind classifies operator errors.
type FailureKind int

const (
	// NoFailure is the kind of a nil error.
	NoFailure FailureKind = iota
	IncompatibleAP
	Capacity
	Disconnection
	NoMutationSite
	NoApplicableType
	SymmetryViolation
	StructuralInvariant
	Canceled
	// Other covers caller mistakes and collaborator errors.
	Other
)

var kindNames = [...]string{
	"None", "IncompatibleAP", "Capacity", "Disconnection", "NoMutationSite",
	"NoApplicableType", "SymmetryViolation", "StructuralInvariant", "Canceled", "Other",
}

// String returns the kind name used in logs and metric labels.
func (k FailureKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Other"
	}
	return kindNames[k]
}

// Classify returns the kind of err. The order matters: an invariant
// violation wins over whatever recoverable error it wraps.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return NoFailure
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Canceled
	case errors.Is(err, core.ErrStructuralInvariant), errors.Is(err, core.ErrDuplicateVertexID):
		return StructuralInvariant
	case errors.Is(err, ErrSymmetryViolation):
		return SymmetryViolation
	case errors.Is(err, core.ErrIncompatibleAP), errors.Is(err, core.ErrBadAPIndex):
		return IncompatibleAP
	case errors.Is(err, core.ErrCapacity), errors.Is(err, core.ErrAPInUse):
		return Capacity
	case errors.Is(err, core.ErrDisconnection), errors.Is(err, core.ErrVertexNotFound), errors.Is(err, core.ErrEdgeNotFound):
		return Disconnection
	case errors.Is(err, ErrNoMutationSite), errors.Is(err, core.ErrBadRing):
		return NoMutationSite
	case errors.Is(err, ErrNoApplicableType), errors.Is(err, core.ErrNotInRing):
		return NoApplicableType
	}
	return Other
}

// IsRecoverable reports whether err left the graph untouched and another
// attempt may succeed.
func IsRecoverable(err error) bool {
	switch Classify(err) {
	case IncompatibleAP, Capacity, Disconnection, NoMutationSite, NoApplicableType, SymmetryViolation:
		return true
	}
	return false
}

// Package core declares the fragment graph model: attachment points, vertices,
// edges, rings, symmetric sets and the Graph that owns them.
//
// This file declares the sentinel errors and the small value types shared by
// every other file of the package (identifiers, bond types, vertex kinds,
// building-block roles and template contract levels).
//
// Errors:
//
//	ErrIncompatibleAP      - AP classes do not satisfy the compatibility rule.
//	ErrCapacity            - an AP (or vertex) has no free connection left.
//	ErrDisconnection       - an edit would disconnect the tree or drop the root.
//	ErrStructuralInvariant - a post-edit consistency check failed.
//	ErrVertexNotFound      - the vertex is not a member of the graph.
//	ErrDuplicateVertexID   - a vertex ID is already taken in the graph.
//	ErrAPInUse             - bind on an AP that is already used.
//	ErrAPAlreadyFree       - free on an AP that is already available.
package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Sentinel errors for graph editing.
var (
	// ErrIncompatibleAP indicates that two APs do not satisfy the injected rule.
	ErrIncompatibleAP = errors.New("core: incompatible attachment points")

	// ErrCapacity indicates that an AP has no remaining free connection.
	ErrCapacity = errors.New("core: attachment point not available")

	// ErrDisconnection indicates an edit that would leave the tree disconnected.
	ErrDisconnection = errors.New("core: edit would disconnect the graph")

	// ErrStructuralInvariant indicates a failed consistency check after an edit.
	ErrStructuralInvariant = errors.New("core: structural invariant violated")

	// ErrVertexNotFound indicates that a vertex is not a member of the graph.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrDuplicateVertexID indicates that a vertex ID is already used.
	ErrDuplicateVertexID = errors.New("core: duplicate vertex ID")

	// ErrAPInUse is returned when binding an AP that is already used.
	ErrAPInUse = errors.New("core: attachment point already in use")

	// ErrAPAlreadyFree is returned when freeing an AP that is not used.
	ErrAPAlreadyFree = errors.New("core: attachment point already free")

	// ErrNilVertex indicates a nil vertex argument.
	ErrNilVertex = errors.New("core: vertex is nil")

	// ErrNilAP indicates a nil attachment point argument.
	ErrNilAP = errors.New("core: attachment point is nil")

	// ErrAttachedVertex indicates that a vertex already belongs to a graph.
	ErrAttachedVertex = errors.New("core: vertex already belongs to a graph")

	// ErrRootExists is returned by AddVertex on a non-empty graph.
	ErrRootExists = errors.New("core: graph already has a root")

	// ErrEdgeNotFound indicates that an edge is not a member of the graph.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadRing indicates a ring that is not a valid cycle over tree edges.
	ErrBadRing = errors.New("core: invalid ring")

	// ErrNotInRing indicates a ring operation on a vertex outside every ring.
	ErrNotInRing = errors.New("core: vertex is not part of a ring")

	// ErrBadAPIndex indicates an AP index out of range for its vertex.
	ErrBadAPIndex = errors.New("core: attachment point index out of range")

	// ErrNotTemplate indicates a template-only call on another kind of vertex.
	ErrNotTemplate = errors.New("core: vertex is not a template")
)

// VertexID identifies a vertex within one graph. IDs are not global.
type VertexID int64

// APRef addresses an attachment point by owner ID and position.
type APRef struct {
	Vertex VertexID `yaml:"vertex"`
	AP     int      `yaml:"ap"`
}

// String renders the reference as "<vertex>:<ap>".
func (r APRef) String() string { return fmt.Sprintf("%d:%d", r.Vertex, r.AP) }

// BondType tags an edge or a ring chord with a bond order.
type BondType int

// Bond types.
const (
	BondNone BondType = iota
	BondSingle
	BondDouble
	BondTriple
	BondQuadruple
	BondAny
	BondUndefined
)

var bondNames = [...]string{"NONE", "SINGLE", "DOUBLE", "TRIPLE", "QUADRUPLE", "ANY", "UNDEFINED"}

// String returns the upper-case bond name.
func (b BondType) String() string {
	if b < 0 || int(b) >= len(bondNames) {
		return fmt.Sprintf("BondType(%d)", int(b))
	}
	return bondNames[b]
}

// ParseBondType is the inverse of String; it is case-insensitive.
func ParseBondType(s string) (BondType, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range bondNames {
		if n == up {
			return BondType(i), nil
		}
	}
	return BondUndefined, errors.Errorf("core: unknown bond type %q", s)
}

// MarshalYAML writes the bond name.
func (b BondType) MarshalYAML() (interface{}, error) { return b.String(), nil }

// UnmarshalYAML reads a bond name.
func (b *BondType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseBondType(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Kind discriminates vertex variants.
type Kind int

// Vertex kinds.
const (
	KindFragment Kind = iota
	KindCap
	KindEmpty
	KindTemplate
)

// String returns a lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindFragment:
		return "fragment"
	case KindCap:
		return "cap"
	case KindEmpty:
		return "empty"
	case KindTemplate:
		return "template"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Role is the building-block role a vertex was instantiated for.
type Role int

// Building-block roles.
const (
	RoleUndefined Role = iota
	RoleScaffold
	RoleFragment
	RoleCap
)

// String returns a short code used in chain identifiers.
func (r Role) String() string {
	switch r {
	case RoleScaffold:
		return "S"
	case RoleFragment:
		return "F"
	case RoleCap:
		return "C"
	}
	return "U"
}

// BuildingBlock references the library entry a vertex was built from.
type BuildingBlock struct {
	ID   int  `yaml:"id"`
	Role Role `yaml:"role"`
}

// ContractLevel restricts what may happen inside a template.
type ContractLevel int

// Contract levels.
const (
	// ContractFree lets mutations reach inner vertices.
	ContractFree ContractLevel = iota
	// ContractFixed keeps the inner graph untouched.
	ContractFixed
	// ContractFixedStructure allows only link substitution inside.
	ContractFixedStructure
)

// String returns the contract name.
func (c ContractLevel) String() string {
	switch c {
	case ContractFree:
		return "free"
	case ContractFixed:
		return "fixed"
	case ContractFixedStructure:
		return "fixed-structure"
	}
	return fmt.Sprintf("ContractLevel(%d)", int(c))
}

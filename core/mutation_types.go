// File: mutation_types.go
// Role: Mutation taxonomy and per-vertex capability sets.

package core

import (
	"strings"

	"github.com/pkg/errors"
)

// MutationType names one structural edit the genetic operators can apply.
type MutationType int

// Mutation types, in the order used for deterministic enumeration.
const (
	ChangeBranch MutationType = iota
	ChangeLink
	DeleteLink
	AddLink
	Extend
	AddRing
	Delete
	DeleteChain

	numMutationTypes
)

var mutationNames = [...]string{
	"CHANGEBRANCH", "CHANGELINK", "DELETELINK", "ADDLINK",
	"EXTEND", "ADDRING", "DELETE", "DELETECHAIN",
}

// String returns the upper-case mutation name.
func (m MutationType) String() string {
	if m < 0 || m >= numMutationTypes {
		return "UNKNOWN"
	}
	return mutationNames[m]
}

// ParseMutationType is the case-insensitive inverse of String.
func ParseMutationType(s string) (MutationType, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range mutationNames {
		if n == up {
			return MutationType(i), nil
		}
	}
	return 0, errors.Errorf("core: unknown mutation type %q", s)
}

// AllMutationTypes lists every type in enumeration order.
func AllMutationTypes() []MutationType {
	out := make([]MutationType, numMutationTypes)
	for i := range out {
		out[i] = MutationType(i)
	}
	return out
}

// MutationSet is a bit set of mutation types.
type MutationSet uint16

// NoMutations is the empty set.
const NoMutations MutationSet = 0

// AllMutations holds every mutation type.
const AllMutations MutationSet = 1<<numMutationTypes - 1

// MutationSetOf builds a set from the given types.
func MutationSetOf(types ...MutationType) MutationSet {
	var s MutationSet
	for _, t := range types {
		s = s.With(t)
	}
	return s
}

// Has reports membership.
func (s MutationSet) Has(t MutationType) bool { return s&(1<<uint(t)) != 0 }

// With returns s plus t.
func (s MutationSet) With(t MutationType) MutationSet { return s | 1<<uint(t) }

// Without returns s minus t.
func (s MutationSet) Without(t MutationType) MutationSet { return s &^ (1 << uint(t)) }

// Minus returns s without any member of o.
func (s MutationSet) Minus(o MutationSet) MutationSet { return s &^ o }

// IsEmpty reports whether no type is set.
func (s MutationSet) IsEmpty() bool { return s&AllMutations == 0 }

// Types lists the members in enumeration order.
func (s MutationSet) Types() []MutationType {
	out := make([]MutationType, 0, numMutationTypes)
	for t := MutationType(0); t < numMutationTypes; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// String joins member names with "|".
func (s MutationSet) String() string {
	types := s.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, "|")
}

// MarshalYAML writes the set as a list of names.
func (s MutationSet) MarshalYAML() (interface{}, error) {
	types := s.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names, nil
}

// UnmarshalYAML reads a list of names.
func (s *MutationSet) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var names []string
	if err := unmarshal(&names); err != nil {
		return err
	}
	var out MutationSet
	for _, n := range names {
		t, err := ParseMutationType(n)
		if err != nil {
			return err
		}
		out = out.With(t)
	}
	*s = out
	return nil
}

// AvailableMutationTypes returns the types this vertex can currently undergo,
// after removing the excluded ones.
//
// Rules, applied on top of the vertex's allowed set:
//   - caps and ring-closing vertices are never mutation sites;
//   - add-link and change-link need at least one child;
//   - extend needs a free AP or an AP used by a capping group;
//   - delete-chain is refused on branching vertices (more than two
//     non-cap connections);
//   - delete-link needs at least two used APs;
//   - scaffolds only accept growth (extend, add-link, add-ring);
//   - the root cannot be deleted;
//   - vertices inside a template honour the template's contract level.
func (v *Vertex) AvailableMutationTypes(excluded MutationSet) MutationSet {
	if v.kind == KindCap || v.bb.Role == RoleCap || v.rcv {
		return NoMutations
	}
	set := v.allowed
	if g := v.graph; g != nil {
		if len(g.Children(v)) == 0 {
			set = set.Without(AddLink).Without(ChangeLink)
		}
		if len(v.FreeAPs())+len(v.CappedAPs()) == 0 {
			set = set.Without(Extend)
		}
		if v.nonCapConnections() > 2 {
			set = set.Without(DeleteChain)
		}
		if g.EdgeToParent(v) == nil {
			set = set.Without(Delete).Without(DeleteLink).Without(ChangeBranch)
		}
		if j := g.jacket; j != nil {
			switch j.contract {
			case ContractFixed:
				return NoMutations
			case ContractFixedStructure:
				set &= MutationSetOf(ChangeLink)
			}
		}
	}
	if len(v.UsedAPs()) < 2 {
		set = set.Without(DeleteLink)
	}
	if v.bb.Role == RoleScaffold {
		set = set.Minus(MutationSetOf(DeleteChain, DeleteLink, ChangeLink, ChangeBranch, Delete))
	}
	return set.Minus(excluded)
}

package rings

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Sentinel errors returned by the rings package.
var (
	// ErrUnknownStrategy indicates a strategy name that is neither
	// BONDOVERLAP nor BONDCOMPLEMENTARITY.
	ErrUnknownStrategy = errors.New("rings: unknown closability strategy")

	// ErrBadTolerance indicates a non-positive distance or extra tolerance.
	ErrBadTolerance = errors.New("rings: tolerances must be positive")

	// ErrBadRingSize indicates ring size bounds that cannot be satisfied.
	ErrBadRingSize = errors.New("rings: bad ring size bounds")
)

// Strategy selects the closability predicate.
type Strategy int

const (
	// BondOverlap requires the head and tail bonds to overlap.
	BondOverlap Strategy = iota
	// BondComplementarity requires the two bonds to complete each other.
	BondComplementarity
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case BondOverlap:
		return "BONDOVERLAP"
	case BondComplementarity:
		return "BONDCOMPLEMENTARITY"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy is the case-insensitive inverse of String.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BONDOVERLAP":
		return BondOverlap, nil
	case "BONDCOMPLEMENTARITY":
		return BondComplementarity, nil
	}
	return 0, errors.Wrapf(ErrUnknownStrategy, "%q", s)
}

// MarshalYAML writes the strategy name.
func (s Strategy) MarshalYAML() (interface{}, error) { return s.String(), nil }

// UnmarshalYAML reads a strategy name.
func (s *Strategy) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseStrategy(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Tolerances are the numeric knobs of the closability predicate.
//
// Distance scales the mean bond length into the distance window; Extra
// widens it further (conformer searches use Extra > 1); MaxDot bounds the
// normalised dot product of the head and tail bond vectors.
type Tolerances struct {
	Distance float64 `yaml:"distance"`
	Extra    float64 `yaml:"extra"`
	MaxDot   float64 `yaml:"maxDot"`
}

// Default tolerance values.
const (
	DefaultDistanceTolerance = 0.33
	DefaultExtraTolerance    = 1.1
	DefaultMaxDot            = -0.75
)

// DefaultTolerances returns the default tolerance set.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Distance: DefaultDistanceTolerance,
		Extra:    DefaultExtraTolerance,
		MaxDot:   DefaultMaxDot,
	}
}

// Validate checks that the distance tolerances are positive.
func (t Tolerances) Validate() error {
	if t.Distance <= 0 || t.Extra <= 0 {
		return errors.Wrapf(ErrBadTolerance, "distance=%g extra=%g", t.Distance, t.Extra)
	}
	return nil
}

// Parameters configure ring closure during mutation.
//
// Ring sizes count the vertices of a ring that are not ring-closing
// vertices.
type Parameters struct {
	Strategy            Strategy   `yaml:"strategy"`
	Tolerances          Tolerances `yaml:"tolerances"`
	MinRingSize         int        `yaml:"minRingSize"`
	MaxRingSize         int        `yaml:"maxRingSize"`
	MaxRingsPerMutation int        `yaml:"maxRingsPerMutation"`
	// RequireClosure rejects candidates the conformer source finds no
	// closable conformation for. Without a conformer source only sizes are
	// checked.
	RequireClosure bool `yaml:"requireClosure"`
}

// Default ring size bounds.
const (
	DefaultMinRingSize         = 1
	DefaultMaxRingSize         = 9
	DefaultMaxRingsPerMutation = 2
)

// DefaultParameters returns BondOverlap with default tolerances and sizes.
func DefaultParameters() Parameters {
	return Parameters{
		Strategy:            BondOverlap,
		Tolerances:          DefaultTolerances(),
		MinRingSize:         DefaultMinRingSize,
		MaxRingSize:         DefaultMaxRingSize,
		MaxRingsPerMutation: DefaultMaxRingsPerMutation,
		RequireClosure:      true,
	}
}

// Validate checks strategy, tolerances and size bounds.
func (p Parameters) Validate() error {
	if p.Strategy != BondOverlap && p.Strategy != BondComplementarity {
		return errors.Wrapf(ErrUnknownStrategy, "%d", int(p.Strategy))
	}
	if err := p.Tolerances.Validate(); err != nil {
		return err
	}
	if p.MinRingSize < 1 || p.MaxRingSize < p.MinRingSize {
		return errors.Wrapf(ErrBadRingSize, "min=%d max=%d", p.MinRingSize, p.MaxRingSize)
	}
	if p.MaxRingsPerMutation < 1 {
		return errors.Wrapf(ErrBadRingSize, "maxRingsPerMutation=%d", p.MaxRingsPerMutation)
	}
	return nil
}

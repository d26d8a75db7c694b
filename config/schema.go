package config

import (
	"time"

	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/rings"
)

// Config is the root configuration structure
type Config struct {
	Version   int              `yaml:"version"`
	Library   string           `yaml:"library"` // fragment library document
	Run       RunConfig        `yaml:"run"`
	Mutation  MutationConfig   `yaml:"mutation"`
	Crossover CrossoverConfig  `yaml:"crossover"`
	Rings     rings.Parameters `yaml:"rings"`
	Growth    GrowthConfig     `yaml:"growth"`
}

// RunConfig holds the shape of a GA run
type RunConfig struct {
	Seed        uint64   `yaml:"seed"`
	Workers     int      `yaml:"workers"`
	Population  int      `yaml:"population"`
	Generations int      `yaml:"generations"`
	MaxAttempts int      `yaml:"maxAttempts"` // retries per operator call
	DumpEvery   int      `yaml:"dumpEvery"`   // monitor dump cadence, 0 = never
	Timeout     Duration `yaml:"timeout"`     // whole run, 0 = unbounded
}

// MutationConfig controls mutation type selection
type MutationConfig struct {
	Excluded core.MutationSet `yaml:"excluded"`
	// Weights maps mutation type names to relative selection weights.
	// Types without an entry weigh 1.
	Weights map[string]float64 `yaml:"weights,omitempty"`
	// SymmetryProbability is the chance a mutation on a vertex of a
	// symmetric set is applied to the whole set.
	SymmetryProbability float64 `yaml:"symmetryProbability"`
	// ExtendProbability is the chance an extend mutation grows a branch
	// that already has children.
	ExtendProbability float64 `yaml:"extendProbability"`
	// Rate is the share of offspring produced by mutation rather than
	// crossover.
	Rate float64 `yaml:"rate"`
}

// CrossoverConfig controls crossover
type CrossoverConfig struct {
	Mode string `yaml:"mode"` // BRANCH or SUBGRAPH
}

// GrowthConfig bounds random graph construction and growth mutations
type GrowthConfig struct {
	MaxVertices     int     `yaml:"maxVertices"`
	MaxLevel        int     `yaml:"maxLevel"`
	RingProbability float64 `yaml:"ringProbability"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

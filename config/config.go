// Package config loads the settings of a fragevo run.
//
// Config file locations (priority order):
//  1. $FRAGEVO_CONFIG
//  2. ./fragevo.yaml
//  3. $XDG_CONFIG_HOME/fragevo/config.yaml
//  4. ~/.config/fragevo/config.yaml
//
// Missing keys keep their defaults; Validate rejects out-of-range values.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/rings"
)

// ErrInvalid is returned, wrapped, by Validate.
var ErrInvalid = errors.New("config: invalid configuration")

// Crossover modes accepted in CrossoverConfig.Mode.
const (
	ModeBranch   = "BRANCH"
	ModeSubgraph = "SUBGRAPH"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return Default(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, errors.Wrap(err, "config: read")
	}
	cfg, err := Parse(data)
	return cfg, path, err
}

// Parse decodes a YAML document over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "config: parse")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "config: create dir")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "config: marshal")
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the settings used when no file is found
func Default() *Config {
	return &Config{
		Version: 1,
		Run: RunConfig{
			Seed:        1,
			Workers:     4,
			Population:  20,
			Generations: 10,
			MaxAttempts: 10,
			DumpEvery:   1000,
		},
		Mutation: MutationConfig{
			SymmetryProbability: 0.5,
			ExtendProbability:   0.5,
			Rate:                0.5,
		},
		Crossover: CrossoverConfig{Mode: ModeBranch},
		Rings:     rings.DefaultParameters(),
		Growth: GrowthConfig{
			MaxVertices:     40,
			MaxLevel:        8,
			RingProbability: 0.2,
		},
	}
}

// applyDefaults fills values explicitly zeroed in the document
func (c *Config) applyDefaults() {
	d := Default()
	if c.Version == 0 {
		c.Version = d.Version
	}
	if c.Run.Workers == 0 {
		c.Run.Workers = d.Run.Workers
	}
	if c.Run.MaxAttempts == 0 {
		c.Run.MaxAttempts = d.Run.MaxAttempts
	}
	if c.Crossover.Mode == "" {
		c.Crossover.Mode = d.Crossover.Mode
	}
	c.Crossover.Mode = strings.ToUpper(strings.TrimSpace(c.Crossover.Mode))
	if c.Rings.Tolerances == (rings.Tolerances{}) {
		c.Rings.Tolerances = d.Rings.Tolerances
	}
	if c.Rings.MaxRingsPerMutation == 0 {
		c.Rings.MaxRingsPerMutation = d.Rings.MaxRingsPerMutation
	}
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	switch {
	case c.Run.Workers < 1:
		return errors.Wrapf(ErrInvalid, "run.workers=%d", c.Run.Workers)
	case c.Run.Population < 1:
		return errors.Wrapf(ErrInvalid, "run.population=%d", c.Run.Population)
	case c.Run.Generations < 0:
		return errors.Wrapf(ErrInvalid, "run.generations=%d", c.Run.Generations)
	case c.Run.MaxAttempts < 1:
		return errors.Wrapf(ErrInvalid, "run.maxAttempts=%d", c.Run.MaxAttempts)
	case c.Run.DumpEvery < 0:
		return errors.Wrapf(ErrInvalid, "run.dumpEvery=%d", c.Run.DumpEvery)
	case c.Growth.MaxVertices < 1:
		return errors.Wrapf(ErrInvalid, "growth.maxVertices=%d", c.Growth.MaxVertices)
	case c.Growth.MaxLevel < 1:
		return errors.Wrapf(ErrInvalid, "growth.maxLevel=%d", c.Growth.MaxLevel)
	}
	for name, p := range map[string]float64{
		"mutation.symmetryProbability": c.Mutation.SymmetryProbability,
		"mutation.extendProbability":   c.Mutation.ExtendProbability,
		"mutation.rate":                c.Mutation.Rate,
		"growth.ringProbability":       c.Growth.RingProbability,
	} {
		if p < 0 || p > 1 {
			return errors.Wrapf(ErrInvalid, "%s=%g", name, p)
		}
	}
	if c.Crossover.Mode != ModeBranch && c.Crossover.Mode != ModeSubgraph {
		return errors.Wrapf(ErrInvalid, "crossover.mode=%q", c.Crossover.Mode)
	}
	if _, err := c.MutationWeights(); err != nil {
		return err
	}
	if err := c.Rings.Validate(); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

// MutationWeights resolves Mutation.Weights to mutation types. Every type
// not listed weighs 1.
func (c *Config) MutationWeights() (map[core.MutationType]float64, error) {
	out := make(map[core.MutationType]float64, len(core.AllMutationTypes()))
	for _, t := range core.AllMutationTypes() {
		out[t] = 1
	}
	for name, w := range c.Mutation.Weights {
		t, err := core.ParseMutationType(name)
		if err != nil {
			return nil, errors.Wrap(ErrInvalid, err.Error())
		}
		if w < 0 {
			return nil, errors.Wrapf(ErrInvalid, "mutation.weights.%s=%g", name, w)
		}
		out[t] = w
	}
	return out, nil
}

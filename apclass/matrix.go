// File: matrix.go
// Role: Explicit compatibility table and its YAML form.
//
// YAML form (source class -> list of target classes):
//
//	"amine:0": ["carbonyl:1", "amine:1"]
//	"carbonyl:0": ["amine:1"]

package apclass

import (
	"io"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Matrix is a directed compatibility table. The zero value is not usable;
// build it with NewMatrix or LoadMatrix.
type Matrix struct {
	allowed map[Class]map[Class]struct{}
}

// NewMatrix returns an empty table: nothing is compatible.
func NewMatrix() *Matrix {
	return &Matrix{allowed: make(map[Class]map[Class]struct{})}
}

// Allow records src -> trg for every trg given.
func (m *Matrix) Allow(src Class, trg ...Class) *Matrix {
	row, ok := m.allowed[src]
	if !ok {
		row = make(map[Class]struct{}, len(trg))
		m.allowed[src] = row
	}
	for _, t := range trg {
		row[t] = struct{}{}
	}

	return m
}

// Compatible implements Rule.
func (m *Matrix) Compatible(src, trg Class) bool {
	row, ok := m.allowed[src]
	if !ok {
		return false
	}
	_, ok = row[trg]

	return ok
}

// Has reports whether src has at least one entry.
func (m *Matrix) Has(src Class) bool {
	_, ok := m.allowed[src]
	return ok
}

// Targets returns the classes src may bond to, sorted.
func (m *Matrix) Targets(src Class) []Class {
	row := m.allowed[src]
	out := make([]Class, 0, len(row))
	for c := range row {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })

	return out
}

// Sources returns every class with at least one entry, sorted.
func (m *Matrix) Sources() []Class {
	out := make([]Class, 0, len(m.allowed))
	for c := range m.allowed {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })

	return out
}

// MarshalYAML renders the table in its map-of-lists form.
func (m *Matrix) MarshalYAML() (interface{}, error) {
	out := make(map[string][]string, len(m.allowed))
	for _, src := range m.Sources() {
		targets := m.Targets(src)
		row := make([]string, len(targets))
		for i, t := range targets {
			row[i] = t.String()
		}
		out[src.String()] = row
	}

	return out, nil
}

// UnmarshalYAML reads the map-of-lists form.
func (m *Matrix) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string][]string
	if err := value.Decode(&raw); err != nil {
		return errors.Wrap(err, "apclass: decode matrix")
	}
	m.allowed = make(map[Class]map[Class]struct{}, len(raw))
	for srcText, row := range raw {
		src, err := Parse(srcText)
		if err != nil {
			return err
		}
		targets := make([]Class, 0, len(row))
		for _, trgText := range row {
			trg, err := Parse(trgText)
			if err != nil {
				return err
			}
			targets = append(targets, trg)
		}
		m.Allow(src, targets...)
	}

	return nil
}

// LoadMatrix decodes a YAML compatibility table from r.
func LoadMatrix(r io.Reader) (*Matrix, error) {
	m := NewMatrix()
	if err := yaml.NewDecoder(r).Decode(m); err != nil {
		if errors.Is(err, io.EOF) {
			return m, nil
		}
		return nil, errors.Wrap(err, "apclass: load matrix")
	}

	return m, nil
}

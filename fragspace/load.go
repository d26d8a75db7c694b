// File: load.go
// Role: YAML form of the fragment space.
//
// Document layout:
//
//	scaffolds:   [ {id, name, aps: [{class, direction}], symmetricAPs} ]
//	fragments:   [ ... ]
//	caps:        [ ... ]            # one AP each
//	ringClosers: [ ... ]            # one ring-closing AP each
//	compatibility:            { "a:0": ["b:1", ...] }
//	ringClosureCompatibility: { "a:0": ["a:0", ...] }
//	capping:       { "a:0": "cap:0" }
//	forbiddenEnds: ["x:0"]
//	bonds:         { a: DOUBLE }
//	symmetry:      { "a:0": 0.5 }

package fragspace

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fragevo/apclass"
	"github.com/katalvlaran/fragevo/core"
)

type document struct {
	Scaffolds                []Entry                  `yaml:"scaffolds"`
	Fragments                []Entry                  `yaml:"fragments"`
	Caps                     []Entry                  `yaml:"caps"`
	RingClosers              []Entry                  `yaml:"ringClosers"`
	Compatibility            *apclass.Matrix          `yaml:"compatibility"`
	RingClosureCompatibility *apclass.Matrix          `yaml:"ringClosureCompatibility"`
	Capping                  map[string]string        `yaml:"capping"`
	ForbiddenEnds            []apclass.Class          `yaml:"forbiddenEnds"`
	Bonds                    map[string]core.BondType `yaml:"bonds"`
	Symmetry                 map[string]float64       `yaml:"symmetry"`
}

// Load decodes a library document and validates it.
func Load(r io.Reader) (*Library, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "fragspace: decode")
	}

	l := NewLibrary()
	pools := []struct {
		entries []Entry
		add     func(Entry) error
	}{
		{doc.Scaffolds, l.AddScaffold},
		{doc.Fragments, l.AddFragment},
		{doc.Caps, l.AddCap},
		{doc.RingClosers, l.AddRingCloser},
	}
	for _, p := range pools {
		for _, e := range p.entries {
			if err := p.add(e); err != nil {
				return nil, err
			}
		}
	}
	if doc.Compatibility != nil {
		l.compat = doc.Compatibility
	}
	if doc.RingClosureCompatibility != nil {
		l.rcCompat = doc.RingClosureCompatibility
	}
	for src, trg := range doc.Capping {
		s, err := apclass.Parse(src)
		if err != nil {
			return nil, errors.Wrap(err, "fragspace: capping")
		}
		t, err := apclass.Parse(trg)
		if err != nil {
			return nil, errors.Wrap(err, "fragspace: capping")
		}
		l.SetCapping(s, t)
	}
	for _, c := range doc.ForbiddenEnds {
		l.ForbidEnd(c)
	}
	for rule, b := range doc.Bonds {
		l.SetBond(rule, b)
	}
	for cs, p := range doc.Symmetry {
		c, err := apclass.Parse(cs)
		if err != nil {
			return nil, errors.Wrap(err, "fragspace: symmetry")
		}
		l.SetSymmetry(c, p)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// LoadFile reads a library document from path.
func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "fragspace: open library")
	}
	defer f.Close()
	return Load(f)
}

package fragspace_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragevo/apclass"
	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/fragspace"
)

const libraryYAML = `
scaffolds:
  - id: 1
    name: benzene
    aps: [{class: "c:0"}, {class: "c:0"}, {class: "c:0"}]
    symmetricAPs: [[0, 1, 2]]
fragments:
  - id: 1
    name: methylene
    aps: [{class: "c:0"}, {class: "c:1"}]
  - id: 2
    name: amide
    aps: [{class: "n:0", direction: [0, 0, 1]}, {class: "c:0"}]
caps:
  - id: 1
    name: hydrogen
    aps: [{class: "h:0"}]
ringClosers:
  - id: 1
    aps: [{class: "ATneutral:0"}]
compatibility:
  "c:0": ["c:1", "n:0"]
  "c:1": ["c:0"]
ringClosureCompatibility:
  "c:0": ["c:0"]
capping:
  "c:0": "h:0"
  "c:1": "h:0"
forbiddenEnds: ["n:0"]
bonds:
  n: DOUBLE
symmetry:
  "c:0": 0.5
`

func loadLibrary(t *testing.T) *fragspace.Library {
	t.Helper()
	l, err := fragspace.Load(strings.NewReader(libraryYAML))
	require.NoError(t, err)
	return l
}

var (
	c0 = apclass.MustParse("c:0")
	c1 = apclass.MustParse("c:1")
	n0 = apclass.MustParse("n:0")
	h0 = apclass.MustParse("h:0")
)

func TestLoad(t *testing.T) {
	l := loadLibrary(t)

	assert.Len(t, l.Scaffolds(), 1)
	assert.Len(t, l.Fragments(), 2)
	assert.Len(t, l.Caps(), 1)
	assert.Len(t, l.RingClosers(), 1)
	assert.True(t, l.Compatible(c0, n0))
	assert.False(t, l.Compatible(n0, c0))
	assert.True(t, l.IsForbiddenEnd(n0))
	assert.Equal(t, core.BondDouble, l.BondFor(n0))
	assert.Equal(t, core.BondSingle, l.BondFor(c0))
	assert.Equal(t, 0.5, l.SymmetryProbability(c0))
	assert.True(t, l.RingClosable(c0, c0))
	assert.True(t, l.CanHostRingCloser(c0))
	assert.False(t, l.CanHostRingCloser(c1))

	e, err := l.Lookup(core.BuildingBlock{ID: 2, Role: core.RoleFragment}, false)
	require.NoError(t, err)
	assert.Equal(t, "amide", e.Name)
	assert.Equal(t, []apclass.Class{n0, c0}, e.Classes())
	_, err = l.Lookup(core.BuildingBlock{ID: 9, Role: core.RoleFragment}, false)
	assert.ErrorIs(t, err, fragspace.ErrUnknownBuildingBlock)
}

func TestLoad_Errors(t *testing.T) {
	_, err := fragspace.Load(strings.NewReader("fragments: []\n"))
	assert.ErrorIs(t, err, fragspace.ErrEmptyLibrary)

	_, err = fragspace.Load(strings.NewReader(`
scaffolds: [{id: 1, aps: [{class: "c:0"}]}]
caps: [{id: 1, aps: [{class: "h:0"}, {class: "h:0"}]}]
`))
	assert.ErrorIs(t, err, fragspace.ErrBadEntry)

	_, err = fragspace.Load(strings.NewReader(`
scaffolds: [{id: 1, aps: [{class: "c:0"}]}, {id: 1, aps: [{class: "c:0"}]}]
`))
	assert.ErrorIs(t, err, fragspace.ErrDuplicateEntry)

	_, err = fragspace.Load(strings.NewReader(`
scaffolds: [{id: 1, aps: [{class: "c:0"}]}]
ringClosers: [{id: 1, aps: [{class: "c:0"}]}]
`))
	assert.ErrorIs(t, err, fragspace.ErrBadEntry)

	_, err = fragspace.Load(strings.NewReader(`
scaffolds: [{id: 1, aps: [{class: "c:0"}]}]
capping: {"c:0": "h:0"}
`))
	assert.ErrorIs(t, err, fragspace.ErrUnknownBuildingBlock)

	_, err = fragspace.Load(strings.NewReader("scaffolds: [{id: 1, aps: [{class: \"c\"}]}]\n"))
	assert.ErrorIs(t, err, apclass.ErrMalformedClass)
}

func TestCandidates(t *testing.T) {
	l := loadLibrary(t)

	cands := l.CompatibleFragments(c0)
	require.Len(t, cands, 2)
	assert.Equal(t, 1, cands[0].Entry.ID)
	assert.Equal(t, 1, cands[0].AP)
	assert.Equal(t, 2, cands[1].Entry.ID)
	assert.Equal(t, 0, cands[1].AP)

	links := l.LinkFragments(c0, c1)
	require.Len(t, links, 2)
	assert.Equal(t, fragspace.LinkCandidate{Entry: links[0].Entry, In: 1, Out: 0}, links[0])
	assert.Equal(t, 1, links[0].Entry.ID)
	assert.Equal(t, 2, links[1].Entry.ID)
	assert.Equal(t, 0, links[1].In)
	assert.Equal(t, 1, links[1].Out)

	capE, ok := l.CapFor(c1)
	require.True(t, ok)
	assert.Equal(t, h0, capE.APs[0].Class)
	_, ok = l.CapFor(n0)
	assert.False(t, ok)

	assert.Len(t, l.RingClosersFor(c0), 1)
	assert.Empty(t, l.RingClosersFor(n0))
}

func TestInstantiate(t *testing.T) {
	l := loadLibrary(t)

	s := l.Instantiate(l.Scaffolds()[0], 0)
	assert.Equal(t, core.RoleScaffold, s.BuildingBlock().Role)
	assert.Equal(t, 3, s.APCount())
	assert.Equal(t, [][]int{{0, 1, 2}}, s.SymmetricAPs())

	f := l.Instantiate(l.Fragments()[1], 5)
	dir, ok := f.AP(0).Direction()
	require.True(t, ok)
	assert.Equal(t, 1.0, dir.Z)

	c := l.Instantiate(l.Caps()[0], 6)
	assert.True(t, c.IsCap())

	r := l.Instantiate(l.RingClosers()[0], 7)
	assert.True(t, r.IsRCV())
	assert.Equal(t, apclass.RingClosingNeutral, r.AP(0).Class())
}

func TestCapGraph(t *testing.T) {
	l := loadLibrary(t)
	g := core.NewGraph(core.WithRule(l.Rule()))
	s := l.Instantiate(l.Scaffolds()[0], 0)
	require.NoError(t, g.AddVertex(s))
	f := l.Instantiate(l.Fragments()[1], 1)
	require.NoError(t, g.AppendVertex(s.AP(0), f, f.AP(0), l.BondFor(c0)))

	assert.Len(t, l.ForbiddenEnds(g), 0)

	n, err := l.CapGraph(g)
	require.NoError(t, err)
	// Two scaffold APs and the fragment's c:0 AP.
	assert.Equal(t, 3, n)
	assert.Len(t, g.CapVertices(), 3)
	assert.Empty(t, g.AvailableAPs())
	require.NoError(t, g.Validate())
}

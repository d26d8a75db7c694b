package ga_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/fragspace"
	"github.com/katalvlaran/fragevo/ga"
)

// Building blocks of the test library.
const (
	bbCore3 = 1 // scaffold, three symmetric c:0 APs
	bbQCore = 2 // scaffold, two q:0 APs

	bbLink  = 1 // fragment c:0 c:0
	bbFork  = 2 // fragment c:0 c:0 c:0
	bbAmide = 3 // fragment n:0 c:0
)

const libraryYAML = `
scaffolds:
  - id: 1
    name: core3
    aps: [{class: "c:0"}, {class: "c:0"}, {class: "c:0"}]
    symmetricAPs: [[0, 1, 2]]
  - id: 2
    name: qcore
    aps: [{class: "q:0"}, {class: "q:0"}]
fragments:
  - id: 1
    name: link
    aps: [{class: "c:0"}, {class: "c:0"}]
  - id: 2
    name: fork
    aps: [{class: "c:0"}, {class: "c:0"}, {class: "c:0"}]
  - id: 3
    name: amide
    aps: [{class: "n:0"}, {class: "c:0"}]
caps:
  - id: 1
    name: hydrogen
    aps: [{class: "h:0"}]
ringClosers:
  - id: 1
    aps: [{class: "ATplus:0"}]
  - id: 2
    aps: [{class: "ATminus:0"}]
  - id: 3
    aps: [{class: "ATneutral:0"}]
compatibility:
  "c:0": ["c:0", "n:0"]
  "q:0": ["c:0"]
ringClosureCompatibility:
  "c:0": ["c:0"]
capping:
  "c:0": "h:0"
  "n:0": "h:0"
`

func newLibrary(t *testing.T) *fragspace.Library {
	t.Helper()
	l, err := fragspace.Load(strings.NewReader(libraryYAML))
	require.NoError(t, err)
	return l
}

func newMutator(t *testing.T, l *fragspace.Library, opts ...ga.MutatorOption) *ga.Mutator {
	t.Helper()
	m, err := ga.NewMutator(l, opts...)
	require.NoError(t, err)
	return m
}

func lookup(t *testing.T, l *fragspace.Library, role core.Role, id int) *fragspace.Entry {
	t.Helper()
	e, err := l.Lookup(core.BuildingBlock{ID: id, Role: role}, false)
	require.NoError(t, err)
	return e
}

// seed returns a graph holding only the given scaffold.
func seed(t *testing.T, l *fragspace.Library, scaffold int) (*core.Graph, *core.Vertex) {
	t.Helper()
	g := core.NewGraph(core.WithRule(l.Rule()))
	s := l.Instantiate(lookup(t, l, core.RoleScaffold, scaffold), 0)
	require.NoError(t, g.AddVertex(s))
	return g, s
}

// attach binds fragment frag through its AP ap below parentAP.
func attach(t *testing.T, g *core.Graph, l *fragspace.Library, parentAP *core.AttachmentPoint, frag, ap int) *core.Vertex {
	t.Helper()
	v := l.Instantiate(lookup(t, l, core.RoleFragment, frag), g.NextVertexID())
	require.NoError(t, g.AppendVertex(parentAP, v, v.AP(ap), core.BondSingle))
	return v
}

// chain builds core3 with a line of n links hanging from AP 0.
func chain(t *testing.T, l *fragspace.Library, n int) (*core.Graph, []*core.Vertex) {
	t.Helper()
	g, s := seed(t, l, bbCore3)
	vs := []*core.Vertex{s}
	ap := s.AP(0)
	for i := 0; i < n; i++ {
		v := attach(t, g, l, ap, bbLink, 0)
		vs = append(vs, v)
		ap = v.AP(1)
	}
	return g, vs
}

// heavy counts non-cap vertices.
func heavy(g *core.Graph) int {
	n := 0
	for _, v := range g.Vertices() {
		if !v.IsCap() {
			n++
		}
	}
	return n
}

func heavyChildren(g *core.Graph, v *core.Vertex) []*core.Vertex {
	var out []*core.Vertex
	for _, c := range g.Children(v) {
		if !c.IsCap() {
			out = append(out, c)
		}
	}
	return out
}

package pool_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/fragspace"
	"github.com/katalvlaran/fragevo/pool"
)

const libraryYAML = `
scaffolds:
  - id: 1
    name: core3
    aps: [{class: "c:0"}, {class: "c:0"}, {class: "c:0"}]
fragments:
  - id: 1
    name: link
    aps: [{class: "c:0"}, {class: "c:0"}]
caps:
  - id: 1
    name: hydrogen
    aps: [{class: "h:0"}]
compatibility:
  "c:0": ["c:0"]
capping:
  "c:0": "h:0"
`

// linear builds core3 with n links hanging from AP 0, capped.
func linear(t *testing.T, n int) *core.Graph {
	t.Helper()
	l, err := fragspace.Load(strings.NewReader(libraryYAML))
	require.NoError(t, err)
	scaffold, err := l.Lookup(core.BuildingBlock{ID: 1, Role: core.RoleScaffold}, false)
	require.NoError(t, err)
	link, err := l.Lookup(core.BuildingBlock{ID: 1, Role: core.RoleFragment}, false)
	require.NoError(t, err)

	g := core.NewGraph(core.WithRule(l.Rule()))
	s := l.Instantiate(scaffold, 0)
	require.NoError(t, g.AddVertex(s))
	ap := s.AP(0)
	for i := 0; i < n; i++ {
		v := l.Instantiate(link, g.NextVertexID())
		require.NoError(t, g.AppendVertex(ap, v, v.AP(0), core.BondSingle))
		ap = v.AP(1)
	}
	_, err = l.CapGraph(g)
	require.NoError(t, err)
	return g
}

// population returns n candidates holding chains of 0..n-1 links.
func population(t *testing.T, n int) []*pool.Candidate {
	t.Helper()
	out := make([]*pool.Candidate, n)
	for i := range out {
		out[i] = pool.NewCandidate(linear(t, i), 0)
	}
	return out
}

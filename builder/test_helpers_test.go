package builder_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/fragspace"
)

const bbCore3 = 1

const libraryYAML = `
scaffolds:
  - id: 1
    name: core3
    aps: [{class: "c:0"}, {class: "c:0"}, {class: "c:0"}]
    symmetricAPs: [[0, 1, 2]]
fragments:
  - id: 1
    name: link
    aps: [{class: "c:0"}, {class: "c:0"}]
  - id: 2
    name: fork
    aps: [{class: "c:0"}, {class: "c:0"}, {class: "c:0"}]
caps:
  - id: 1
    name: hydrogen
    aps: [{class: "h:0"}]
ringClosers:
  - id: 1
    aps: [{class: "ATneutral:0"}]
compatibility:
  "c:0": ["c:0"]
ringClosureCompatibility:
  "c:0": ["c:0"]
capping:
  "c:0": "h:0"
`

func newLibrary(t *testing.T) *fragspace.Library {
	t.Helper()
	l, err := fragspace.Load(strings.NewReader(libraryYAML))
	require.NoError(t, err)
	return l
}

func heavy(g *core.Graph) int {
	n := 0
	for _, v := range g.Vertices() {
		if !v.IsCap() {
			n++
		}
	}
	return n
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/fragevo/config"
	"github.com/katalvlaran/fragevo/fragspace"
	"github.com/katalvlaran/fragevo/monitor"
)

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

// writeFile stores content under the test's temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// smallConfig returns a fast configuration for a library at path.
func smallConfig(path string) *config.Config {
	cfg := config.Default()
	cfg.Library = path
	cfg.Run.Seed = 11
	cfg.Run.Population = 6
	cfg.Run.Generations = 3
	cfg.Run.Workers = 2
	cfg.Growth.MaxVertices = 8
	cfg.Growth.MaxLevel = 4
	return cfg
}

func newTestEvolver(t *testing.T, cfg *config.Config) *evolver {
	t.Helper()
	lib, err := fragspace.LoadFile(cfg.Library)
	require.NoError(t, err)
	e, err := newEvolver(cfg, lib, monitor.New(monitor.WithDumpEvery(0)), zap.NewNop())
	require.NoError(t, err)
	return e
}

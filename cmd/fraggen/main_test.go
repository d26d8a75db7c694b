package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunThenCheck(t *testing.T) {
	lib := writeFile(t, "lib.yaml", libraryYAML)
	cfg := writeFile(t, "fragevo.yaml", "run:\n  seed: 5\n  workers: 2\ngrowth:\n  maxVertices: 8\n  maxLevel: 4\n")
	dir := filepath.Join(t.TempDir(), "best")

	out, err := execute(t, "run", "-c", cfg, "-l", lib, "-o", dir,
		"--population", "4", "--generations", "1", "--keep", "2")
	require.NoError(t, err, out)

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)
	require.Len(t, files, 2)

	out, err = execute(t, append([]string{"check", "-c", cfg, "-l", lib, "--outline"}, files...)...)
	require.NoError(t, err, out)
	assert.Contains(t, out, ": ok vertices=")
}

func TestCheck_Invalid(t *testing.T) {
	lib := writeFile(t, "lib.yaml", libraryYAML)
	cfg := writeFile(t, "fragevo.yaml", "version: 1\n")
	bad := writeFile(t, "bad.yaml", "vertices: [")

	out, err := execute(t, "check", "-c", cfg, "-l", lib, bad)
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, out, "FAIL")
}

func TestRoot_NoLibrary(t *testing.T) {
	cfg := writeFile(t, "fragevo.yaml", "version: 1\n")
	_, err := execute(t, "check", "-c", cfg, os.DevNull)
	assert.Error(t, err)
}

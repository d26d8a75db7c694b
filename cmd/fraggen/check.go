package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fragevo/core"
	"github.com/katalvlaran/fragevo/dfs"
	"github.com/katalvlaran/fragevo/pool"
)

// ErrCheckFailed is returned when at least one snapshot fails a check.
var ErrCheckFailed = errors.New("fraggen: check failed")

func newCheckCmd(a *app) *cobra.Command {
	var outline bool
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate graph snapshots against the fragment library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bad := 0
			for _, path := range args {
				if err := a.check(cmd.Context(), cmd.OutOrStdout(), path, outline); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: FAIL %v\n", path, err)
					a.logger.Debug("check failed", zap.String("path", path), zap.Error(err))
					bad++
				}
			}
			if bad > 0 {
				return errors.Wrapf(ErrCheckFailed, "%d of %d", bad, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&outline, "outline", false, "print the vertex tree of each graph")
	return cmd
}

// check restores one snapshot, validates it, and compares the rings it
// declares with the cycles found by walking its bonds.
func (a *app) check(ctx context.Context, w io.Writer, path string, outline bool) error {
	// 1. Restore.
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read")
	}
	var snap core.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return errors.Wrap(err, "decode")
	}
	g, err := core.Restore(&snap, a.lib.Rule())
	if err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}
	root := g.Root()
	if root == nil {
		return errors.New("no root")
	}

	// 2. Outline.
	if outline {
		_, err := dfs.DFS(g, root, dfs.WithOnVisit(func(v *core.Vertex, depth int) error {
			bb := v.BuildingBlock()
			fmt.Fprintf(w, "%s%d %s/%d\n", strings.Repeat("  ", depth+1), v.ID(), bb.Role, bb.ID)
			return nil
		}))
		if err != nil {
			return err
		}
	}

	// 3. Rings versus cycles.
	_, cycles := dfs.DetectCycles(g)
	if len(cycles) != len(g.Rings()) {
		return errors.Errorf("%d rings declared, %d cycles found", len(g.Rings()), len(cycles))
	}

	score, err := pool.Compactness{RingWeight: 1}.Score(ctx, g)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: ok vertices=%d rings=%d score=%.4f\n", path, g.VertexCount(), len(g.Rings()), score)
	return nil
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fragevo/monitor"
	"github.com/katalvlaran/fragevo/pool"
)

type runFlags struct {
	seed        uint64
	population  int
	generations int
	workers     int
	keep        int
	out         string
	metricsAddr string
}

func newRunCmd(a *app) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evolve a population and write the best graphs",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd, a)
			return a.run(cmd.Context(), cmd, f)
		},
	}
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (overrides config)")
	cmd.Flags().IntVar(&f.population, "population", 0, "population size (overrides config)")
	cmd.Flags().IntVar(&f.generations, "generations", 0, "generations (overrides config)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "pool workers (overrides config)")
	cmd.Flags().IntVar(&f.keep, "keep", 5, "number of best graphs to write")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "directory for graph snapshots (none if empty)")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")
	return cmd
}

// apply copies explicitly set flags over the loaded config.
func (f *runFlags) apply(cmd *cobra.Command, a *app) {
	if cmd.Flags().Changed("seed") {
		a.cfg.Run.Seed = f.seed
	}
	if f.population > 0 {
		a.cfg.Run.Population = f.population
	}
	if cmd.Flags().Changed("generations") {
		a.cfg.Run.Generations = f.generations
	}
	if f.workers > 0 {
		a.cfg.Run.Workers = f.workers
	}
}

func (a *app) run(ctx context.Context, cmd *cobra.Command, f *runFlags) error {
	if t := time.Duration(a.cfg.Run.Timeout); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	// 1. Metrics.
	reg := prometheus.NewRegistry()
	mon := monitor.New(
		monitor.WithLogger(a.logger),
		monitor.WithRegisterer(reg),
		monitor.WithDumpEvery(a.cfg.Run.DumpEvery),
	)
	if f.metricsAddr != "" {
		srv := &http.Server{
			Addr:              f.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	// 2. Evolve.
	e, err := newEvolver(a.cfg, a.lib, mon, a.logger)
	if err != nil {
		return err
	}
	best, err := e.run(ctx)
	if err != nil && len(best) == 0 {
		return err
	}
	if err != nil {
		a.logger.Warn("run interrupted, writing partial results", zap.Error(err))
	}

	// 3. Report.
	n := min(f.keep, len(best))
	for i, c := range best[:n] {
		fmt.Fprintf(cmd.OutOrStdout(), "%2d  %.4f  gen=%d  vertices=%d  rings=%d  %s\n",
			i+1, c.Fitness, c.Generation, c.Graph.VertexCount(), len(c.Graph.Rings()), c.ID)
	}
	if f.out == "" {
		return err
	}
	if werr := writeSnapshots(f.out, best[:n]); werr != nil {
		return werr
	}
	return err
}

// writeSnapshots stores each candidate as <rank>-<id>.yaml under dir.
func writeSnapshots(dir string, cands []*pool.Candidate) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "fraggen: output dir")
	}
	for i, c := range cands {
		data, err := yaml.Marshal(c.Graph.Snapshot())
		if err != nil {
			return errors.Wrapf(err, "fraggen: encode %s", c.ID)
		}
		name := filepath.Join(dir, fmt.Sprintf("%02d-%s.yaml", i+1, c.ID))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return errors.Wrap(err, "fraggen: write snapshot")
		}
	}
	return nil
}

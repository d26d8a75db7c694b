package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/fragevo/config"
	"github.com/katalvlaran/fragevo/fragspace"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configPath  string
	libraryPath string
	verbose     bool

	cfg    *config.Config
	lib    *fragspace.Library
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "fraggen",
		Short: "Fragment-based molecular graph evolution",
		Long: `fraggen grows random molecular graphs from a fragment library and
evolves them with mutation and crossover, scoring candidates on a worker pool.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default: search standard locations)")
	root.PersistentFlags().StringVarP(&a.libraryPath, "library", "l", "", "fragment library YAML (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newRunCmd(a), newCheckCmd(a))
	return root
}

// init loads the configuration, the logger and the fragment library.
func (a *app) init() error {
	// 1. Logger.
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return errors.Wrap(err, "fraggen: logger")
	}
	a.logger = logger

	// 2. Config.
	var path string
	if a.configPath != "" {
		a.cfg, path, err = config.LoadFromPath(a.configPath)
	} else {
		a.cfg, path, err = config.Load()
	}
	if err != nil {
		return err
	}
	if path != "" {
		a.logger.Info("config loaded", zap.String("path", path))
	}

	// 3. Library.
	if a.libraryPath != "" {
		a.cfg.Library = a.libraryPath
	}
	if a.cfg.Library == "" {
		return errors.New("fraggen: no fragment library given (use --library or the config's library key)")
	}
	a.lib, err = fragspace.LoadFile(a.cfg.Library)
	if err != nil {
		return err
	}
	a.logger.Debug("library loaded",
		zap.String("path", a.cfg.Library),
		zap.Int("scaffolds", len(a.lib.Scaffolds())),
		zap.Int("fragments", len(a.lib.Fragments())))
	return nil
}

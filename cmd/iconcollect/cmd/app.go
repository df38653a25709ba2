package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ideamans/iconcollect/pkg/cache"
	"github.com/ideamans/iconcollect/pkg/config"
	"github.com/ideamans/iconcollect/pkg/logging"
	"github.com/ideamans/iconcollect/pkg/output"
	"github.com/ideamans/iconcollect/pkg/preset"
)

// overrides are command-line values that take precedence over the file
type overrides struct {
	root     string
	base     string
	out      string
	logLevel string
}

func flagOverrides() overrides {
	return overrides{root: rootDir, base: baseName, out: outDir, logLevel: logLevel}
}

// loadConfig reads path when it exists, or when explicit is set, and
// falls back to the defaults otherwise
func loadConfig(path string, explicit bool, o overrides) (*config.Config, error) {
	var cfg *config.Config

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil || explicit:
		loaded, err := config.NewFileLoader(path).Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case errors.Is(statErr, fs.ErrNotExist):
		cfg = config.Default()
	default:
		return nil, fmt.Errorf("failed to stat config file: %w", statErr)
	}

	if o.root != "" {
		cfg.Icons.Root = o.root
	}
	if o.base != "" {
		cfg.Icons.BaseName = o.base
	}
	if o.out != "" {
		cfg.Output.Dir = o.out
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// app holds what every command needs: configuration, logger and cache
type app struct {
	cfg    *config.Config
	logger logging.Logger
	store  cache.Store
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cfgFile, cmd.Flags().Changed("config"), flagOverrides())
	if err != nil {
		return nil, err
	}
	return newAppWithConfig(cfg)
}

func newAppWithConfig(cfg *config.Config) (*app, error) {
	logger, err := logging.NewLoggerWithFile("iconcollect", logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Color, cfg.FileRotation())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return newAppWithLogger(cfg, logger)
}

func newAppWithLogger(cfg *config.Config, logger logging.Logger) (*app, error) {
	store, err := cache.New(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if store != nil {
		logger.Debug("Cache enabled", "type", cfg.Cache.Type, "namespace", cfg.Cache.Namespace)
	}
	return &app{cfg: cfg, logger: logger, store: store}, nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Failed to close cache", "error", err)
	}
}

// collect builds the generator configuration without writing anything
func (a *app) collect(ctx context.Context) (*preset.Config, error) {
	return preset.Build(ctx, a.cfg.PresetOptions(a.store, a.logger))
}

// build collects and writes the output directory
func (a *app) build(ctx context.Context) (*preset.Config, *output.Result, error) {
	pc, err := a.collect(ctx)
	if err != nil {
		return nil, nil, err
	}

	result, err := output.Write(pc, a.cfg.Output.Dir)
	if err != nil {
		return nil, nil, err
	}

	a.logger.Info("Wrote icon collections",
		"dir", a.cfg.Output.Dir,
		"collections", pc.Registry.Len(),
		"icons", pc.Registry.IconCount(),
		"removed", len(result.Removed))
	return pc, result, nil
}

package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ideamans/iconcollect/pkg/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Build, then rebuild whenever icons change",
	Long: `Build the output directory once, then watch the icon root and rebuild
whenever an SVG file or directory is added, changed or removed.

The configuration file is watched as well and reloaded before each rebuild.
A failing rebuild is logged and the previous output is kept. Stop with
Ctrl+C (SIGINT) or SIGTERM.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reload := func() {
		if _, err := os.Stat(cfgFile); err != nil {
			return
		}
		cfg, err := loadConfig(cfgFile, true, flagOverrides())
		if err != nil {
			a.logger.Error("Keeping previous configuration", "error", err)
			return
		}
		if cfg.Icons.Root != a.cfg.Icons.Root {
			a.logger.Warn("Icon root changed; restart watch to follow it", "root", cfg.Icons.Root)
			cfg.Icons.Root = a.cfg.Icons.Root
		}
		a.cfg = cfg
	}

	return watchLoop(ctx, a, cfgFile, reload)
}

// watchLoop builds once and rebuilds on every debounced change until ctx
// is done. Rebuilds run one at a time on this goroutine.
func watchLoop(ctx context.Context, a *app, configPath string, reload func()) error {
	if _, _, err := a.build(ctx); err != nil {
		a.logger.Error("Build failed", "error", err)
	}

	w, err := watcher.NewWatcher(a.cfg.Icons.Root, a.cfg.DebounceDelay(), a.logger)
	if err != nil {
		return err
	}
	defer w.Close()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := w.WatchFile(configPath); err != nil {
				a.logger.Warn("Not watching configuration file", "path", configPath, "error", err)
			}
		}
	}

	rebuild := make(chan struct{}, 1)
	w.AddListener(watcher.ListenerFunc(func(event watcher.ChangeEvent) {
		if event.Error != nil {
			a.logger.Warn("Watch error", "error", event.Error)
			return
		}
		a.logger.Debug("Rebuild scheduled", "path", event.Path)
		select {
		case rebuild <- struct{}{}:
		default:
		}
	}))

	watchErr := make(chan error, 1)
	go func() { watchErr <- w.Start(ctx) }()

	a.logger.Info("Watching for changes", "root", a.cfg.Icons.Root, "dirs", w.Dirs())

	for {
		select {
		case <-ctx.Done():
			<-watchErr
			a.logger.Info("Stopped watching")
			return nil

		case err := <-watchErr:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err

		case <-rebuild:
			if reload != nil {
				reload()
			}
			if _, _, err := a.build(ctx); err != nil {
				a.logger.Error("Rebuild failed", "error", err)
			}
		}
	}
}

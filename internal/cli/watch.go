package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/stillpress/stillpress/internal/post"
	"github.com/stillpress/stillpress/internal/publish"
)

// watchDebounce coalesces the burst of events an editor save produces
// into a single regeneration.
const watchDebounce = 500 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the post sources change",
		Long: `Watch the post source tree and regenerate on change.

Runs an initial generation, then watches the source directory and every
post directory. Regenerations are serialized: one run at a time, each
one a complete load/compute/reconcile pass.

Stop with Ctrl-C.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(rootOpts, cmd)
		},
	}
	return cmd
}

func runWatch(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return err
	}
	driver := publish.New(cfg)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return WrapExitError(ExitCommandError, "creating watcher", err)
	}
	defer watcher.Close()

	// fsnotify doesn't recurse: watch the source root for new post
	// dirs, plus each existing post dir for edits.
	if err := watcher.Add(cfg.SourceDir); err != nil {
		return WrapExitError(ExitCommandError, "watching source dir", err)
	}
	dirs, err := post.ListPostDirs(cfg.SourceDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "listing posts", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			slog.Warn("cannot watch post dir", "dir", dir, "error", err)
		}
	}

	// Setup signal handling for graceful shutdown. Use the command's
	// context if available (for testing), otherwise create one.
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	regenerate := func() {
		if err := driver.Run(); err != nil {
			// A broken draft mid-edit is normal during watch; log and
			// keep watching rather than exiting.
			slog.Error("generation failed", "error", err)
		}
	}
	regenerate()

	// Debounce: an inert timer armed by events; firing triggers one
	// regeneration for the whole burst.
	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	slog.Info("watching for changes", "dir", cfg.SourceDir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			slog.Debug("fs event", "op", event.Op.String(), "path", event.Name)
			if event.Op.Has(fsnotify.Create) {
				// A new post dir needs its own watch; Add on a plain
				// file is harmless and keeps this branch simple.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						slog.Warn("cannot watch new dir", "dir", event.Name, "error", err)
					}
				}
			}
			debounce.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		case <-debounce.C:
			regenerate()
		}
	}
}

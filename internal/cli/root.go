package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stillpress/stillpress/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	ConfigPath string

	// SourceDir and OutputDir, when set, override the configured
	// directories (useful for generating a staging copy).
	SourceDir string
	OutputDir string
}

// LoadConfig loads the site configuration named by the global flag and
// applies any directory overrides.
func (o *RootOptions) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading configuration", err)
	}
	if o.SourceDir != "" {
		cfg.SourceDir = o.SourceDir
	}
	if o.OutputDir != "" {
		cfg.OutputDir = o.OutputDir
	}
	return cfg, nil
}

// NewRootCommand creates the root command for the stillpress CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stillpress",
		Short: "stillpress - incremental static blog publisher",
		Long: `A static blog generator built for cheap incremental publishing:
regeneration only rewrites output files whose bytes actually changed, so
rsync-style publishing uploads only what's new.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel := slog.LevelInfo
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			slog.SetDefault(slog.New(handler))
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "stillpress.yaml", "path to site configuration")
	cmd.PersistentFlags().StringVar(&opts.SourceDir, "src", "", "override the configured source dir")
	cmd.PersistentFlags().StringVar(&opts.OutputDir, "out", "", "override the configured output dir")

	// Add subcommands
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewNewCommand(opts))
	cmd.AddCommand(NewPublicCommand(opts))
	cmd.AddCommand(NewTouchCommand(opts))
	cmd.AddCommand(NewNormalizeCommand(opts))

	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/stillpress/stillpress/internal/publish"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate the site output tree",
		Long: `Regenerate the whole site from the post sources.

Loads and validates every post (any invalid post aborts the run before
the output tree is touched), renders every page and feed, writes only
the files whose content changed, and deletes files no longer produced.

Example:
  stillpress generate --config site.yaml --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts)
		},
	}
	return cmd
}

func runGenerate(opts *RootOptions) error {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return err
	}
	if err := publish.New(cfg).Run(); err != nil {
		return WrapExitError(ExitFailure, "generation failed", err)
	}
	return nil
}

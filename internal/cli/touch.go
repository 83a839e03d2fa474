package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stillpress/stillpress/internal/post"
)

// NewTouchCommand creates the touch command.
func NewTouchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "touch <post-file>",
		Short: "Set the updated timestamp on a published post",
		Long: `Add or update the "updated" timestamp on a published post.

Drafts are left alone: they haven't been published, so there's nothing
to mark as updated.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTouch(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runTouch(opts *RootOptions, postPath string, cmd *cobra.Command) error {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return err
	}

	doc, err := readDocument(postPath)
	if err != nil {
		return err
	}
	if doc.GetBool("draft") {
		fmt.Fprintln(cmd.ErrOrStderr(), "Not updating date, since not yet published.")
		return nil
	}

	doc.Set("updated", post.FormatTimestamp(time.Now().In(cfg.Location())))
	return writeDocument(postPath, doc)
}

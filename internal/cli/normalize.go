package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stillpress/stillpress/internal/post"
)

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Rewrite all front matter in canonical form",
		Long: `Rewrite the front matter of every post and comment in canonical
form: sorted keys, four-space indent, literal Unicode.

Canonicalizing up front means later automated edits produce minimal
diffs.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(rootOpts)
		},
	}
	return cmd
}

func runNormalize(opts *RootOptions) error {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return err
	}

	dirs, err := post.ListPostDirs(cfg.SourceDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "listing posts", err)
	}
	for _, dir := range dirs {
		if err := normalizeFile(filepath.Join(dir, "index.md")); err != nil {
			return err
		}
		comments, err := post.ListCommentFiles(dir)
		if err != nil {
			return WrapExitError(ExitFailure, "listing comments", err)
		}
		for _, name := range comments {
			if err := normalizeFile(filepath.Join(dir, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

// normalizeFile splits a file and writes it straight back; Encode is
// what canonicalizes.
func normalizeFile(path string) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	return writeDocument(path, doc)
}

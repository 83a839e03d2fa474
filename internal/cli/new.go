package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stillpress/stillpress/internal/post"
	"github.com/stillpress/stillpress/internal/render"
)

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <working-title>",
		Short: "Create a new draft post",
		Long: `Create a new draft post directory under the source dir.

The working title becomes the directory name; the post starts as a
draft with an empty title and a placeholder URL. Prints the path of the
new index file to stdout.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runNew(opts *RootOptions, workingTitle string, cmd *cobra.Command) error {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return err
	}

	postDir := filepath.Join(cfg.SourceDir, workingTitle)
	if _, err := os.Stat(postDir); err == nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("path already exists for that working title: %s", postDir))
	}
	if err := os.Mkdir(postDir, 0o755); err != nil {
		return WrapExitError(ExitCommandError, "creating post dir", err)
	}

	now := time.Now().In(cfg.Location())
	doc := &post.Document{Meta: map[string]json.RawMessage{}}
	doc.Set("author", cfg.AuthorName)
	doc.Set("date", post.FormatTimestamp(now))
	doc.Set("draft", true)
	doc.Set("format", render.FormatMarkdownV1)
	doc.Set("tags", []string{})
	doc.Set("title", "")
	doc.Set("url", now.Format("/2006/01/02/_/"))
	doc.Set("id", uuid.NewString())

	data, err := doc.Encode()
	if err != nil {
		return WrapExitError(ExitFailure, "encoding front matter", err)
	}
	indexPath := filepath.Join(postDir, "index.md")
	if err := os.WriteFile(indexPath, data, 0o644); err != nil {
		return WrapExitError(ExitFailure, "writing post file", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), indexPath)
	return nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/stillpress/stillpress/internal/post"
)

// NewPublicCommand creates the public command.
func NewPublicCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "public <post-file>",
		Short: "Turn a draft into a public post",
		Long: `Promote a draft to a public post.

Stamps the date with the current time, drops the draft flag, and
rewrites the URL's date prefix while preserving its slug. The slug
should be reviewed before generating and pushing.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublic(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runPublic(opts *RootOptions, postPath string, cmd *cobra.Command) error {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return err
	}

	doc, err := readDocument(postPath)
	if err != nil {
		return err
	}
	if !doc.GetBool("draft") {
		return NewExitError(ExitCommandError, "this post is already public")
	}

	now := time.Now().In(cfg.Location())
	ymd := now.Format("2006/01/02")

	doc.Set("date", post.FormatTimestamp(now))
	doc.Delete("updated") // shouldn't exist on a draft
	doc.Delete("draft")

	// Preserve the URL slug; leave the whole URL alone if its shape is
	// unexpected rather than guessing.
	errw := cmd.ErrOrStderr()
	oldURL, _ := doc.GetString("url")
	if oldURL == "" {
		fmt.Fprintf(errw, "URL field is missing, please add one. Suggested: /%s/___/\n", ymd)
	} else if parts, ok := post.ParsePostURL(oldURL); !ok {
		fmt.Fprintf(errw, "URL field is malformed. Please set one matching /%s/___/\n", ymd)
	} else {
		doc.Set("url", fmt.Sprintf("/%s/%s/", ymd, parts.Slug))
		fmt.Fprintln(errw, "Remember to update the URL slug before generating and pushing.")
	}

	return writeDocument(postPath, doc)
}

// readDocument loads one content file as a raw document.
func readDocument(path string) (*post.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "reading post file", err)
	}
	doc, err := post.ParseDocument(data)
	if err != nil {
		return nil, WrapExitError(ExitFailure, fmt.Sprintf("parsing %s", filepath.Base(path)), err)
	}
	return doc, nil
}

// writeDocument recomposes a document to disk in canonical form.
func writeDocument(path string, doc *post.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("encoding %s", filepath.Base(path)), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return WrapExitError(ExitFailure, "writing post file", err)
	}
	return nil
}

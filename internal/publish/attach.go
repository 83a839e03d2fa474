package publish

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/stillpress/stillpress/internal/post"
)

// attachDirName is the attachment directory name, both in the post
// source dir (private) and under the post's output dir (published).
const attachDirName = "attach"

// hardlinkWarning is dropped next to published attachments as a
// reminder that they share inodes with the source files.
const hardlinkWarning = "Warning: These are hardlinked files and cannot be independently edited on the published side."

// linkAttachments publishes a post's attachments by hardlinking them
// from the private source directory into the output tree. Subdirectories
// and symlinks inside the source attachment directory are skipped with a
// warning — symlinks are never followed.
//
// An attachment already hardlinked to the right inode is left alone, so
// published attachments keep their mtime across runs just like
// unchanged generated files.
func linkAttachments(rec *Reconciler, p *post.Post, postOutDir string) error {
	srcDir := filepath.Join(p.SourceDir, attachDirName)
	entries, err := os.ReadDir(srcDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("listing attachments for %s: %w", p.DirName(), err)
	}

	destDir := filepath.Join(postOutDir, attachDirName)
	linked := false
	for _, entry := range entries {
		src := filepath.Join(srcDir, entry.Name())
		if entry.IsDir() {
			slog.Warn("skipping attachment directory", "path", src)
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			slog.Warn("skipping attachment symlink", "path", src)
			continue
		}

		dest := filepath.Join(destDir, entry.Name())
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return fmt.Errorf("creating attachment dir: %w", err)
		}

		// Replace the destination only when it isn't already the same
		// hardlink; an intact link means an unchanged published file.
		srcInfo, err := os.Stat(src)
		if err != nil {
			return fmt.Errorf("stat attachment %s: %w", src, err)
		}
		destInfo, err := os.Stat(dest)
		switch {
		case err == nil && os.SameFile(srcInfo, destInfo):
			// Already linked.
		case err == nil:
			if err := os.Remove(dest); err != nil {
				return fmt.Errorf("replacing attachment %s: %w", dest, err)
			}
			fallthrough
		case os.IsNotExist(err):
			if err := os.Link(src, dest); err != nil {
				return fmt.Errorf("hardlinking attachment %s: %w", dest, err)
			}
		default:
			return fmt.Errorf("stat attachment dest %s: %w", dest, err)
		}

		rec.Keep(dest)
		linked = true
	}

	if linked {
		warnPath := filepath.Join(destDir, "warning-hardlinks")
		if err := rec.WriteFile(warnPath, []byte(hardlinkWarning)); err != nil {
			return err
		}
	}
	return nil
}

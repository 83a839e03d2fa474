package publish

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
)

// Reconciler tracks one run's output against what is already on disk.
// It lives for exactly one run: Scan once, any number of WriteFile/Keep
// calls, Prune once.
//
// Invariant: a file whose computed content is byte-identical to what is
// on disk is never written, so its mtime and inode survive the run.
type Reconciler struct {
	root     string
	baseline map[string]bool // regular files found under root at Scan time
	kept     map[string]bool // paths written or confirmed this run
	scanned  bool
}

// NewReconciler creates a Reconciler for the output tree rooted at
// root. The directory is created if missing.
func NewReconciler(root string) *Reconciler {
	return &Reconciler{
		root:     root,
		baseline: make(map[string]bool),
		kept:     make(map[string]bool),
	}
}

// Root returns the output root.
func (r *Reconciler) Root() string { return r.root }

// Scan records every regular file currently under the output root.
// Files recorded here and not subsequently kept are deleted by Prune.
func (r *Reconciler) Scan() error {
	if err := os.MkdirAll(r.root, 0o755); err != nil {
		return fmt.Errorf("creating output root: %w", err)
	}
	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			r.baseline[path] = true
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning output root: %w", err)
	}
	r.scanned = true
	return nil
}

// WriteFile writes content to path unless the file already holds
// exactly those bytes, and marks the path as kept either way. Parent
// directories are created as needed.
//
// Two artifacts computing the same path in one run is a bug in the
// driver, not a filesystem race, and fails the run.
func (r *Reconciler) WriteFile(path string, content []byte) error {
	if r.kept[path] {
		return fmt.Errorf("duplicate artifact path %s", path)
	}

	old, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if !exists || !bytes.Equal(old, content) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating dir for %s: %w", path, err)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if exists {
			slog.Info("updating", "path", path)
		} else {
			slog.Info("creating", "path", path)
		}
	}

	r.kept[path] = true
	return nil
}

// Keep marks a path as part of the generated set without writing it.
// Used for files materialized outside WriteFile, such as hardlinked
// attachments.
func (r *Reconciler) Keep(path string) {
	r.kept[path] = true
}

// Kept reports whether the path has been marked this run.
func (r *Reconciler) Kept(path string) bool { return r.kept[path] }

// Prune deletes every baseline file that was not kept this run, then
// removes directories left empty, deepest first, so a directory whose
// only contents were pruned files (or pruned subdirectories) goes too.
// The output root itself is never removed.
func (r *Reconciler) Prune() error {
	if !r.scanned {
		return fmt.Errorf("prune called before scan")
	}

	stale := make([]string, 0)
	for path := range r.baseline {
		if !r.kept[path] {
			stale = append(stale, path)
		}
	}
	slices.Sort(stale)
	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("deleting stale %s: %w", path, err)
		}
		slog.Info("deleting stale", "path", path)
	}

	// Collect directories, then try removal children-first. A single
	// deepest-first pass suffices: by the time a directory is visited,
	// all of its subdirectories have already been tried.
	var dirs []string
	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != r.root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking for empty dirs: %w", err)
	}
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("checking dir %s: %w", dir, err)
		}
		if len(entries) == 0 {
			if err := os.Remove(dir); err != nil {
				return fmt.Errorf("deleting empty dir %s: %w", dir, err)
			}
			slog.Info("deleting empty dir", "path", dir)
		}
	}
	return nil
}

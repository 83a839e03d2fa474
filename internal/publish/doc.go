// Package publish regenerates the output tree from the loaded posts.
//
// The tree is rebuilt in full on every run, but files are only touched
// when their bytes actually change: downstream sync tooling diffs by
// file change (mtime/inode), not content, so an untouched file is a
// file that never gets re-uploaded. After all artifacts are produced,
// anything on disk that wasn't produced this run is deleted, along with
// directories left empty.
//
// A run is three strictly linear stages:
//
//  1. Load — every post parsed and validated; one bad post aborts
//     before the output tree is touched at all.
//  2. Compute — chunking, tag indexing, and rendering of every
//     artifact.
//  3. Reconcile — write-or-skip each artifact, then prune.
//
// Nothing here is atomic across the tree and nothing retries: the
// filesystem is local, a crashed run leaves a partial tree, and
// re-running to completion converges to the correct state.
package publish

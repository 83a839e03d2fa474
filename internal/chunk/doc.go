// Package chunk partitions the ordered post list into archive pages.
//
// The partitioner is built for incremental publishing: the output tree is
// regenerated from scratch on every run, but the downstream sync only
// uploads files whose bytes changed. Naive pagination (page 1 = newest N
// posts) shifts every page boundary when a post is published, rewriting
// the whole archive. Stable chunking instead anchors boundaries at the
// oldest end of the timeline, so a new post only ever changes the newest
// chunk.
//
// Each chunk is addressed by an archive identifier: the chunk's 1-based
// index (1 = oldest) joined to a short keyed hash. The index is not a
// secret, but the hash keeps archive URLs unguessable, so the only way to
// walk the archive is to follow the "older posts" links.
package chunk

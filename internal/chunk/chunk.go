package chunk

import "slices"

// Stable partitions items into contiguous chunks of exactly chunkSize
// elements, except possibly the first chunk. The first chunk is as small
// as possible without going under minSize; it may hold up to
// chunkSize+minSize-1 elements, and fewer than minSize only when the
// whole input is shorter than chunkSize+minSize. Concatenating the
// returned chunks reproduces items exactly.
//
// Chunks are peeled off the tail of the slice, so growing the front of
// items never changes the membership of any chunk but the first. Callers
// pass posts in descending date order: the tail of the slice is the
// oldest end of the timeline, and those boundaries must stay put between
// runs.
//
// The returned chunks are subslices of items, not copies. Requires
// 0 < minSize < chunkSize; an empty input yields a nil slice.
func Stable[T any](items []T, chunkSize, minSize int) [][]T {
	var chunks [][]T
	remaining := len(items)
	for remaining > 0 {
		take := remaining
		if remaining >= chunkSize+minSize {
			take = chunkSize
		}
		chunks = append(chunks, items[remaining-take:remaining])
		remaining -= take
	}
	slices.Reverse(chunks)
	return chunks
}

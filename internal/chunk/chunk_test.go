package chunk

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seq returns [0, 1, ..., n-1].
func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestStable_Fixture(t *testing.T) {
	// chunkSize=5, minSize=3 — the production parameters.
	cases := []struct {
		n    int
		want [][]int
	}{
		{0, nil},
		{1, [][]int{{0}}},
		{3, [][]int{{0, 1, 2}}},
		{5, [][]int{{0, 1, 2, 3, 4}}},
		{6, [][]int{{0, 1, 2, 3, 4, 5}}},
		{7, [][]int{{0, 1, 2, 3, 4, 5, 6}}},
		{8, [][]int{{0, 1, 2}, {3, 4, 5, 6, 7}}},
		{11, [][]int{{0, 1, 2, 3, 4, 5}, {6, 7, 8, 9, 10}}},
		{13, [][]int{{0, 1, 2}, {3, 4, 5, 6, 7}, {8, 9, 10, 11, 12}}},
	}
	for _, tc := range cases {
		got := Stable(seq(tc.n), 5, 3)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Stable(seq(%d), 5, 3) mismatch (-want +got):\n%s", tc.n, diff)
		}
	}
}

func TestStable_CoverageAndSizes(t *testing.T) {
	const chunkSize, minSize = 5, 3
	for n := 0; n <= 100; n++ {
		chunks := Stable(seq(n), chunkSize, minSize)

		// Concatenation reproduces the input: nothing dropped,
		// duplicated, or reordered.
		var flat []int
		for _, c := range chunks {
			flat = append(flat, c...)
		}
		require.Equal(t, seq(n), flat, "n=%d", n)

		for i, c := range chunks {
			if i == 0 {
				assert.LessOrEqual(t, len(c), chunkSize+minSize-1, "n=%d first chunk too large", n)
				assert.GreaterOrEqual(t, len(c), 1, "n=%d empty first chunk", n)
			} else {
				assert.Equal(t, chunkSize, len(c), "n=%d chunk %d", n, i)
			}
		}
	}
}

func TestStable_BoundariesInsensitiveToNewPosts(t *testing.T) {
	const chunkSize, minSize = 5, 3

	// Posts arrive at the front of the descending-order list. Model
	// that by labeling items from the oldest end: item 0 is the oldest
	// post forever, and publishing k new posts yields seq(n+k) with the
	// old items still at the tail.
	for n := 8; n <= 40; n++ {
		tailward := func(chunks [][]int) [][]int {
			// Chunks ordered oldest-first for comparison: reverse
			// the item labels so index 0 is the oldest item.
			out := make([][]int, len(chunks))
			for i, c := range chunks {
				out[len(chunks)-1-i] = c
			}
			return out
		}

		before := tailward(Stable(seqOldestLast(n), chunkSize, minSize))
		for k := 1; k <= 3; k++ {
			after := tailward(Stable(seqOldestLast(n+k), chunkSize, minSize))
			// Every chunk except the newest-side ones must be
			// byte-identical; only the count of stable chunks can
			// grow.
			for i := 0; i < len(before)-1; i++ {
				assert.Equal(t, before[i], after[i],
					"n=%d k=%d: old chunk %d moved", n, k, i)
			}
		}
	}
}

// seqOldestLast returns [n-1, n-2, ..., 0]: descending order, the way
// posts are fed to the partitioner, with stable labels from the old end.
func seqOldestLast(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = n - 1 - i
	}
	return items
}

func TestArchiveID_Deterministic(t *testing.T) {
	a := ArchiveID(3, "s3cret")
	b := ArchiveID(3, "s3cret")
	assert.Equal(t, a, b, "same inputs must yield the same identifier")

	assert.NotEqual(t, ArchiveID(3, "s3cret"), ArchiveID(4, "s3cret"))
	assert.NotEqual(t, ArchiveID(3, "s3cret"), ArchiveID(3, "other"))
}

func TestArchiveID_Format(t *testing.T) {
	id := ArchiveID(12, "s3cret")
	assert.Regexp(t, `^12_[0-9a-f]{8}$`, id)
}

func TestArchiveID_NotSequential(t *testing.T) {
	// The hash suffix must not be monotonic in the index — adjacent
	// archive pages should not be guessable from one another.
	monotonic := true
	prev := ArchiveID(1, "s3cret")
	for i := 2; i <= 16; i++ {
		cur := ArchiveID(i, "s3cret")
		if cur[len(cur)-8:] <= prev[len(prev)-8:] {
			monotonic = false
		}
		prev = cur
	}
	assert.False(t, monotonic, "hash suffixes are monotonic in index")
}

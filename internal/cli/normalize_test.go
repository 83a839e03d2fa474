package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCommand(t *testing.T) {
	opts, srcDir, _ := testSite(t)

	// Messy but valid: unsorted keys, compact style.
	dir := filepath.Join(srcDir, "2023-05-06_messy")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	indexPath := filepath.Join(dir, "index.md")
	require.NoError(t, os.WriteFile(indexPath,
		[]byte(`{"url": "/2023/05/06/messy/", "title": "Messy", "date": "2023-05-06T10:00:00Z"}
---
Body stays byte-identical.
`), 0o644))
	commentPath := filepath.Join(dir, "comment_wp_3.md")
	require.NoError(t, os.WriteFile(commentPath,
		[]byte(`{"id": 3, "author": "someone", "date": "2023-05-07T10:00:00Z"}
---
A comment.
`), 0o644))

	cmd := NewNormalizeCommand(opts)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	got, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Equal(t, `{
    "date": "2023-05-06T10:00:00Z",
    "title": "Messy",
    "url": "/2023/05/06/messy/"
}
---
Body stays byte-identical.
`, string(got))

	comment, err := os.ReadFile(commentPath)
	require.NoError(t, err)
	assert.Equal(t, `{
    "author": "someone",
    "date": "2023-05-07T10:00:00Z",
    "id": 3
}
---
A comment.
`, string(comment))

	// Canonical input is a fixed point.
	cmd = NewNormalizeCommand(opts)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	again, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

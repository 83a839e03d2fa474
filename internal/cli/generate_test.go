package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCommand(t *testing.T) {
	opts, srcDir, outDir := testSite(t)

	dir := filepath.Join(srcDir, "2024-05-06_hello")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"),
		[]byte(`{
    "date": "2024-05-06T10:00:00Z",
    "format": "markdown-v1",
    "title": "Hello",
    "url": "/2024/05/06/hello/"
}
---
Hi there.
`), 0o644))

	cmd := NewGenerateCommand(opts)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(outDir, "index.html"))
	assert.FileExists(t, filepath.Join(outDir, "posts.atom"))
	assert.FileExists(t, filepath.Join(outDir, "2024", "05", "06", "hello", "index.html"))

	page, err := os.ReadFile(filepath.Join(outDir, "2024", "05", "06", "hello", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Hello")
}

func TestGenerateCommandBadSource(t *testing.T) {
	opts, srcDir, outDir := testSite(t)

	dir := filepath.Join(srcDir, "broken")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"),
		[]byte("{\"title\": \"No separator\"}"), 0o644))

	cmd := NewGenerateCommand(opts)
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.NoFileExists(t, filepath.Join(outDir, "index.html"))
}

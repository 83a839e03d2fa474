package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillpress/stillpress/internal/post"
)

func writeDraft(t *testing.T, srcDir, dirName, frontMatter string) string {
	t.Helper()
	dir := filepath.Join(srcDir, dirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "index.md")
	require.NoError(t, os.WriteFile(path, []byte(frontMatter+"\n---\nBody.\n"), 0o644))
	return path
}

func runPublicOn(t *testing.T, opts *RootOptions, path string) (string, error) {
	t.Helper()
	errBuf := &bytes.Buffer{}
	cmd := NewPublicCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{path})
	err := cmd.Execute()
	return errBuf.String(), err
}

func TestPublicCommand(t *testing.T) {
	opts, srcDir, _ := testSite(t)
	path := writeDraft(t, srcDir, "ready-now", `{
    "date": "2023-01-01T00:00:00Z",
    "draft": true,
    "title": "Ready Now",
    "updated": "2023-02-01T00:00:00Z",
    "url": "/2023/01/01/ready-now/"
}`)

	stderr, err := runPublicOn(t, opts, path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Remember to update the URL slug")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := post.ParseDocument(data)
	require.NoError(t, err)

	_, hasDraft := doc.Meta["draft"]
	assert.False(t, hasDraft)
	_, hasUpdated := doc.Meta["updated"]
	assert.False(t, hasUpdated)

	// The date is stamped now and the URL's date prefix follows it,
	// keeping the slug.
	today := time.Now().UTC().Format("2006/01/02")
	url, _ := doc.GetString("url")
	assert.Equal(t, fmt.Sprintf("/%s/ready-now/", today), url)

	date, _ := doc.GetString("date")
	assert.Contains(t, date, time.Now().UTC().Format("2006-01-02"))

	assert.Equal(t, "Body.\n", doc.Content)
}

func TestPublicCommandAlreadyPublic(t *testing.T) {
	opts, srcDir, _ := testSite(t)
	path := writeDraft(t, srcDir, "done", `{
    "date": "2023-01-01T00:00:00Z",
    "title": "Done",
    "url": "/2023/01/01/done/"
}`)

	_, err := runPublicOn(t, opts, path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "already public")
}

func TestPublicCommandMalformedURL(t *testing.T) {
	opts, srcDir, _ := testSite(t)
	path := writeDraft(t, srcDir, "odd-url", `{
    "date": "2023-01-01T00:00:00Z",
    "draft": true,
    "title": "Odd",
    "url": "not-a-post-url"
}`)

	stderr, err := runPublicOn(t, opts, path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "URL field is malformed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := post.ParseDocument(data)
	require.NoError(t, err)

	// The post still goes public, but a URL we can't parse is left for
	// the author rather than guessed at.
	_, hasDraft := doc.Meta["draft"]
	assert.False(t, hasDraft)
	url, _ := doc.GetString("url")
	assert.Equal(t, "not-a-post-url", url)
}

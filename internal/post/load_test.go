package post

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePostDir(t *testing.T, srcDir, name, frontMatter, body string) string {
	t.Helper()
	dir := filepath.Join(srcDir, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := frontMatter + "\n---\n" + body
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte(content), 0o644))
	return dir
}

func TestLoad_PublishedPost(t *testing.T) {
	src := t.TempDir()
	dir := writePostDir(t, src, "hello",
		`{"url": "/2020/08/18/hello/", "title": "Hello", "date": "2020-08-18T09:48:00-04:00", "tags": ["go", "blog"], "format": "markdown-v1"}`,
		"Hi there.\n")

	p, err := Load(dir, "/blog")
	require.NoError(t, err)

	assert.Equal(t, "Hello", p.Meta.Title)
	assert.Equal(t, []string{"go", "blog"}, p.Meta.Tags)
	assert.Equal(t, "Hi there.\n", p.Raw)
	assert.Equal(t, []string{"2020", "08", "18", "hello"}, p.PathParts)
	assert.Equal(t, "/blog/2020/08/18/hello/comments.atom", p.CommentsFeedPath)
	assert.True(t, p.IsListed())
	assert.False(t, p.Meta.HasUpdated())
}

func TestLoad_DraftGetsDraftPath(t *testing.T) {
	src := t.TempDir()
	dir := writePostDir(t, src, "wip-thing",
		`{"url": "/2020/01/01/_/", "title": "WIP", "date": "2020-01-01T00:00:00Z", "draft": true}`,
		"")

	p, err := Load(dir, "/blog")
	require.NoError(t, err)

	assert.Equal(t, "/draft/wip-thing/", p.Meta.URL)
	assert.Equal(t, []string{"draft", "wip-thing"}, p.PathParts)
	assert.False(t, p.IsListed())
}

func TestLoad_MissingRequiredKeys(t *testing.T) {
	src := t.TempDir()
	dir := writePostDir(t, src, "bad",
		`{"title": "No URL or date"}`,
		"")

	_, err := Load(dir, "/blog")
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "bad")
}

func TestLoad_MalformedURLInPublishedPost(t *testing.T) {
	src := t.TempDir()
	dir := writePostDir(t, src, "badurl",
		`{"url": "/not-a-date/x/", "title": "X", "date": "2020-01-01T00:00:00Z"}`,
		"")

	_, err := Load(dir, "/blog")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestLoad_UnknownKeysGoToExtra(t *testing.T) {
	src := t.TempDir()
	dir := writePostDir(t, src, "extra",
		`{"url": "/2020/01/01/extra/", "title": "X", "date": "2020-01-01T00:00:00Z", "mystery": {"a": 1}}`,
		"")

	p, err := Load(dir, "/blog")
	require.NoError(t, err)
	assert.Contains(t, p.Meta.Extra, "mystery")
}

func TestLoad_Comments(t *testing.T) {
	src := t.TempDir()
	dir := writePostDir(t, src, "talked-about",
		`{"url": "/2020/01/01/talked-about/", "title": "X", "date": "2020-01-01T00:00:00Z"}`,
		"")
	// Written out of chronological order on purpose.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comment_wordpress_2.md"),
		[]byte(`{"id": 2, "author": "Bea", "authorUrl": "https://bea.example", "date": "2020-02-01T00:00:00Z"}`+"\n---\nSecond!\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comment_wordpress_1.md"),
		[]byte(`{"id": 1, "author": "Abe", "authorUrl": null, "date": "2020-01-15T00:00:00Z"}`+"\n---\nFirst!\n"), 0o644))
	// Not a comment file; must be ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	p, err := Load(dir, "/blog")
	require.NoError(t, err)
	require.Len(t, p.Comments, 2)
	assert.Equal(t, int64(1), p.Comments[0].Meta.ID, "comments sorted ascending by date")
	assert.Equal(t, "", p.Comments[0].Meta.AuthorURL, "null authorUrl reads as empty")
	assert.Equal(t, "https://bea.example", p.Comments[1].Meta.AuthorURL)
}

func TestLoadAll_SortsDescendingAndFailsFast(t *testing.T) {
	src := t.TempDir()
	writePostDir(t, src, "older",
		`{"url": "/2019/01/01/older/", "title": "Older", "date": "2019-01-01T00:00:00Z"}`, "")
	writePostDir(t, src, "newer",
		`{"url": "/2021/01/01/newer/", "title": "Newer", "date": "2021-01-01T00:00:00Z"}`, "")
	// A directory without index.md is not a post dir.
	require.NoError(t, os.MkdirAll(filepath.Join(src, "not-a-post"), 0o755))

	posts, err := LoadAll(src, "/blog")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Newer", posts[0].Meta.Title)
	assert.Equal(t, "Older", posts[1].Meta.Title)

	// One bad post fails the whole load.
	writePostDir(t, src, "broken", `{"title": "broken"}`, "")
	_, err = LoadAll(src, "/blog")
	assert.Error(t, err)
}

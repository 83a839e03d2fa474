package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stillpress/stillpress/internal/config"
	"github.com/stillpress/stillpress/internal/post"
)

// testRenderer builds a Renderer over a fixed site configuration and a
// fixed clock, so age-dependent output is deterministic.
func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
site_title: Example Blog
site_subtitle: Words about things
base_path: /blog
base_authority: https://example.net
source_dir: /srv/posts
output_dir: /srv/public/blog
archive_id_secret: 0123456789abcdef
timezone: UTC
author_name: Alex Sample
author_uri: https://example.net/
author_bio: Alex writes this blog.
`), 0o644))
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	r := New(cfg)
	r.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return r
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return parsed
}

func fixturePost(t *testing.T, title, url, date string, raw string) *post.Post {
	t.Helper()
	return &post.Post{
		Meta: post.Meta{
			URL:    url,
			Title:  title,
			Date:   mustTime(t, date),
			Format: FormatMarkdownV1,
		},
		Raw:              raw,
		CommentsFeedPath: "/blog" + url + "comments.atom",
	}
}

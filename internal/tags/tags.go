// Package tags normalizes post tags into URL-safe slugs and builds the
// slug-to-posts index used for tag pages.
package tags

import (
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/stillpress/stillpress/internal/post"
)

// Slugify normalizes a tag to a URL-safe slug: lowercase, with every run
// of characters outside [a-z0-9] collapsed to a single hyphen and
// leading/trailing hyphens trimmed. A tag with no usable characters maps
// to the single-hyphen placeholder so it still has a distinct, valid
// slug.
//
// Input is NFC-normalized first so that composed and decomposed forms of
// the same tag can't produce different slugs.
func Slugify(tag string) string {
	lower := strings.ToLower(norm.NFC.String(tag))

	var b strings.Builder
	b.Grow(len(lower))
	var last byte
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			c = '-'
		}
		if c == '-' && last == '-' {
			continue
		}
		b.WriteByte(c)
		last = c
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "-"
	}
	return slug
}

// PostSlugs returns the sorted, deduplicated tag slugs for one post.
// Distinct tags that collapse to the same slug are a content mistake;
// they are logged and deduplicated rather than failing the run.
func PostSlugs(p *post.Post) []string {
	seen := make(map[string]bool, len(p.Meta.Tags))
	var slugs, dupes []string
	for _, tag := range p.Meta.Tags {
		slug := Slugify(tag)
		if seen[slug] {
			dupes = append(dupes, slug)
			continue
		}
		seen[slug] = true
		slugs = append(slugs, slug)
	}
	if len(dupes) > 0 {
		slog.Warn("duplicate tag slugs on post", "post", p.DirName(), "slugs", dupes)
	}
	slices.Sort(slugs)
	return slugs
}

// Index maps a tag slug to the posts carrying that tag, in the same
// descending-by-date order the posts were supplied in.
type Index map[string][]*post.Post

// BuildIndex groups listed posts by tag slug. postsDesc must be sorted
// descending by date; member lists inherit that order. Unlisted and
// draft posts are excluded so their tags and counts never leak into
// public pages.
func BuildIndex(postsDesc []*post.Post) Index {
	ix := make(Index)
	for _, p := range postsDesc {
		if !p.IsListed() {
			continue
		}
		for _, slug := range PostSlugs(p) {
			ix[slug] = append(ix[slug], p)
		}
	}
	return ix
}

// Linkable reports whether a tag page exists for slug. A page is only
// generated for tags with more than one member: a tag page that lists a
// single post is useless to the reader who just came from that post.
func (ix Index) Linkable(slug string) bool {
	return len(ix[slug]) > 1
}

package post

import (
	"fmt"
	"regexp"
)

// Published post URLs are date-plus-slug paths: /YYYY/MM/DD/slug/.
var postURLRe = regexp.MustCompile(`^/([0-9]{4})/([0-9]{2})/([0-9]{2})/([a-z0-9_\-]+)/$`)

// URLParts is the decomposed form of a published post URL.
type URLParts struct {
	Year  string
	Month string
	Day   string
	Slug  string
}

// PathParts returns the URL as output-directory path segments.
func (u URLParts) PathParts() []string {
	return []string{u.Year, u.Month, u.Day, u.Slug}
}

// ParsePostURL decomposes a published post URL. The boolean result makes
// "not a post URL" an explicit outcome rather than a nil to trip over.
func ParsePostURL(url string) (URLParts, bool) {
	m := postURLRe.FindStringSubmatch(url)
	if m == nil {
		return URLParts{}, false
	}
	return URLParts{Year: m[1], Month: m[2], Day: m[3], Slug: m[4]}, true
}

// Comment files are named comment_<type>_<id>.md, e.g.
// comment_wordpress_1042.md.
var commentFileRe = regexp.MustCompile(`^comment_([a-z]+)_([0-9]+)\.md$`)

// CommentFileName is the decomposed form of a comment file name.
type CommentFileName struct {
	Kind string // import source / comment type
	ID   string
}

// ParseCommentFileName reports whether name is a comment file, and if
// so, its parts. Non-comment files in a post directory (attachments
// live in a subdirectory, but editors drop backup files anywhere) are
// simply not content.
func ParseCommentFileName(name string) (CommentFileName, bool) {
	m := commentFileRe.FindStringSubmatch(name)
	if m == nil {
		return CommentFileName{}, false
	}
	return CommentFileName{Kind: m[1], ID: m[2]}, true
}

// DraftURL returns the URL assigned to a draft post. Drafts may not
// have a final URL yet; the source directory name is already unique and
// stable while the draft is being written, so template tags resolve to
// where the draft is actually rendered.
func DraftURL(dirName string) string {
	return fmt.Sprintf("/draft/%s/", dirName)
}

// Package post defines the content entity model: posts and their
// comments, loaded from source directories with JSON front matter.
//
// Loading is all-or-nothing: one malformed post aborts the whole load.
// The generator deletes output files it didn't produce, so proceeding
// past a parse failure would silently tear down the published pages of
// whichever posts failed to parse.
package post

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"time"
)

// Required front-matter keys for every post.
var requiredKeys = []string{"url", "title", "date"}

// Recognized optional front-matter keys. Anything else lands in
// Meta.Extra and draws a warning.
var optionalKeys = []string{"author", "tags", "draft", "id", "updated", "unlisted", "format"}

// Meta holds the typed front matter of a post. Unknown keys are
// preserved in Extra so normalization round-trips files written by a
// newer version of the tool.
type Meta struct {
	URL      string
	Title    string
	Date     time.Time
	Author   string
	Tags     []string
	Draft    bool
	ID       string
	Updated  time.Time // zero when never updated
	Unlisted bool
	Format   string // rendering format spec; empty means the post-page default

	Extra map[string]json.RawMessage
}

// HasUpdated reports whether the post carries an "updated" timestamp.
func (m *Meta) HasUpdated() bool { return !m.Updated.IsZero() }

// Post is one loaded content entity. The generator only reads posts; it
// never mutates them after loading.
type Post struct {
	Meta     Meta
	Raw      string // content body, front matter stripped
	Comments []Comment

	// SourceDir is the directory the post was loaded from; attachments
	// live in SourceDir/attach.
	SourceDir string

	// PathParts is the output directory path for this post, as segments
	// under the generation root. Derived from the URL for published
	// posts and from the source directory name for drafts.
	PathParts []string

	// CommentsFeedPath is the site-absolute path of this post's comment
	// feed.
	CommentsFeedPath string
}

// DirName returns the base name of the post's source directory, used to
// identify the post in log messages.
func (p *Post) DirName() string { return filepath.Base(p.SourceDir) }

// IsListed reports whether the post participates in pagination, feeds,
// and tag indexes. Drafts and unlisted posts are still rendered to their
// own URLs, but nothing public links to them.
func (p *Post) IsListed() bool { return !p.Meta.Draft && !p.Meta.Unlisted }

// URLPath returns the site-absolute path of the post page.
func (p *Post) URLPath(basePath string) string { return basePath + p.Meta.URL }

// CommentMeta holds the typed front matter of a comment.
type CommentMeta struct {
	ID        int64
	Author    string
	AuthorURL string
	Date      time.Time
	Updated   time.Time // zero when never updated
	OpenID    bool
	Format    string // empty means the comment default

	Extra map[string]json.RawMessage
}

// HasUpdated reports whether the comment carries an "updated" timestamp.
func (m *CommentMeta) HasUpdated() bool { return !m.Updated.IsZero() }

// Comment is one loaded comment on a post.
type Comment struct {
	Meta CommentMeta
	Raw  string
}

// ValidationError identifies a post that failed load-time validation.
type ValidationError struct {
	Dir string // post source directory
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("post %s: %v", path.Base(e.Dir), e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

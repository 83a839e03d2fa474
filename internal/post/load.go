package post

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
)

// indexFileName is the post body file inside each post directory.
const indexFileName = "index.md"

// ListPostDirs returns the directories under srcDir that contain a post
// index file, in directory-name order.
func ListPostDirs(srcDir string) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("listing post source dir: %w", err)
	}
	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(srcDir, entry.Name())
		if info, err := os.Stat(filepath.Join(dir, indexFileName)); err == nil && info.Mode().IsRegular() {
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

// LoadAll loads every post under srcDir, sorted descending by date.
// basePath is the site-absolute prefix for generated URLs (used to
// derive each post's comments feed path).
//
// Any single invalid post fails the whole load, before any output has
// been touched: a parser bug must not lead to good pages being pruned.
func LoadAll(srcDir, basePath string) ([]*Post, error) {
	dirs, err := ListPostDirs(srcDir)
	if err != nil {
		return nil, err
	}
	posts := make([]*Post, 0, len(dirs))
	for _, dir := range dirs {
		p, err := Load(dir, basePath)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Meta.Date.After(posts[j].Meta.Date)
	})
	return posts, nil
}

// Load reads and validates one post directory.
func Load(dir, basePath string) (*Post, error) {
	data, err := os.ReadFile(filepath.Join(dir, indexFileName))
	if err != nil {
		return nil, &ValidationError{Dir: dir, Err: err}
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, &ValidationError{Dir: dir, Err: err}
	}
	meta, err := decodeMeta(doc, dir)
	if err != nil {
		return nil, &ValidationError{Dir: dir, Err: err}
	}

	var pathParts []string
	if meta.Draft {
		// Drafts render under /draft/ regardless of any URL field;
		// see DraftURL.
		meta.URL = DraftURL(filepath.Base(dir))
		pathParts = []string{"draft", filepath.Base(dir)}
	} else {
		parts, ok := ParsePostURL(meta.URL)
		if !ok {
			return nil, &ValidationError{Dir: dir, Err: fmt.Errorf("malformed url %q in non-draft post", meta.URL)}
		}
		pathParts = parts.PathParts()
	}

	comments, err := LoadComments(dir)
	if err != nil {
		return nil, &ValidationError{Dir: dir, Err: err}
	}

	return &Post{
		Meta:             meta,
		Raw:              doc.Content,
		Comments:         comments,
		SourceDir:        dir,
		PathParts:        pathParts,
		CommentsFeedPath: basePath + meta.URL + "comments.atom",
	}, nil
}

// ListCommentFiles returns the comment file names in a post directory,
// in name order.
func ListCommentFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing post dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := ParseCommentFileName(entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// LoadComments reads every comment in a post directory, sorted ascending
// by date.
func LoadComments(dir string) ([]Comment, error) {
	names, err := ListCommentFiles(dir)
	if err != nil {
		return nil, err
	}
	comments := make([]Comment, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		doc, err := ParseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("comment %s: %w", name, err)
		}
		meta, err := decodeCommentMeta(doc, name)
		if err != nil {
			return nil, fmt.Errorf("comment %s: %w", name, err)
		}
		comments = append(comments, Comment{Meta: meta, Raw: doc.Content})
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Meta.Date.Before(comments[j].Meta.Date)
	})
	return comments, nil
}

func decodeMeta(doc *Document, dir string) (Meta, error) {
	var missing []string
	for _, key := range requiredKeys {
		if _, ok := doc.Meta[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Meta{}, fmt.Errorf("missing required front-matter keys: %v", missing)
	}

	var unknown []string
	for key := range doc.Meta {
		if !slices.Contains(requiredKeys, key) && !slices.Contains(optionalKeys, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		slog.Warn("unexpected front-matter keys", "post", filepath.Base(dir), "keys", unknown)
	}

	meta := Meta{Extra: make(map[string]json.RawMessage)}
	var err error
	if meta.URL, err = stringField(doc, "url"); err != nil {
		return Meta{}, err
	}
	if meta.Title, err = stringField(doc, "title"); err != nil {
		return Meta{}, err
	}
	dateStr, err := stringField(doc, "date")
	if err != nil {
		return Meta{}, err
	}
	if meta.Date, err = parseTime(dateStr); err != nil {
		return Meta{}, fmt.Errorf("date: %w", err)
	}
	if raw, ok := doc.Meta["updated"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Meta{}, fmt.Errorf("updated: %w", err)
		}
		if meta.Updated, err = parseTime(s); err != nil {
			return Meta{}, fmt.Errorf("updated: %w", err)
		}
	}
	if raw, ok := doc.Meta["author"]; ok {
		if err := json.Unmarshal(raw, &meta.Author); err != nil {
			return Meta{}, fmt.Errorf("author: %w", err)
		}
	}
	if raw, ok := doc.Meta["tags"]; ok {
		if err := json.Unmarshal(raw, &meta.Tags); err != nil {
			return Meta{}, fmt.Errorf("tags: %w", err)
		}
	}
	if raw, ok := doc.Meta["format"]; ok {
		if err := json.Unmarshal(raw, &meta.Format); err != nil {
			return Meta{}, fmt.Errorf("format: %w", err)
		}
	}
	if raw, ok := doc.Meta["id"]; ok {
		if meta.ID, err = flexibleID(raw); err != nil {
			return Meta{}, fmt.Errorf("id: %w", err)
		}
	}
	meta.Draft = doc.GetBool("draft")
	meta.Unlisted = doc.GetBool("unlisted")

	for key, raw := range doc.Meta {
		if len(unknown) > 0 && slices.Contains(unknown, key) {
			meta.Extra[key] = raw
		}
	}
	return meta, nil
}

func decodeCommentMeta(doc *Document, name string) (CommentMeta, error) {
	for _, key := range []string{"id", "author", "date"} {
		if _, ok := doc.Meta[key]; !ok {
			return CommentMeta{}, fmt.Errorf("missing required front-matter key %q", key)
		}
	}

	meta := CommentMeta{Extra: make(map[string]json.RawMessage)}
	if err := json.Unmarshal(doc.Meta["id"], &meta.ID); err != nil {
		return CommentMeta{}, fmt.Errorf("id: %w", err)
	}
	if err := json.Unmarshal(doc.Meta["author"], &meta.Author); err != nil {
		return CommentMeta{}, fmt.Errorf("author: %w", err)
	}
	dateStr, err := stringField(doc, "date")
	if err != nil {
		return CommentMeta{}, err
	}
	if meta.Date, err = parseTime(dateStr); err != nil {
		return CommentMeta{}, fmt.Errorf("date: %w", err)
	}
	if raw, ok := doc.Meta["updated"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return CommentMeta{}, fmt.Errorf("updated: %w", err)
		}
		if meta.Updated, err = parseTime(s); err != nil {
			return CommentMeta{}, fmt.Errorf("updated: %w", err)
		}
	}
	if raw, ok := doc.Meta["authorUrl"]; ok {
		// Imported comments may carry an explicit null here.
		var s *string
		if err := json.Unmarshal(raw, &s); err != nil {
			return CommentMeta{}, fmt.Errorf("authorUrl: %w", err)
		}
		if s != nil {
			meta.AuthorURL = *s
		}
	}
	if raw, ok := doc.Meta["format"]; ok {
		if err := json.Unmarshal(raw, &meta.Format); err != nil {
			return CommentMeta{}, fmt.Errorf("format: %w", err)
		}
	}
	meta.OpenID = doc.GetBool("openID")

	known := []string{"id", "author", "authorUrl", "date", "updated", "format", "openID"}
	for key, raw := range doc.Meta {
		if !slices.Contains(known, key) {
			meta.Extra[key] = raw
		}
	}
	return meta, nil
}

func stringField(doc *Document, key string) (string, error) {
	s, ok := doc.GetString(key)
	if !ok {
		return "", fmt.Errorf("front-matter key %q is not a string", key)
	}
	return s, nil
}

// flexibleID accepts either a string or an integer id; imported posts
// carry numeric ids, new posts get UUID strings.
func flexibleID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10), nil
	}
	return "", fmt.Errorf("expected string or integer")
}

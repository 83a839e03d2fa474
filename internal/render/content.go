package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/stillpress/stillpress/internal/post"
)

// Format specs name the pipeline a content body goes through. The spec
// travels with the content (front matter "format" key), so old posts
// keep rendering the way they were written even as new formats appear.
const (
	// FormatHTMLv1 is raw HTML, used by posts imported from WordPress
	// and posts written before Markdown support. Template tags work,
	// with HTML-escaped output.
	FormatHTMLv1 = "html-v1"

	// FormatCommentHTMLv1 is legacy comment HTML run through Markdown
	// so bare line breaks become paragraphs. Performs no filtering;
	// new comments must not use it.
	FormatCommentHTMLv1 = "comment-html-v1"

	// FormatMarkdownV1 is Markdown, the format for new posts.
	FormatMarkdownV1 = "markdown-v1"
)

// Defaults when the front matter carries no format key: everything
// predating the format key was imported HTML.
const (
	defaultPostFormat    = FormatHTMLv1
	defaultCommentFormat = FormatCommentHTMLv1
)

// excerptMarker splits a post body into excerpt and remainder.
const excerptMarker = "\n\n<!--more-->\n\n"

// contentHTML renders a content body per its format spec. meta is the
// owning post's metadata, used to resolve template tags.
func (r *Renderer) contentHTML(raw string, meta *post.Meta, format string) (string, error) {
	switch format {
	case FormatHTMLv1:
		return replaceTemplateTags(raw, meta, r.cfg.BasePath, tagSubstOpts{
			prefix:      "h_",
			allowed:     []string{"h_post_url", "h_attach_url"},
			postprocess: html.EscapeString,
		}), nil
	case FormatCommentHTMLv1:
		substituted := replaceTemplateTags(raw, meta, r.cfg.BasePath, tagSubstOpts{
			prefix:      "h_",
			allowed:     []string{"h_attach_url"},
			postprocess: html.EscapeString,
		})
		return markdownHTML(substituted)
	case FormatMarkdownV1:
		substituted := replaceTemplateTags(raw, meta, r.cfg.BasePath, tagSubstOpts{
			allowed: []string{"post_url", "attach_url"},
		})
		return markdownHTML(substituted)
	default:
		return "", fmt.Errorf("unknown format spec %q", format)
	}
}

// PostContentHTML renders a post's full body.
func (r *Renderer) PostContentHTML(p *post.Post) (string, error) {
	body := strings.Join(strings.SplitN(p.Raw, excerptMarker, 2), "\n\n")
	format := p.Meta.Format
	if format == "" {
		format = defaultPostFormat
	}
	return r.contentHTML(body, &p.Meta, format)
}

// PostExcerptHTML renders the portion of a post before the excerpt
// marker. The boolean result is false when the post has no marker and
// therefore no excerpt.
func (r *Renderer) PostExcerptHTML(p *post.Post) (string, bool, error) {
	before, _, found := strings.Cut(p.Raw, excerptMarker)
	if !found {
		return "", false, nil
	}
	format := p.Meta.Format
	if format == "" {
		format = defaultPostFormat
	}
	out, err := r.contentHTML(before, &p.Meta, format)
	return out, err == nil, err
}

// CommentContentHTML renders a comment body. Template tags in comments
// resolve against the owning post.
func (r *Renderer) CommentContentHTML(c *post.Comment, p *post.Post) (string, error) {
	format := c.Meta.Format
	if format == "" {
		format = defaultCommentFormat
	}
	return r.contentHTML(c.Raw, &p.Meta, format)
}

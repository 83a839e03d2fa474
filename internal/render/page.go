package render

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"regexp"

	"github.com/stillpress/stillpress/internal/post"
	"github.com/stillpress/stillpress/internal/tags"
)

// chromeData feeds the shared page chrome (header, site nav, footer).
type chromeData struct {
	SiteTitle    string
	SiteSubtitle string
	BasePath     string
	MainFeedPath string
}

func (r *Renderer) chrome() chromeData {
	return chromeData{
		SiteTitle:    r.cfg.SiteTitle,
		SiteSubtitle: r.cfg.SiteSubtitle,
		BasePath:     r.cfg.BasePath,
		MainFeedPath: r.cfg.MainFeedPath(),
	}
}

type tagLink struct {
	Label string
	URL   string // empty: tag has no page, render as plain text
	Title string
}

type commentView struct {
	ID           string
	ReadableDate string
	Author       string
	AuthorURL    string // empty: no safe URL to link
	Content      template.HTML
}

type commentSectionData struct {
	Count    int
	FeedPath string
	Comments []commentView
}

type postPageData struct {
	Chrome         chromeData
	Title          string
	Permalink      string
	ReferrerPolicy string
	Topnotes       []template.HTML
	Content        template.HTML
	PostedDate     string
	UpdatedDate    string // empty: never updated
	Tags           []tagLink
	AuthorName     string
	AuthorBio      string
	Comments       commentSectionData
}

// Only http(s) author URLs are linked; anything else stays plain text.
var safeAuthorURLRe = regexp.MustCompile(`(?i)^https?://`)

// PostPage renders the standalone page for one post, comments included.
// The tag index decides which of the post's tags link to a tag page.
func (r *Renderer) PostPage(p *post.Post, ix tags.Index) ([]byte, error) {
	meta := &p.Meta

	data := postPageData{
		Chrome:     r.chrome(),
		Title:      meta.Title,
		Permalink:  r.cfg.BasePath + meta.URL,
		PostedDate: r.ReadableDate(meta.Date),
		AuthorName: r.cfg.AuthorName,
		AuthorBio:  r.cfg.AuthorBio,
	}
	if meta.HasUpdated() {
		data.UpdatedDate = r.ReadableDate(meta.Updated)
	}

	// Drafts and unlisted posts must not leak referrers to the pages
	// they link out to.
	data.ReferrerPolicy = "no-referrer"
	switch {
	case meta.Draft:
		data.Title = "[DRAFT] " + meta.Title + " [DRAFT]"
	case meta.Unlisted:
		data.Title = "[UNLISTED POST] " + meta.Title + " [UNLISTED POST]"
		data.Topnotes = append(data.Topnotes, topnoteUnlisted)
	default:
		data.ReferrerPolicy = "no-referrer-when-downgrade"
	}

	if years := r.YearsOld(meta.Date); years > 5 {
		var buf bytes.Buffer
		if err := pageTemplates.ExecuteTemplate(&buf, "topnote_age", int(math.Floor(years))); err != nil {
			return nil, fmt.Errorf("rendering age topnote: %w", err)
		}
		data.Topnotes = append(data.Topnotes, template.HTML(buf.String()))
	}

	content, err := r.PostContentHTML(p)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", p.DirName(), err)
	}
	data.Content = template.HTML(content)

	for _, tag := range meta.Tags {
		link := tagLink{Label: tag}
		if slug := tags.Slugify(tag); ix.Linkable(slug) {
			link.URL = fmt.Sprintf("%s/tag/%s/", r.cfg.BasePath, slug)
			link.Title = fmt.Sprintf("Posts tagged %q", tag)
		}
		data.Tags = append(data.Tags, link)
	}

	data.Comments = commentSectionData{
		Count:    len(p.Comments),
		FeedPath: p.CommentsFeedPath,
	}
	for i := range p.Comments {
		c := &p.Comments[i]
		commentHTML, err := r.CommentContentHTML(c, p)
		if err != nil {
			return nil, fmt.Errorf("post %s comment %d: %w", p.DirName(), c.Meta.ID, err)
		}
		view := commentView{
			ID:           fmt.Sprintf("%d", c.Meta.ID),
			ReadableDate: r.ReadableDate(c.Meta.Date),
			Author:       c.Meta.Author,
			Content:      template.HTML(commentHTML),
		}
		if safeAuthorURLRe.MatchString(c.Meta.AuthorURL) {
			view.AuthorURL = c.Meta.AuthorURL
		}
		data.Comments.Comments = append(data.Comments.Comments, view)
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "post", data); err != nil {
		return nil, fmt.Errorf("rendering post page: %w", err)
	}
	return buf.Bytes(), nil
}

type multipostEntry struct {
	URL          string
	Title        string
	Timestamp    string
	CommentCount string
	HasExcerpt   bool
	Excerpt      template.HTML
}

type multipostPageData struct {
	Chrome       chromeData
	Title        string
	Intro        template.HTML
	PageDesc     template.HTML
	ContentClass string
	Entries      []multipostEntry
	OlderURL     string
	NewerURL     string
	Noindex      bool
}

// MultiPostPageOpts parameterizes an excerpt-listing page (the index
// page and the archive pages).
type MultiPostPageOpts struct {
	Posts []*post.Post // descending by date

	Title        string
	IntroHTML    string // trusted HTML shown above the listing
	PageDescHTML string // trusted HTML for the sidebar description
	ContentClass string

	// OlderURL and NewerURL are navigation targets; empty means no
	// link in that direction. A page with a newer sibling is marked
	// noindex so search engines only index the canonical front page.
	OlderURL string
	NewerURL string
}

// MultiPostPage renders a listing of posts with excerpts.
func (r *Renderer) MultiPostPage(opts MultiPostPageOpts) ([]byte, error) {
	data := multipostPageData{
		Chrome:       r.chrome(),
		Title:        opts.Title,
		Intro:        template.HTML(opts.IntroHTML),
		PageDesc:     template.HTML(opts.PageDescHTML),
		ContentClass: opts.ContentClass,
		OlderURL:     opts.OlderURL,
		NewerURL:     opts.NewerURL,
		Noindex:      opts.NewerURL != "",
	}
	for _, p := range opts.Posts {
		excerpt, hasExcerpt, err := r.PostExcerptHTML(p)
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", p.DirName(), err)
		}
		plural := "s"
		if len(p.Comments) == 1 {
			plural = ""
		}
		data.Entries = append(data.Entries, multipostEntry{
			URL:          r.cfg.BasePath + p.Meta.URL,
			Title:        p.Meta.Title,
			Timestamp:    p.Meta.Date.In(r.cfg.Location()).Format("January 02, 2006"),
			CommentCount: fmt.Sprintf("%d comment%s", len(p.Comments), plural),
			HasExcerpt:   hasExcerpt,
			Excerpt:      template.HTML(excerpt),
		})
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "multipost", data); err != nil {
		return nil, fmt.Errorf("rendering multipost page: %w", err)
	}
	return buf.Bytes(), nil
}

type quicklinkEntry struct {
	URL   string
	Title string
}

type quicklinkYear struct {
	Year  int
	Posts []quicklinkEntry
}

type quicklinksPageData struct {
	Chrome       chromeData
	Title        string
	PageDesc     template.HTML
	ContentClass string
	Years        []quicklinkYear
}

// QuicklinksPageOpts parameterizes a year-bucketed title listing (tag
// pages and the drafts index).
type QuicklinksPageOpts struct {
	Posts []*post.Post // descending by date

	Title        string
	PageDescHTML string
	ContentClass string
}

// QuicklinksPage renders a year-bucketed listing of post titles.
func (r *Renderer) QuicklinksPage(opts QuicklinksPageOpts) ([]byte, error) {
	data := quicklinksPageData{
		Chrome:       r.chrome(),
		Title:        opts.Title,
		PageDesc:     template.HTML(opts.PageDescHTML),
		ContentClass: opts.ContentClass,
	}
	for _, p := range opts.Posts {
		year := p.Meta.Date.In(r.cfg.Location()).Year()
		if n := len(data.Years); n == 0 || data.Years[n-1].Year != year {
			data.Years = append(data.Years, quicklinkYear{Year: year})
		}
		bucket := &data.Years[len(data.Years)-1]
		bucket.Posts = append(bucket.Posts, quicklinkEntry{
			URL:   r.cfg.BasePath + p.Meta.URL,
			Title: p.Meta.Title,
		})
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "quicklinks", data); err != nil {
		return nil, fmt.Errorf("rendering quicklinks page: %w", err)
	}
	return buf.Bytes(), nil
}

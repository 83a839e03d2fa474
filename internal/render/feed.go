package render

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/stillpress/stillpress/internal/post"
)

// feedEntryLimit caps the site feed at the newest posts; the archive
// pages cover the rest.
const feedEntryLimit = 20

const atomNamespace = "http://www.w3.org/2005/Atom"

// xmlHeader matches the declaration the feeds have always been
// published with; readers cache feeds aggressively, so gratuitous byte
// changes are worth avoiding.
const xmlHeader = "<?xml version='1.0' encoding='UTF-8'?>\n"

type atomFeed struct {
	XMLName  xml.Name    `xml:"feed"`
	Xmlns    string      `xml:"xmlns,attr"`
	Lang     string      `xml:"xml:lang,attr"`
	Base     string      `xml:"xml:base,attr"`
	Title    string      `xml:"title"`
	Subtitle string      `xml:"subtitle,omitempty"`
	ID       string      `xml:"id"`
	Links    []atomLink  `xml:"link"`
	Entries  []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title      string         `xml:"title"`
	Links      []atomLink     `xml:"link"`
	Author     *atomAuthor    `xml:"author,omitempty"`
	ID         string         `xml:"id"`
	Updated    string         `xml:"updated"`
	Published  string         `xml:"published"`
	Categories []atomCategory `xml:"category"`
	Content    atomContent    `xml:"content"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
	Href string `xml:"href,attr"`
}

type atomAuthor struct {
	Name string `xml:"name"`
	URI  string `xml:"uri,omitempty"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomContent struct {
	Type string `xml:"type,attr"`
	Base string `xml:"xml:base,attr,omitempty"`
	Text string `xml:",chardata"`
}

func atomTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// SiteFeed renders the aggregate Atom feed of the newest listed posts.
// postsDesc must already be filtered to listed posts, descending by
// date.
func (r *Renderer) SiteFeed(postsDesc []*post.Post) ([]byte, error) {
	// Feed identifiers are global: they need the authority, not just a
	// site-absolute path.
	blogURL := r.cfg.BaseAuthority + r.cfg.BasePath
	feedURL := r.cfg.BaseAuthority + r.cfg.MainFeedPath()

	feed := atomFeed{
		Xmlns:    atomNamespace,
		Lang:     "en-US",
		Base:     blogURL + "/",
		Title:    r.cfg.SiteTitle,
		Subtitle: r.cfg.SiteSubtitle,
		ID:       feedURL,
		Links: []atomLink{
			{Rel: "alternate", Type: "text/html", Href: blogURL},
			{Rel: "self", Type: "application/atom+xml", Href: feedURL},
		},
	}

	limit := min(feedEntryLimit, len(postsDesc))
	for _, p := range postsDesc[:limit] {
		permalink := r.cfg.BaseAuthority + r.cfg.BasePath + p.Meta.URL
		content, err := r.PostContentHTML(p)
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", p.DirName(), err)
		}
		updated := p.Meta.Date
		if p.Meta.HasUpdated() {
			updated = p.Meta.Updated
		}
		entry := atomEntry{
			Title: p.Meta.Title,
			Links: []atomLink{
				{Rel: "alternate", Type: "text/html", Href: permalink},
			},
			Author: &atomAuthor{
				Name: r.cfg.AuthorName,
				URI:  r.cfg.AuthorURI,
			},
			ID:        permalink,
			Updated:   atomTime(updated),
			Published: atomTime(p.Meta.Date),
			Content:   atomContent{Type: "html", Base: permalink, Text: content},
		}
		for _, tag := range p.Meta.Tags {
			entry.Categories = append(entry.Categories, atomCategory{Term: tag})
		}
		feed.Entries = append(feed.Entries, entry)
	}

	return marshalFeed(feed)
}

// CommentsFeed renders the per-post Atom feed of comments, newest
// first.
func (r *Renderer) CommentsFeed(p *post.Post) ([]byte, error) {
	postURL := r.cfg.BaseAuthority + r.cfg.BasePath + p.Meta.URL
	feedURL := r.cfg.BaseAuthority + p.CommentsFeedPath

	feed := atomFeed{
		Xmlns: atomNamespace,
		Lang:  "en-US",
		Base:  postURL,
		Title: fmt.Sprintf("Comments on “%s”", p.Meta.Title),
		ID:    feedURL,
		Links: []atomLink{
			{Rel: "alternate", Type: "text/html", Href: postURL + "#comments"},
			{Rel: "self", Type: "application/atom+xml", Href: feedURL},
		},
	}

	for i := len(p.Comments) - 1; i >= 0; i-- {
		c := &p.Comments[i]
		permalink := fmt.Sprintf("%s#comment-%d", postURL, c.Meta.ID)
		content, err := r.CommentContentHTML(c, p)
		if err != nil {
			return nil, fmt.Errorf("post %s comment %d: %w", p.DirName(), c.Meta.ID, err)
		}
		updated := c.Meta.Date
		if c.Meta.HasUpdated() {
			updated = c.Meta.Updated
		}
		entry := atomEntry{
			Title: "By: " + c.Meta.Author,
			Links: []atomLink{
				{Rel: "alternate", Type: "text/html", Href: permalink},
			},
			Author:    &atomAuthor{Name: c.Meta.Author},
			ID:        permalink,
			Updated:   atomTime(updated),
			Published: atomTime(c.Meta.Date),
			Content:   atomContent{Type: "html", Base: postURL, Text: content},
		}
		if safeAuthorURLRe.MatchString(c.Meta.AuthorURL) {
			entry.Author.URI = c.Meta.AuthorURL
		}
		feed.Entries = append(feed.Entries, entry)
	}

	return marshalFeed(feed)
}

func marshalFeed(feed atomFeed) ([]byte, error) {
	body, err := xml.Marshal(feed)
	if err != nil {
		return nil, fmt.Errorf("marshaling feed: %w", err)
	}
	return append([]byte(xmlHeader), body...), nil
}

package publish

import (
	"fmt"
	"html"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/stillpress/stillpress/internal/chunk"
	"github.com/stillpress/stillpress/internal/config"
	"github.com/stillpress/stillpress/internal/post"
	"github.com/stillpress/stillpress/internal/render"
	"github.com/stillpress/stillpress/internal/tags"
)

// Archive pagination parameters: chunks of five posts, and the index
// page never shows fewer than three. Changing these re-splits every
// archive page, so don't.
const (
	archiveChunkSize = 5
	archiveChunkMin  = 3
)

// Driver runs the load/compute/reconcile pipeline for one site.
type Driver struct {
	cfg      *config.Config
	renderer *render.Renderer
}

// New creates a Driver for the given site configuration.
func New(cfg *config.Config) *Driver {
	return &Driver{cfg: cfg, renderer: render.New(cfg)}
}

// archivePage is one older-posts chunk and its stable identifier.
type archivePage struct {
	ID    string
	Posts []*post.Post
}

// Run regenerates the whole output tree.
func (d *Driver) Run() error {
	postsDesc, err := post.LoadAll(d.cfg.SourceDir, d.cfg.BasePath)
	if err != nil {
		return fmt.Errorf("loading posts: %w", err)
	}

	ix := tags.BuildIndex(postsDesc)

	rec := NewReconciler(d.cfg.OutputDir)
	if err := rec.Scan(); err != nil {
		return err
	}

	if err := d.postPages(rec, postsDesc, ix); err != nil {
		return err
	}
	if err := d.draftsIndex(rec, postsDesc); err != nil {
		return err
	}

	listed := make([]*post.Post, 0, len(postsDesc))
	for _, p := range postsDesc {
		if p.IsListed() {
			listed = append(listed, p)
		}
	}

	indexListing, archives := d.paginate(listed)
	if err := d.indexPage(rec, indexListing, archives); err != nil {
		return err
	}
	if err := d.archivePages(rec, archives); err != nil {
		return err
	}
	if err := d.siteFeed(rec, listed); err != nil {
		return err
	}
	if err := d.tagPages(rec, ix); err != nil {
		return err
	}

	if err := rec.Prune(); err != nil {
		return err
	}

	slog.Info("site generated", "posts", len(postsDesc), "listed", len(listed))
	return nil
}

// postPages renders every post's own page, its comments feed, and its
// attachments. Drafts and unlisted posts get pages too; they just
// aren't linked from anywhere public.
func (d *Driver) postPages(rec *Reconciler, postsDesc []*post.Post, ix tags.Index) error {
	for _, p := range postsDesc {
		outDir := filepath.Join(append([]string{d.cfg.OutputDir}, p.PathParts...)...)

		page, err := d.renderer.PostPage(p, ix)
		if err != nil {
			return err
		}
		if err := rec.WriteFile(filepath.Join(outDir, "index.html"), page); err != nil {
			return err
		}

		feed, err := d.renderer.CommentsFeed(p)
		if err != nil {
			return err
		}
		if err := rec.WriteFile(filepath.Join(outDir, "comments.atom"), feed); err != nil {
			return err
		}

		if err := linkAttachments(rec, p, outDir); err != nil {
			return err
		}
	}
	return nil
}

// draftsIndex renders a local-only listing of drafts, when any exist.
func (d *Driver) draftsIndex(rec *Reconciler, postsDesc []*post.Post) error {
	var drafts []*post.Post
	for _, p := range postsDesc {
		if p.Meta.Draft {
			drafts = append(drafts, p)
		}
	}
	if len(drafts) == 0 {
		return nil
	}
	page, err := d.renderer.QuicklinksPage(render.QuicklinksPageOpts{
		Posts:        drafts,
		Title:        "Drafts",
		PageDescHTML: "Drafts, only visible locally.",
		ContentClass: "drafts",
	})
	if err != nil {
		return err
	}
	return rec.WriteFile(filepath.Join(d.cfg.OutputDir, "draft", "index.html"), page)
}

// paginate splits the listed posts into the index listing (the newest
// chunk) and the archive pages, oldest chunk carrying index 1 so its
// identifier — and URL — never changes as new posts appear.
func (d *Driver) paginate(listed []*post.Post) ([]*post.Post, []archivePage) {
	chunks := chunk.Stable(listed, archiveChunkSize, archiveChunkMin)
	if len(chunks) == 0 {
		return nil, nil
	}

	pages := make([]archivePage, len(chunks))
	for i, c := range chunks {
		index := len(chunks) - i // 1-based, ascending with age
		pages[i] = archivePage{ID: chunk.ArchiveID(index, d.cfg.ArchiveIDSecret), Posts: c}
	}
	return pages[0].Posts, pages[1:]
}

func (d *Driver) archiveURL(id string) string {
	return fmt.Sprintf("%s/archive/%s.html", d.cfg.BasePath, id)
}

// indexPage renders the front page from the newest chunk.
func (d *Driver) indexPage(rec *Reconciler, listing []*post.Post, archives []archivePage) error {
	olderURL := ""
	if len(archives) > 0 {
		olderURL = d.archiveURL(archives[0].ID)
	}
	desc := fmt.Sprintf(
		`The most recent posts. To know when new posts come out, <a href="%s">subscribe to the feed</a>.`,
		html.EscapeString(d.cfg.MainFeedPath()))
	page, err := d.renderer.MultiPostPage(render.MultiPostPageOpts{
		Posts:        listing,
		Title:        "Recent posts",
		IntroHTML:    d.cfg.IndexIntroHTML,
		PageDescHTML: desc,
		ContentClass: "recent-posts",
		OlderURL:     olderURL,
	})
	if err != nil {
		return err
	}
	return rec.WriteFile(filepath.Join(d.cfg.OutputDir, "index.html"), page)
}

// archivePages renders the older-posts pages. Navigation runs both
// ways: "older" to the next archive page, "newer" to the previous one —
// except from the newest archive page, which links back to the root
// index rather than to another archive page.
func (d *Driver) archivePages(rec *Reconciler, archives []archivePage) error {
	for i, page := range archives {
		newest := page.Posts[0].Meta.Date.In(d.cfg.Location()).Format("2006-01-02")
		oldest := page.Posts[len(page.Posts)-1].Meta.Date.In(d.cfg.Location()).Format("2006-01-02")
		rangeDesc := newest
		if newest != oldest {
			rangeDesc = fmt.Sprintf("%s back to %s", newest, oldest)
		}
		desc := fmt.Sprintf("These are older posts, from <strong>%s</strong>.", html.EscapeString(rangeDesc))
		if d.renderer.YearsOld(page.Posts[0].Meta.Date) > 5 {
			desc += " If you're doing an archive binge, tread carefully; these posts go back aways."
		}

		olderURL := ""
		if i < len(archives)-1 {
			olderURL = d.archiveURL(archives[i+1].ID)
		}
		newerURL := d.cfg.BasePath + "/"
		if i > 0 {
			newerURL = d.archiveURL(archives[i-1].ID)
		}

		rendered, err := d.renderer.MultiPostPage(render.MultiPostPageOpts{
			Posts:        page.Posts,
			Title:        "Archive",
			PageDescHTML: desc,
			ContentClass: "archive-posts",
			OlderURL:     olderURL,
			NewerURL:     newerURL,
		})
		if err != nil {
			return err
		}
		out := filepath.Join(d.cfg.OutputDir, "archive", page.ID+".html")
		if err := rec.WriteFile(out, rendered); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) siteFeed(rec *Reconciler, listed []*post.Post) error {
	feed, err := d.renderer.SiteFeed(listed)
	if err != nil {
		return err
	}
	return rec.WriteFile(filepath.Join(d.cfg.OutputDir, "posts.atom"), feed)
}

// tagPages renders one page per multi-member tag. Singleton tags get no
// page: posts are the only thing linking to tag pages, and a tag page
// holding just the post the reader came from is pointless.
func (d *Driver) tagPages(rec *Reconciler, ix tags.Index) error {
	slugs := make([]string, 0, len(ix))
	for slug := range ix {
		slugs = append(slugs, slug)
	}
	slices.Sort(slugs)

	for _, slug := range slugs {
		if !ix.Linkable(slug) {
			continue
		}
		page, err := d.renderer.QuicklinksPage(render.QuicklinksPageOpts{
			Posts:        ix[slug],
			Title:        fmt.Sprintf("Tagged %q", slug),
			PageDescHTML: fmt.Sprintf("All posts tagged with %q.", html.EscapeString(slug)),
			ContentClass: "tagged-posts",
		})
		if err != nil {
			return err
		}
		out := filepath.Join(d.cfg.OutputDir, "tag", slug, "index.html")
		if err := rec.WriteFile(out, page); err != nil {
			return err
		}
	}
	return nil
}

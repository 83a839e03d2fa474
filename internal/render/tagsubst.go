package render

import (
	"log/slog"
	"regexp"
	"slices"

	"github.com/stillpress/stillpress/internal/post"
)

// Template tags let content link to its own URL or attachments without
// baking in the date and slug, which change when a draft is published.
// A tag looks like {{attach_url}}; the HTML format specs use a
// prefixed form ({{h_attach_url}}) whose output is HTML-escaped.
var templateTagRe = regexp.MustCompile(`\{\{([a-z_]+)\}\}`)

// tagSubstOpts controls template-tag recognition for one format spec.
type tagSubstOpts struct {
	// prefix is prepended to the base tag names before matching, so
	// the tag name as written in content appears here and stays
	// greppable.
	prefix string
	// allowed lists the recognized tag names, prefix included.
	allowed []string
	// postprocess, if set, runs on every substitution output.
	postprocess func(string) string
}

// replaceTemplateTags substitutes recognized template tags in raw
// content. Unrecognized tags are left verbatim with a warning: eating
// them would corrupt content that merely looks like a tag.
func replaceTemplateTags(raw string, meta *post.Meta, basePath string, opts tagSubstOpts) string {
	base := map[string]func(*post.Meta) string{
		"attach_url": func(m *post.Meta) string { return basePath + m.URL + "attach" },
		"post_url":   func(m *post.Meta) string { return basePath + m.URL },
	}
	replacements := make(map[string]func(*post.Meta) string, len(base))
	for name, fn := range base {
		prefixed := opts.prefix + name
		if slices.Contains(opts.allowed, prefixed) {
			replacements[prefixed] = fn
		}
	}

	return templateTagRe.ReplaceAllStringFunc(raw, func(match string) string {
		name := templateTagRe.FindStringSubmatch(match)[1]
		fn, ok := replacements[name]
		if !ok {
			slog.Warn("unrecognized template tag", "tag", name, "prefix", opts.prefix)
			return match
		}
		out := fn(meta)
		if opts.postprocess != nil {
			out = opts.postprocess(out)
		}
		return out
	})
}

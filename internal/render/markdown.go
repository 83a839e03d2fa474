package render

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// markdownInstance is initialized once and reused. The configuration
// never changes and the goldmark Markdown is safe to share; per-call
// state lives in the reader created by Convert.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			// Post bodies are the author's own trusted content and
			// freely mix raw HTML into Markdown, so inline HTML must
			// pass through unfiltered.
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		)
	})
	return markdownInstance
}

// markdownHTML renders Markdown source to HTML.
func markdownHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

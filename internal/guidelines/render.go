package guidelines

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/p-blackswan/arkide-viewer/lru"
)

// Renderer converts guideline pages to HTML. Output is memoised per key since
// the bundle never changes.
type Renderer struct {
	bundle *Bundle
	md     goldmark.Markdown
	cache  *lru.Cache[Key, string]
}

// NewRenderer creates a renderer over b.
func NewRenderer(b *Bundle) *Renderer {
	size := len(b.order)
	if size == 0 {
		size = 1
	}
	return &Renderer{
		bundle: b,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.TaskList),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		cache: lru.New[Key, string](size),
	}
}

// HTML renders the page for key.
func (r *Renderer) HTML(key Key) (string, error) {
	body, ok := r.bundle.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, key)
	}
	return r.cache.GetOrLoad(key, func() (string, error) {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(body), &buf); err != nil {
			return "", fmt.Errorf("rendering %q: %w", key, err)
		}
		return buf.String(), nil
	})
}

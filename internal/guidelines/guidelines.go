// Package guidelines bundles the community guideline documents shown by the
// viewer front end.
package guidelines

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Key identifies a guideline page.
type Key string

const (
	KeyUploading    Key = "uploading"
	KeyModeration   Key = "moderation"
	KeyGeneralRules Key = "general-rules"
)

const indexFile = "index.yaml"

// ErrUnknownPage is returned for keys not present in the bundle.
var ErrUnknownPage = errors.New("unknown guideline page")

//go:embed content/*
var content embed.FS

// Page is one guideline document.
type Page struct {
	Key     Key    `json:"key"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	Body    string `json:"-"`
}

// Bundle is an immutable, ordered set of guideline pages.
type Bundle struct {
	pages map[Key]Page
	order []Key
}

type index struct {
	Pages []struct {
		Key  Key    `yaml:"key"`
		File string `yaml:"file"`
	} `yaml:"pages"`
}

type pageMeta struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

// Load reads index.yaml and the pages it lists from fsys.
func Load(fsys fs.FS) (*Bundle, error) {
	raw, err := fs.ReadFile(fsys, indexFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", indexFile, err)
	}
	var idx index
	if err := yaml.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", indexFile, err)
	}

	b := &Bundle{pages: make(map[Key]Page, len(idx.Pages))}
	for _, entry := range idx.Pages {
		if entry.Key == "" || entry.File == "" {
			return nil, fmt.Errorf("%s: entry needs both key and file", indexFile)
		}
		if _, dup := b.pages[entry.Key]; dup {
			return nil, fmt.Errorf("%s: duplicate key %q", indexFile, entry.Key)
		}
		page, err := loadPage(fsys, entry.Key, entry.File)
		if err != nil {
			return nil, err
		}
		b.pages[entry.Key] = page
		b.order = append(b.order, entry.Key)
	}
	return b, nil
}

func loadPage(fsys fs.FS, key Key, file string) (Page, error) {
	src, err := fs.ReadFile(fsys, path.Clean(file))
	if err != nil {
		return Page{}, fmt.Errorf("reading page %q: %w", key, err)
	}
	var meta pageMeta
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return Page{}, fmt.Errorf("parsing frontmatter of %q: %w", key, err)
	}
	if meta.Title == "" {
		meta.Title = string(key)
	}
	return Page{
		Key:     key,
		Title:   meta.Title,
		Summary: meta.Summary,
		Body:    string(bytes.TrimLeft(body, "\n")),
	}, nil
}

var embedded = sync.OnceValues(func() (*Bundle, error) {
	sub, err := fs.Sub(content, "content")
	if err != nil {
		return nil, err
	}
	return Load(sub)
})

// Embedded returns the bundle compiled into the binary.
func Embedded() (*Bundle, error) {
	return embedded()
}

// Keys returns the page keys in display order.
func (b *Bundle) Keys() []Key {
	return append([]Key(nil), b.order...)
}

// Get returns the markdown body for key.
func (b *Bundle) Get(key Key) (string, bool) {
	p, ok := b.pages[key]
	return p.Body, ok
}

// Page returns the full page for key.
func (b *Bundle) Page(key Key) (Page, error) {
	p, ok := b.pages[key]
	if !ok {
		return Page{}, fmt.Errorf("%w: %q", ErrUnknownPage, key)
	}
	return p, nil
}

// List returns every page in display order.
func (b *Bundle) List() []Page {
	out := make([]Page, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, b.pages[k])
	}
	return out
}

// Pages returns the key to markdown mapping consumed by the front end.
func (b *Bundle) Pages() map[Key]string {
	out := make(map[Key]string, len(b.pages))
	for k, p := range b.pages {
		out[k] = p.Body
	}
	return out
}

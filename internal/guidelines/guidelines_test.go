package guidelines

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEmbedded_Keys(t *testing.T) {
	b, err := Embedded()
	require.NoError(t, err)

	assert.Equal(t, []Key{KeyUploading, KeyModeration, KeyGeneralRules}, b.Keys())

	pages := b.Pages()
	assert.Len(t, pages, 3)
	for _, k := range []Key{"uploading", "moderation", "general-rules"} {
		body, ok := pages[k]
		require.True(t, ok, "missing %s", k)
		assert.NotEmpty(t, body)
		assert.NotContains(t, body, "---\ntitle:", "frontmatter should be stripped from %s", k)
	}
}

func TestEmbedded_Titles(t *testing.T) {
	b, err := Embedded()
	require.NoError(t, err)

	p, err := b.Page(KeyGeneralRules)
	require.NoError(t, err)
	assert.Equal(t, "General Rules", p.Title)
	assert.NotEmpty(t, p.Summary)
}

func TestBundle_UnknownKey(t *testing.T) {
	b, err := Embedded()
	require.NoError(t, err)

	_, ok := b.Get("terms")
	assert.False(t, ok)
	_, err = b.Page("terms")
	assert.True(t, errors.Is(err, ErrUnknownPage))
}

func TestLoad_Order(t *testing.T) {
	fsys := fstest.MapFS{
		"index.yaml": {Data: []byte("pages:\n  - key: b\n    file: b.md\n  - key: a\n    file: a.md\n")},
		"a.md":       {Data: []byte("# A\n")},
		"b.md":       {Data: []byte("---\ntitle: Bee\n---\n# B\n")},
	}
	b, err := Load(fsys)
	require.NoError(t, err)

	list := b.List()
	require.Len(t, list, 2)
	assert.Equal(t, Key("b"), list[0].Key)
	assert.Equal(t, "Bee", list[0].Title)
	assert.Equal(t, "# B\n", list[0].Body)
	assert.Equal(t, "a", list[1].Title, "title falls back to key")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"missing index", fstest.MapFS{}},
		{"bad yaml", fstest.MapFS{"index.yaml": {Data: []byte("pages: [")}}},
		{"missing file", fstest.MapFS{"index.yaml": {Data: []byte("pages:\n  - key: a\n    file: a.md\n")}}},
		{"duplicate key", fstest.MapFS{
			"index.yaml": {Data: []byte("pages:\n  - key: a\n    file: a.md\n  - key: a\n    file: a.md\n")},
			"a.md":       {Data: []byte("x")},
		}},
		{"empty entry", fstest.MapFS{"index.yaml": {Data: []byte("pages:\n  - key: a\n")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fsys)
			assert.Error(t, err)
		})
	}
}

func TestBundle_PagesIsCopy(t *testing.T) {
	b, err := Embedded()
	require.NoError(t, err)

	pages := b.Pages()
	delete(pages, KeyUploading)
	_, ok := b.Get(KeyUploading)
	assert.True(t, ok)
}

package source

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/navmenu/pkg/menu"
)

type countingCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *countingCounter) Increment(val ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[val[0]]++
}

func (c *countingCounter) get(label string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[label]
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFormats(t *testing.T) {
	for _, name := range []string{"menu.yaml", "menu.toml", "menu.json"} {
		t.Run(name, func(t *testing.T) {
			items, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			require.Len(t, items, 4)

			assert.Equal(t, "Home", items[0].Title)
			assert.True(t, items[0].Home)
			assert.Empty(t, items[0].Link)

			docs := items[1]
			assert.Equal(t, "/docs", docs.Link)
			assert.Equal(t, "main", docs.Class)
			require.Len(t, docs.Children, 2)
			assert.Equal(t, "API", docs.Children[0].Title)
			assert.Equal(t, "/docs/guide?lang=en&v=2", docs.Children[1].Link)
			assert.EqualValues(t, 2, docs.Children[1].Params["weight"])

			assert.True(t, items[2].Separator)
			assert.Equal(t, "divider", items[2].Class)

			assert.Equal(t, "blank", items[3].Target)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, dir, "menu.ini", "title=x")
		_, err := Load(path)
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml unknown field", "a.yaml", "items:\n  - title: a\n    colour: red\n"},
		{"toml unknown field", "a.toml", "[[items]]\ntitle = \"a\"\ncolour = \"red\"\n"},
		{"json unknown field", "a.json", `{"items":[{"title":"a","colour":"red"}]}`},
		{"yaml syntax", "b.yaml", "items: [\n"},
		{"json type", "b.json", `{"items":[{"title":1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := Load(path)
			require.Error(t, err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, path, pe.Path)
			assert.Empty(t, pe.Item)
		})
	}
}

func TestDecodeMissingTitle(t *testing.T) {
	data := []byte("items:\n  - title: a\n    children:\n      - link: /x\n  - separator: true\n")

	_, err := Decode("menu.yaml", data)
	require.ErrorIs(t, err, ErrMissingTitle)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "items[0].children[0]", pe.Item)
	assert.Contains(t, err.Error(), "items[0].children[0]")
}

func TestDecodeEmpty(t *testing.T) {
	items, err := Decode("menu.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStaticReturnsCopies(t *testing.T) {
	src := Static(menu.Item{
		Title:    "Docs",
		Params:   map[string]any{"k": "v"},
		Children: []menu.Item{{Title: "API"}},
	})

	first, err := src.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	first[0].Title = "changed"
	first[0].Params["k"] = "changed"
	first[0].Children[0].Title = "changed"

	second, err := src.Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Docs", second[0].Title)
	assert.Equal(t, "v", second[0].Params["k"])
	assert.Equal(t, "API", second[0].Children[0].Title)
}

func TestFileCachesAndReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "menu.yaml", "items:\n  - title: one\n")
	counter := &countingCounter{}
	f := NewFile(path, WithReloadCounter(counter))
	assert.Equal(t, path, f.Path())

	items, err := f.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "one", items[0].Title)
	items[0].Title = "mutated"

	writeFile(t, dir, "menu.yaml", "items:\n  - title: two\n")
	items, err = f.Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "one", items[0].Title, "cached until reload")

	require.NoError(t, f.Reload())
	items, err = f.Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "two", items[0].Title)

	writeFile(t, dir, "menu.yaml", "items:\n  - link: /no-title\n")
	require.Error(t, f.Reload())
	items, err = f.Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "two", items[0].Title, "previous items kept on error")

	assert.Equal(t, 2, counter.get("ok"))
	assert.Equal(t, 1, counter.get("error"))
}

func TestFileMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := f.Items(context.Background())
	require.Error(t, err)
	require.Error(t, f.Ready(context.Background()))
}

func TestFileReady(t *testing.T) {
	f := NewFile(filepath.Join("testdata", "menu.json"))
	require.NoError(t, f.Ready(context.Background()))
	require.NoError(t, f.Ready(context.Background()))
}

func TestFileFeedsMenu(t *testing.T) {
	m := menu.New(NewFile(filepath.Join("testdata", "menu.yaml"))).
		SetActiveRoute("/docs/api")
	require.NoError(t, m.SetMenu(context.Background()))

	out := m.ToTemplate()
	require.Len(t, out, 4)
	assert.True(t, out[1].Active)
	require.Len(t, out[1].Children, 2)
	require.NotNil(t, out[1].Children[1].Route)
	assert.Equal(t, "/docs/guide?lang=en&amp;v=2", *out[1].Children[1].Route)
}

func TestFileWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "menu.yaml", "items:\n  - title: one\n")
	f := NewFile(path)
	require.NoError(t, f.Reload())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Watch(ctx, 10*time.Millisecond) }()

	title := func() string {
		items, err := f.Items(context.Background())
		if err != nil || len(items) == 0 {
			return ""
		}
		return items[0].Title
	}

	// the watcher may not be registered yet; keep rewriting until seen
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("items:\n  - title: two\n"), 0o644)
		return title() == "two"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mchmarny/navmenu/pkg/menu"
	"github.com/mchmarny/navmenu/pkg/metric"
)

var (
	// ErrUnsupportedFormat is returned for files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported menu file format")

	// ErrMissingTitle is returned for non-separator items without a title.
	ErrMissingTitle = errors.New("item has no title")
)

// document is the top-level shape of an item file.
type document struct {
	Items []menu.Item `json:"items" yaml:"items" toml:"items"`
}

// Load reads items from a YAML (.yaml, .yml), TOML (.toml) or JSON (.json)
// file. Unknown fields are rejected.
func Load(path string) ([]menu.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file %s: %w", path, err)
	}
	return Decode(path, data)
}

// Decode parses item file content. The format is selected by the extension
// of path.
func Decode(path string, data []byte) ([]menu.Item, error) {
	var doc document

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: path, Err: err}
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	default:
		return nil, fmt.Errorf("%s: %w: %q", path, ErrUnsupportedFormat, ext)
	}

	if err := validate(path, "items", doc.Items); err != nil {
		return nil, err
	}
	return doc.Items, nil
}

func validate(path, prefix string, items []menu.Item) error {
	for i, it := range items {
		at := fmt.Sprintf("%s[%d]", prefix, i)
		if it.Separator {
			continue
		}
		if strings.TrimSpace(it.Title) == "" {
			return &ParseError{Path: path, Item: at, Err: ErrMissingTitle}
		}
		if err := validate(path, at+".children", it.Children); err != nil {
			return err
		}
	}
	return nil
}

// File is an item source backed by a file. Items are read once and cached
// until Reload is called. File is safe for concurrent use.
type File struct {
	path    string
	reloads metric.IncrementalCounter

	mu     sync.RWMutex
	items  []menu.Item
	loaded bool
}

// FileOption configures a File.
type FileOption func(*File)

// WithReloadCounter counts reloads, labeled with "ok" or "error".
func WithReloadCounter(c metric.IncrementalCounter) FileOption {
	return func(f *File) { f.reloads = c }
}

// NewFile returns a source for the item file at path. The file is not read
// until the first call to Items or Reload.
func NewFile(path string, opts ...FileOption) *File {
	f := &File{path: path}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the item file path.
func (f *File) Path() string { return f.path }

// Items returns a copy of the cached items, loading the file on first use.
func (f *File) Items(_ context.Context) ([]menu.Item, error) {
	f.mu.RLock()
	loaded, items := f.loaded, f.items
	f.mu.RUnlock()

	if !loaded {
		if err := f.Reload(); err != nil {
			return nil, err
		}
		f.mu.RLock()
		items = f.items
		f.mu.RUnlock()
	}

	return cloneItems(items)
}

// Reload re-reads the file. On error the previously cached items are kept.
func (f *File) Reload() error {
	items, err := Load(f.path)
	if err != nil {
		f.count("error")
		return err
	}

	f.mu.Lock()
	f.items = items
	f.loaded = true
	f.mu.Unlock()

	f.count("ok")
	slog.Debug("menu items loaded", "path", f.path, "items", len(items))
	return nil
}

// Ready reports whether items have been loaded, loading them if needed.
func (f *File) Ready(_ context.Context) error {
	f.mu.RLock()
	loaded := f.loaded
	f.mu.RUnlock()

	if loaded {
		return nil
	}
	return f.Reload()
}

func (f *File) count(result string) {
	if f.reloads != nil {
		f.reloads.Increment(result)
	}
}

// Package source provides menu item sources: static lists and item files in
// YAML, TOML or JSON format.
package source

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/mchmarny/navmenu/pkg/menu"
)

// ParseError reports an item file that could not be decoded or that holds
// malformed records.
type ParseError struct {
	// Path is the file the items were read from.
	Path string

	// Item locates the offending record, e.g. "items[1].children[0]".
	// Empty for decode errors.
	Item string

	Err error
}

func (e *ParseError) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("parse %s: %s: %v", e.Path, e.Item, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Static returns a source that always yields a copy of items.
func Static(items ...menu.Item) menu.ItemSource {
	return menu.ItemsFunc(func(context.Context) ([]menu.Item, error) {
		return cloneItems(items)
	})
}

// cloneItems deep-copies items so that callers cannot alter the originals.
func cloneItems(items []menu.Item) ([]menu.Item, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]menu.Item, 0, len(items))
	if err := copier.CopyWithOption(&out, items, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to copy menu items: %w", err)
	}
	return out, nil
}

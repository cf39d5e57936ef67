package menu

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	// DefaultDropdownClass is the class name used for dropdown containers.
	DefaultDropdownClass = "dropdown"

	// WildcardComponent registers a parser callback for every component
	// without a dedicated one.
	WildcardComponent = "_"
)

// ItemSource supplies the flat item records a Menu is built from.
type ItemSource interface {
	// Items returns the top-level items in display order.
	Items(ctx context.Context) ([]Item, error)
}

// ItemsFunc adapts a function to an ItemSource.
type ItemsFunc func(ctx context.Context) ([]Item, error)

// Items calls f(ctx).
func (f ItemsFunc) Items(ctx context.Context) ([]Item, error) { return f(ctx) }

// Callback types. A nil callback selects the default behavior.
type (
	// ParserFunc transforms a raw item before its node is created.
	ParserFunc func(Item) Item

	// ActiveFunc decides whether a node with no direct route match is active.
	ActiveFunc func(*Node) bool

	// TitleFunc formats the title of a rendered node.
	TitleFunc func(*Node) string

	// RouteFunc formats the route of a rendered node. An empty result means
	// the node has no route.
	RouteFunc func(*Node) string

	// AttributesFunc derives the container and link attributes of a
	// rendered node.
	AttributesFunc func(*Node) (container, link map[string]string)
)

// Menu builds a node tree from an ItemSource, marks the nodes matching the
// active route and exports them for templates.
//
// A Menu is meant to be built once per rendered page and is not safe for
// concurrent use.
type Menu struct {
	source ItemSource
	tree   *Tree

	activeRoute   string
	dropdown      bool
	dropdownClass string
	showChildren  bool
	onlyChildren  bool
	onlyClasses   []string
	ignoreClasses []string

	parsers    map[string]ParserFunc
	activeFn   ActiveFunc
	titleFn    TitleFunc
	routeFn    RouteFunc
	attributes AttributesFunc
}

// New creates a menu reading its items from src. The tree only holds the
// root until SetMenu is called.
func New(src ItemSource) *Menu {
	return &Menu{
		source:        src,
		tree:          NewTree(),
		dropdown:      true,
		dropdownClass: DefaultDropdownClass,
		showChildren:  true,
		parsers:       make(map[string]ParserFunc),
	}
}

func (m *Menu) SetActiveRoute(route string) *Menu {
	m.activeRoute = route
	return m
}

func (m *Menu) SetDropdown(dropdown bool) *Menu {
	m.dropdown = dropdown
	return m
}

func (m *Menu) SetDropdownClass(name string) *Menu {
	m.dropdownClass = name
	return m
}

// SetShowChildren controls whether rendered items carry their children.
func (m *Menu) SetShowChildren(show bool) *Menu {
	m.showChildren = show
	return m
}

// SetOnlyChildren makes ToTemplate export the children of the active
// top-level item instead of the top-level items.
func (m *Menu) SetOnlyChildren(only bool) *Menu {
	m.onlyChildren = only
	return m
}

// SetOnlyClasses keeps only nodes having at least one of the classes.
func (m *Menu) SetOnlyClasses(classes ...string) *Menu {
	m.onlyClasses = classes
	return m
}

// SetIgnoreClasses drops nodes having any of the classes.
func (m *Menu) SetIgnoreClasses(classes ...string) *Menu {
	m.ignoreClasses = classes
	return m
}

// SetNodeParserCallback registers fn for items of the given component, or
// for every other component when component is WildcardComponent. A later
// registration for the same component replaces the earlier one.
func (m *Menu) SetNodeParserCallback(component string, fn ParserFunc) *Menu {
	if fn == nil {
		delete(m.parsers, component)
		return m
	}
	m.parsers[component] = fn
	return m
}

func (m *Menu) SetNodeActiveCallback(fn ActiveFunc) *Menu {
	m.activeFn = fn
	return m
}

func (m *Menu) SetNodeTitleCallback(fn TitleFunc) *Menu {
	m.titleFn = fn
	return m
}

func (m *Menu) SetNodeRouteCallback(fn RouteFunc) *Menu {
	m.routeFn = fn
	return m
}

// SetNodeAttributesCallback registers the attribute derivation used when
// rendering. Without one rendered items carry no attributes.
func (m *Menu) SetNodeAttributesCallback(fn AttributesFunc) *Menu {
	m.attributes = fn
	return m
}

func (m *Menu) ActiveRoute() string   { return m.activeRoute }
func (m *Menu) Dropdown() bool        { return m.dropdown }
func (m *Menu) DropdownClass() string { return m.dropdownClass }
func (m *Menu) ShowChildren() bool    { return m.showChildren }
func (m *Menu) OnlyChildren() bool    { return m.onlyChildren }

// Tree returns the node tree built by the last SetMenu call.
func (m *Menu) Tree() *Tree { return m.tree }

// SetMenu rebuilds the tree from the item source and marks the active
// nodes. On source error the current tree is left untouched.
func (m *Menu) SetMenu(ctx context.Context) error {
	if m.source == nil {
		return fmt.Errorf("menu has no item source")
	}

	items, err := m.source.Items(ctx)
	if err != nil {
		return fmt.Errorf("failed to load menu items: %w", err)
	}

	m.tree.Reset()
	root := m.tree.Root().Key()

	if err := m.appendItems(root, items); err != nil {
		return err
	}
	if err := m.setActiveItems(root); err != nil {
		return err
	}

	slog.Debug("menu built",
		"nodes", m.tree.Len()-1,
		"active_route", m.activeRoute)

	return nil
}

// appendItems creates nodes for items under parent, depth-first and in
// input order.
func (m *Menu) appendItems(parent NodeID, items []Item) error {
	for _, raw := range items {
		item := m.nodeParser(raw)

		node := m.tree.NewNode()
		if item.Separator {
			node.SetClass(item.Class, false).
				SetSeparator().
				SetTitle(item.Title)

			if err := m.tree.SetParent(node.Key(), parent); err != nil {
				return err
			}
			continue
		}

		node.SetTitle(item.Title).
			SetLink(item.Link).
			SetID(item.ID).
			SetClass(item.Class, false).
			SetIcon(item.Icon).
			SetTarget(item.Target).
			SetSlug(item.Slug).
			SetComponent(item.Component).
			SetModal(item.Modal).
			SetHome(item.Home).
			SetParams(item.Params)

		if err := m.tree.SetParent(node.Key(), parent); err != nil {
			return err
		}

		if len(item.Children) > 0 {
			if err := m.appendItems(node.Key(), item.Children); err != nil {
				return err
			}
		}
	}
	return nil
}

// setActiveItems walks the children of parent. Subtrees are visited before
// the node itself is matched.
func (m *Menu) setActiveItems(parent NodeID) error {
	for _, node := range m.tree.Children(parent) {
		if node.HasChildren() {
			if err := m.setActiveItems(node.Key()); err != nil {
				return err
			}
		}

		if m.isActiveItem(node) {
			if err := m.tree.SetActive(node.Key()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Menu) isActiveItem(node *Node) bool {
	if !node.IsInternal() {
		return false
	}

	link := node.Link()
	if link != "" && link == m.activeRoute {
		return true
	}

	if node.IsSeparator() {
		return false
	}

	if link == "" && m.activeRoute == "/" {
		return true
	}

	if m.activeFn != nil {
		return m.activeFn(node)
	}

	return false
}

func (m *Menu) nodeParser(item Item) Item {
	if fn, ok := m.parsers[item.Component]; ok {
		return fn(item)
	}
	if fn, ok := m.parsers[WildcardComponent]; ok {
		return fn(item)
	}
	return item
}

package menu

// Rendered is the template-facing projection of a node.
type Rendered struct {
	ContainerAttrs map[string]string `json:"containerAttrs,omitempty"`
	LinkAttrs      map[string]string `json:"linkAttrs,omitempty"`

	Home      bool `json:"home"`
	Separator bool `json:"separator"`
	Active    bool `json:"active"`
	Modal     bool `json:"modal"`

	Slug string `json:"slug"`

	// Route is nil for nodes without a navigable link.
	Route *string `json:"route"`

	Icon   string `json:"icon"`
	Target string `json:"target"`
	ID     string `json:"id"`
	Title  string `json:"title"`

	// Children is only set when at least one child survived filtering.
	Children []Rendered `json:"children,omitempty"`
}

// HasChildren reports whether the item has a renderable submenu.
func (r Rendered) HasChildren() bool { return len(r.Children) > 0 }

// ToTemplate exports the top-level items, or with only-children set, the
// children of the first active top-level item. Items rejected by the class
// filters are left out.
func (m *Menu) ToTemplate() []Rendered {
	parent := m.tree.Root()

	if m.onlyChildren {
		for _, node := range m.tree.Children(parent.Key()) {
			if node.IsActive() {
				parent = node
				break
			}
		}
	}

	items := []Rendered{}
	for _, node := range m.tree.Children(parent.Key()) {
		if item, ok := m.render(node); ok {
			items = append(items, item)
		}
	}
	return items
}

func (m *Menu) render(node *Node) (Rendered, bool) {
	if len(m.onlyClasses) > 0 && !node.HasClass(m.onlyClasses...) {
		return Rendered{}, false
	}
	if len(m.ignoreClasses) > 0 && node.HasClass(m.ignoreClasses...) {
		return Rendered{}, false
	}

	item := Rendered{
		Home:      node.IsHome(),
		Separator: node.IsSeparator(),
		Active:    node.IsActive(),
		Modal:     node.IsModal(),
		Slug:      node.Slug(),
		Route:     m.nodeRoute(node),
		Icon:      node.Icon(),
		Target:    node.Target(),
		ID:        node.ID(),
		Title:     m.nodeTitle(node),
	}

	if m.attributes != nil {
		container, link := m.attributes(node)
		if len(container) > 0 {
			item.ContainerAttrs = container
		}
		if len(link) > 0 {
			item.LinkAttrs = link
		}
	}

	if m.showChildren && node.HasChildren() {
		for _, child := range m.tree.Children(node.Key()) {
			if c, ok := m.render(child); ok {
				item.Children = append(item.Children, c)
			}
		}
	}

	return item, true
}

func (m *Menu) nodeTitle(node *Node) string {
	if m.titleFn != nil {
		return m.titleFn(node)
	}
	return node.Title()
}

func (m *Menu) nodeRoute(node *Node) *string {
	if m.routeFn != nil {
		if route := m.routeFn(node); route != "" {
			return &route
		}
		return nil
	}
	if route, ok := node.Route(); ok {
		return &route
	}
	return nil
}

package menu

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCaser returns a title callback that title-cases node titles using
// the rules of the given language.
func TitleCaser(tag language.Tag) TitleFunc {
	return func(n *Node) string {
		// a Caser keeps state between calls
		return cases.Title(tag).String(n.Title())
	}
}

// StandardAttributes returns an attribute callback deriving HTML attributes
// from node fields and the menu's dropdown settings:
//
//   - container: class (node classes, plus "active" and the dropdown class
//     when the node has children and dropdowns are enabled), id
//   - link: target (see Node.AttrTarget), data-modal for modal nodes,
//     data-toggle for dropdown parents
func (m *Menu) StandardAttributes() AttributesFunc {
	return func(n *Node) (map[string]string, map[string]string) {
		container := map[string]string{}
		link := map[string]string{}

		classes := strings.Fields(n.Class())
		if n.IsActive() {
			classes = append(classes, "active")
		}
		dropdown := m.dropdown && m.showChildren && n.HasChildren()
		if dropdown && m.dropdownClass != "" {
			classes = append(classes, m.dropdownClass)
		}
		if len(classes) > 0 {
			container["class"] = strings.Join(classes, " ")
		}
		if n.ID() != "" {
			container["id"] = n.ID()
		}

		if target := n.AttrTarget(); target != "" {
			link["target"] = target
		}
		if n.IsModal() {
			link["data-modal"] = n.Modal()
		}
		if dropdown {
			link["data-toggle"] = "dropdown"
		}

		return container, link
	}
}

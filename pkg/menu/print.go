package menu

import (
	"fmt"

	"github.com/disiqueira/gotree/v3"
)

// Print renders the node tree as text, one node per line. Active nodes are
// prefixed with "*", separators are shown as "---".
func (m *Menu) Print() string {
	root := gotree.New(m.tree.Root().Title())
	m.printChildren(root, m.tree.Root().Key())
	return root.Print()
}

func (m *Menu) printChildren(branch gotree.Tree, parent NodeID) {
	for _, n := range m.tree.Children(parent) {
		m.printChildren(branch.Add(nodeLabel(n)), n.Key())
	}
}

func nodeLabel(n *Node) string {
	label := n.Title()
	if n.IsSeparator() {
		label = "---"
	} else if route, ok := n.Route(); ok {
		label = fmt.Sprintf("%s (%s)", label, route)
	}
	if n.IsActive() {
		label = "* " + label
	}
	return label
}

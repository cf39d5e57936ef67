package menu

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownNode is returned when a handle does not belong to the tree.
	ErrUnknownNode = errors.New("unknown menu node")

	// ErrRootChild is returned when the root is attached under another node.
	ErrRootChild = errors.New("root node cannot have a parent")

	// ErrCycle is returned when a node would become its own ancestor.
	ErrCycle = errors.New("menu node cannot be attached inside its own subtree")
)

// Tree is an arena of menu nodes addressed by NodeID. Every tree has exactly
// one root, allocated by NewTree and Reset.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	nodes []*Node
	root  NodeID
}

// NewTree returns a tree holding only a root node.
func NewTree() *Tree {
	t := &Tree{}
	t.Reset()
	return t
}

// Reset discards every node and allocates a fresh root.
func (t *Tree) Reset() {
	t.nodes = t.nodes[:0]
	t.root = t.NewNode().setRoot().key
}

// NewNode allocates a detached, attribute-empty node.
func (t *Tree) NewNode() *Node {
	n := newNode(NodeID(len(t.nodes)))
	t.nodes = append(t.nodes, n)
	return n
}

// Len returns the number of nodes in the arena, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the root node.
func (t *Tree) Root() *Node { return t.nodes[t.root] }

// Node returns the node for id, or nil when id is not part of the tree.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

func (t *Tree) lookup(id NodeID) (*Node, error) {
	n := t.Node(id)
	if n == nil {
		return nil, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return n, nil
}

// SetParent attaches child as the last child of parent. A child that already
// has a parent is detached from it first, so a node is only ever listed under
// one parent.
func (t *Tree) SetParent(child, parent NodeID) error {
	c, err := t.lookup(child)
	if err != nil {
		return err
	}
	p, err := t.lookup(parent)
	if err != nil {
		return err
	}
	if c.root {
		return ErrRootChild
	}
	for a := p; a != nil; a = t.Node(a.parent) {
		if a.key == c.key {
			return fmt.Errorf("node %d under %d: %w", child, parent, ErrCycle)
		}
	}

	if old := t.Node(c.parent); old != nil {
		old.children = slices.DeleteFunc(old.children, func(id NodeID) bool { return id == c.key })
	}

	p.children = append(p.children, c.key)
	c.parent = p.key
	return nil
}

// AddChild is SetParent with the arguments in parent-first order.
func (t *Tree) AddChild(parent, child NodeID) error {
	return t.SetParent(child, parent)
}

// Parent returns the parent of id, or nil for the root and detached nodes.
func (t *Tree) Parent(id NodeID) *Node {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	return t.Node(n.parent)
}

// Children returns the children of id in insertion order.
func (t *Tree) Children(id NodeID) []*Node {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, t.nodes[c])
	}
	return out
}

// SetActive marks id active along with its ancestors, stopping before the
// root. The root itself is never marked.
func (t *Tree) SetActive(id NodeID) error {
	n, err := t.lookup(id)
	if err != nil {
		return err
	}
	for n != nil && !n.root {
		n.active = true
		n = t.Node(n.parent)
	}
	return nil
}

// Walk visits every node below the root depth-first in insertion order.
// Top-level nodes have depth 0. Returning false from fn skips the node's
// children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	t.walk(t.root, 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(*Node, int) bool) {
	for _, c := range t.nodes[id].children {
		if fn(t.nodes[c], depth) {
			t.walk(c, depth+1, fn)
		}
	}
}

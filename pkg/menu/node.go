package menu

import (
	"maps"
	"strings"
)

// NodeID is the stable handle of a node within its Tree.
type NodeID int

// NoNode is the handle used for "no parent".
const NoNode NodeID = -1

// Node is a single menu entry. Structural links (parent and children) are
// owned by the Tree the node was allocated from.
type Node struct {
	key      NodeID
	parent   NodeID
	children []NodeID

	title     string
	link      string
	id        string
	class     string
	target    string
	slug      string
	component string
	icon      string
	modal     string
	params    map[string]any

	root      bool
	separator bool
	home      bool
	active    bool
}

func newNode(key NodeID) *Node {
	return &Node{key: key, parent: NoNode}
}

// Key returns the handle of the node within its tree.
func (n *Node) Key() NodeID { return n.key }

func (n *Node) setRoot() *Node {
	n.root = true
	n.id = "root"
	n.title = "ROOT"
	return n
}

// SetSeparator turns the node into a separator.
func (n *Node) SetSeparator() *Node {
	n.separator = true
	return n
}

func (n *Node) SetTitle(title string) *Node {
	n.title = title
	return n
}

// SetLink stores the link with bare ampersands escaped.
func (n *Node) SetLink(link string) *Node {
	n.link = EscapeAmpersands(link)
	return n
}

func (n *Node) SetID(id string) *Node {
	n.id = id
	return n
}

// SetClass replaces the class list, or merges into it when merge is true.
// Tokens are deduplicated keeping their first position.
func (n *Node) SetClass(class string, merge bool) *Node {
	var tokens []string
	if merge {
		tokens = strings.Fields(n.class)
	}
	tokens = append(tokens, strings.Fields(class)...)

	seen := make(map[string]struct{}, len(tokens))
	uniq := tokens[:0]
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, t)
	}

	n.class = strings.Join(uniq, " ")
	return n
}

func (n *Node) SetTarget(target string) *Node {
	n.target = target
	return n
}

func (n *Node) SetSlug(slug string) *Node {
	n.slug = slug
	return n
}

func (n *Node) SetComponent(component string) *Node {
	n.component = component
	return n
}

func (n *Node) SetIcon(icon string) *Node {
	n.icon = icon
	return n
}

func (n *Node) SetModal(modal string) *Node {
	n.modal = modal
	return n
}

func (n *Node) SetHome(home bool) *Node {
	n.home = home
	return n
}

// SetParams merges params into the node's parameter bag.
func (n *Node) SetParams(params map[string]any) *Node {
	if n.params == nil {
		n.params = make(map[string]any, len(params))
	}
	maps.Copy(n.params, params)
	return n
}

func (n *Node) Title() string     { return n.title }
func (n *Node) Link() string      { return n.link }
func (n *Node) ID() string        { return n.id }
func (n *Node) Class() string     { return n.class }
func (n *Node) Target() string    { return n.target }
func (n *Node) Slug() string      { return n.slug }
func (n *Node) Component() string { return n.component }
func (n *Node) Icon() string      { return n.icon }
func (n *Node) Modal() string     { return n.modal }

// Params returns a copy of the parameter bag, never nil.
func (n *Node) Params() map[string]any {
	out := make(map[string]any, len(n.params))
	maps.Copy(out, n.params)
	return out
}

// Param returns the value stored under key and whether it was present.
func (n *Node) Param(key string) (any, bool) {
	v, ok := n.params[key]
	return v, ok
}

func (n *Node) IsRoot() bool      { return n.root }
func (n *Node) IsSeparator() bool { return n.separator }
func (n *Node) IsActive() bool    { return n.active }
func (n *Node) IsHome() bool      { return n.home }
func (n *Node) IsModal() bool     { return n.modal != "" }

// HasParent reports whether the node is attached to a parent.
func (n *Node) HasParent() bool { return n.parent != NoNode }

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// IsInternal reports whether the link points inside the site. Bare anchors
// and absolute http(s) URLs are external.
func (n *Node) IsInternal() bool {
	if n.link == "#" {
		return false
	}
	return !strings.Contains(n.link, "http://") && !strings.Contains(n.link, "https://")
}

// HasClass reports whether any of the node's class tokens is in classes.
// An empty classes list always matches.
func (n *Node) HasClass(classes ...string) bool {
	if len(classes) == 0 {
		return true
	}
	for _, token := range strings.Fields(n.class) {
		for _, c := range classes {
			if token == c {
				return true
			}
		}
	}
	return false
}

// Route returns the link, or false when the link is empty or a bare anchor.
func (n *Node) Route() (string, bool) {
	if n.link == "" || n.link == "#" {
		return "", false
	}
	return n.link, true
}

// AttrTarget returns the HTML target attribute value for the node.
func (n *Node) AttrTarget() string {
	switch n.target {
	case "blank", "parent", "self":
		return "_" + n.target
	default:
		return ""
	}
}

// BuildID derives the node id from the path segments of its link,
// e.g. "/docs/api?v=2" becomes "docs-api". Nodes without a route keep
// their id.
func (n *Node) BuildID() *Node {
	if _, ok := n.Route(); !ok {
		return n
	}
	path, _, _ := strings.Cut(n.link, "?")

	var parts []string
	for _, p := range strings.Split(path, "/") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		parts = append(parts, p)
	}

	n.id = strings.Join(parts, "-")
	return n
}

package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeSetClass(t *testing.T) {
	n := newNode(0)

	n.SetClass("a b a  c", false)
	assert.Equal(t, "a b c", n.Class())

	n.SetClass("c d", true)
	assert.Equal(t, "a b c d", n.Class())

	n.SetClass("x", false)
	assert.Equal(t, "x", n.Class())

	n.SetClass("", false)
	assert.Equal(t, "", n.Class())
}

func TestNodeHasClass(t *testing.T) {
	n := newNode(0).SetClass("A B", false)

	assert.True(t, n.HasClass(), "empty filter matches")
	assert.True(t, n.HasClass("B", "C"))
	assert.False(t, n.HasClass("C", "D"))
	assert.False(t, newNode(1).HasClass("A"), "classless node")
}

func TestNodeIsInternal(t *testing.T) {
	tests := []struct {
		link     string
		internal bool
	}{
		{"", true},
		{"/docs", true},
		{"docs?x=1", true},
		{"#", false},
		{"#section", true},
		{"http://example.com", false},
		{"https://example.com/a", false},
		{"/redirect?to=https://example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			n := newNode(0).SetLink(tt.link)
			assert.Equal(t, tt.internal, n.IsInternal())
		})
	}
}

func TestNodeRoute(t *testing.T) {
	_, ok := newNode(0).Route()
	assert.False(t, ok)

	_, ok = newNode(0).SetLink("#").Route()
	assert.False(t, ok)

	route, ok := newNode(0).SetLink("/a?b=1&c=2").Route()
	assert.True(t, ok)
	assert.Equal(t, "/a?b=1&amp;c=2", route)
}

func TestNodeAttrTarget(t *testing.T) {
	assert.Equal(t, "_blank", newNode(0).SetTarget("blank").AttrTarget())
	assert.Equal(t, "_parent", newNode(0).SetTarget("parent").AttrTarget())
	assert.Equal(t, "_self", newNode(0).SetTarget("self").AttrTarget())
	assert.Equal(t, "", newNode(0).SetTarget("top").AttrTarget())
	assert.Equal(t, "", newNode(0).AttrTarget())
}

func TestNodeBuildID(t *testing.T) {
	assert.Equal(t, "docs-api", newNode(0).SetLink("/docs/api/?v=2").BuildID().ID())
	assert.Equal(t, "keep", newNode(0).SetID("keep").SetLink("#").BuildID().ID())
	assert.Equal(t, "keep", newNode(0).SetID("keep").BuildID().ID())
}

func TestNodeParams(t *testing.T) {
	n := newNode(0)

	_, ok := n.Param("missing")
	assert.False(t, ok)
	assert.NotNil(t, n.Params())

	n.SetParams(map[string]any{"a": 1}).SetParams(map[string]any{"b": "two"})

	v, ok := n.Param("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, n.Params())

	n.Params()["c"] = true
	_, ok = n.Param("c")
	assert.False(t, ok, "Params returns a copy")
}

func TestNodeFlags(t *testing.T) {
	n := newNode(0)
	assert.False(t, n.IsModal())
	assert.False(t, n.IsHome())
	assert.False(t, n.IsSeparator())

	n.SetModal("login").SetHome(true).SetSeparator()
	assert.True(t, n.IsModal())
	assert.True(t, n.IsHome())
	assert.True(t, n.IsSeparator())

	r := newNode(1).setRoot()
	assert.True(t, r.IsRoot())
	assert.Equal(t, "root", r.ID())
	assert.Equal(t, "ROOT", r.Title())
}

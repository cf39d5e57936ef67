package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/navmenu/pkg/menu"
)

var testMenuFile = filepath.Join("..", "..", "pkg", "source", "testdata", "menu.yaml")

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, err := run(t, "render", "--file", testMenuFile, "--route", "/docs/api", "--log-level", "error")
	require.NoError(t, err)

	var items []menu.Rendered
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 4)
	assert.True(t, items[1].Active)
	assert.True(t, items[1].Children[0].Active)
	assert.Equal(t, "dropdown", items[1].LinkAttrs["data-toggle"])
}

func TestTreeCommand(t *testing.T) {
	out, err := run(t, "tree", "-f", testMenuFile, "-r", "/docs/api", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "ROOT")
	assert.Contains(t, out, "* Docs (/docs)")
	assert.Contains(t, out, "* API (/docs/api)")
}

func TestRenderMissingFile(t *testing.T) {
	_, err := run(t, "render", "-f", filepath.Join(t.TempDir(), "none.yaml"), "--log-level", "error")
	require.Error(t, err)
}

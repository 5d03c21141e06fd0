package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/glyphs/internal/cli"
	"github.com/bnema/glyphs/internal/render"
)

func newTestApp(t *testing.T) *cli.App {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))

	a, err := cli.NewApp(cli.Options{Interactive: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestOpenPage_FiltersAndSorts(t *testing.T) {
	a := newTestApp(t)

	view, err := openPage(a, "symbols", "heart", 1, false)
	require.NoError(t, err)
	require.NotEmpty(t, view.Paginated)
	for _, d := range view.Paginated {
		assert.Contains(t, d.Name(), "heart")
	}
	first, last := view.Paginated[0].Name(), view.Paginated[len(view.Paginated)-1].Name()
	assert.GreaterOrEqual(t, first, last)
}

func TestOpenPage_UnknownProvider(t *testing.T) {
	a := newTestApp(t)
	_, err := openPage(a, "nope", "", 1, true)
	assert.Error(t, err)
}

func TestFindIconAndRender(t *testing.T) {
	a := newTestApp(t)

	d, err := findIcon(a, "symbols", "black-star")
	require.NoError(t, err)

	req := renderRequest(a, 0, "")
	assert.Equal(t, a.Config.Render.Size, req.Size)
	assert.Equal(t, a.ColorSelection().Color(), req.Color)

	res := a.Renderer.Render(d, render.Request{Size: 16, Color: "#ff0000"})
	require.Equal(t, render.Drawn, res.Outcome)
	assert.True(t, strings.Contains(res.Element.Markup(), "★"))

	_, err = findIcon(a, "symbols", "no-such-icon")
	assert.Error(t, err)
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"browse", "providers", "search", "render", "grid", "snippet", "config", "cache", "version"} {
		assert.True(t, names[want], want)
	}
	assert.Equal(t, "true", browseCmd.Annotations[interactive])
}

func TestOpenPage_DoesNotPrefetchRemoteAssets(t *testing.T) {
	a := newTestApp(t)

	view, err := openPage(a, "iconify-mdi", "", 1, true)
	require.NoError(t, err)
	require.NotEmpty(t, view.Paginated)

	session := a.Catalog.Assets()
	require.NotNil(t, session)
	assert.Zero(t, session.Pending())
	assert.Empty(t, session.Snapshot())
}

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every XDG directory into a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return root
}

func TestNewApp_WiresBuiltinProviders(t *testing.T) {
	root := isolate(t)

	app, err := NewApp(Options{Interactive: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	keys := make([]string, 0)
	for _, p := range app.Catalog.Providers() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"shapes", "brands", "feather", "bootstrap", "symbols", "iconify-mdi"}, keys)

	require.NotNil(t, app.Store)
	assert.Equal(t, filepath.Join(root, "data", "glyphs", "assets.sqlite"), app.DatabasePath())
	assert.FileExists(t, filepath.Join(root, "config", "glyphs", "config.toml"))
	assert.Equal(t, "catppuccin", app.ColorSelection().Palette.Name)
}

func TestNewApp_CacheDisabled(t *testing.T) {
	root := isolate(t)
	dir := filepath.Join(root, "config", "glyphs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[assets]\ncache_enabled = false\n"), 0o644))

	app, err := NewApp(Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Nil(t, app.Store)
	assert.Empty(t, app.DatabasePath())
}

func TestNewApp_InvalidConfigFallsBackToDefaults(t *testing.T) {
	root := isolate(t)
	dir := filepath.Join(root, "config", "glyphs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[catalog]\npage_size = -3\n"), 0o644))

	app, err := NewApp(Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Equal(t, 120, app.Config.Catalog.PageSize)
	assert.NotEmpty(t, app.Config.Database.Path)
}

package model

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/glyphs/internal/application/port"
	"github.com/bnema/glyphs/internal/application/port/mocks"
	"github.com/bnema/glyphs/internal/application/usecase"
	"github.com/bnema/glyphs/internal/cli/styles"
	"github.com/bnema/glyphs/internal/domain/entity"
	"github.com/bnema/glyphs/internal/infrastructure/config"
	"github.com/bnema/glyphs/internal/infrastructure/provider"
	"github.com/bnema/glyphs/internal/render"
)

type resolverFunc func(ctx context.Context, d entity.Descriptor) (entity.Asset, error)

func (f resolverFunc) Resolve(ctx context.Context, d entity.Descriptor) (entity.Asset, error) {
	return f(ctx, d)
}

type testBrowser struct {
	catalog *usecase.BrowseCatalogUseCase
	clip    *mocks.MockClipboard
	saved   []string
}

func newTestBrowser(t *testing.T, providers ...port.IconProvider) (BrowserModel, *testBrowser) {
	t.Helper()

	registry, err := provider.NewRegistry(providers...)
	require.NoError(t, err)

	catalog := usecase.NewBrowseCatalogUseCase(registry, usecase.NewAssetLoader(0, time.Second), 40)
	t.Cleanup(catalog.Close)
	selection, err := usecase.NewManageSelectionUseCase(nil)
	require.NoError(t, err)

	tb := &testBrowser{
		catalog: catalog,
		clip:    mocks.NewMockClipboard(gomock.NewController(t)),
	}
	m := NewBrowserModel(context.Background(), styles.NewTheme(nil), BrowserConfig{
		Catalog:   catalog,
		Selection: selection,
		Renderer:  render.NewDispatcher(catalog),
		Clipboard: tb.clip,
		Config:    config.DefaultConfig(),
		SaveColor: func(palette string, _ int) error {
			tb.saved = append(tb.saved, palette)
			return nil
		},
	})
	m.width, m.height = 120, 40
	return m, tb
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m BrowserModel, keys ...string) (BrowserModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(BrowserModel)
		require.True(t, ok)
	}
	return m, cmd
}

func update(t *testing.T, m BrowserModel, msg tea.Msg) (BrowserModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(BrowserModel)
	require.True(t, ok)
	return bm, cmd
}

func activated(t *testing.T, m BrowserModel) BrowserModel {
	t.Helper()
	cmd := m.Init()
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	return m
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

func names(ds []entity.Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Name())
	}
	return out
}

func TestBrowser_ActivatesFirstProvider(t *testing.T) {
	m, tb := newTestBrowser(t, provider.NewSymbolsAdapter(), provider.NewShapesAdapter())
	m = activated(t, m)

	assert.Equal(t, "symbols", tb.catalog.ActiveProvider())
	assert.NotEmpty(t, m.view.Paginated)
	assert.Equal(t, 1, m.view.Page)
	assert.Contains(t, m.View(), "symbols")
}

func TestBrowser_SearchFiltersOnEveryKeystroke(t *testing.T) {
	m, _ := newTestBrowser(t, provider.NewSymbolsAdapter())
	m = activated(t, m)
	total := len(m.view.Filtered)

	m, _ = press(t, m, "/", "s", "t", "a", "r")
	require.True(t, m.searchMode)
	require.NotEmpty(t, m.view.Filtered)
	assert.Less(t, len(m.view.Filtered), total)
	for _, n := range names(m.view.Filtered) {
		assert.Contains(t, n, "star")
	}

	m, _ = press(t, m, "esc")
	assert.False(t, m.searchMode)
	assert.Len(t, m.view.Filtered, total)
}

func TestBrowser_SearchWithoutMatches(t *testing.T) {
	m, _ := newTestBrowser(t, provider.NewSymbolsAdapter())
	m = activated(t, m)

	m, _ = press(t, m, "/", "z", "z", "z", "z", "enter")
	assert.False(t, m.searchMode)
	assert.Empty(t, m.view.Filtered)
	assert.Equal(t, 1, m.view.TotalPages)
	assert.Contains(t, m.View(), "no icon matches zzzz")
}

func TestBrowser_SortToggleReversesOrder(t *testing.T) {
	m, _ := newTestBrowser(t, provider.NewSymbolsAdapter())
	m = activated(t, m)
	first := m.view.Filtered[0].Name()
	last := m.view.Filtered[len(m.view.Filtered)-1].Name()

	m, _ = press(t, m, "s")
	assert.False(t, m.ascending)
	assert.Equal(t, last, m.view.Filtered[0].Name())
	assert.Equal(t, first, m.view.Filtered[len(m.view.Filtered)-1].Name())
}

func TestBrowser_PagingStopsAtEdges(t *testing.T) {
	m, _ := newTestBrowser(t, provider.NewSymbolsAdapter())
	m = activated(t, m)
	require.Greater(t, m.view.TotalPages, 1)

	m, _ = press(t, m, "N")
	assert.Equal(t, 1, m.view.Page)

	for i := 0; i < m.view.TotalPages+2; i++ {
		m, _ = press(t, m, "n")
	}
	assert.Equal(t, m.view.TotalPages, m.view.Page)
}

func TestBrowser_CursorCrossesPages(t *testing.T) {
	m, _ := newTestBrowser(t, provider.NewSymbolsAdapter())
	m = activated(t, m)
	require.Greater(t, m.view.TotalPages, 1)

	m.cursor = len(m.view.Paginated) - 1
	m, _ = press(t, m, "right")
	assert.Equal(t, 2, m.view.Page)
	assert.Equal(t, 0, m.cursor)

	m, _ = press(t, m, "left")
	assert.Equal(t, 1, m.view.Page)
	assert.Equal(t, len(m.view.Paginated)-1, m.cursor)
}

func TestBrowser_TabJumpsToNextInitial(t *testing.T) {
	m, _ := newTestBrowser(t, provider.NewSymbolsAdapter())
	m = activated(t, m)
	startInitial := strings.ToUpper(firstRune(m.view.Paginated[0].Name()))

	m, _ = press(t, m, "tab")
	d, ok := m.current()
	require.True(t, ok)
	assert.NotEqual(t, startInitial, strings.ToUpper(firstRune(d.Name())))
	assert.Contains(t, m.status, "jumped to")
}

func TestBrowser_PaletteAndSubcolor(t *testing.T) {
	m, tb := newTestBrowser(t, provider.NewSymbolsAdapter())
	m = activated(t, m)
	require.Equal(t, "catppuccin", m.color.Palette.Name)

	m, cmd := press(t, m, "p")
	assert.Equal(t, "gruvbox", m.color.Palette.Name)
	assert.Equal(t, 0, m.color.Subcolor)
	require.NotNil(t, cmd)
	_ = cmd()
	assert.Equal(t, []string{"gruvbox"}, tb.saved)

	m, _ = press(t, m, "]", "]")
	assert.Equal(t, 2, m.color.Subcolor)
	m, _ = press(t, m, "[")
	assert.Equal(t, 1, m.color.Subcolor)
}

func TestBrowser_SelectAndCopySnippet(t *testing.T) {
	m, tb := newTestBrowser(t, provider.NewSymbolsAdapter())
	m = activated(t, m)

	m, _ = press(t, m, "enter")
	selected, ok := m.Selected()
	require.True(t, ok)

	var copied string
	tb.clip.EXPECT().
		WriteText(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, text string) error {
			copied = text
			return nil
		})

	m, cmd := press(t, m, "c")
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	glyph := selected.Payload().(entity.GlyphPayload).Glyph
	assert.Contains(t, copied, glyph)
	assert.Contains(t, m.status, "copied "+selected.Name())
	assert.Contains(t, m.View(), selected.Name())
}

func TestBrowser_StaleActivationIsIgnored(t *testing.T) {
	m, tb := newTestBrowser(t, provider.NewSymbolsAdapter(), provider.NewShapesAdapter())
	m = activated(t, m)

	m, cmd := press(t, m, "}")
	require.NotNil(t, cmd)
	assert.Equal(t, "shapes", m.activeTab())

	// The symbols activation lands late; the model asks for shapes again.
	m, retry := update(t, m, providerActivatedMsg{key: "symbols"})
	require.NotNil(t, retry)
	m, _ = update(t, m, retry())
	assert.Equal(t, "shapes", tb.catalog.ActiveProvider())
	assert.Equal(t, "shapes", m.view.Paginated[0].Provider())
}

func TestBrowser_AsyncEventsSettleLoading(t *testing.T) {
	svg := entity.Asset{MediaType: "image/svg+xml", Data: []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)}
	resolver := resolverFunc(func(context.Context, entity.Descriptor) (entity.Asset, error) {
		return svg, nil
	})
	m, tb := newTestBrowser(t, provider.NewMDIAdapter(resolver))

	cmd := m.Init()
	m, listenCmd := update(t, m, cmd())
	session := tb.catalog.Assets()
	require.NotNil(t, session)
	require.NotNil(t, listenCmd)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, session.Wait(ctx))

	m, _ = update(t, m, listen(session)())
	assert.False(t, m.loading)

	d := m.view.Paginated[0]
	assert.Equal(t, entity.AssetResolved, tb.catalog.Lookup(d.Key()).State)
	res := m.renderer.Render(d, render.Request{})
	assert.Equal(t, render.Drawn, res.Outcome)
}

func TestBrowser_EventsOfDiscardedSessionAreDropped(t *testing.T) {
	resolver := resolverFunc(func(context.Context, entity.Descriptor) (entity.Asset, error) {
		return entity.Asset{MediaType: "image/svg+xml", Data: []byte("<svg/>")}, nil
	})
	m, tb := newTestBrowser(t, provider.NewMDIAdapter(resolver), provider.NewSymbolsAdapter())
	m = activated(t, m)
	old := tb.catalog.Assets()
	require.NotNil(t, old)

	m, cmd := press(t, m, "}")
	m, _ = update(t, m, cmd())
	require.Nil(t, tb.catalog.Assets())

	m, next := update(t, m, assetEventMsg{session: old})
	assert.Nil(t, next)
	assert.False(t, m.loading)
}

func TestBrowser_ConfigReloadKeepsPalette(t *testing.T) {
	m, _ := newTestBrowser(t, provider.NewSymbolsAdapter())
	m.color = m.color.Next().Next()

	cfg := config.DefaultConfig()
	cfg.Palettes["catppuccin"] = []string{"#111111", "#222222"}
	m, _ = update(t, m, ConfigReloadedMsg{Config: cfg})

	assert.Equal(t, "catppuccin", m.color.Palette.Name)
	assert.Equal(t, 0, m.color.Subcolor)
	assert.Equal(t, "#111111", m.color.Color())
}

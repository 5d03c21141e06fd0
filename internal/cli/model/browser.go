// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/glyphs/internal/application/port"
	"github.com/bnema/glyphs/internal/application/usecase"
	"github.com/bnema/glyphs/internal/cli/styles"
	"github.com/bnema/glyphs/internal/domain/entity"
	"github.com/bnema/glyphs/internal/infrastructure/config"
	"github.com/bnema/glyphs/internal/logging"
	"github.com/bnema/glyphs/internal/render"
)

const (
	cellWidth   = 22
	chromeLines = 9
	detailLines = 8
)

// BrowserConfig holds the dependencies of the browser.
type BrowserConfig struct {
	Catalog   *usecase.BrowseCatalogUseCase
	Selection *usecase.ManageSelectionUseCase
	Renderer  *render.Dispatcher
	Clipboard port.Clipboard
	Config    *config.Config
	// Provider is activated first; empty picks the first provider.
	Provider string
	// SaveColor persists palette changes; nil keeps them in memory.
	SaveColor func(palette string, subcolor int) error
}

// BrowserModel is the Bubble Tea model for the interactive icon browser.
type BrowserModel struct {
	tabs    styles.TabsModel
	search  textinput.Model
	pager   paginator.Model
	spinner spinner.Model
	help    help.Model
	keys    styles.BrowserKeyMap

	providers []entity.ProviderInfo
	view      usecase.IndexOutput
	cursor    int
	ascending bool
	color     entity.ColorSelection
	cfg       *config.Config
	size      int
	selected  *entity.Descriptor
	status    string

	loading    bool
	searchMode bool
	showHelp   bool
	width      int
	height     int
	err        error

	ctx       context.Context
	catalog   *usecase.BrowseCatalogUseCase
	selection *usecase.ManageSelectionUseCase
	renderer  *render.Dispatcher
	clipboard port.Clipboard
	saveColor func(string, int) error
	theme     *styles.Theme
}

// NewBrowserModel creates the icon browser.
func NewBrowserModel(ctx context.Context, theme *styles.Theme, bc BrowserConfig) BrowserModel {
	log := logging.FromContext(ctx)
	log.Debug().Msg("creating browser model")

	cfg := bc.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	providers := bc.Catalog.Providers()
	tabs := styles.ProviderTabs(theme, providers)
	for i, p := range providers {
		if p.Key == bc.Provider {
			tabs.SetActive(i)
		}
	}

	pager := paginator.New()
	pager.Type = paginator.Arabic
	pager.ArabicFormat = "%d/%d"

	return BrowserModel{
		tabs:    tabs,
		search:  styles.NewSearchInput(theme),
		pager:   pager,
		spinner: styles.NewDefaultSpinner(theme),
		help:    styles.NewStyledHelp(theme),
		keys:    styles.DefaultBrowserKeyMap(),

		providers: providers,
		cfg:       cfg,
		ascending: cfg.Catalog.SortAscending,
		size:      cfg.Render.Size,
		color: entity.ColorSelection{
			Palette:  cfg.Palette(cfg.Render.Palette),
			Subcolor: cfg.Render.Subcolor,
		},
		width:  80,
		height: 24,

		ctx:       ctx,
		catalog:   bc.Catalog,
		selection: bc.Selection,
		renderer:  bc.Renderer,
		clipboard: bc.Clipboard,
		saveColor: bc.SaveColor,
		theme:     theme,
	}
}

// ConfigReloadedMsg carries a configuration reloaded from disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// providerActivatedMsg is sent when a provider's descriptors are loaded.
type providerActivatedMsg struct {
	key string
	err error
}

// assetEventMsg is sent when an async asset of the active session settles.
type assetEventMsg struct {
	session *usecase.AssetSession
	event   entity.AssetEvent
}

// assetsClosedMsg is sent when the listened session was discarded.
type assetsClosedMsg struct{}

// copiedMsg is sent after a clipboard write.
type copiedMsg struct {
	name string
	err  error
}

// colorSavedMsg is sent after the palette selection was persisted.
type colorSavedMsg struct {
	err error
}

// Init implements tea.Model.
func (m BrowserModel) Init() tea.Cmd {
	if len(m.providers) == 0 {
		return nil
	}
	return m.activate(m.providers[m.tabs.Active].Key)
}

// activate loads a provider off the UI goroutine.
func (m BrowserModel) activate(key string) tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		return providerActivatedMsg{key: key, err: catalog.Activate(ctx, key)}
	}
}

// listen waits for the next event of session.
func listen(session *usecase.AssetSession) tea.Cmd {
	if session == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case ev := <-session.Events():
			return assetEventMsg{session: session, event: ev}
		case <-session.Closed():
			return assetsClosedMsg{}
		}
	}
}

// Update implements tea.Model.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKey(msg)
		}
		return m.handleNormalKey(msg)

	case providerActivatedMsg:
		return m.handleActivated(msg)

	case assetEventMsg:
		return m.handleAssetEvent(msg)

	case assetsClosedMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case copiedMsg:
		if msg.err != nil {
			m.status = m.theme.ErrorStyle.Render("copy failed: " + msg.err.Error())
		} else {
			m.status = m.theme.SuccessStyle.Render(styles.IconCheck + " copied " + msg.name)
		}
		return m, nil

	case colorSavedMsg:
		if msg.err != nil {
			m.status = m.theme.WarningStyle.Render("palette not saved: " + msg.err.Error())
		}
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)
	}

	return m, nil
}

func (m BrowserModel) handleActivated(msg providerActivatedMsg) (tea.Model, tea.Cmd) {
	// A slow activation can finish after the user moved on to another tab.
	if want := m.activeTab(); msg.key != want {
		if m.catalog.ActiveProvider() != want {
			return m, m.activate(want)
		}
		return m, nil
	}
	if msg.err != nil {
		m.err = msg.err
		m.status = m.theme.ErrorStyle.Render(msg.err.Error())
		m.view = usecase.IndexOutput{}
		return m, nil
	}
	m.err = nil
	m.status = ""
	m.cursor = 0
	m.selected = nil
	m.selection.Clear()
	m.refresh()

	session := m.catalog.Assets()
	if session == nil || session.Pending() == 0 {
		m.loading = false
		return m, listen(session)
	}
	m.loading = true
	return m, tea.Batch(listen(session), m.spinner.Tick)
}

func (m BrowserModel) handleAssetEvent(msg assetEventMsg) (tea.Model, tea.Cmd) {
	// Events of a discarded session must not touch the grid.
	if msg.session != m.catalog.Assets() {
		return m, nil
	}
	m.loading = msg.session.Pending() > 0
	return m, listen(msg.session)
}

func (m BrowserModel) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Config == nil {
		return m, nil
	}
	m.cfg = msg.Config
	name := m.color.Palette.Name
	if _, ok := m.cfg.Palettes[name]; !ok {
		name = m.cfg.Render.Palette
	}
	m.color = entity.ColorSelection{Palette: m.cfg.Palette(name), Subcolor: m.color.Subcolor}
	if m.color.Palette.Len() > 0 {
		m.color.Subcolor %= m.color.Palette.Len()
	}
	m.status = m.theme.Subtle.Render("config reloaded")
	return m, nil
}

func (m BrowserModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchMode = false
		m.search.Blur()
		m.search.SetValue("")
		m.applyQuery("")
		return m, nil
	case "enter":
		m.searchMode = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyQuery(m.search.Value())
	return m, cmd
}

// applyQuery re-indexes on every keystroke.
func (m *BrowserModel) applyQuery(query string) {
	m.catalog.Search(query)
	m.cursor = 0
	m.refresh()
}

func (m BrowserModel) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Sort):
		m.ascending = m.catalog.ToggleSort()
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, m.keys.NextInitial):
		pos := (m.view.Page-1)*m.view.PageSize + m.cursor
		if g, ok := m.catalog.NextInitial(pos); ok {
			m.refresh()
			m.cursor = g.Start - (m.view.Page-1)*m.view.PageSize
			m.status = m.theme.Subtle.Render("jumped to " + g.Initial)
		}
	case key.Matches(msg, m.keys.NextPage):
		m.catalog.NextPage()
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, m.keys.PrevPage):
		m.catalog.PrevPage()
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.columns())
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.columns())
	case key.Matches(msg, m.keys.NextProvider):
		return m.switchProvider(1)
	case key.Matches(msg, m.keys.PrevProvider):
		return m.switchProvider(-1)
	case key.Matches(msg, m.keys.Palette):
		return m.cyclePalette()
	case key.Matches(msg, m.keys.NextColor):
		m.color = m.color.Next()
		return m, m.persistColor()
	case key.Matches(msg, m.keys.PrevColor):
		m.color = m.color.Prev()
		return m, m.persistColor()
	case key.Matches(msg, m.keys.Select):
		m.selectCurrent()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copySnippet()
	}
	return m, nil
}

// moveCursor moves within the page and crosses to the neighbouring page at
// either edge.
func (m *BrowserModel) moveCursor(delta int) {
	n := len(m.view.Paginated)
	if n == 0 {
		return
	}
	next := m.cursor + delta
	switch {
	case next >= n && m.view.Page < m.view.TotalPages:
		m.catalog.NextPage()
		m.refresh()
		m.cursor = 0
	case next < 0 && m.view.Page > 1:
		m.catalog.PrevPage()
		m.refresh()
		m.cursor = len(m.view.Paginated) - 1
	default:
		m.cursor = max(0, min(next, n-1))
	}
}

func (m BrowserModel) switchProvider(delta int) (tea.Model, tea.Cmd) {
	if len(m.providers) == 0 {
		return m, nil
	}
	if delta > 0 {
		m.tabs.Next()
	} else {
		m.tabs.Prev()
	}
	return m, m.activate(m.activeTab())
}

func (m BrowserModel) activeTab() string {
	if m.tabs.Active < 0 || m.tabs.Active >= len(m.providers) {
		return ""
	}
	return m.providers[m.tabs.Active].Key
}

func (m BrowserModel) cyclePalette() (tea.Model, tea.Cmd) {
	names := m.cfg.PaletteNames()
	if len(names) == 0 {
		return m, nil
	}
	next := names[0]
	for i, name := range names {
		if name == m.color.Palette.Name {
			next = names[(i+1)%len(names)]
			break
		}
	}
	m.color = entity.ColorSelection{Palette: m.cfg.Palette(next)}
	return m, m.persistColor()
}

func (m BrowserModel) persistColor() tea.Cmd {
	if m.saveColor == nil {
		return nil
	}
	save, name, sub := m.saveColor, m.color.Palette.Name, m.color.Subcolor
	return func() tea.Msg {
		return colorSavedMsg{err: save(name, sub)}
	}
}

// current returns the descriptor under the cursor.
func (m BrowserModel) current() (entity.Descriptor, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Paginated) {
		return entity.Descriptor{}, false
	}
	return m.view.Paginated[m.cursor], true
}

func (m *BrowserModel) selectCurrent() {
	d, ok := m.current()
	if !ok {
		return
	}
	m.selection.Select(d)
	m.selected = &d
	if session := m.catalog.Assets(); session != nil && d.Kind() == entity.KindAsyncRef {
		session.Ensure(d)
	}
}

func (m BrowserModel) copySnippet() tea.Cmd {
	d, ok := m.selection.Current()
	if !ok {
		if d, ok = m.current(); !ok {
			return nil
		}
	}
	text := m.selection.ExportSnippet(d, m.exportOptions())
	ctx, clip, name := m.ctx, m.clipboard, d.Name()
	return func() tea.Msg {
		if clip == nil {
			return copiedMsg{name: name, err: fmt.Errorf("no clipboard")}
		}
		return copiedMsg{name: name, err: clip.WriteText(ctx, text)}
	}
}

func (m BrowserModel) exportOptions() usecase.ExportOptions {
	return usecase.ExportOptions{Size: m.size, Color: m.color.Color()}
}

// refresh recomputes the catalog snapshot and keeps the cursor on the page.
func (m *BrowserModel) refresh() {
	m.view = m.catalog.View()
	m.pager.PerPage = max(m.view.PageSize, 1)
	m.pager.SetTotalPages(len(m.view.Filtered))
	m.pager.Page = max(m.view.Page-1, 0)
	if m.cursor >= len(m.view.Paginated) {
		m.cursor = max(len(m.view.Paginated)-1, 0)
	}
}

func (m BrowserModel) columns() int {
	return max(1, m.width/cellWidth)
}

// View implements tea.Model.
func (m BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(m.tabs.View(m.width))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.theme.InputBox(m.search.View(), m.searchMode))
	b.WriteString("\n")

	gridHeight := m.height - chromeLines
	if m.selected != nil {
		gridHeight -= detailLines
	}
	b.WriteString(m.renderGrid(max(gridHeight, 1)))
	b.WriteString("\n")

	if m.selected != nil {
		b.WriteString(m.renderDetail(*m.selected))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m BrowserModel) renderStatusBar() string {
	parts := []string{
		m.theme.CountBadge(len(m.view.Filtered)),
		m.theme.PageBadge(m.view.Page, m.view.TotalPages),
		m.theme.SortBadge(m.ascending),
		m.theme.ColorBadge(m.color),
		m.theme.Subtle.Render(fmt.Sprintf("%dpx", m.size)),
	}
	if m.loading {
		if session := m.catalog.Assets(); session != nil {
			parts = append(parts, m.spinner.View()+m.theme.Subtle.Render(fmt.Sprintf(" %d loading", session.Pending())))
		}
	}
	return strings.Join(parts, " ")
}

func (m BrowserModel) renderGrid(height int) string {
	if m.err != nil {
		return m.theme.ErrorStyle.Render(m.err.Error())
	}
	if len(m.view.Paginated) == 0 {
		if m.catalog.Query() != "" {
			return m.theme.Subtle.Render("no icon matches " + m.catalog.Query())
		}
		return m.theme.Subtle.Render("no icons")
	}

	cols := m.columns()
	rows := (len(m.view.Paginated) + cols - 1) / cols
	cursorRow := m.cursor / cols
	top := 0
	if cursorRow >= height {
		top = cursorRow - height + 1
	}

	lines := make([]string, 0, min(rows, height)+1)
	for r := top; r < rows && r < top+height; r++ {
		cells := make([]string, 0, cols)
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(m.view.Paginated) {
				break
			}
			cells = append(cells, m.renderCell(m.view.Paginated[i], i == m.cursor))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	lines = append(lines, m.theme.Subtle.Render(m.pager.View()))
	return strings.Join(lines, "\n")
}

func (m BrowserModel) renderCell(d entity.Descriptor, selected bool) string {
	res := m.renderer.Render(d, render.Request{Size: m.size, Color: m.color.Color()})
	preview := m.preview(d, res)

	name := d.Name()
	const nameWidth = cellWidth - 5
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	style := m.theme.Cell
	if selected {
		style = m.theme.CellSelected
	}
	return style.Width(cellWidth).Render(preview + " " + m.theme.CellName.Render(name))
}

// preview draws what the terminal can show of a render result.
func (m BrowserModel) preview(d entity.Descriptor, res render.Result) string {
	switch res.Outcome {
	case render.NoDrawable:
		return m.theme.Subtle.Render(styles.GlyphEmpty)
	case render.Placeholder:
		return m.theme.WarningStyle.Render(styles.GlyphPending)
	}

	color := m.color.Color()
	switch p := d.Payload().(type) {
	case entity.GlyphPayload:
		return m.theme.Tint(color, p.Glyph)
	case entity.PathPayload:
		if p.FixedColor != "" {
			color = p.FixedColor
		}
	}
	return m.theme.Tint(color, styles.KindGlyph(d.Kind()))
}

func (m BrowserModel) renderDetail(d entity.Descriptor) string {
	header := fmt.Sprintf("%s %s %s",
		m.theme.Title.Render(d.Name()),
		m.theme.Subtle.Render(d.Provider()),
		m.theme.KindBadge(d.Kind()),
	)
	if d.Kind() == entity.KindAsyncRef {
		header += " " + m.theme.AssetBadge(m.catalog.Lookup(d.Key()).State)
	}

	snippet := m.selection.ExportSnippet(d, m.exportOptions())
	width := max(m.width-6, 20)
	return m.theme.Box.Width(width).Render(
		header + "\n\n" + m.theme.Snippet.Width(width-4).Render(snippet),
	)
}

// Selected returns the selected descriptor, if any.
func (m BrowserModel) Selected() (entity.Descriptor, bool) {
	if m.selected == nil {
		return entity.Descriptor{}, false
	}
	return *m.selected, true
}

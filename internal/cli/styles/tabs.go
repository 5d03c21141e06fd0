package styles

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/glyphs/internal/domain/entity"
)

// TabsModel represents a horizontal tab bar.
type TabsModel struct {
	Tabs   []string
	Active int
	theme  *Theme
}

// NewTabs creates a tab bar with the first label active.
func NewTabs(theme *Theme, tabs ...string) TabsModel {
	return TabsModel{Tabs: tabs, theme: theme}
}

// ProviderTabs creates one tab per provider, titled by the provider key.
func ProviderTabs(theme *Theme, providers []entity.ProviderInfo) TabsModel {
	labels := make([]string, 0, len(providers))
	for _, p := range providers {
		label := p.Key
		if p.Async {
			label += " " + IconCloud
		}
		labels = append(labels, label)
	}
	return NewTabs(theme, labels...)
}

// SetActive sets the active tab index.
func (m *TabsModel) SetActive(index int) {
	if index >= 0 && index < len(m.Tabs) {
		m.Active = index
	}
}

// Next moves to the next tab, wrapping around.
func (m *TabsModel) Next() { m.shift(1) }

// Prev moves to the previous tab, wrapping around.
func (m *TabsModel) Prev() { m.shift(-1) }

func (m *TabsModel) shift(delta int) {
	n := len(m.Tabs)
	if n == 0 {
		return
	}
	m.Active = ((m.Active+delta)%n + n) % n
}

// View renders the tab bar at the given width.
func (m TabsModel) View(width int) string {
	tabs := make([]string, 0, len(m.Tabs))
	for i, tab := range m.Tabs {
		style := m.theme.InactiveTab
		if i == m.Active {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(tab))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, join(tabs, " ")...)
	if width > 0 {
		return m.theme.TabBar.Width(width).Render(row)
	}
	return m.theme.TabBar.Render(row)
}

// join inserts a separator between items.
func join(items []string, sep string) []string {
	if len(items) == 0 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

// formatCount caps large counts so badges keep a stable width.
func formatCount(n int) string {
	if n >= 10000 {
		return "9999+"
	}
	return strconv.Itoa(n)
}

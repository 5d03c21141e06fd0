package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// BrowserKeyMap defines keybindings for the icon browser.
type BrowserKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	NextProvider key.Binding
	PrevProvider key.Binding
	NextInitial  key.Binding
	Search       key.Binding
	Sort         key.Binding
	Palette      key.Binding
	NextColor    key.Binding
	PrevColor    key.Binding
	Select       key.Binding
	Copy         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Select, k.Copy, k.Palette, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextPage, k.PrevPage, k.NextInitial},
		{k.NextProvider, k.PrevProvider},
		{k.Search, k.Sort},
		{k.Palette, k.NextColor, k.PrevColor},
		{k.Select, k.Copy},
		{k.Help, k.Quit},
	}
}

// DefaultBrowserKeyMap returns the default browser keybindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown", "n"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup", "N"),
			key.WithHelp("N", "prev page"),
		),
		NextProvider: key.NewBinding(
			key.WithKeys("}", "ctrl+n"),
			key.WithHelp("}", "next provider"),
		),
		PrevProvider: key.NewBinding(
			key.WithKeys("{", "ctrl+p"),
			key.WithHelp("{", "prev provider"),
		),
		NextInitial: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next letter"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Palette: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "palette"),
		),
		NextColor: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next color"),
		),
		PrevColor: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev color"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy snippet"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}

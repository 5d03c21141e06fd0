// Package styles provides reusable lipgloss-based TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/bnema/glyphs/internal/infrastructure/config"
)

// ThemePalette holds the base colors of the terminal UI.
type ThemePalette struct {
	Background     string
	Surface        string
	SurfaceVariant string
	Text           string
	Muted          string
	Accent         string
	Border         string
}

// Theme holds lipgloss colors and styles derived from config.
type Theme struct {
	Background     lipgloss.Color
	Surface        lipgloss.Color
	SurfaceVariant lipgloss.Color
	Text           lipgloss.Color
	Muted          lipgloss.Color
	Accent         lipgloss.Color
	Border         lipgloss.Color

	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color

	Title        lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	TabBar      lipgloss.Style

	Cell         lipgloss.Style
	CellSelected lipgloss.Style
	CellName     lipgloss.Style

	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Box     lipgloss.Style
	Snippet lipgloss.Style
}

// DefaultDarkPalette returns hardcoded dark theme colors.
func DefaultDarkPalette() ThemePalette {
	return ThemePalette{
		Background:     "#0a0a0b",
		Surface:        "#1a1a1b",
		SurfaceVariant: "#2d2d2d",
		Text:           "#ffffff",
		Muted:          "#909090",
		Accent:         "#4ade80",
		Border:         "#333333",
	}
}

// NewTheme creates a Theme whose accent follows the configured render palette.
func NewTheme(cfg *config.Config) *Theme {
	p := DefaultDarkPalette()
	if cfg != nil {
		if accent, ok := AccentFrom(cfg.Palette(cfg.Render.Palette).Colors); ok {
			p.Accent = accent
		}
	}
	return NewThemeFromPalette(p)
}

// AccentFrom picks the most saturated hex color of a render palette, so
// palettes that start with a neutral text color still get a vivid accent.
func AccentFrom(colors []string) (string, bool) {
	best, bestSat := "", -1.0
	for _, c := range colors {
		col, err := colorful.Hex(c)
		if err != nil {
			continue
		}
		_, s, _ := col.Hsv()
		if s > bestSat {
			best, bestSat = col.Hex(), s
		}
	}
	return best, best != ""
}

// NewThemeFromPalette creates a Theme from a ThemePalette.
func NewThemeFromPalette(p ThemePalette) *Theme {
	t := &Theme{
		Background:     lipgloss.Color(p.Background),
		Surface:        lipgloss.Color(p.Surface),
		SurfaceVariant: lipgloss.Color(p.SurfaceVariant),
		Text:           lipgloss.Color(p.Text),
		Muted:          lipgloss.Color(p.Muted),
		Accent:         lipgloss.Color(p.Accent),
		Border:         lipgloss.Color(p.Border),

		Error:   lipgloss.Color("#ef4444"),
		Warning: lipgloss.Color("#f59e0b"),
		Success: lipgloss.Color(p.Accent),
	}

	t.buildStyles()
	return t
}

// buildStyles derives the component styles from the base colors.
func (t *Theme) buildStyles() {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	pill := func(f, b lipgloss.Color, padX int) lipgloss.Style {
		return fg(f).Background(b).Padding(0, padX)
	}
	rounded := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	t.Title = fg(t.Text).Bold(true)
	t.Subtle = fg(t.Muted)
	t.Highlight = fg(t.Accent).Bold(true)
	t.ErrorStyle = fg(t.Error)
	t.WarningStyle = fg(t.Warning)
	t.SuccessStyle = fg(t.Success)

	t.ActiveTab = pill(t.Background, t.Accent, 2).Bold(true)
	t.InactiveTab = pill(t.Muted, t.Surface, 2)
	t.TabBar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Border)

	// Cells keep equal padding so the grid does not shift when the cursor moves.
	t.Cell = fg(t.Text).Padding(0, 1)
	t.CellSelected = pill(t.Accent, t.SurfaceVariant, 1).Bold(true)
	t.CellName = fg(t.Muted)

	t.Badge = pill(t.Background, t.Accent, 1)
	t.BadgeMuted = pill(t.Text, t.SurfaceVariant, 1)

	t.Input = rounded.Foreground(t.Text).Padding(0, 1)
	t.InputFocused = t.Input.BorderForeground(t.Accent)

	t.Box = rounded.Padding(1, 2)
	t.Snippet = pill(t.Text, t.Surface, 1)
}

// Swatch renders a block in the given render color.
func (t *Theme) Swatch(color string) string {
	return t.Tint(color, "██")
}

// Tint renders s in the given render color. Colors lipgloss cannot express
// (currentColor, CSS names) fall back to the text color.
func (t *Theme) Tint(color, s string) string {
	fg := t.Text
	if c, err := colorful.Hex(color); err == nil {
		fg = lipgloss.Color(c.Hex())
	}
	return lipgloss.NewStyle().Foreground(fg).Render(s)
}

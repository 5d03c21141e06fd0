package styles

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/glyphs/internal/domain/entity"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Cell.
		Foreground(theme.Text)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// ProviderTableColumns returns columns for the provider list.
func ProviderTableColumns() []table.Column {
	return []table.Column{
		{Title: "Key", Width: 14},
		{Title: "Title", Width: 24},
		{Title: "Kind", Width: 10},
		{Title: "Async", Width: 6},
		{Title: "Description", Width: 44},
	}
}

// ProviderRow converts provider metadata to a table row.
func ProviderRow(p entity.ProviderInfo) table.Row {
	async := ""
	if p.Async {
		async = "yes"
	}
	return table.Row{p.Key, p.Title, p.Kind.String(), async, p.Description}
}

// IconTableColumns returns columns for search results.
func IconTableColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 6},
		{Title: "Name", Width: 36},
		{Title: "Kind", Width: 10},
	}
}

// IconRow converts a descriptor to a table row; pos is its 1-based position
// in the filtered list.
func IconRow(pos int, d entity.Descriptor) table.Row {
	return table.Row{strconv.Itoa(pos), d.Name(), d.Kind().String()}
}

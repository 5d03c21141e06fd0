package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/bnema/glyphs/internal/domain/entity"
)

var pageTemplate = template.Must(template.New("grid").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;margin:1.5rem}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(7rem,1fr));gap:.75rem}
.cell{display:flex;flex-direction:column;align-items:center;gap:.35rem;padding:.6rem;border:1px solid #ddd;border-radius:.4rem}
.cell span.name{font-size:.7rem;word-break:break-all;text-align:center;color:#555}
.icon-skeleton{background:#eee;border-radius:.25rem}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Summary}}</p>
<div class="grid">
{{- range .Cells}}
<div class="cell" data-outcome="{{.Outcome}}">{{.Markup}}<span class="name">{{.Name}}</span></div>
{{- end}}
</div>
</body>
</html>
`))

// PageCell is one rendered grid cell.
type PageCell struct {
	Name    string
	Outcome string
	Markup  template.HTML
}

// Page is a printable catalog page.
type Page struct {
	Title   string
	Summary string
	Cells   []PageCell
}

// BuildPage renders descriptors in order. Cells keep their position whatever
// their outcome, so an empty cell stays where the icon would be.
func (r *Dispatcher) BuildPage(title, summary string, descriptors []entity.Descriptor, req Request) Page {
	cells := make([]PageCell, 0, len(descriptors))
	for _, d := range descriptors {
		res := r.Render(d, req)
		cell := PageCell{Name: d.Name(), Outcome: res.Outcome.String()}
		if res.Drawable() {
			// Markup escapes attribute values and text; component output is trusted.
			cell.Markup = template.HTML(res.Element.Markup()) //nolint:gosec
		}
		cells = append(cells, cell)
	}
	return Page{Title: title, Summary: summary, Cells: cells}
}

// WriteHTML writes the page as a standalone HTML document.
func WriteHTML(w io.Writer, p Page) error {
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("failed to write grid page: %w", err)
	}
	return nil
}

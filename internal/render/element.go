// Package render turns icon descriptors into markup elements.
package render

import (
	"html"
	"strings"
)

// Attr is one attribute; order is preserved in the output.
type Attr struct {
	Name  string
	Value string
}

// Element is a drawable unit. Raw, when set, is trusted markup emitted as-is
// and the other fields are ignored.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []Element
	Raw      string
}

// Attr returns the value of the named attribute.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Markup serialises the element.
func (e Element) Markup() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e Element) write(b *strings.Builder) {
	if e.Raw != "" {
		b.WriteString(e.Raw)
		return
	}
	if e.Tag == "" {
		return
	}
	b.WriteByte('<')
	b.WriteString(e.Tag)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Value))
		b.WriteByte('"')
	}
	if e.Text == "" && len(e.Children) == 0 && selfClosing(e.Tag) {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	b.WriteString(html.EscapeString(e.Text))
	for _, c := range e.Children {
		c.write(b)
	}
	b.WriteString("</")
	b.WriteString(e.Tag)
	b.WriteByte('>')
}

func selfClosing(tag string) bool {
	switch tag {
	case "path", "img", "circle", "rect", "polygon", "line", "use":
		return true
	}
	return false
}

package provider

import (
	"errors"
	"fmt"
	"html"
	"strings"
)

// Shape is a drawable geometric primitive. Body is SVG content on a 24x24
// grid with COLOR where the fill or stroke goes.
type Shape struct {
	Body string
}

// Instantiate implements entity.Component.
func (s Shape) Instantiate(size int, color string) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("invalid size %d", size)
	}
	if s.Body == "" {
		return "", errors.New("shape has no body")
	}
	body := strings.ReplaceAll(s.Body, "COLOR", html.EscapeString(color))
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 24 24">%s</svg>`,
		size, size, body), nil
}

// shapeExports mimics a component library's named export map: drawables
// mixed with helpers, defaults and version metadata.
func shapeExports() map[string]any {
	return map[string]any{
		"VERSION":      "1.4.0",
		"defaultProps": map[string]any{"size": 24, "color": "currentColor"},
		"createShape":  func(body string) Shape { return Shape{Body: body} },
		"icons":        []string{"Circle", "Square"},

		"Circle":      Shape{Body: `<circle cx="12" cy="12" r="10" fill="COLOR"/>`},
		"Ring":        Shape{Body: `<circle cx="12" cy="12" r="9" fill="none" stroke="COLOR" stroke-width="2"/>`},
		"Square":      Shape{Body: `<rect x="3" y="3" width="18" height="18" fill="COLOR"/>`},
		"RoundSquare": Shape{Body: `<rect x="3" y="3" width="18" height="18" rx="4" fill="COLOR"/>`},
		"Triangle":    Shape{Body: `<polygon points="12,3 22,21 2,21" fill="COLOR"/>`},
		"Diamond":     Shape{Body: `<polygon points="12,2 22,12 12,22 2,12" fill="COLOR"/>`},
		"Hexagon":     Shape{Body: `<polygon points="7,3 17,3 22,12 17,21 7,21 2,12" fill="COLOR"/>`},
		"Star":        Shape{Body: `<polygon points="12,2 15,9 22,9 16.5,13.5 18.5,21 12,16.8 5.5,21 7.5,13.5 2,9 9,9" fill="COLOR"/>`},
		"Heart":       Shape{Body: `<path d="M12 21s-8-5.3-8-11a4.5 4.5 0 0 1 8-2.8A4.5 4.5 0 0 1 20 10c0 5.7-8 11-8 11z" fill="COLOR"/>`},
		"Plus":        Shape{Body: `<rect x="10" y="3" width="4" height="18" fill="COLOR"/><rect x="3" y="10" width="18" height="4" fill="COLOR"/>`},
		"Cross":       Shape{Body: `<line x1="5" y1="5" x2="19" y2="19" stroke="COLOR" stroke-width="3"/><line x1="19" y1="5" x2="5" y2="19" stroke="COLOR" stroke-width="3"/>`},
		"Pill":        Shape{Body: `<rect x="2" y="8" width="20" height="8" rx="4" fill="COLOR"/>`},
		"Chevron":     Shape{Body: `<polyline points="8,4 16,12 8,20" fill="none" stroke="COLOR" stroke-width="2.5"/>`},
		"Dot":         Shape{Body: `<circle cx="12" cy="12" r="4" fill="COLOR"/>`},
		"Bars":        Shape{Body: `<rect x="4" y="12" width="4" height="9" fill="COLOR"/><rect x="10" y="7" width="4" height="14" fill="COLOR"/><rect x="16" y="3" width="4" height="18" fill="COLOR"/>`},
		"Blank":       Shape{},
	}
}

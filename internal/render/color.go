package render

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/bnema/glyphs/internal/domain/entity"
)

// NormalizeColor canonicalises hex colors and lets other CSS color forms
// (names, rgb(), hsl(), currentColor) through when they are attribute-safe.
// Anything else falls back to currentColor.
func NormalizeColor(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return entity.CurrentColor
	}
	if strings.HasPrefix(c, "#") {
		parsed, err := colorful.Hex(c)
		if err != nil {
			return entity.CurrentColor
		}
		return parsed.Hex()
	}
	for _, r := range c {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("(),.% -", r):
		default:
			return entity.CurrentColor
		}
	}
	return c
}

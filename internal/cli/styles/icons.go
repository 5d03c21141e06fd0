package styles

import "github.com/bnema/glyphs/internal/domain/entity"

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconInfo     = "\uf05a" // info
	IconCheck    = "\uf00c" // check
	IconX        = "\uf00d" // x
	IconWarning  = "\uf071" // warning
	IconCursor   = "\uf054" // chevron-right
	IconPalette  = "\uf1fc" // paint brush
	IconSortAsc  = "\uf15d" // sort-alpha-asc
	IconSortDesc = "\uf15e" // sort-alpha-desc
	IconCloud    = "\uf0c2" // cloud
)

// Stand-ins drawn in the terminal grid for kinds it cannot paint.
const (
	GlyphComponent = "◆"
	GlyphPath      = "✎"
	GlyphClass     = "¶"
	GlyphAsync     = "☁"
	GlyphPending   = "…"
	GlyphEmpty     = "·"
)

// KindGlyph returns the terminal stand-in for a descriptor kind.
func KindGlyph(kind entity.Kind) string {
	switch kind {
	case entity.KindComponentRef:
		return GlyphComponent
	case entity.KindPathData:
		return GlyphPath
	case entity.KindCSSClassGlyph:
		return GlyphClass
	case entity.KindAsyncRef:
		return GlyphAsync
	default:
		return GlyphEmpty
	}
}

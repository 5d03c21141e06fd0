package styles

import (
	"fmt"

	"github.com/bnema/glyphs/internal/domain/entity"
)

// KindBadge renders the descriptor kind.
func (t *Theme) KindBadge(kind entity.Kind) string {
	return t.BadgeMuted.Render(kind.String())
}

// AssetBadge renders an async asset state; empty for unloaded entries.
func (t *Theme) AssetBadge(state entity.AssetState) string {
	switch state {
	case entity.AssetPending:
		return t.WarningStyle.Render(GlyphPending + " loading")
	case entity.AssetResolved:
		return t.SuccessStyle.Render(IconCheck + " loaded")
	case entity.AssetFailed:
		return t.ErrorStyle.Render(IconX + " failed")
	default:
		return ""
	}
}

// CountBadge renders "n icons".
func (t *Theme) CountBadge(n int) string {
	if n == 1 {
		return t.Badge.Render("1 icon")
	}
	return t.Badge.Render(formatCount(n) + " icons")
}

// PageBadge renders "page x/y".
func (t *Theme) PageBadge(page, total int) string {
	return t.BadgeMuted.Render(fmt.Sprintf("page %d/%d", page, total))
}

// SortBadge renders the sort direction.
func (t *Theme) SortBadge(ascending bool) string {
	if ascending {
		return t.BadgeMuted.Render(IconSortAsc + " A-Z")
	}
	return t.BadgeMuted.Render(IconSortDesc + " Z-A")
}

// ColorBadge renders the palette name with a swatch of the active color.
func (t *Theme) ColorBadge(sel entity.ColorSelection) string {
	return fmt.Sprintf("%s %s %s %d/%d",
		t.Tint(sel.Color(), IconPalette),
		t.Subtle.Render(sel.Palette.Name),
		t.Swatch(sel.Color()),
		sel.Subcolor+1, max(sel.Palette.Len(), 1),
	)
}

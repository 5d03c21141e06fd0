package provider

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/bnema/glyphs/internal/domain/entity"
)

//go:embed data/symbols.toml
var symbolsTOML []byte

// GlyphAdapter reads a TOML table mapping names to code points ("U+2605",
// "0x1F600") or literal glyphs.
type GlyphAdapter struct {
	info entity.ProviderInfo
	data []byte
}

// NewSymbolsAdapter returns the built-in Unicode symbols provider.
func NewSymbolsAdapter() *GlyphAdapter {
	return NewGlyphAdapter(entity.ProviderInfo{
		Key:         "symbols",
		Title:       "Unicode Symbols",
		Description: "Raw Unicode code points and emoji",
	}, symbolsTOML)
}

// NewGlyphAdapter wraps TOML data with a [glyphs] table.
func NewGlyphAdapter(info entity.ProviderInfo, data []byte) *GlyphAdapter {
	info.Kind = entity.KindUnicodeGlyph
	return &GlyphAdapter{info: info, data: data}
}

func (a *GlyphAdapter) Info() entity.ProviderInfo { return a.info }

func (a *GlyphAdapter) Load(context.Context) (any, error) {
	var raw map[string]any
	if err := toml.Unmarshal(a.data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s table: %w", a.info.Key, err)
	}
	return raw, nil
}

func (a *GlyphAdapter) BuildDescriptors(raw any) []entity.Descriptor {
	doc, ok := raw.(map[string]any)
	if !ok {
		return []entity.Descriptor{}
	}
	table, ok := doc["glyphs"].(map[string]any)
	if !ok {
		return []entity.Descriptor{}
	}

	set := newDescriptorSet(a.info.Key, len(table))
	for name, value := range table {
		if !kebabName.MatchString(name) {
			continue
		}
		s, ok := value.(string)
		if !ok {
			continue
		}
		glyph, err := entity.ParseCodePoint(s)
		if err != nil {
			continue
		}
		set.add(name, entity.GlyphPayload{Glyph: glyph})
	}
	return set.descriptors()
}

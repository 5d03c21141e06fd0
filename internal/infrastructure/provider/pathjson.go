package provider

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/bnema/glyphs/internal/domain/entity"
)

//go:embed data/brands.json
var brandsJSON []byte

// PathJSONAdapter reads a JSON export of brand icons: an array of
// {title, slug, hex, path} objects, optionally wrapped as {"icons": [...]}.
// Icons keep their brand color.
type PathJSONAdapter struct {
	info entity.ProviderInfo
	data []byte
}

// NewBrandsAdapter returns the built-in brand logos provider.
func NewBrandsAdapter() *PathJSONAdapter {
	return NewPathJSONAdapter(entity.ProviderInfo{
		Key:         "brands",
		Title:       "Brands",
		Description: "Brand logos as single SVG paths with fixed colors",
	}, brandsJSON)
}

// NewPathJSONAdapter wraps JSON data in the brand icon shape.
func NewPathJSONAdapter(info entity.ProviderInfo, data []byte) *PathJSONAdapter {
	info.Kind = entity.KindPathData
	return &PathJSONAdapter{info: info, data: data}
}

func (a *PathJSONAdapter) Info() entity.ProviderInfo { return a.info }

func (a *PathJSONAdapter) Load(context.Context) (any, error) {
	var raw any
	if err := json.Unmarshal(a.data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s icons: %w", a.info.Key, err)
	}
	return raw, nil
}

func (a *PathJSONAdapter) BuildDescriptors(raw any) []entity.Descriptor {
	var entries []any
	switch v := raw.(type) {
	case []any:
		entries = v
	case map[string]any:
		entries, _ = v["icons"].([]any)
	}

	set := newDescriptorSet(a.info.Key, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		name := stringField(m, "slug")
		if name == "" {
			name = slugify(stringField(m, "title"))
		}
		if !kebabName.MatchString(name) {
			continue
		}
		path := stringField(m, "path")
		if path == "" {
			continue
		}
		payload := entity.PathPayload{Paths: []string{path}, ViewBox: entity.DefaultViewBox}
		if hex := stringField(m, "hex"); hex != "" {
			payload.FixedColor = "#" + hex
		}
		set.add(name, payload)
	}
	return set.descriptors()
}

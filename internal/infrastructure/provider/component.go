package provider

import (
	"context"

	"github.com/bnema/glyphs/internal/domain/entity"
)

// ComponentAdapter exposes a named export map whose icons are ready-made
// drawables. Only PascalCase names holding an entity.Component are icons.
type ComponentAdapter struct {
	info    entity.ProviderInfo
	exports func() map[string]any
}

// NewShapesAdapter returns the built-in geometric shapes provider.
func NewShapesAdapter() *ComponentAdapter {
	return NewComponentAdapter(entity.ProviderInfo{
		Key:         "shapes",
		Title:       "Shapes",
		Description: "Geometric primitives drawn by Go components",
	}, shapeExports)
}

// NewComponentAdapter wraps any export map of components.
func NewComponentAdapter(info entity.ProviderInfo, exports func() map[string]any) *ComponentAdapter {
	info.Kind = entity.KindComponentRef
	return &ComponentAdapter{info: info, exports: exports}
}

func (a *ComponentAdapter) Info() entity.ProviderInfo { return a.info }

func (a *ComponentAdapter) Load(context.Context) (any, error) {
	return a.exports(), nil
}

func (a *ComponentAdapter) BuildDescriptors(raw any) []entity.Descriptor {
	exports, ok := raw.(map[string]any)
	if !ok {
		return []entity.Descriptor{}
	}

	set := newDescriptorSet(a.info.Key, len(exports))
	for name, value := range exports {
		if !pascalName.MatchString(name) || isMetadataName(name) {
			continue
		}
		component, ok := value.(entity.Component)
		if !ok {
			continue
		}
		set.add(name, entity.ComponentPayload{Component: component})
	}
	return set.descriptors()
}

// isMetadataName matches library metadata that happens to look like an identifier.
func isMetadataName(name string) bool {
	switch name {
	case "VERSION", "Version", "Default", "Icon", "IconBase", "Provider", "Context":
		return true
	}
	return false
}

package provider

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bnema/glyphs/internal/domain/entity"
)

//go:embed data/bootstrap.yaml
var bootstrapYAML []byte

// ClassAdapter reads a YAML manifest of an icon font: a class prefix and a
// list of icon names, each either a string or a {name, tags} mapping.
// The descriptor carries the base class plus the prefixed icon class.
type ClassAdapter struct {
	info entity.ProviderInfo
	data []byte
}

// NewBootstrapAdapter returns the built-in icon font provider.
func NewBootstrapAdapter() *ClassAdapter {
	return NewClassAdapter(entity.ProviderInfo{
		Key:         "bootstrap",
		Title:       "Bootstrap Icons",
		Description: "Icon font glyphs addressed by CSS class",
	}, bootstrapYAML)
}

// NewClassAdapter wraps a manifest.
func NewClassAdapter(info entity.ProviderInfo, data []byte) *ClassAdapter {
	info.Kind = entity.KindCSSClassGlyph
	return &ClassAdapter{info: info, data: data}
}

func (a *ClassAdapter) Info() entity.ProviderInfo { return a.info }

func (a *ClassAdapter) Load(context.Context) (any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(a.data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s manifest: %w", a.info.Key, err)
	}
	return raw, nil
}

func (a *ClassAdapter) BuildDescriptors(raw any) []entity.Descriptor {
	manifest, ok := raw.(map[string]any)
	if !ok {
		return []entity.Descriptor{}
	}
	prefix := stringField(manifest, "prefix")
	if prefix == "" {
		return []entity.Descriptor{}
	}
	entries, _ := manifest["icons"].([]any)

	set := newDescriptorSet(a.info.Key, len(entries))
	for _, e := range entries {
		var name string
		switch v := e.(type) {
		case string:
			name = strings.TrimSpace(v)
		case map[string]any:
			name = stringField(v, "name")
		default:
			continue
		}
		if !kebabName.MatchString(name) {
			continue
		}
		set.add(name, entity.ClassPayload{Classes: []string{prefix, prefix + "-" + name}})
	}
	return set.descriptors()
}

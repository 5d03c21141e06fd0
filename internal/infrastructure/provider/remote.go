package provider

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bnema/glyphs/internal/application/port"
	"github.com/bnema/glyphs/internal/domain/entity"
)

//go:embed data/mdi.yaml
var mdiYAML []byte

// RemoteAdapter lists icons whose artwork lives behind an asset resolver.
// Descriptors carry "prefix:name" handles; nothing is fetched until the
// asset loader asks the resolver.
type RemoteAdapter struct {
	info     entity.ProviderInfo
	data     []byte
	resolver port.AssetResolver
}

// NewMDIAdapter returns the built-in remote Material Design Icons provider.
func NewMDIAdapter(resolver port.AssetResolver) *RemoteAdapter {
	return NewRemoteAdapter(entity.ProviderInfo{
		Key:         "iconify-mdi",
		Title:       "Material Design (remote)",
		Description: "SVG artwork fetched on demand and cached locally",
	}, mdiYAML, resolver)
}

// NewRemoteAdapter wraps a YAML name list with a resolver.
func NewRemoteAdapter(info entity.ProviderInfo, data []byte, resolver port.AssetResolver) *RemoteAdapter {
	info.Kind = entity.KindAsyncRef
	info.Async = true
	return &RemoteAdapter{info: info, data: data, resolver: resolver}
}

func (a *RemoteAdapter) Info() entity.ProviderInfo { return a.info }

// Resolver returns the resolver owned by this provider.
func (a *RemoteAdapter) Resolver() port.AssetResolver { return a.resolver }

func (a *RemoteAdapter) Load(context.Context) (any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(a.data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s list: %w", a.info.Key, err)
	}
	return raw, nil
}

func (a *RemoteAdapter) BuildDescriptors(raw any) []entity.Descriptor {
	doc, ok := raw.(map[string]any)
	if !ok {
		return []entity.Descriptor{}
	}
	prefix := stringField(doc, "prefix")
	if !kebabName.MatchString(prefix) {
		return []entity.Descriptor{}
	}
	entries, _ := doc["icons"].([]any)

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
		set.add(name, entity.AsyncPayload{Handle: prefix + ":" + name})
	}
	return set.descriptors()
}

// SplitHandle splits "prefix:name" into its parts.
func SplitHandle(handle string) (prefix, name string, ok bool) {
	prefix, name, ok = strings.Cut(handle, ":")
	if !ok || !kebabName.MatchString(prefix) || !kebabName.MatchString(name) {
		return "", "", false
	}
	return prefix, name, true
}

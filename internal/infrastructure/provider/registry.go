// Package provider holds the icon provider adapters and the registry that
// memoises their descriptor lists.
package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/glyphs/internal/application/port"
	"github.com/bnema/glyphs/internal/domain/entity"
	"github.com/bnema/glyphs/internal/logging"
)

// ErrUnknownProvider is returned for keys no adapter registered.
var ErrUnknownProvider = errors.New("unknown icon provider")

// Registry implements port.ProviderCatalog over a fixed adapter set.
type Registry struct {
	providers []port.IconProvider
	byKey     map[string]port.IconProvider

	mu     sync.Mutex
	loaded map[string][]entity.Descriptor
}

// NewRegistry registers providers in display order. Keys must be unique.
func NewRegistry(providers ...port.IconProvider) (*Registry, error) {
	r := &Registry{
		byKey:  make(map[string]port.IconProvider, len(providers)),
		loaded: make(map[string][]entity.Descriptor),
	}
	for _, p := range providers {
		key := p.Info().Key
		if key == "" {
			return nil, errors.New("provider with empty key")
		}
		if _, dup := r.byKey[key]; dup {
			return nil, fmt.Errorf("duplicate provider key %q", key)
		}
		r.byKey[key] = p
		r.providers = append(r.providers, p)
	}
	return r, nil
}

// List returns provider metadata in registration order.
func (r *Registry) List() []entity.ProviderInfo {
	infos := make([]entity.ProviderInfo, 0, len(r.providers))
	for _, p := range r.providers {
		infos = append(infos, p.Info())
	}
	return infos
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.byKey[key]
	return ok
}

// Descriptors loads the provider on first use. A load failure degrades to an
// empty provider so browsing keeps working; it is retried next time.
func (r *Registry) Descriptors(ctx context.Context, key string) ([]entity.Descriptor, error) {
	p, ok := r.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if descriptors, ok := r.loaded[key]; ok {
		return descriptors, nil
	}

	log := logging.FromContext(ctx)
	raw, err := p.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Str("provider", key).Msg("failed to load icon provider")
		return []entity.Descriptor{}, nil
	}

	descriptors := p.BuildDescriptors(raw)
	r.loaded[key] = descriptors
	log.Debug().Str("provider", key).Int("descriptors", len(descriptors)).Msg("icon provider loaded")
	return descriptors, nil
}

// Resolver returns the resolver owned by an async provider.
func (r *Registry) Resolver(key string) (port.AssetResolver, bool) {
	p, ok := r.byKey[key]
	if !ok {
		return nil, false
	}
	async, ok := p.(port.AsyncIconProvider)
	if !ok {
		return nil, false
	}
	resolver := async.Resolver()
	return resolver, resolver != nil
}

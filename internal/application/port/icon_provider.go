package port

import (
	"context"

	"github.com/bnema/glyphs/internal/domain/entity"
)

// IconProvider adapts one upstream icon source to the catalog.
//
// Load fetches the provider's native export shape (decoding embedded data,
// evaluating a module); BuildDescriptors must be a pure function of that shape.
// Entries that cannot be classified are dropped, never reported as errors.
type IconProvider interface {
	Info() entity.ProviderInfo
	Load(ctx context.Context) (any, error)
	BuildDescriptors(raw any) []entity.Descriptor
}

// AsyncIconProvider is implemented by providers whose descriptors are AsyncRef.
// The resolver is owned by the provider instance.
type AsyncIconProvider interface {
	IconProvider
	Resolver() AssetResolver
}

// ProviderCatalog lists providers and memoises their descriptor lists.
type ProviderCatalog interface {
	// List returns provider metadata in display order.
	List() []entity.ProviderInfo
	// Descriptors loads the provider on first use and returns its descriptors.
	Descriptors(ctx context.Context, key string) ([]entity.Descriptor, error)
	// Resolver returns the asset resolver of an async provider.
	Resolver(key string) (AssetResolver, bool)
}

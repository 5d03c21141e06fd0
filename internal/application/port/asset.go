// Package port defines the interfaces the use cases depend on.
package port

import (
	"context"

	"github.com/bnema/glyphs/internal/domain/entity"
)

//go:generate mockgen -source=asset.go -destination=mocks/mock_asset.go -package=mocks

// AssetResolver turns an AsyncRef descriptor into a drawable asset.
// Implementations must be safe for concurrent use.
type AssetResolver interface {
	Resolve(ctx context.Context, d entity.Descriptor) (entity.Asset, error)
}

// AssetLookup exposes the current state of async assets to the renderer.
type AssetLookup interface {
	Lookup(key entity.IconKey) entity.AssetEntry
}

// AssetStore persists resolved assets across sessions.
type AssetStore interface {
	// Get returns the stored asset, ok=false when absent.
	Get(ctx context.Context, key entity.IconKey) (entity.Asset, bool, error)
	Put(ctx context.Context, key entity.IconKey, asset entity.Asset) error
}

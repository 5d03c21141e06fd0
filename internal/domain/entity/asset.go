package entity

import "strings"

// AssetState is the lifecycle state of one async asset within a session.
type AssetState int

const (
	AssetUnloaded AssetState = iota
	AssetPending
	AssetResolved
	AssetFailed
)

func (s AssetState) String() string {
	switch s {
	case AssetUnloaded:
		return "unloaded"
	case AssetPending:
		return "pending"
	case AssetResolved:
		return "resolved"
	case AssetFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Settled reports whether the state is terminal for the session.
func (s AssetState) Settled() bool {
	return s == AssetResolved || s == AssetFailed
}

// Asset is the resolved form of an async descriptor.
// Either Data or URL is set; Data wins when both are.
type Asset struct {
	MediaType string
	Data      []byte
	URL       string
}

// IsSVG reports whether the asset carries inline SVG markup.
func (a Asset) IsSVG() bool {
	return strings.HasPrefix(a.MediaType, "image/svg+xml") && len(a.Data) > 0
}

// Empty reports whether the asset has nothing to draw.
func (a Asset) Empty() bool {
	return len(a.Data) == 0 && a.URL == ""
}

// AssetEntry is one cache slot.
type AssetEntry struct {
	State AssetState
	Asset Asset
	Err   error
}

// AssetEvent announces a settled resolution so the UI can redraw a cell in place.
type AssetEvent struct {
	Key   IconKey
	State AssetState
}

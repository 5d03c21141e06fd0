package entity

// ProviderInfo describes an icon provider without loading it.
type ProviderInfo struct {
	Key         string
	Title       string
	Description string
	// Kind is the strategy every descriptor of this provider uses.
	Kind Kind
	// Async is true when the provider's descriptors need the asset loader.
	Async bool
}

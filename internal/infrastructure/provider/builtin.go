package provider

import "github.com/bnema/glyphs/internal/application/port"

// Builtin returns the bundled providers in display order. The resolver
// backs the remote provider.
func Builtin(resolver port.AssetResolver) []port.IconProvider {
	return []port.IconProvider{
		NewShapesAdapter(),
		NewBrandsAdapter(),
		NewFeatherAdapter(),
		NewBootstrapAdapter(),
		NewSymbolsAdapter(),
		NewMDIAdapter(resolver),
	}
}

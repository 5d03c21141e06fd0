package config

import "time"

const (
	defaultPageSize      = 120
	defaultRenderSize    = 24
	defaultPalette       = "catppuccin"
	defaultTimeout       = 10 * time.Second
	defaultMemoryEntries = 512
	defaultBaseURL       = "https://api.iconify.design"
)

// DefaultPalettes ship with the default config.
func DefaultPalettes() map[string][]string {
	return map[string][]string{
		"mono":       {"currentColor"},
		"catppuccin": {"#cdd6f4", "#f38ba8", "#fab387", "#f9e2af", "#a6e3a1", "#89b4fa", "#cba6f7"},
		"gruvbox":    {"#ebdbb2", "#fb4934", "#fe8019", "#fabd2f", "#b8bb26", "#83a598", "#d3869b"},
		"nord":       {"#eceff4", "#bf616a", "#d08770", "#ebcb8b", "#a3be8c", "#81a1c1", "#b48ead"},
	}
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			PageSize:      defaultPageSize,
			SortAscending: true,
		},
		Render: RenderConfig{
			Size:    defaultRenderSize,
			Palette: defaultPalette,
		},
		Palettes: DefaultPalettes(),
		Assets: AssetsConfig{
			Timeout:       defaultTimeout,
			BaseURL:       defaultBaseURL,
			MemoryEntries: defaultMemoryEntries,
			CacheEnabled:  true,
		},
		Export: ExportConfig{Templates: map[string]string{}},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

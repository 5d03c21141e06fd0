package config

import "time"

// Config is the complete glyphs configuration.
type Config struct {
	Catalog  CatalogConfig `mapstructure:"catalog" toml:"catalog" json:"catalog"`
	Render   RenderConfig  `mapstructure:"render" toml:"render" json:"render"`
	// Palettes maps a palette name to its subcolors (hex or CSS color names).
	Palettes map[string][]string `mapstructure:"palettes" toml:"palettes" json:"palettes"`
	Assets   AssetsConfig        `mapstructure:"assets" toml:"assets" json:"assets"`
	Database DatabaseConfig      `mapstructure:"database" toml:"database" json:"database"`
	Export   ExportConfig        `mapstructure:"export" toml:"export" json:"export"`
	Logging  LoggingConfig       `mapstructure:"logging" toml:"logging" json:"logging"`
}

// CatalogConfig controls browsing.
type CatalogConfig struct {
	// PageSize is the number of icons per grid page.
	PageSize int `mapstructure:"page_size" toml:"page_size" json:"page_size" jsonschema:"minimum=1,maximum=2000,default=120"`
	// DefaultProvider is activated on start; empty picks the first provider.
	DefaultProvider string `mapstructure:"default_provider" toml:"default_provider" json:"default_provider"`
	SortAscending   bool   `mapstructure:"sort_ascending" toml:"sort_ascending" json:"sort_ascending" jsonschema:"default=true"`
}

// RenderConfig holds the initial render parameters.
type RenderConfig struct {
	Size     int    `mapstructure:"size" toml:"size" json:"size" jsonschema:"minimum=8,maximum=512,default=24"`
	Palette  string `mapstructure:"palette" toml:"palette" json:"palette"`
	Subcolor int    `mapstructure:"subcolor" toml:"subcolor" json:"subcolor" jsonschema:"minimum=0"`
}

// AssetsConfig tunes the async asset loader and the remote resolver.
type AssetsConfig struct {
	// Concurrency caps parallel resolutions; 0 resolves everything at once.
	Concurrency int `mapstructure:"concurrency" toml:"concurrency" json:"concurrency" jsonschema:"minimum=0"`
	// Timeout bounds a single resolution, e.g. "10s".
	Timeout time.Duration `mapstructure:"timeout" toml:"timeout" json:"timeout" jsonschema:"type=string"`
	BaseURL string        `mapstructure:"base_url" toml:"base_url" json:"base_url" jsonschema:"format=uri"`
	// MemoryEntries is the size of the in-memory asset tier.
	MemoryEntries int  `mapstructure:"memory_entries" toml:"memory_entries" json:"memory_entries" jsonschema:"minimum=1"`
	CacheEnabled  bool `mapstructure:"cache_enabled" toml:"cache_enabled" json:"cache_enabled"`
}

// DatabaseConfig locates the asset store.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// ExportConfig overrides snippet templates by kind name
// (component, path, css-class, unicode, async).
type ExportConfig struct {
	Templates map[string]string `mapstructure:"templates" toml:"templates" json:"templates"`
}

// LoggingConfig mirrors logging.Config plus the file switch.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	// File also writes logs to glyphs.log in the state directory.
	File bool `mapstructure:"file" toml:"file" json:"file"`
}

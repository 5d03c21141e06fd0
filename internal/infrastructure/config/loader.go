// Package config loads glyphs settings from TOML, environment and defaults,
// and reloads them when the file changes.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const envPrefix = "GLYPHS"

// Manager owns the viper instance and the last valid configuration.
type Manager struct {
	viper     *viper.Viper
	dir       string
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
	watching  bool
	// ctx carries the logger for reload messages.
	ctx context.Context
}

// NewManager creates a manager reading from the XDG config directory.
func NewManager() (*Manager, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerIn(dir)
}

// NewManagerIn creates a manager reading config.toml from dir.
func NewManagerIn(dir string) (*Manager, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names for the variables people actually type.
	for key, env := range map[string]string{
		"logging.level":  "GLYPHS_LOG_LEVEL",
		"logging.format": "GLYPHS_LOG_FORMAT",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	return &Manager{viper: v, dir: dir, ctx: context.Background()}, nil
}

// Load reads the file (writing a default one on first run), merges the
// environment and validates the result.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	applyDefaults(m.viper)
	if err := m.readConfigFile(); err != nil {
		return err
	}
	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.ConfigFile(), err)
	}
	if err := m.createDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create default config at %s: %w", m.dir, err)
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read newly created config file: %w", err)
	}
	return nil
}

// decode unmarshals and validates the current viper state.
func (m *Manager) decode() (*Config, error) {
	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %s: %w", m.ConfigFile(), err)
	}
	if cfg.Database.Path == "" {
		path, err := GetDatabaseFile()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
		cfg.Database.Path = path
	}
	normalizeConfig(cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func normalizeConfig(cfg *Config) {
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	cfg.Assets.BaseURL = strings.TrimRight(cfg.Assets.BaseURL, "/")
	if cfg.Palettes == nil {
		cfg.Palettes = map[string][]string{}
	}
	if cfg.Export.Templates == nil {
		cfg.Export.Templates = map[string]string{}
	}
}

// Get returns the loaded configuration, or the defaults before Load.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return DefaultConfig()
	}
	return m.config
}

// ConfigFile returns the path of the file in use.
func (m *Manager) ConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.dir, configFile)
}

// SchemaFile returns where the JSON schema is written.
func (m *Manager) SchemaFile() string {
	return filepath.Join(m.dir, schemaFile)
}

// SaveRenderSelection persists the palette and subcolor picked in the browser.
// Only keys already in the file are rewritten, so environment overrides and
// defaults never leak into it.
func (m *Manager) SaveRenderSelection(palette string, subcolor int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	file := viper.New()
	file.SetConfigFile(m.ConfigFile())
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	file.Set("render.palette", palette)
	file.Set("render.subcolor", subcolor)
	if err := os.MkdirAll(m.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	if err := file.WriteConfigAs(m.ConfigFile()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if m.config != nil {
		updated := *m.config
		updated.Render.Palette = palette
		updated.Render.Subcolor = subcolor
		m.config = &updated
	}
	return nil
}

func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(m.dir, dirPerm); err != nil {
		return err
	}
	// A bare instance: AutomaticEnv on m.viper would write environment values.
	defaults := viper.New()
	applyDefaults(defaults)
	if err := defaults.SafeWriteConfigAs(filepath.Join(m.dir, configFile)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	// The schema only helps editors; failing to write it is not fatal.
	_ = WriteSchemaFile(m.SchemaFile())
	return nil
}

func applyDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("catalog.page_size", d.Catalog.PageSize)
	v.SetDefault("catalog.default_provider", d.Catalog.DefaultProvider)
	v.SetDefault("catalog.sort_ascending", d.Catalog.SortAscending)

	v.SetDefault("render.size", d.Render.Size)
	v.SetDefault("render.palette", d.Render.Palette)
	v.SetDefault("render.subcolor", d.Render.Subcolor)

	v.SetDefault("palettes", d.Palettes)

	v.SetDefault("assets.concurrency", d.Assets.Concurrency)
	v.SetDefault("assets.timeout", d.Assets.Timeout.String())
	v.SetDefault("assets.base_url", d.Assets.BaseURL)
	v.SetDefault("assets.memory_entries", d.Assets.MemoryEntries)
	v.SetDefault("assets.cache_enabled", d.Assets.CacheEnabled)

	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("export.templates", d.Export.Templates)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
}

// Package cli wires the icon catalog into the command line and the TUI.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/glyphs/internal/application/port"
	"github.com/bnema/glyphs/internal/application/usecase"
	"github.com/bnema/glyphs/internal/cli/styles"
	"github.com/bnema/glyphs/internal/domain/entity"
	"github.com/bnema/glyphs/internal/infrastructure/assets"
	"github.com/bnema/glyphs/internal/infrastructure/cache"
	"github.com/bnema/glyphs/internal/infrastructure/clipboard"
	"github.com/bnema/glyphs/internal/infrastructure/config"
	"github.com/bnema/glyphs/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/glyphs/internal/infrastructure/provider"
	"github.com/bnema/glyphs/internal/logging"
	"github.com/bnema/glyphs/internal/render"
)

// memoryBudget bounds the summed size of assets held in memory.
const memoryBudget = 16 << 20

// Options select how the App is built for a command.
type Options struct {
	// Interactive commands own the terminal, so logs never go to stderr.
	Interactive bool
}

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme

	Providers *provider.Registry
	Catalog   *usecase.BrowseCatalogUseCase
	Selection *usecase.ManageSelectionUseCase
	Renderer  *render.Dispatcher
	Clipboard port.Clipboard

	// Store is nil when assets.cache_enabled is false.
	Store  *sqlite.AssetStore
	Memory *cache.LRU[string, entity.Asset]

	resolver   *assets.Resolver
	db         *sqlite.LazyDB
	ctx        context.Context
	logCleanup func()
}

// NewApp creates a new CLI application with all dependencies.
func NewApp(opts Options) (*App, error) {
	mgr, cfg := loadConfig()

	logger, logCleanup := newLogger(cfg, opts.Interactive)
	ctx := logging.WithContext(context.Background(), logger)

	memory := cache.NewLRU[string, entity.Asset](cfg.Assets.MemoryEntries,
		cache.WithMaxWeight(memoryBudget, func(a entity.Asset) int64 { return int64(len(a.Data)) }),
	)

	var (
		db        *sqlite.LazyDB
		store     *sqlite.AssetStore
		storePort port.AssetStore
	)
	if cfg.Assets.CacheEnabled {
		db = sqlite.NewLazyDB(cfg.Database.Path)
		store = sqlite.NewAssetStore(db)
		storePort = store
	}

	fetcher := assets.NewFetcher(cfg.Assets.BaseURL, cfg.Assets.Timeout)
	resolver := assets.NewResolver(fetcher, memory, storePort)

	registry, err := provider.NewRegistry(provider.Builtin(resolver)...)
	if err != nil {
		logCleanup()
		return nil, fmt.Errorf("register providers: %w", err)
	}

	loader := usecase.NewAssetLoader(cfg.Assets.Concurrency, cfg.Assets.Timeout)
	catalog := usecase.NewBrowseCatalogUseCase(registry, loader, cfg.Catalog.PageSize)
	catalog.SetSortAscending(cfg.Catalog.SortAscending)

	selection, err := usecase.NewManageSelectionUseCase(cfg.SnippetTemplates())
	if err != nil {
		logCleanup()
		return nil, fmt.Errorf("snippet templates: %w", err)
	}

	logger.Debug().
		Int("providers", len(registry.List())).
		Bool("asset_cache", cfg.Assets.CacheEnabled).
		Msg("app initialized")

	return &App{
		Config:        cfg,
		ConfigManager: mgr,
		Theme:         styles.NewTheme(cfg),
		Providers:     registry,
		Catalog:       catalog,
		Selection:     selection,
		Renderer:      render.NewDispatcher(catalog),
		Clipboard:     clipboard.New(),
		Store:         store,
		Memory:        memory,
		resolver:      resolver,
		db:            db,
		ctx:           ctx,
		logCleanup:    logCleanup,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.Catalog != nil {
		a.Catalog.Close()
	}
	// Detached lookups may still write to the store.
	if a.resolver != nil {
		a.resolver.Close()
	}
	var err error
	if a.db != nil {
		err = a.db.Close()
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// DatabasePath returns where the asset store lives, empty when disabled.
func (a *App) DatabasePath() string {
	if a.db == nil {
		return ""
	}
	return a.db.Path()
}

// ColorSelection returns the configured palette and subcolor.
func (a *App) ColorSelection() entity.ColorSelection {
	return entity.ColorSelection{
		Palette:  a.Config.Palette(a.Config.Render.Palette),
		Subcolor: a.Config.Render.Subcolor,
	}
}

// loadConfig loads configuration from standard locations, falling back to
// defaults when the file is missing or invalid.
func loadConfig() (*config.Manager, *config.Config) {
	mgr, err := config.NewManager()
	if err != nil {
		logger := logging.NewFromEnv()
		logger.Warn().Err(err).Msg("using default config")
		return nil, defaultConfig()
	}
	if err := mgr.Load(); err != nil {
		logger := logging.NewFromEnv()
		logger.Warn().Err(err).Msg("using default config")
		return mgr, defaultConfig()
	}
	return mgr, mgr.Get()
}

func defaultConfig() *config.Config {
	cfg := config.DefaultConfig()
	if path, err := config.GetDatabaseFile(); err == nil {
		cfg.Database.Path = path
	}
	return cfg
}

// newLogger logs to the state directory when logging.file is set. Otherwise
// non-interactive commands log to stderr and the TUI discards logs.
func newLogger(cfg *config.Config, interactive bool) (zerolog.Logger, func()) {
	logCfg := logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	}

	if cfg.Logging.File {
		if dir, err := config.GetStateDir(); err == nil {
			logger, cleanup, err := logging.NewWithFile(logCfg, dir)
			if err == nil {
				return logger, cleanup
			}
		}
	}

	var w io.Writer = os.Stderr
	if interactive {
		w = io.Discard
	}
	return logging.NewWithWriter(logCfg, w), func() {}
}

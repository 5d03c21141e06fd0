package config

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/glyphs/internal/logging"
)

// Watch reloads the configuration when the file changes on disk. An invalid
// edit keeps the previous configuration. Reload messages go to the logger in
// ctx, so a running TUI is never drawn over.
func (m *Manager) Watch(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watching {
		return
	}
	m.ctx = ctx

	m.viper.OnConfigChange(m.handleChange)
	m.viper.WatchConfig()
	m.watching = true
}

// OnConfigChange registers a callback run after each successful reload.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) handleChange(e fsnotify.Event) {
	m.mu.RLock()
	log := logging.FromContext(m.ctx)
	m.mu.RUnlock()
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}
	log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config change detected")

	m.mu.Lock()
	cfg, err := m.decode()
	if err != nil {
		m.mu.Unlock()
		log.Warn().Err(err).Msg("ignoring invalid config change")
		return
	}
	m.config = cfg
	callbacks := append([]func(*Config){}, m.callbacks...)
	m.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

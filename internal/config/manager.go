package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/dshills/pulse/internal/event"
)

// Manager owns the current configuration and multicasts changes to
// connected receivers.
//
// The emitter graph is single-goroutine, so the fsnotify watcher never
// emits directly: change notifications arrive on the channel returned by
// Watch, and the goroutine that owns the graph calls Reload.
type Manager struct {
	event.Emitter[Events]

	path    string
	log     zerolog.Logger
	current Config
}

// NewManager creates a manager for the config file at path. The current
// configuration is the default until Load is called.
func NewManager(path string, log zerolog.Logger) *Manager {
	return &Manager{
		path:    path,
		log:     log.With().Str("component", "config").Logger(),
		current: Default(),
	}
}

// Current returns the most recently loaded configuration.
func (m *Manager) Current() Config {
	return m.current
}

// Load reads the configuration file and emits the change to connected
// receivers. On error the previous configuration stays in effect.
func (m *Manager) Load() (Config, error) {
	cfg, err := Load(m.path)
	if err != nil {
		return m.current, err
	}
	m.apply(cfg)
	return cfg, nil
}

// Reload is Load with logging instead of error propagation, meant to be
// called from the owner's loop on watcher notifications.
func (m *Manager) Reload() {
	cfg, err := Load(m.path)
	if err != nil {
		m.log.Warn().Err(err).Str("path", m.path).Msg("config reload failed, keeping previous")
		return
	}
	if cfg == m.current {
		return
	}
	m.log.Info().Str("path", m.path).Msg("config reloaded")
	m.apply(cfg)
}

func (m *Manager) apply(cfg Config) {
	m.current = cfg
	m.Emit(func(cb Events) { cb.OnConfigChanged(cfg) })
}

// Watch starts watching the config file for changes until the context is
// cancelled. Each change produces a (coalesced) notification on the
// returned channel; the channel is closed when watching stops.
func (m *Manager) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors and deploy tools replace
	// config files by rename, which drops a watch on the file itself.
	dir := filepath.Dir(m.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	changes := make(chan struct{}, 1)
	target := filepath.Clean(m.path)

	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
					// A notification is already pending; reload is
					// idempotent, so coalescing is safe.
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				m.log.Warn().Err(err).Msg("config watcher error")
			}
		}
	}()

	m.log.Debug().Str("dir", dir).Str("file", target).Msg("watching config for changes")
	return changes, nil
}

package audio

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/jmylchreest/toaststack/internal/config"
	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/toast"
)

// Backend plays sound files. Player is the production implementation.
type Backend interface {
	Invalidator
	Play(path string) error
	Preload(path string) error
	SetVolume(volume float64)
	Close()
}

// Chimes plays the configured sound whenever a toast is admitted to the
// stack. It implements toast.Observer.
type Chimes struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	backend Backend
	watcher *Watcher
	cfg     config.SoundsConfig
}

// NewChimes creates Chimes for cfg. A nil backend uses a new Player.
func NewChimes(cfg config.SoundsConfig, backend Backend, logger *slog.Logger) *Chimes {
	if logger == nil {
		logger = slog.Default()
	}
	if backend == nil {
		backend = NewPlayer(logger)
	}
	c := &Chimes{
		logger:  logger,
		backend: backend,
		watcher: NewWatcher(backend, logger),
	}
	c.configure(cfg)
	return c
}

func (c *Chimes) configure(cfg config.SoundsConfig) {
	c.mu.Lock()
	old := c.cfg
	c.cfg = cfg
	c.mu.Unlock()

	c.backend.SetVolume(float64(cfg.Volume) / 100)

	for _, p := range soundPaths(old) {
		c.watcher.Unwatch(p)
	}
	if !cfg.Enabled {
		return
	}
	for _, p := range soundPaths(cfg) {
		if _, err := os.Stat(p); err != nil {
			c.logger.Warn("sound file not found", "path", p)
		}
		c.watcher.Watch(p)
	}
}

// soundPaths returns the distinct expanded sound files of cfg.
func soundPaths(cfg config.SoundsConfig) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range append([]model.Preset{0}, model.Presets()...) {
		path := cfg.SoundFor(p)
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		out = append(out, path)
	}
	return out
}

// Start preloads the sounds and starts watching them for changes.
func (c *Chimes) Start(ctx context.Context) error {
	c.mu.RLock()
	cfg := c.cfg
	c.mu.RUnlock()

	if cfg.Enabled {
		for _, p := range soundPaths(cfg) {
			if err := c.backend.Preload(p); err != nil {
				c.logger.Warn("failed to preload sound", "path", p, "error", err)
			}
		}
	}

	if err := c.watcher.Start(ctx); err != nil {
		return err
	}
	c.logger.Info("chimes started", "enabled", cfg.Enabled, "sounds", len(c.watcher.Watched()))
	return nil
}

// Stop stops the watcher and releases the backend.
func (c *Chimes) Stop() {
	c.watcher.Stop()
	c.backend.Close()
	c.logger.Debug("chimes stopped")
}

// UpdateConfig swaps in a new [sounds] section. This is called when the
// config file is hot-reloaded.
func (c *Chimes) UpdateConfig(cfg config.SoundsConfig) {
	c.configure(cfg)
	c.logger.Debug("chimes config updated", "enabled", cfg.Enabled)
}

// ToastEvent implements toast.Observer.
func (c *Chimes) ToastEvent(e toast.Event, t *toast.Toast) {
	if e != toast.EventShown || t == nil {
		return
	}

	c.mu.RLock()
	cfg := c.cfg
	c.mu.RUnlock()
	if !cfg.Enabled {
		return
	}

	path := cfg.SoundFor(t.Style().Preset)
	if path == "" {
		return
	}
	if err := c.backend.Play(path); err != nil {
		c.logger.Warn("failed to play sound", "toast_id", t.ID(), "path", path, "error", err)
	}
}

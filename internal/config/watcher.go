package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last write before
// reloading. Editors often save in several steps.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads the config file when it changes on disk. Only files that
// parse and validate are handed to the reload callback; anything else goes
// to the error callback and the previous config stays current.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	path     string
	debounce time.Duration
	current  *Config

	onReloadCallback func(cfg *Config)
	onErrorCallback  func(err error)

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}

	running bool
}

// NewWatcher creates a Watcher for path, or for DefaultPath if path is empty.
func NewWatcher(path string, logger *slog.Logger) *Watcher {
	if path == "" {
		path = DefaultPath()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger:   logger,
		path:     path,
		debounce: DefaultDebounce,
	}
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// SetDebounce sets the quiet period before a reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// SetReloadCallback sets the callback to invoke when config is successfully reloaded.
func (w *Watcher) SetReloadCallback(callback func(cfg *Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReloadCallback = callback
}

// SetErrorCallback sets the callback to invoke when a reload fails.
func (w *Watcher) SetErrorCallback(callback func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onErrorCallback = callback
}

// Current returns the last config that loaded successfully.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Start begins watching. The directory holding the file is watched so that
// atomic saves (write temp, rename) are seen.
func (w *Watcher) Start(ctx context.Context, initial *Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return err
	}

	w.watcher = fw
	w.current = initial
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	go w.watchLoop(ctx, fw, w.stopCh, w.doneCh)

	w.logger.Debug("config watcher started", "path", w.path)
	return nil
}

// Stop stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	done := w.doneCh
	fw := w.watcher
	w.mu.Unlock()

	<-done
	_ = fw.Close()
	w.logger.Debug("config watcher stopped")
}

func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	filename := filepath.Base(w.path)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			// Only care about our file
			if filepath.Base(event.Name) != filename {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.mu.RLock()
			debounce := w.debounce
			w.mu.RUnlock()

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)

	w.mu.Lock()
	if err == nil {
		w.current = cfg
	}
	onReload := w.onReloadCallback
	onError := w.onErrorCallback
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("config reload failed, keeping previous config", "path", w.path, "error", err)
		if onError != nil {
			onError(err)
		}
		return
	}

	w.logger.Info("config reloaded", "path", w.path)
	if onReload != nil {
		onReload(cfg)
	}
}

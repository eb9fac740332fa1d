package theme

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last change to a
// theme file before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a user theme when the theme file or any file it imports
// changes, and hands the new theme to a callback if its CSS differs.
// Bundled themes are not watched.
type Watcher struct {
	mu     sync.Mutex
	logger *slog.Logger

	name     string
	path     string
	css      string
	files    map[string]bool
	debounce time.Duration
	onChange func(t *Theme)

	fw      *fsnotify.Watcher
	dirs    map[string]bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a Watcher for t.
func NewWatcher(t *Theme, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{
		logger:   logger,
		name:     t.Name,
		path:     t.Path,
		css:      t.CSS,
		debounce: DefaultDebounce,
	}
	w.files = sourceSet(t.Sources)
	return w
}

func sourceSet(sources []string) map[string]bool {
	set := make(map[string]bool, len(sources))
	for _, s := range sources {
		set[filepath.Clean(s)] = true
	}
	return set
}

// SetDebounce sets the quiet period before a reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// SetChangeCallback sets the function called from the watch goroutine with
// each reloaded theme.
func (w *Watcher) SetChangeCallback(callback func(t *Theme)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// Start begins watching the directories holding the theme's files.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if w.path == "" {
		w.logger.Debug("not watching bundled theme", "name", w.name)
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fw = fw
	w.dirs = make(map[string]bool)
	for file := range w.files {
		if err := w.watchDir(filepath.Dir(file)); err != nil {
			_ = fw.Close()
			return err
		}
	}

	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	go w.watchLoop(ctx, fw, w.stopCh, w.doneCh)

	w.logger.Debug("theme watcher started", "name", w.name, "files", len(w.files))
	return nil
}

// watchDir must be called with mu held.
func (w *Watcher) watchDir(dir string) error {
	if w.dirs[dir] {
		return nil
	}
	if err := w.fw.Add(dir); err != nil {
		return err
	}
	w.dirs[dir] = true
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
	fw := w.fw
	w.mu.Unlock()

	<-done
	_ = fw.Close()
	w.logger.Debug("theme watcher stopped", "name", w.name)
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.mu.Lock()
			relevant := w.files[filepath.Clean(event.Name)]
			debounce := w.debounce
			w.mu.Unlock()
			if !relevant {
				continue
			}

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
			w.logger.Warn("theme watcher error", "error", err)

		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	t, err := Load(w.name, w.path)
	if err != nil {
		w.logger.Warn("failed to reload theme, keeping previous", "name", w.name, "error", err)
		return
	}

	w.mu.Lock()
	if t.CSS == w.css {
		w.mu.Unlock()
		return
	}
	w.css = t.CSS
	w.files = sourceSet(t.Sources)
	for file := range w.files {
		if err := w.watchDir(filepath.Dir(file)); err != nil {
			w.logger.Warn("failed to watch imported theme file", "path", file, "error", err)
		}
	}
	callback := w.onChange
	w.mu.Unlock()

	w.logger.Info("theme changed", "name", w.name, "path", w.path)
	if callback != nil {
		callback(t)
	}
}

package audio

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Invalidator drops a decoded sound so it is reloaded on next use.
type Invalidator interface {
	InvalidateCache(path string)
}

// Watcher invalidates cached sounds when their files change on disk.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger
	cache  Invalidator

	paths map[string]struct{} // watched files
	dirs  map[string]int      // watched directories, by number of files in them

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}

	running bool
}

// NewWatcher creates a sound file watcher that invalidates entries in cache.
func NewWatcher(cache Invalidator, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger: logger,
		cache:  cache,
		paths:  make(map[string]struct{}),
		dirs:   make(map[string]int),
	}
}

// Watch adds path to the watch list. The file does not need to exist yet.
func (w *Watcher) Watch(path string) {
	if path == "" {
		return
	}
	path = filepath.Clean(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.paths[path]; ok {
		return
	}
	w.paths[path] = struct{}{}

	dir := filepath.Dir(path)
	w.dirs[dir]++
	if w.dirs[dir] == 1 && w.running {
		w.addDir(dir)
	}
}

// Unwatch removes path from the watch list.
func (w *Watcher) Unwatch(path string) {
	path = filepath.Clean(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.paths[path]; !ok {
		return
	}
	delete(w.paths, path)

	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] > 0 {
		return
	}
	delete(w.dirs, dir)
	if w.running {
		_ = w.watcher.Remove(dir)
	}
}

// Watched returns the watched files.
func (w *Watcher) Watched() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(w.paths))
	for p := range w.paths {
		out = append(out, p)
	}
	return out
}

// Start begins watching sound files for changes.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = fw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	for dir := range w.dirs {
		w.addDir(dir)
	}

	go w.watchLoop(ctx, fw, w.stopCh, w.doneCh)

	w.logger.Debug("audio watcher started", "files", len(w.paths))
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
	w.logger.Debug("audio watcher stopped")
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// addDir must be called with mu held.
func (w *Watcher) addDir(dir string) {
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Warn("failed to watch sound directory", "dir", dir, "error", err)
	}
}

func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			path := filepath.Clean(event.Name)
			w.mu.RLock()
			_, watched := w.paths[path]
			w.mu.RUnlock()
			if !watched {
				continue
			}

			w.logger.Debug("sound file changed, invalidating cache", "path", path, "op", event.Op.String())
			if w.cache != nil {
				w.cache.InvalidateCache(path)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("audio watcher error", "error", err)
		}
	}
}

package theme

import (
	"context"
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toaststack/internal/toast"
)

// Loader owns the two CSS providers of a display: the theme stylesheet and,
// above it, the rules generated from each open toast's style.
// All methods except StopHotReload must be called on the GTK main thread.
type Loader struct {
	mu       sync.Mutex
	logger   *slog.Logger
	provider *gtk.CSSProvider
	styles   *gtk.CSSProvider
	theme    *Theme
	watcher  *Watcher
	display  *gdk.Display

	toasts map[string]toast.Style
}

// NewLoader creates a new theme loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	return &Loader{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
		styles:   gtk.NewCSSProvider(),
		toasts:   make(map[string]toast.Style),
	}
}

// LoadTheme loads the theme called name, see Resolve. The bundled default
// is loaded instead when the name is unknown or its file cannot be read;
// the read error is returned.
func (l *Loader) LoadTheme(name string) error {
	t, found, err := Resolve(name)
	if err != nil {
		t = Default()
	} else if !found {
		l.logger.Warn("theme not found, using default", "theme", name)
	}

	l.mu.Lock()
	l.theme = t
	l.mu.Unlock()

	l.provider.LoadFromString(t.CSS)
	l.logger.Info("loaded theme", "name", t.Name, "path", t.Path, "files", len(t.Sources))
	return err
}

// Apply installs both providers on a display.
// This should be called after the GTK application is initialized.
func (l *Loader) Apply(display *gdk.Display) {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	l.display = display
	gtk.StyleContextAddProviderForDisplay(display, l.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	gtk.StyleContextAddProviderForDisplay(display, l.styles, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION+1)
	l.logger.Debug("applied theme to display", "name", l.CurrentTheme())
}

// SetToastStyle adds or replaces the rules for the toast with the given class.
func (l *Loader) SetToastStyle(class string, s toast.Style) {
	l.toasts[class] = s
	l.styles.LoadFromString(Stylesheet(l.toasts))
}

// RemoveToastStyle drops the rules of a closed toast.
func (l *Loader) RemoveToastStyle(class string) {
	if _, ok := l.toasts[class]; !ok {
		return
	}
	delete(l.toasts, class)
	l.styles.LoadFromString(Stylesheet(l.toasts))
}

// StartHotReload starts watching the current theme for changes.
// Changes are applied on the GTK main thread.
func (l *Loader) StartHotReload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.theme == nil || l.theme.Bundled() {
		l.logger.Debug("not starting hot-reload for bundled theme")
		return
	}

	if l.watcher != nil {
		l.watcher.Stop()
	}

	l.watcher = NewWatcher(l.theme, l.logger)
	l.watcher.SetChangeCallback(func(t *Theme) {
		glib.IdleAdd(func() {
			l.mu.Lock()
			l.theme = t
			l.mu.Unlock()
			l.provider.LoadFromString(t.CSS)
			l.logger.Info("hot-reloaded theme", "name", t.Name)
		})
	})

	if err := l.watcher.Start(ctx); err != nil {
		l.logger.Warn("failed to start theme watcher", "error", err)
	}
}

// StopHotReload stops watching the theme for changes.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	w := l.watcher
	l.watcher = nil
	l.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// CurrentTheme returns the name of the currently loaded theme.
func (l *Loader) CurrentTheme() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.theme == nil {
		return ""
	}
	return l.theme.Name
}

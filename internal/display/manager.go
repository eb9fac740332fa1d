package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toaststack/internal/theme"
	"github.com/jmylchreest/toaststack/internal/toast"
)

// DefaultNamespace is the layer-shell namespace used when none is set.
const DefaultNamespace = "toaststack"

// Manager creates popup surfaces for a Registry and tracks the open ones.
type Manager struct {
	app       *gtk.Application
	monitors  *MonitorProvider
	loader    *theme.Loader
	logger    *slog.Logger
	namespace string

	popups map[*PopupSurface]struct{}
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithApplication ties popup windows to app so that they keep it alive.
func WithApplication(app *gtk.Application) ManagerOption {
	return func(m *Manager) { m.app = app }
}

// WithThemeLoader installs per-toast CSS through loader.
func WithThemeLoader(loader *theme.Loader) ManagerOption {
	return func(m *Manager) { m.loader = loader }
}

// WithNamespace sets the layer-shell namespace of popup windows.
func WithNamespace(ns string) ManagerOption {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a manager placing popups on the monitors of monitors.
func NewManager(monitors *MonitorProvider, opts ...ManagerOption) *Manager {
	m := &Manager{
		monitors:  monitors,
		logger:    slog.Default(),
		namespace: DefaultNamespace,
		popups:    make(map[*PopupSurface]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewSurface implements toast.SurfaceFactory.
func (m *Manager) NewSurface(t *toast.Toast) toast.Surface {
	p := newPopupSurface(m, t)
	m.popups[p] = struct{}{}
	m.logger.Debug("created popup", "toast_id", t.ID(), "open", len(m.popups))
	return p
}

// Count returns the number of open popups.
func (m *Manager) Count() int {
	return len(m.popups)
}

// CloseAll hides every toast that still has a popup.
func (m *Manager) CloseAll() {
	for p := range m.popups {
		p.toast.Hide()
	}
}

func (m *Manager) forget(p *PopupSurface) {
	delete(m.popups, p)
	if m.loader != nil {
		m.loader.RemoveToastStyle(p.class)
	}
	m.logger.Debug("closed popup", "toast_id", p.toast.ID(), "open", len(m.popups))
}

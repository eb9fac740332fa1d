package display

import (
	"log/slog"
	"strconv"
	"unsafe"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/screen"
)

// MonitorProvider is a screen.Provider over the monitors of a GDK display.
// Region names are monitor connectors such as "DP-1".
type MonitorProvider struct {
	display *gdk.Display
	logger  *slog.Logger
}

// NewMonitorProvider creates a provider for the default display.
func NewMonitorProvider(logger *slog.Logger) (*MonitorProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	display := gdk.DisplayGetDefault()
	if display == nil {
		return nil, &DisplayError{Message: "no display available"}
	}
	return &MonitorProvider{display: display, logger: logger}, nil
}

// Primary returns the first monitor. GTK4 has no notion of a primary
// monitor, and compositors list the preferred output first.
func (p *MonitorProvider) Primary() screen.Region {
	regions := p.Regions()
	if len(regions) == 0 {
		return screen.Region{}
	}
	return regions[0]
}

// Regions implements screen.Provider.
func (p *MonitorProvider) Regions() []screen.Region {
	monitors := p.monitors()
	regions := make([]screen.Region, 0, len(monitors))
	for i, m := range monitors {
		regions = append(regions, screen.Region{
			Name:    monitorName(m, i),
			Bounds:  monitorBounds(m),
			Primary: i == 0,
		})
	}
	return regions
}

// Monitor returns the monitor backing the region with the given name.
func (p *MonitorProvider) Monitor(name string) *gdk.Monitor {
	for i, m := range p.monitors() {
		if monitorName(m, i) == name {
			return m
		}
	}
	return nil
}

// RegionAt returns the region containing pt, or the primary region.
func (p *MonitorProvider) RegionAt(pt model.Point) screen.Region {
	for _, r := range p.Regions() {
		if r.Bounds.Contains(pt) {
			return r
		}
	}
	return p.Primary()
}

// HandleMonitorChange should be called when monitors change.
// It updates the display reference and logs the change.
func (p *MonitorProvider) HandleMonitorChange() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		p.logger.Warn("no display available after monitor change")
		return
	}
	p.display = display
	p.logger.Info("monitor configuration changed", "count", len(p.monitors()))
}

func (p *MonitorProvider) monitors() []*gdk.Monitor {
	if p.display == nil {
		return nil
	}
	list := p.display.Monitors()
	if list == nil {
		p.logger.Warn("no monitors list available")
		return nil
	}

	out := make([]*gdk.Monitor, 0, list.NItems())
	for i := uint(0); i < list.NItems(); i++ {
		if m := wrapMonitor(list.Item(i)); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func monitorName(m *gdk.Monitor, index int) string {
	if name := m.Connector(); name != "" {
		return name
	}
	return "monitor-" + strconv.Itoa(index)
}

func monitorBounds(m *gdk.Monitor) model.Rect {
	g := m.Geometry()
	return model.Rect{X: g.X(), Y: g.Y(), Width: g.Width(), Height: g.Height()}
}

// wrapMonitor wraps a coreglib.Object as a gdk.Monitor.
// This is necessary because gotk4 doesn't expose the wrapMonitor function.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	// The gdk.Monitor struct embeds a *coreglib.Object, so we can create
	// one by casting the native pointer. This is how gotk4 does it internally.
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}

// place puts window at the global point pt. Layer-shell surfaces cannot be
// positioned directly, so the window is anchored to the top left corner of
// the monitor holding pt and pushed into place with margins.
func (p *MonitorProvider) place(window *gtk.Window, pt model.Point) {
	region := p.RegionAt(pt)
	if m := p.Monitor(region.Name); m != nil {
		layershell.SetMonitor(window, m)
	}

	layershell.SetAnchor(window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(window, layershell.LayerShellEdgeLeft, true)
	layershell.SetAnchor(window, layershell.LayerShellEdgeBottom, false)
	layershell.SetAnchor(window, layershell.LayerShellEdgeRight, false)
	layershell.SetMargin(window, layershell.LayerShellEdgeLeft, pt.X-region.Bounds.X)
	layershell.SetMargin(window, layershell.LayerShellEdgeTop, pt.Y-region.Bounds.Y)
}

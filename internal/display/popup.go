package display

import (
	"bytes"
	"image"
	"log/slog"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"
	"github.com/disintegration/imaging"

	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/stack"
	"github.com/jmylchreest/toaststack/internal/theme"
	"github.com/jmylchreest/toaststack/internal/toast"
)

// PopupSurface is a toast.Surface backed by a layer-shell window.
type PopupSurface struct {
	manager *Manager
	toast   *toast.Toast
	class   string
	logger  *slog.Logger

	window *gtk.Window
	root   *gtk.Fixed

	// Widgets, rebuilt by Render
	content  *gtk.Fixed
	bar      *gtk.Box
	barRect  model.Rect
	hasFrame bool

	pos    model.Point
	closed bool
}

func newPopupSurface(m *Manager, t *toast.Toast) *PopupSurface {
	p := &PopupSurface{
		manager: m,
		toast:   t,
		class:   theme.ClassName(t.ID()),
		logger:  m.logger.With("toast_id", t.ID()),
	}

	// Create the window
	p.window = gtk.NewWindow()
	if m.app != nil {
		p.window.SetApplication(m.app)
	}
	p.window.SetDecorated(false)
	p.window.SetResizable(false)
	p.window.AddCSSClass("toast-window")

	// Initialize layer-shell
	layershell.InitForWindow(p.window)
	layershell.SetLayer(p.window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(p.window, 0) // Don't reserve space
	layershell.SetKeyboardMode(p.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(p.window, m.namespace)

	p.root = gtk.NewFixed()
	p.window.SetChild(p.root)

	p.connectSignals()
	return p
}

// connectSignals forwards pointer events to the toast.
func (p *PopupSurface) connectSignals() {
	motionCtrl := gtk.NewEventControllerMotion()
	motionCtrl.ConnectEnter(func(x, y float64) {
		p.toast.HoverEnter()
	})
	motionCtrl.ConnectLeave(func() {
		p.toast.HoverLeave()
	})
	p.window.AddController(motionCtrl)
}

// Render implements toast.Surface.
func (p *PopupSurface) Render(frame toast.Frame) {
	if p.closed {
		return
	}
	l := frame.Layout
	st := frame.Style

	p.window.SetDefaultSize(l.Total.Width, l.Total.Height)
	p.window.SetSizeRequest(l.Total.Width, l.Total.Height)
	p.root.SetSizeRequest(l.Total.Width, l.Total.Height)

	if p.content != nil {
		p.root.Remove(p.content)
	}
	p.content = gtk.NewFixed()
	p.content.AddCSSClass(theme.ClassToast)
	p.content.AddCSSClass(p.class)
	if st.StayOnTop {
		p.content.AddCSSClass(theme.ClassStayOnTop)
	}
	p.content.SetSizeRequest(l.Size.Width, l.Size.Height)
	p.root.Put(p.content, stack.DropShadowSize, stack.DropShadowSize)

	if st.ShowIcon && frame.Icon != nil && !l.Icon.Empty() {
		p.putImage(frame.Icon, l.Icon, "toast-icon")
	}
	if !l.IconSeparator.Empty() {
		sep := gtk.NewBox(gtk.OrientationVertical, 0)
		sep.AddCSSClass(theme.ClassIconSeparator)
		p.put(sep, l.IconSeparator)
	}

	p.putLabel(st.Title, l.Title, l.WrapTitle, theme.ClassTitle)
	p.putLabel(st.Text, l.Text, l.WrapText, theme.ClassText)

	if st.ShowCloseButton && !l.CloseButton.Empty() {
		btn := gtk.NewButton()
		btn.AddCSSClass(theme.ClassClose)
		if frame.CloseIcon != nil {
			if img := p.image(frame.CloseIcon); img != nil {
				btn.SetChild(img)
			}
		}
		btn.ConnectClicked(func() {
			p.toast.Hide()
		})
		p.put(btn, l.CloseButton)
	}

	p.bar = nil
	p.barRect = l.DurationBar
	if st.ShowDurationBar && !l.DurationBar.Empty() {
		track := gtk.NewBox(gtk.OrientationHorizontal, 0)
		track.AddCSSClass(theme.ClassDurationTrack)
		p.put(track, l.DurationBar)

		p.bar = gtk.NewBox(gtk.OrientationHorizontal, 0)
		p.bar.AddCSSClass(theme.ClassDurationBar)
		p.put(p.bar, l.DurationBar)
	}

	if p.manager.loader != nil {
		p.manager.loader.SetToastStyle(p.class, st)
	}
	p.hasFrame = true
}

// put places w over rect, which is relative to the content area.
func (p *PopupSurface) put(w gtk.Widgetter, rect model.Rect) {
	gtk.BaseWidget(w).SetSizeRequest(rect.Width, rect.Height)
	p.content.Put(w, float64(rect.X), float64(rect.Y))
}

func (p *PopupSurface) putLabel(text string, rect model.Rect, wrap bool, class string) {
	if text == "" || rect.Empty() {
		return
	}
	lbl := gtk.NewLabel(text)
	lbl.AddCSSClass(class)
	lbl.SetXAlign(0)
	lbl.SetYAlign(0)
	lbl.SetWrap(wrap)
	lbl.SetWrapMode(pango.WrapWord)
	p.put(lbl, rect)
}

func (p *PopupSurface) putImage(img image.Image, rect model.Rect, class string) {
	w := p.image(img)
	if w == nil {
		return
	}
	w.AddCSSClass(class)
	p.put(w, rect)
}

// image converts a rendered icon into a GTK image widget.
func (p *PopupSurface) image(img image.Image) *gtk.Image {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		p.logger.Warn("failed to encode icon", "error", err)
		return nil
	}
	texture, err := gdk.NewTextureFromBytes(glib.NewBytes(buf.Bytes()))
	if err != nil {
		p.logger.Warn("failed to create icon texture", "error", &DisplayError{Message: "texture", Cause: err})
		return nil
	}
	return gtk.NewImageFromPaintable(texture)
}

// Move implements toast.Surface.
func (p *PopupSurface) Move(pt model.Point) {
	p.pos = pt
	if p.closed {
		return
	}
	p.manager.monitors.place(p.window, pt)
}

// SetOpacity implements toast.Surface.
func (p *PopupSurface) SetOpacity(opacity float64) {
	if !p.closed {
		p.window.SetOpacity(opacity)
	}
}

// SetDurationBar implements toast.Surface.
func (p *PopupSurface) SetDurationBar(width int) {
	if p.bar == nil || p.closed {
		return
	}
	width = min(max(width, 0), p.barRect.Width)
	p.bar.SetVisible(width > 0)
	p.bar.SetSizeRequest(width, p.barRect.Height)
}

// SetStayOnTop implements toast.Surface. Stay-on-top toasts use the
// overlay layer, which sits above fullscreen windows.
func (p *PopupSurface) SetStayOnTop(on bool) {
	if p.closed {
		return
	}
	layer := layershell.LayerShellLayerTop
	if on {
		layer = layershell.LayerShellLayerOverlay
	}
	layershell.SetLayer(p.window, layer)
}

// Show implements toast.Surface.
func (p *PopupSurface) Show() {
	if p.closed {
		return
	}
	if !p.hasFrame {
		p.logger.Debug("showing popup before first render")
	}
	p.manager.monitors.place(p.window, p.pos)
	p.window.Present()
}

// Close implements toast.Surface.
func (p *PopupSurface) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.window.Close()
	p.manager.forget(p)
}

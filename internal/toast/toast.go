// Package toast implements the toast lifecycle: admission into a bounded
// on-screen stack, fade in and out, auto-dismiss with a duration bar, hover
// handling and the queue of toasts waiting for a free slot.
//
// Everything in this package runs on a single scheduler goroutine. Hosts
// marshal calls from other goroutines onto it (see eventloop.Loop.Do).
package toast

import (
	"crypto/rand"
	"image"
	"math"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/toaststack/internal/icon"
	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/screen"
	"github.com/jmylchreest/toaststack/internal/sizer"
)

// Activator is implemented by host windows that want to be re-activated
// after a toast appears, so the toast does not steal their focus.
type Activator interface {
	Activate()
}

// Toast is a single notification panel.
type Toast struct {
	id    ulid.ULID
	reg   *Registry
	host  screen.Window
	style Style

	phase   model.Phase
	used    bool
	elapsed int
	tick    int

	layout  sizer.Layout
	pos     model.Point
	opacity float64
	chunk   int

	surface   Surface
	iconImg   image.Image
	closeImg  image.Image
	hovered   bool
	durationT Timer
	tickT     Timer
	posAnim   Animation
	fadeAnim  Animation

	onClosed []func(*Toast)
}

// Option configures a Toast.
type Option func(*Toast)

// WithHost parents the toast to a host window. The toast is placed on the
// screen the window is on.
func WithHost(w screen.Window) Option {
	return func(t *Toast) {
		t.host = w
	}
}

// WithStyle replaces the default style.
func WithStyle(s Style) Option {
	return func(t *Toast) {
		t.style = s
	}
}

// New creates a toast managed by reg.
func New(reg *Registry, opts ...Option) *Toast {
	t := &Toast{
		id:    ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader),
		reg:   reg,
		style: DefaultStyle(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the toast's unique identifier.
func (t *Toast) ID() string { return t.id.String() }

// Host returns the host window, or nil.
func (t *Toast) Host() screen.Window { return t.host }

// Style returns a copy of the toast's style.
func (t *Toast) Style() Style { return t.style }

// Phase returns the lifecycle phase.
func (t *Toast) Phase() model.Phase { return t.phase }

// Used reports whether Show has been called. A used toast ignores setters.
func (t *Toast) Used() bool { return t.used }

// IsVisible reports whether the toast occupies a stack slot.
func (t *Toast) IsVisible() bool { return t.phase.OnScreen() }

// Position returns the current top-left corner of the surface.
func (t *Toast) Position() model.Point { return t.pos }

// Opacity returns the current surface opacity.
func (t *Toast) Opacity() float64 { return t.opacity }

// DurationBarWidth returns the width of the remaining-time chunk.
func (t *Toast) DurationBarWidth() int { return t.chunk }

// Elapsed returns the milliseconds accumulated by the duration bar.
func (t *Toast) Elapsed() int { return t.elapsed }

// Layout returns the layout computed at admission.
func (t *Toast) Layout() sizer.Layout { return t.layout }

// Hovered reports whether the pointer is over the toast.
func (t *Toast) Hovered() bool { return t.hovered }

// Frame returns what the surface was last asked to paint.
func (t *Toast) Frame() Frame {
	return Frame{
		ID:        t.ID(),
		Style:     t.style,
		Layout:    t.layout,
		Icon:      t.iconImg,
		CloseIcon: t.closeImg,
	}
}

// OnClosed registers fn to run once the toast has faded out.
func (t *Toast) OnClosed(fn func(*Toast)) {
	t.onClosed = append(t.onClosed, fn)
}

// Show admits the toast to the stack, or queues it when the stack is full.
// Only the first call has any effect.
func (t *Toast) Show() {
	if t.used || t.phase != model.PhaseCreated {
		t.reg.logger.Debug("ignoring show", "toast_id", t.ID(), "phase", t.phase)
		return
	}
	t.used = true
	t.reg.admit(t)
}

// Hide starts the fade out. A queued toast is dropped from the queue and
// closed straight away. Hiding a toast that is already fading out or closed
// does nothing.
func (t *Toast) Hide() {
	switch t.phase {
	case model.PhaseQueued:
		t.reg.dequeue(t)
		t.phase = model.PhaseClosed
		t.reg.logger.Debug("queued toast closed", "toast_id", t.ID(), "queue_size", t.reg.queue.Len())
		t.notifyClosed()
		t.reg.emit(EventClosed, t)
	case model.PhaseShowing, model.PhaseVisible:
		stopTimer(t.durationT)
		t.phase = model.PhaseFadingOut
		t.reg.emit(EventHiding, t)
		t.fade(1, 0, t.style.FadeOutDuration, func() {
			t.reg.remove(t)
		})
	default:
		t.reg.logger.Debug("ignoring hide", "toast_id", t.ID(), "phase", t.phase)
	}
}

// HoverEnter pauses auto-dismiss while the pointer is over the toast, when
// the style resets the duration on hover.
func (t *Toast) HoverEnter() {
	if !t.hoverable() {
		return
	}
	t.hovered = true
	if t.style.Duration == 0 || !t.style.ResetDurationOnHover || !active(t.durationT) {
		return
	}
	t.durationT.Stop()
	if t.style.ShowDurationBar {
		stopTimer(t.tickT)
		t.setChunk(t.layout.Size.Width)
		t.elapsed = 0
	}
}

// HoverLeave restarts the full duration after HoverEnter paused it.
func (t *Toast) HoverLeave() {
	if !t.hoverable() {
		return
	}
	t.hovered = false
	if t.style.Duration == 0 || !t.style.ResetDurationOnHover || active(t.durationT) {
		return
	}
	t.durationT = t.reg.sched.AfterFunc(t.style.Duration, t.Hide)
	if t.style.ShowDurationBar {
		stopTimer(t.tickT)
		t.tickT = t.reg.sched.AfterFunc(t.tick, t.onTick)
	}
}

func (t *Toast) hoverable() bool {
	return t.phase == model.PhaseShowing || t.phase == model.PhaseVisible
}

// prepare computes the layout, renders icons and creates the surface.
func (t *Toast) prepare() {
	t.layout = sizer.ComputeLayout(t.style.LayoutInput(), t.reg.measurer)
	t.iconImg, t.closeImg = nil, nil
	if t.style.ShowIcon {
		t.iconImg = t.renderIcon(t.style.Icon, t.style.IconColor, t.style.IconSize)
	}
	if t.style.ShowCloseButton {
		t.closeImg = t.renderIcon(t.style.CloseButtonIcon, t.style.CloseButtonIconColor, t.style.CloseButtonIconSize)
	}

	if t.surface == nil {
		t.surface = t.reg.surfaces.NewSurface(t)
	}
	t.surface.Render(t.Frame())
	t.surface.SetStayOnTop(t.style.StayOnTop)
	t.setChunk(t.layout.Size.Width)
	t.setOpacity(0)
	t.phase = model.PhaseShowing
}

func (t *Toast) renderIcon(ic model.Icon, c model.Color, size model.Size) image.Image {
	img, err := icon.Render(ic, c, size)
	if err != nil {
		t.reg.logger.Warn("failed to render icon", "toast_id", t.ID(), "error", err)
		return nil
	}
	return img
}

// enter shows the surface, fades it in and arms the timers.
func (t *Toast) enter() {
	t.surface.Show()
	t.fade(0, 1, t.style.FadeInDuration, func() {
		if t.phase == model.PhaseShowing {
			t.phase = model.PhaseVisible
		}
	})
	if a, ok := t.host.(Activator); ok {
		a.Activate()
	}

	if t.style.Duration == 0 {
		return
	}
	t.elapsed = 0
	t.tick = max(t.reg.settings.TickInterval, 1)
	t.durationT = t.reg.sched.AfterFunc(t.style.Duration, t.Hide)
	if t.style.ShowDurationBar {
		t.tickT = t.reg.sched.AfterFunc(t.tick, t.onTick)
	}
}

func (t *Toast) onTick() {
	t.elapsed += t.tick
	fraction := 1 - float64(t.elapsed)/float64(t.style.Duration)
	t.setChunk(max(int(math.Floor(fraction*float64(t.layout.Size.Width))), 0))
	if t.elapsed >= t.style.Duration {
		t.tickT = nil
		return
	}
	t.tickT = t.reg.sched.AfterFunc(t.tick, t.onTick)
}

// shutdown stops everything the toast has running and closes its surface.
func (t *Toast) shutdown() {
	stopTimer(t.durationT)
	stopTimer(t.tickT)
	if t.posAnim != nil {
		t.posAnim.Stop()
	}
	if t.fadeAnim != nil {
		t.fadeAnim.Stop()
	}
	t.hovered = false
	if t.surface != nil {
		t.surface.Close()
	}
	t.elapsed = 0
	t.phase = model.PhaseClosed
}

func (t *Toast) notifyClosed() {
	for _, fn := range t.onClosed {
		fn(t)
	}
}

// moveTo places the toast without animating.
func (t *Toast) moveTo(p model.Point) {
	if t.posAnim != nil {
		t.posAnim.Stop()
		t.posAnim = nil
	}
	t.setPos(p)
}

// animateTo slides the toast from where it is now to p.
func (t *Toast) animateTo(p model.Point, ms int) {
	if t.posAnim != nil {
		t.posAnim.Stop()
		t.posAnim = nil
	}
	from := t.pos
	if from == p {
		return
	}
	t.posAnim = t.reg.anim.Animate(0, 1, ms, func(f float64) {
		t.setPos(lerpPoint(from, p, f))
	}, nil)
}

func (t *Toast) fade(from, to float64, ms int, onDone func()) {
	if t.fadeAnim != nil {
		t.fadeAnim.Stop()
	}
	t.fadeAnim = t.reg.anim.Animate(from, to, ms, t.setOpacity, onDone)
}

func (t *Toast) setPos(p model.Point) {
	t.pos = p
	t.surface.Move(p)
}

func (t *Toast) setOpacity(o float64) {
	t.opacity = o
	t.surface.SetOpacity(o)
}

func (t *Toast) setChunk(w int) {
	t.chunk = w
	t.surface.SetDurationBar(w)
}

func active(t Timer) bool {
	return t != nil && t.Active()
}

func stopTimer(t Timer) {
	if t != nil {
		t.Stop()
	}
}

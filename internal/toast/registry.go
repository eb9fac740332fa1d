package toast

import (
	"container/list"
	"log/slog"
	"slices"

	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/screen"
	"github.com/jmylchreest/toaststack/internal/sizer"
	"github.com/jmylchreest/toaststack/internal/stack"
)

// RepositionDuration is how long a toast takes to slide to a new stack slot.
const RepositionDuration = 200

// DefaultTickInterval is the duration bar update interval in milliseconds.
const DefaultTickInterval = 1

// Settings are the registry wide stacking settings.
type Settings struct {
	MaximumOnScreen         int            `json:"maximum_on_screen" yaml:"maximum_on_screen"`
	Spacing                 int            `json:"spacing" yaml:"spacing"`
	OffsetX                 int            `json:"offset_x" yaml:"offset_x"`
	OffsetY                 int            `json:"offset_y" yaml:"offset_y"`
	AlwaysOnMainScreen      bool           `json:"always_on_main_screen" yaml:"always_on_main_screen"`
	FixedScreen             *screen.Region `json:"fixed_screen,omitempty" yaml:"fixed_screen,omitempty"`
	Position                model.Position `json:"position" yaml:"position"`
	TickInterval            int            `json:"tick_interval" yaml:"tick_interval"`
	PredecessorCompensation bool           `json:"predecessor_compensation" yaml:"predecessor_compensation"`
}

// DefaultSettings returns the settings a new or reset Registry has.
func DefaultSettings() Settings {
	return Settings{
		MaximumOnScreen:         3,
		Spacing:                 10,
		OffsetX:                 20,
		OffsetY:                 45,
		Position:                model.PositionBottomRight,
		TickInterval:            DefaultTickInterval,
		PredecessorCompensation: true,
	}
}

// Registry owns the visible stack and the pending queue of toasts.
//
// A Registry and its toasts are not safe for concurrent use; every call,
// timer and animation must run on the scheduler's goroutine.
type Registry struct {
	logger   *slog.Logger
	sched    Scheduler
	anim     Animator
	screens  screen.Provider
	measurer sizer.TextMeasurer
	surfaces SurfaceFactory

	settings Settings

	// visible is in stacking order, index 0 is the base of the stack.
	visible []*Toast
	queue   *list.List

	promotions []Timer
	observers  []Observer
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithAnimator replaces the default StepAnimator.
func WithAnimator(a Animator) RegistryOption {
	return func(r *Registry) {
		if a != nil {
			r.anim = a
		}
	}
}

// WithSurfaceFactory sets how surfaces are created. The default creates
// RecordingSurfaces.
func WithSurfaceFactory(f SurfaceFactory) RegistryOption {
	return func(r *Registry) {
		if f != nil {
			r.surfaces = f
		}
	}
}

// WithSettings sets the initial settings. Reset still restores DefaultSettings.
func WithSettings(s Settings) RegistryOption {
	return func(r *Registry) {
		r.settings = s
	}
}

// NewRegistry creates a Registry that schedules on sched, places toasts on
// the regions of screens and measures text with measurer.
func NewRegistry(sched Scheduler, screens screen.Provider, measurer sizer.TextMeasurer, opts ...RegistryOption) *Registry {
	r := &Registry{
		logger:   slog.Default(),
		sched:    sched,
		screens:  screens,
		measurer: measurer,
		settings: DefaultSettings(),
		queue:    list.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.anim == nil {
		r.anim = NewStepAnimator(sched, DefaultFrameInterval)
	}
	if r.surfaces == nil {
		r.surfaces = NewRecordingFactory()
	}
	return r
}

// Subscribe registers an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.observers = append(r.observers, o)
}

func (r *Registry) emit(e Event, t *Toast) {
	for _, o := range r.observers {
		o.ToastEvent(e, t)
	}
}

// Settings returns a copy of the current settings.
func (r *Registry) Settings() Settings {
	s := r.settings
	if s.FixedScreen != nil {
		fixed := *s.FixedScreen
		s.FixedScreen = &fixed
	}
	return s
}

// ApplySettings updates every setting through its setter, so visible toasts
// are repositioned and queued toasts promoted as needed.
func (r *Registry) ApplySettings(s Settings) {
	r.SetTickInterval(s.TickInterval)
	r.SetPredecessorCompensation(s.PredecessorCompensation)
	r.SetPosition(s.Position)
	r.SetFixedScreen(s.FixedScreen)
	r.SetAlwaysOnMainScreen(s.AlwaysOnMainScreen)
	r.SetOffset(s.OffsetX, s.OffsetY)
	r.SetSpacing(s.Spacing)
	r.SetMaximumOnScreen(s.MaximumOnScreen)
}

// MaximumOnScreen returns how many toasts may be visible at once.
func (r *Registry) MaximumOnScreen() int { return r.settings.MaximumOnScreen }

// SetMaximumOnScreen changes the capacity. Raising it promotes queued toasts
// into the freed slots immediately. Lowering it never evicts visible toasts;
// admission simply waits until the stack has shrunk. Negative values are
// ignored.
func (r *Registry) SetMaximumOnScreen(n int) {
	if n < 0 {
		return
	}
	freed := n - r.settings.MaximumOnScreen
	r.settings.MaximumOnScreen = n
	for range max(freed, 0) {
		r.promoteNext()
	}
}

// Spacing returns the gap between stacked toasts.
func (r *Registry) Spacing() int { return r.settings.Spacing }

// SetSpacing changes the gap between stacked toasts.
func (r *Registry) SetSpacing(spacing int) {
	r.settings.Spacing = spacing
	r.repositionY()
}

// OffsetX returns the horizontal distance from the screen edge.
func (r *Registry) OffsetX() int { return r.settings.OffsetX }

// SetOffsetX changes the horizontal distance from the screen edge.
func (r *Registry) SetOffsetX(x int) {
	r.settings.OffsetX = x
	r.repositionX()
}

// OffsetY returns the vertical distance from the screen edge.
func (r *Registry) OffsetY() int { return r.settings.OffsetY }

// SetOffsetY changes the vertical distance from the screen edge.
func (r *Registry) SetOffsetY(y int) {
	r.settings.OffsetY = y
	r.repositionY()
}

// Offset returns both edge offsets.
func (r *Registry) Offset() (x, y int) { return r.settings.OffsetX, r.settings.OffsetY }

// SetOffset changes both edge offsets.
func (r *Registry) SetOffset(x, y int) {
	r.settings.OffsetX, r.settings.OffsetY = x, y
	r.repositionXY()
}

// AlwaysOnMainScreen reports whether toasts ignore their host window's screen.
func (r *Registry) AlwaysOnMainScreen() bool { return r.settings.AlwaysOnMainScreen }

// SetAlwaysOnMainScreen forces toasts onto the primary screen.
func (r *Registry) SetAlwaysOnMainScreen(on bool) {
	r.settings.AlwaysOnMainScreen = on
	r.repositionXY()
}

// FixedScreen returns the screen override, or nil.
func (r *Registry) FixedScreen() *screen.Region {
	if r.settings.FixedScreen == nil {
		return nil
	}
	fixed := *r.settings.FixedScreen
	return &fixed
}

// SetFixedScreen pins toasts to a region. nil removes the override.
func (r *Registry) SetFixedScreen(region *screen.Region) {
	if region != nil {
		fixed := *region
		region = &fixed
	}
	r.settings.FixedScreen = region
	r.repositionXY()
}

// Position returns the stack anchor.
func (r *Registry) Position() model.Position { return r.settings.Position }

// SetPosition changes the stack anchor. Invalid positions are ignored.
func (r *Registry) SetPosition(p model.Position) {
	if !p.Valid() {
		r.logger.Debug("ignoring invalid position", "position", int(p))
		return
	}
	r.settings.Position = p
	r.repositionXY()
}

// TickInterval returns the duration bar update interval in milliseconds.
func (r *Registry) TickInterval() int { return r.settings.TickInterval }

// SetTickInterval changes the duration bar update interval for toasts shown
// afterwards. Non-positive values are ignored.
func (r *Registry) SetTickInterval(ms int) {
	if ms <= 0 {
		return
	}
	r.settings.TickInterval = ms
}

// PredecessorCompensation reports whether a new toast's entry animation
// accounts for its predecessor still sliding into place.
func (r *Registry) PredecessorCompensation() bool { return r.settings.PredecessorCompensation }

// SetPredecessorCompensation toggles predecessor compensation.
func (r *Registry) SetPredecessorCompensation(on bool) {
	r.settings.PredecessorCompensation = on
}

// Count returns the number of visible and queued toasts.
func (r *Registry) Count() int { return len(r.visible) + r.queue.Len() }

// VisibleCount returns the number of toasts in the stack.
func (r *Registry) VisibleCount() int { return len(r.visible) }

// QueuedCount returns the number of toasts waiting for a slot.
func (r *Registry) QueuedCount() int { return r.queue.Len() }

// Visible returns the stacked toasts in stacking order.
func (r *Registry) Visible() []*Toast {
	return slices.Clone(r.visible)
}

// Queued returns the waiting toasts in FIFO order.
func (r *Registry) Queued() []*Toast {
	out := make([]*Toast, 0, r.queue.Len())
	for e := r.queue.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Toast))
	}
	return out
}

// Reset restores the default settings, removes every visible toast without
// fading and drops the queue. No closed events are emitted for the removed
// toasts.
func (r *Registry) Reset() {
	r.settings = DefaultSettings()

	for _, t := range r.promotions {
		t.Stop()
	}
	r.promotions = nil

	for _, t := range r.visible {
		t.shutdown()
	}
	r.visible = nil

	for e := r.queue.Front(); e != nil; e = e.Next() {
		e.Value.(*Toast).shutdown()
	}
	r.queue.Init()

	r.logger.Debug("registry reset")
	r.emit(EventReset, nil)
}

// admit places t in the stack if there is room, otherwise queues it.
func (r *Registry) admit(t *Toast) {
	if len(r.visible) >= r.settings.MaximumOnScreen {
		t.phase = model.PhaseQueued
		r.queue.PushBack(t)
		r.logger.Debug("toast queued", "toast_id", t.ID(), "queue_size", r.queue.Len())
		r.emit(EventQueued, t)
		return
	}
	r.display(t)
}

// display appends t to the stack and starts its entry.
func (r *Registry) display(t *Toast) {
	r.visible = append(r.visible, t)
	t.prepare()

	target := r.target(t)
	if idx := len(r.visible) - 1; idx > 0 {
		delta := 0
		if r.settings.PredecessorCompensation {
			pred := r.visible[idx-1]
			delta = abs(pred.pos.Y - r.target(pred).Y)
		}
		t.moveTo(stack.EntryStart(target, t.layout.Total.Height, delta, r.settings.Position))
		t.animateTo(target, t.style.FadeInDuration)
	} else {
		t.moveTo(target)
	}

	t.enter()

	for _, other := range r.visible {
		if other != t {
			other.animateTo(r.target(other), RepositionDuration)
		}
	}

	r.logger.Debug("toast shown",
		"toast_id", t.ID(),
		"position", target,
		"visible", len(r.visible),
		"queue_size", r.queue.Len(),
	)
	r.emit(EventShown, t)
}

// remove takes a faded out toast off the stack, repacks the rest and
// schedules promotion of the queue head.
func (r *Registry) remove(t *Toast) {
	idx := r.indexOf(t)
	if idx < 0 {
		return
	}
	r.visible = slices.Delete(r.visible, idx, idx+1)
	t.shutdown()

	r.logger.Debug("toast closed", "toast_id", t.ID(), "visible", len(r.visible), "queue_size", r.queue.Len())
	t.notifyClosed()
	r.emit(EventClosed, t)

	r.repositionY()

	var timer Timer
	timer = r.sched.AfterFunc(t.style.FadeInDuration, func() {
		r.promotions = slices.DeleteFunc(r.promotions, func(p Timer) bool { return p == timer })
		r.promoteNext()
	})
	r.promotions = append(r.promotions, timer)
}

// dequeue removes a queued toast. It reports whether t was queued.
func (r *Registry) dequeue(t *Toast) bool {
	for e := r.queue.Front(); e != nil; e = e.Next() {
		if e.Value.(*Toast) == t {
			r.queue.Remove(e)
			return true
		}
	}
	return false
}

// promoteNext shows the queue head if there is a free slot.
func (r *Registry) promoteNext() {
	if r.queue.Len() == 0 || len(r.visible) >= r.settings.MaximumOnScreen {
		return
	}
	t := r.queue.Remove(r.queue.Front()).(*Toast)
	r.logger.Debug("promoting queued toast", "toast_id", t.ID(), "queue_size", r.queue.Len())
	r.display(t)
}

func (r *Registry) indexOf(t *Toast) int {
	return slices.Index(r.visible, t)
}

// target computes where t belongs given the current stack.
func (r *Registry) target(t *Toast) model.Point {
	heights := make([]int, len(r.visible))
	for i, v := range r.visible {
		heights[i] = v.layout.Size.Height
	}
	region := screen.Resolve(screen.Options{
		AlwaysOnMain: r.settings.AlwaysOnMainScreen,
		Fixed:        r.settings.FixedScreen,
	}, t.host, r.screens)

	return stack.ComputePosition(r.indexOf(t), heights, region.Bounds, t.layout.Size, stack.Settings{
		Position: r.settings.Position,
		Spacing:  r.settings.Spacing,
		OffsetX:  r.settings.OffsetX,
		OffsetY:  r.settings.OffsetY,
	})
}

// Preview returns where t would be placed in the current stack. For a toast
// that is not visible, the position it would take as the next admitted toast
// is returned; its layout must already have been computed.
func (r *Registry) Preview(t *Toast) model.Point {
	if r.indexOf(t) >= 0 {
		return r.target(t)
	}
	r.visible = append(r.visible, t)
	defer func() { r.visible = r.visible[:len(r.visible)-1] }()
	return r.target(t)
}

func (r *Registry) repositionXY() {
	for _, t := range r.visible {
		t.animateTo(r.target(t), RepositionDuration)
	}
}

func (r *Registry) repositionX() {
	for _, t := range r.visible {
		target := r.target(t)
		t.animateTo(model.Point{X: target.X, Y: t.pos.Y}, RepositionDuration)
	}
}

func (r *Registry) repositionY() {
	for _, t := range r.visible {
		target := r.target(t)
		t.animateTo(model.Point{X: t.pos.X, Y: target.Y}, RepositionDuration)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package simulate

import (
	"context"
	"log/slog"
	"slices"

	"github.com/jmylchreest/toaststack/internal/config"
	"github.com/jmylchreest/toaststack/internal/eventloop"
	"github.com/jmylchreest/toaststack/internal/screen"
	"github.com/jmylchreest/toaststack/internal/sizer"
	"github.com/jmylchreest/toaststack/internal/textmetrics"
	"github.com/jmylchreest/toaststack/internal/toast"
)

const (
	// DefaultLimit caps a run that never goes idle, in virtual ms.
	DefaultLimit = 10 * 60 * 1000
	// DefaultSample is the frame capture interval in ms.
	DefaultSample = 50
)

// ToastState is a toast as it appears in one frame.
type ToastState struct {
	Name        string  `json:"name" yaml:"name"`
	Phase       string  `json:"phase" yaml:"phase"`
	X           int     `json:"x" yaml:"x"`
	Y           int     `json:"y" yaml:"y"`
	Width       int     `json:"width" yaml:"width"`
	Height      int     `json:"height" yaml:"height"`
	Opacity     float64 `json:"opacity" yaml:"opacity"`
	DurationBar int     `json:"duration_bar" yaml:"duration_bar"`
	Hovered     bool    `json:"hovered,omitempty" yaml:"hovered,omitempty"`
}

// Frame is the visible stack at one instant.
type Frame struct {
	At      int64        `json:"at" yaml:"at"`
	Toasts  []ToastState `json:"toasts" yaml:"toasts"`
	Waiting []string     `json:"waiting,omitempty" yaml:"waiting,omitempty"`
}

// EventRecord is a lifecycle event with its virtual time.
type EventRecord struct {
	At    int64  `json:"at" yaml:"at"`
	Event string `json:"event" yaml:"event"`
	Toast string `json:"toast,omitempty" yaml:"toast,omitempty"`
}

// Timeline is the result of a run. Consecutive identical frames are
// collapsed into the first.
type Timeline struct {
	Scenario string        `json:"scenario" yaml:"scenario"`
	Screen   Screen        `json:"screen" yaml:"screen"`
	End      int64         `json:"end" yaml:"end"`
	Frames   []Frame       `json:"frames" yaml:"frames"`
	Events   []EventRecord `json:"events" yaml:"events"`
}

// Option configures a run.
type Option func(*runner)

// WithLogger sets the logger passed to the registry.
func WithLogger(logger *slog.Logger) Option {
	return func(r *runner) { r.logger = logger }
}

// WithConfig applies cfg's [stack] and [style] sections.
func WithConfig(cfg *config.Config) Option {
	return func(r *runner) { r.cfg = cfg }
}

// WithMeasurer sets the text measurer. The default is a monospace measurer
// of 7x14 px per character.
func WithMeasurer(m sizer.TextMeasurer) Option {
	return func(r *runner) { r.measurer = m }
}

// WithObserver subscribes o to the simulated registry.
func WithObserver(o toast.Observer) Option {
	return func(r *runner) { r.observers = append(r.observers, o) }
}

// WithLimit caps the virtual run time in ms.
func WithLimit(ms int) Option {
	return func(r *runner) { r.limit = ms }
}

type runner struct {
	logger    *slog.Logger
	cfg       *config.Config
	measurer  sizer.TextMeasurer
	observers []toast.Observer
	limit     int
	sample    int64

	now    func() int64
	reg    *toast.Registry
	player *Player
	tl     *Timeline
}

func newRunner(sc *Scenario, opts []Option) *runner {
	r := &runner{
		logger:   slog.Default(),
		cfg:      config.DefaultConfig(),
		measurer: textmetrics.GridMeasurer{CellWidth: 7, CellHeight: 14},
		limit:    DefaultLimit,
		sample:   DefaultSample,
		tl:       &Timeline{Scenario: sc.Name, Screen: sc.Screen},
	}
	for _, opt := range opts {
		opt(r)
	}
	if sc.Sample > 0 {
		r.sample = int64(sc.Sample)
	}
	return r
}

// start creates the registry on sched. now reports the elapsed run time
// in ms.
func (r *runner) start(sc *Scenario, sched toast.Scheduler, now func() int64) error {
	r.now = now

	screens := screen.Single(sc.Screen.Width, sc.Screen.Height)
	r.reg = toast.NewRegistry(sched, screens, r.measurer, toast.WithLogger(r.logger))
	if err := r.cfg.Apply(r.reg, screens); err != nil {
		return err
	}
	style, err := r.cfg.Style.ToastStyle()
	if err != nil {
		return err
	}
	r.player = NewPlayer(r.reg, style)

	r.reg.Subscribe(toast.ObserverFunc(r.record))
	for _, o := range r.observers {
		r.reg.Subscribe(o)
	}
	return nil
}

// Run plays sc and returns the recorded timeline. ctx is checked between
// steps and samples.
func Run(ctx context.Context, sc *Scenario, opts ...Option) (*Timeline, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	r := newRunner(sc, opts)
	clock := eventloop.NewVirtual()
	if err := r.start(sc, clock, clock.Now); err != nil {
		return nil, err
	}

	r.capture()
	for _, st := range sc.ordered() {
		if err := r.advanceTo(ctx, clock, int64(st.At), false); err != nil {
			return nil, err
		}
		r.player.Apply(st)
		r.capture()
	}

	var err error
	if sc.Until > 0 {
		err = r.advanceTo(ctx, clock, int64(sc.Until), false)
	} else {
		err = r.advanceTo(ctx, clock, int64(r.limit), true)
	}
	if err != nil {
		return nil, err
	}
	r.tl.End = clock.Now()

	r.logger.Debug("simulation finished", "scenario", sc.Name, "end", r.tl.End,
		"frames", len(r.tl.Frames), "events", len(r.tl.Events))
	return r.tl, nil
}

// advanceTo runs the clock to target, capturing a frame at every sample
// boundary. With stopWhenIdle it returns as soon as no timers are pending.
func (r *runner) advanceTo(ctx context.Context, clock *eventloop.Virtual, target int64, stopWhenIdle bool) error {
	for clock.Now() < target {
		if err := ctx.Err(); err != nil {
			return err
		}
		if stopWhenIdle && clock.Pending() == 0 {
			return nil
		}
		next := (clock.Now()/r.sample + 1) * r.sample
		clock.Advance(int(min(next, target) - clock.Now()))
		r.capture()
	}
	return nil
}

func (r *runner) record(e toast.Event, t *toast.Toast) {
	rec := EventRecord{At: r.now(), Event: e.String()}
	if t != nil {
		rec.Toast = r.player.Name(t)
	}
	r.tl.Events = append(r.tl.Events, rec)
}

func (r *runner) capture() {
	f := Frame{At: r.now(), Toasts: []ToastState{}}
	for _, t := range r.reg.Visible() {
		p := t.Position()
		size := t.Layout().Size
		f.Toasts = append(f.Toasts, ToastState{
			Name:        r.player.Name(t),
			Phase:       t.Phase().String(),
			X:           p.X,
			Y:           p.Y,
			Width:       size.Width,
			Height:      size.Height,
			Opacity:     t.Opacity(),
			DurationBar: t.DurationBarWidth(),
			Hovered:     t.Hovered(),
		})
	}
	for _, t := range r.reg.Queued() {
		f.Waiting = append(f.Waiting, r.player.Name(t))
	}

	if n := len(r.tl.Frames); n > 0 {
		last := r.tl.Frames[n-1]
		if slices.Equal(last.Toasts, f.Toasts) && slices.Equal(last.Waiting, f.Waiting) {
			return
		}
	}
	r.tl.Frames = append(r.tl.Frames, f)
}

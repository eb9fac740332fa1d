package tui

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/toaststack/internal/config"
	"github.com/jmylchreest/toaststack/internal/eventloop"
	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/screen"
	"github.com/jmylchreest/toaststack/internal/sizer"
	"github.com/jmylchreest/toaststack/internal/textmetrics"
	"github.com/jmylchreest/toaststack/internal/toast"
)

// frameInterval is how often the virtual clock catches up with wall time.
const frameInterval = 16 * time.Millisecond

// Cell geometry for toasts drawn in the terminal.
const (
	cellMaxWidth = 48
	cellMinWidth = 24
	cellOffsetX  = 2
	cellOffsetY  = 1
)

type sample struct {
	title, text string
}

var samples = []sample{
	{"Saved", "Your changes were written to disk."},
	{"Disk almost full", "Less than 5% of /home is free."},
	{"Sync failed", "Could not reach the server, retrying in 30 seconds."},
	{"Update available", "Version 2.4 is ready to install."},
	{"Download complete", "archive.tar.gz"},
	{"Meeting in 5 minutes", "Weekly planning, room 3."},
}

// termScreen is the terminal as a single display region.
type termScreen struct {
	width, height int
}

func (s *termScreen) Primary() screen.Region {
	return screen.Region{
		Name:    "terminal",
		Bounds:  model.Rect{Width: s.width, Height: s.height},
		Primary: true,
	}
}

func (s *termScreen) Regions() []screen.Region {
	return []screen.Region{s.Primary()}
}

// engine runs a registry on a virtual clock that Update advances once per
// frame, so every toast callback runs on the bubbletea goroutine.
type engine struct {
	logger *slog.Logger

	clock    *eventloop.Virtual
	reg      *toast.Registry
	canvas   *canvas
	screen   *termScreen
	style    toast.Style
	settings toast.Settings

	last    time.Time
	spawned int
	counts  map[toast.Event]int
	hovered *toast.Toast
}

func newEngine(cfg *config.Config, logger *slog.Logger) *engine {
	e := &engine{
		logger: logger,
		clock:  eventloop.NewVirtual(),
		canvas: &canvas{},
		screen: &termScreen{width: 80, height: 24},
		counts: make(map[toast.Event]int),
	}
	e.reg = toast.NewRegistry(e.clock, e.screen, textmetrics.CellMeasurer{},
		toast.WithLogger(logger),
		toast.WithSurfaceFactory(e.canvas),
	)
	e.reg.Subscribe(toast.ObserverFunc(func(ev toast.Event, t *toast.Toast) {
		e.counts[ev]++
		if ev == toast.EventClosed && t == e.hovered {
			e.hovered = nil
		}
	}))
	e.configure(cfg)
	return e
}

// configure derives cell sized settings and style from cfg and applies them.
func (e *engine) configure(cfg *config.Config) {
	e.settings = cellSettings(cfg.Stack, e.logger)
	e.reg.ApplySettings(e.settings)

	base, err := cfg.Style.ToastStyle()
	if err != nil {
		e.logger.Warn("invalid toast style, using defaults", "error", err)
		base = toast.DefaultStyle()
	}
	e.style = cellStyle(base)
}

// resize changes the virtual screen. Visible toasts slide to their new slots.
func (e *engine) resize(width, height int) {
	e.screen.width, e.screen.height = max(width, 0), max(height, 0)
	e.reg.ApplySettings(e.settings)
}

// advance runs every timer that fell due between the last frame and now.
func (e *engine) advance(now time.Time) int {
	if e.last.IsZero() {
		e.last = now
		return 0
	}
	ms := int(now.Sub(e.last) / time.Millisecond)
	if ms <= 0 {
		return 0
	}
	e.last = e.last.Add(time.Duration(ms) * time.Millisecond)
	fired := e.clock.Advance(ms)
	e.canvas.prune()
	return fired
}

// spawn shows a sample toast styled with p. Invalid presets leave the base
// style untouched.
func (e *engine) spawn(p model.Preset) *toast.Toast {
	s := samples[e.spawned%len(samples)]
	e.spawned++

	t := toast.New(e.reg, toast.WithStyle(e.style))
	t.SetTitle(s.title)
	t.SetText(s.text)
	if p.Valid() {
		t.ApplyPreset(p)
		t.SetIconSeparatorWidth(1)
	}
	t.SetMarginBottom(bottomMargin(t.ShowsDurationBar()))
	t.Show()
	return t
}

// newest returns the most recently admitted visible toast, or nil.
func (e *engine) newest() *toast.Toast {
	visible := e.reg.Visible()
	if len(visible) == 0 {
		return nil
	}
	return visible[len(visible)-1]
}

// hover moves the pointer onto t, or off every toast when t is nil.
func (e *engine) hover(t *toast.Toast) {
	if t == e.hovered {
		return
	}
	if e.hovered != nil {
		e.hovered.HoverLeave()
	}
	e.hovered = t
	if t != nil {
		t.HoverEnter()
	}
}

// reset clears the stack and restores the terminal settings, which
// Registry.Reset replaces with the defaults.
func (e *engine) reset() {
	e.hovered = nil
	e.reg.Reset()
	e.reg.ApplySettings(e.settings)
	e.canvas.prune()
}

func (e *engine) cyclePosition() model.Position {
	positions := model.ValidPositions()
	next := positions[0]
	for i, p := range positions {
		if p == e.settings.Position {
			next = positions[(i+1)%len(positions)]
			break
		}
	}
	e.settings.Position = next
	e.reg.SetPosition(next)
	return next
}

func (e *engine) setMaximum(n int) int {
	n = max(n, 1)
	e.settings.MaximumOnScreen = n
	e.reg.SetMaximumOnScreen(n)
	return n
}

// toastAt returns the visible toast under p.
func (e *engine) toastAt(p model.Point) *toast.Toast {
	s := e.canvas.at(p)
	if s == nil {
		return nil
	}
	return s.toast
}

func cellSettings(cfg config.StackConfig, logger *slog.Logger) toast.Settings {
	// The terminal is the only screen.
	cfg.Monitor = ""
	settings, err := cfg.Settings(nil)
	if err != nil {
		logger.Warn("invalid stack settings, using defaults", "error", err)
		settings = toast.DefaultSettings()
	}
	settings.OffsetX = cellOffsetX
	settings.OffsetY = cellOffsetY
	settings.Spacing = min(settings.Spacing, 1)
	settings.FixedScreen = nil
	settings.TickInterval = max(settings.TickInterval, int(frameInterval/time.Millisecond))
	return settings
}

// bottomMargin pulls the duration bar up so that only its last row, which
// is the one drawn, adds to the height.
func bottomMargin(bar bool) int {
	if bar {
		return 1 - sizer.DurationBarHeight
	}
	return 1
}

// cellStyle shrinks a pixel style to terminal cells. Icons and the close
// button take one cell each.
func cellStyle(base toast.Style) toast.Style {
	s := base
	s.IconSize = model.Size{Width: 1, Height: 1}
	s.IconSeparatorWidth = 1
	s.CloseButtonIconSize = model.Size{Width: 1, Height: 1}
	s.CloseButtonSize = model.Size{Width: 1, Height: 1}
	s.Margins = model.NewMargins(2, 1, 1, bottomMargin(s.ShowDurationBar))
	s.IconMargins = model.NewMargins(0, 0, 1, 0)
	s.IconSectionMargins = model.NewMargins(0, 0, 1, 0)
	s.TextSectionMargins = model.NewMargins(0, 0, 2, 0)
	s.CloseButtonMargins = model.Margins{}
	s.TextSectionSpacing = 0
	s.BorderRadius = 0
	s.MinimumSize = model.Size{Width: cellMinWidth}
	s.MaximumSize = model.Size{Width: cellMaxWidth, Height: sizer.MaxDimension}
	return s
}

// toastState is one toast in a copied snapshot.
type toastState struct {
	Title    string      `yaml:"title"`
	Preset   string      `yaml:"preset,omitempty"`
	Phase    model.Phase `yaml:"phase"`
	Position model.Point `yaml:"position"`
	Size     model.Size  `yaml:"size"`
	Hovered  bool        `yaml:"hovered,omitempty"`
}

type stackSnapshot struct {
	Position model.Position `yaml:"position"`
	Maximum  int            `yaml:"max_visible"`
	Visible  []toastState   `yaml:"visible"`
	Queued   []toastState   `yaml:"queued,omitempty"`
}

func (e *engine) snapshot() stackSnapshot {
	state := func(t *toast.Toast) toastState {
		s := toastState{
			Title:    t.Title(),
			Phase:    t.Phase(),
			Position: t.Position(),
			Size:     t.Layout().Size,
			Hovered:  t.Hovered(),
		}
		if p := t.Style().Preset; p.Valid() {
			s.Preset = p.String()
		}
		return s
	}

	snap := stackSnapshot{
		Position: e.reg.Position(),
		Maximum:  e.reg.MaximumOnScreen(),
	}
	for _, t := range e.reg.Visible() {
		snap.Visible = append(snap.Visible, state(t))
	}
	for _, t := range e.reg.Queued() {
		snap.Queued = append(snap.Queued, state(t))
	}
	return snap
}

package simulate

import (
	"strconv"

	"github.com/jmylchreest/toaststack/internal/eventloop"
	"github.com/jmylchreest/toaststack/internal/model"
	"github.com/jmylchreest/toaststack/internal/toast"
)

// Player applies scenario steps to a registry. Run drives one on a virtual
// clock; a desktop host can drive one in real time with Schedule.
type Player struct {
	reg    *toast.Registry
	style  toast.Style
	preset func(model.Preset) model.Preset

	toasts map[string]*toast.Toast
	names  map[string]string // toast ID to scenario name
}

// NewPlayer creates a Player showing toasts with the given base style.
func NewPlayer(reg *toast.Registry, style toast.Style) *Player {
	return &Player{
		reg:    reg,
		style:  style,
		toasts: make(map[string]*toast.Toast),
		names:  make(map[string]string),
	}
}

// SetPresetFilter rewrites step presets before they are applied, for
// example to pick the dark variants.
func (p *Player) SetPresetFilter(fn func(model.Preset) model.Preset) {
	p.preset = fn
}

// SetStyle changes the base style of toasts shown from now on.
func (p *Player) SetStyle(s toast.Style) {
	p.style = s
}

// Name returns the scenario name of t, or "" if the player did not create it.
func (p *Player) Name(t *toast.Toast) string {
	if t == nil {
		return ""
	}
	return p.names[t.ID()]
}

// Toast returns the toast last shown under name.
func (p *Player) Toast(name string) *toast.Toast {
	return p.toasts[name]
}

// Apply performs one step. Steps naming a toast that was never shown are
// ignored; Scenario.Validate rejects those up front.
func (p *Player) Apply(st Step) {
	t := p.toasts[st.Toast]
	switch st.Action {
	case ActionShow:
		t = toast.New(p.reg, toast.WithStyle(p.style))
		p.toasts[st.Toast] = t
		p.names[t.ID()] = st.Toast
		if st.Preset != "" {
			preset, _ := model.ParsePreset(st.Preset)
			if p.preset != nil {
				preset = p.preset(preset)
			}
			t.ApplyPreset(preset)
		}
		t.SetTitle(st.Title)
		t.SetText(st.Text)
		if st.Duration != nil {
			t.SetDuration(*st.Duration)
		}
		t.Show()
	case ActionHide:
		if t != nil {
			t.Hide()
		}
	case ActionHover:
		if t != nil {
			t.HoverEnter()
		}
	case ActionLeave:
		if t != nil {
			t.HoverLeave()
		}
	case ActionReset:
		p.reg.Reset()
	case ActionPosition:
		pos, _ := model.ParsePosition(st.Value)
		p.reg.SetPosition(pos)
	case ActionMaxVisible:
		n, _ := strconv.Atoi(st.Value)
		p.reg.SetMaximumOnScreen(n)
	case ActionSpacing:
		n, _ := strconv.Atoi(st.Value)
		p.reg.SetSpacing(n)
	}
}

// Schedule queues every step of sc on sched at its offset from now. The
// returned timers can be stopped to abandon the rest of the scenario.
func (p *Player) Schedule(sched eventloop.Scheduler, sc *Scenario) []eventloop.Timer {
	steps := sc.ordered()
	timers := make([]eventloop.Timer, 0, len(steps))
	for _, st := range steps {
		timers = append(timers, sched.AfterFunc(st.At, func() { p.Apply(st) }))
	}
	return timers
}

package display

import (
	"github.com/diamondburned/gotk4/pkg/core/glib"

	"github.com/jmylchreest/toaststack/internal/eventloop"
)

// GlibScheduler runs toast timers on the glib main loop.
type GlibScheduler struct{}

// AfterFunc implements eventloop.Scheduler.
func (GlibScheduler) AfterFunc(ms int, fn func()) eventloop.Timer {
	t := &glibTimer{active: true}
	t.handle = glib.TimeoutAdd(uint(max(ms, 0)), func() bool {
		if !t.active {
			return false
		}
		t.active = false
		fn()
		return false
	})
	return t
}

// glibTimer is only touched on the main thread.
type glibTimer struct {
	handle glib.SourceHandle
	active bool
}

func (t *glibTimer) Stop() bool {
	if !t.active {
		return false
	}
	t.active = false
	glib.SourceRemove(t.handle)
	return true
}

func (t *glibTimer) Active() bool {
	return t.active
}

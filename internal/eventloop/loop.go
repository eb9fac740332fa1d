package eventloop

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Loop runs callbacks on a single goroutine in real time.
//
// Timers fire on the loop goroutine. Code running elsewhere (file watchers,
// signal handlers) must use Do to touch anything owned by the loop.
type Loop struct {
	mu     sync.Mutex
	logger *slog.Logger

	tasks  chan func()
	timers map[*loopTimer]struct{}

	// Control channels
	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewLoop creates a Loop. Call Run to start processing.
func NewLoop(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		logger: logger,
		tasks:  make(chan func(), 256),
		timers: make(map[*loopTimer]struct{}),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Run processes callbacks until ctx is cancelled or Stop is called.
// Pending timers are cancelled on return.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return nil
	}
	l.running = true
	l.mu.Unlock()

	defer close(l.doneCh)
	defer l.stopTimers()

	l.logger.Debug("event loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("event loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-l.stopCh:
			l.logger.Debug("event loop stopped")
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Stop ends Run and waits for it to return. It is safe to call more than
// once, but must not be called from the loop goroutine.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.stopCh)
	l.mu.Unlock()

	<-l.doneCh
}

// Do queues fn to run on the loop goroutine. It reports false if the loop
// has already stopped.
func (l *Loop) Do(fn func()) bool {
	select {
	case <-l.doneCh:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.doneCh:
		return false
	}
}

// AfterFunc implements Scheduler. It must be called on the loop goroutine.
func (l *Loop) AfterFunc(ms int, fn func()) Timer {
	if ms < 0 {
		ms = 0
	}
	t := &loopTimer{loop: l}
	t.active.Store(true)

	l.mu.Lock()
	l.timers[t] = struct{}{}
	l.mu.Unlock()

	t.timer = time.AfterFunc(time.Duration(ms)*time.Millisecond, func() {
		l.Do(func() {
			// Stop may have been called after the timer expired but
			// before this callback reached the loop.
			if !t.active.CompareAndSwap(true, false) {
				return
			}
			l.forget(t)
			fn()
		})
	})
	return t
}

func (l *Loop) forget(t *loopTimer) {
	l.mu.Lock()
	delete(l.timers, t)
	l.mu.Unlock()
}

func (l *Loop) stopTimers() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for t := range l.timers {
		t.active.Store(false)
		t.timer.Stop()
	}
	clear(l.timers)
}

type loopTimer struct {
	loop   *Loop
	timer  *time.Timer
	active atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if !t.active.CompareAndSwap(true, false) {
		return false
	}
	t.timer.Stop()
	t.loop.forget(t)
	return true
}

func (t *loopTimer) Active() bool {
	return t.active.Load()
}

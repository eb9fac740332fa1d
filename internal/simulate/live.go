package simulate

import (
	"context"
	"errors"
	"time"

	"github.com/jmylchreest/toaststack/internal/eventloop"
)

// Live plays sc in real time on an eventloop.Loop, capturing a frame at
// every sample interval. It returns at Until if the scenario sets one,
// otherwise once every step has run and the stack is empty, or when the
// limit is reached.
func Live(ctx context.Context, sc *Scenario, opts ...Option) (*Timeline, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	r := newRunner(sc, opts)
	loop := eventloop.NewLoop(r.logger)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	now := func() int64 { return time.Since(start).Milliseconds() }

	var setupErr error
	loop.Do(func() {
		if err := r.start(sc, loop, now); err != nil {
			setupErr = err
			cancel()
			return
		}
		r.capture()
		steps := r.player.Schedule(loop, sc)

		var sample func()
		sample = func() {
			r.capture()
			if r.finished(sc, steps) {
				r.tl.End = now()
				cancel()
				return
			}
			loop.AfterFunc(int(r.sample), sample)
		}
		loop.AfterFunc(int(r.sample), sample)
	})

	err := loop.Run(runCtx)
	switch {
	case setupErr != nil:
		return nil, setupErr
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case err != nil && !errors.Is(err, context.Canceled):
		return nil, err
	}

	r.logger.Debug("live run finished", "scenario", sc.Name, "end", r.tl.End,
		"frames", len(r.tl.Frames), "events", len(r.tl.Events))
	return r.tl, nil
}

func (r *runner) finished(sc *Scenario, steps []eventloop.Timer) bool {
	at := r.now()
	if sc.Until > 0 {
		return at >= int64(sc.Until)
	}
	if at >= int64(r.limit) {
		return true
	}
	for _, t := range steps {
		if t.Active() {
			return false
		}
	}
	return r.reg.Count() == 0
}

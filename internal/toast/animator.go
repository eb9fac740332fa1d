package toast

import (
	"math"

	"github.com/jmylchreest/toaststack/internal/eventloop"
	"github.com/jmylchreest/toaststack/internal/model"
)

// Scheduler and Timer are the timing primitives toasts run on.
type (
	Scheduler = eventloop.Scheduler
	Timer     = eventloop.Timer
)

// Animation is a running property animation.
type Animation interface {
	// Stop halts the animation where it is. The completion callback is
	// not called.
	Stop()
}

// Animator animates a numeric property.
//
// apply receives each intermediate value, ending with to. onDone, if
// non-nil, runs exactly once on the scheduler after the final value has been
// applied, unless the animation is stopped first.
type Animator interface {
	Animate(from, to float64, ms int, apply func(float64), onDone func()) Animation
}

// DefaultFrameInterval is the StepAnimator frame length in milliseconds.
const DefaultFrameInterval = 16

// StepAnimator is a linear Animator that updates the property once per frame
// using scheduler timers.
type StepAnimator struct {
	sched Scheduler
	frame int
}

// NewStepAnimator creates a StepAnimator. A non-positive frame interval
// selects DefaultFrameInterval.
func NewStepAnimator(sched Scheduler, frameMs int) *StepAnimator {
	if frameMs <= 0 {
		frameMs = DefaultFrameInterval
	}
	return &StepAnimator{sched: sched, frame: frameMs}
}

// Animate implements Animator.
func (a *StepAnimator) Animate(from, to float64, ms int, apply func(float64), onDone func()) Animation {
	anim := &stepAnimation{}
	done := func() {
		if onDone != nil {
			onDone()
		}
	}

	if ms <= 0 {
		apply(to)
		anim.timer = a.sched.AfterFunc(0, done)
		return anim
	}

	apply(from)
	elapsed := 0
	var step func()
	schedule := func() {
		next := min(a.frame, ms-elapsed)
		anim.timer = a.sched.AfterFunc(next, func() {
			elapsed += next
			step()
		})
	}
	step = func() {
		if elapsed >= ms {
			apply(to)
			done()
			return
		}
		apply(from + (to-from)*float64(elapsed)/float64(ms))
		schedule()
	}
	schedule()
	return anim
}

type stepAnimation struct {
	timer Timer
}

func (a *stepAnimation) Stop() {
	if a.timer != nil {
		a.timer.Stop()
	}
}

// lerpPoint interpolates between two points, rounding to whole pixels.
func lerpPoint(from, to model.Point, f float64) model.Point {
	return model.Point{
		X: from.X + int(math.Round(float64(to.X-from.X)*f)),
		Y: from.Y + int(math.Round(float64(to.Y-from.Y)*f)),
	}
}

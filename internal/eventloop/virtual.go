package eventloop

import (
	"container/heap"
	"fmt"
)

// Virtual is a Scheduler driven by an explicit clock. Nothing happens until
// Advance or Drain is called; callbacks then run in due-time order, ties
// broken by scheduling order.
type Virtual struct {
	now     int64
	seq     uint64
	pending timerHeap
}

// NewVirtual returns a Virtual clock at time zero.
func NewVirtual() *Virtual {
	return &Virtual{}
}

// Now returns the current virtual time in milliseconds.
func (v *Virtual) Now() int64 {
	return v.now
}

// Pending returns the number of scheduled callbacks.
func (v *Virtual) Pending() int {
	return len(v.pending)
}

// AfterFunc implements Scheduler. Negative delays are treated as zero.
func (v *Virtual) AfterFunc(ms int, fn func()) Timer {
	if ms < 0 {
		ms = 0
	}
	v.seq++
	t := &virtualTimer{v: v, when: v.now + int64(ms), seq: v.seq, fn: fn, index: -1}
	heap.Push(&v.pending, t)
	return t
}

// Advance moves the clock forward by ms, running every callback that falls
// due on the way, including ones scheduled by earlier callbacks.
func (v *Virtual) Advance(ms int) int {
	target := v.now + int64(ms)
	ran := 0
	for len(v.pending) > 0 && v.pending[0].when <= target {
		v.fire(heap.Pop(&v.pending).(*virtualTimer))
		ran++
	}
	v.now = target
	return ran
}

// Drain runs callbacks until none are pending, jumping the clock from one
// due time to the next. It fails after limit callbacks so a callback that
// reschedules itself forever cannot hang the caller.
func (v *Virtual) Drain(limit int) (int, error) {
	ran := 0
	for len(v.pending) > 0 {
		if ran >= limit {
			return ran, fmt.Errorf("virtual clock still has %d pending callbacks after %d runs", len(v.pending), ran)
		}
		t := heap.Pop(&v.pending).(*virtualTimer)
		v.now = t.when
		v.fire(t)
		ran++
	}
	return ran, nil
}

func (v *Virtual) fire(t *virtualTimer) {
	if v.now < t.when {
		v.now = t.when
	}
	t.fn()
}

type virtualTimer struct {
	v     *Virtual
	when  int64
	seq   uint64
	fn    func()
	index int
}

func (t *virtualTimer) Stop() bool {
	if t.index < 0 {
		return false
	}
	heap.Remove(&t.v.pending, t.index)
	return true
}

func (t *virtualTimer) Active() bool {
	return t.index >= 0
}

// timerHeap orders timers by due time, then by scheduling order.
type timerHeap []*virtualTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].when != h[j].when {
		return h[i].when < h[j].when
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*virtualTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

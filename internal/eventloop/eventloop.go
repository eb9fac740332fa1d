// Package eventloop provides the single-threaded schedulers toasts run on.
//
// Virtual is a deterministic clock for tests and headless simulation. Loop
// runs callbacks on one goroutine in real time and lets other goroutines
// marshal work onto it with Do.
package eventloop

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the timer was active.
	Stop() bool
	// Active reports whether the callback is still pending.
	Active() bool
}

// Scheduler runs a callback once after a delay in milliseconds.
// Callbacks never run concurrently with each other.
type Scheduler interface {
	AfterFunc(ms int, fn func()) Timer
}

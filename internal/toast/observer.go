package toast

// Event is a lifecycle change reported to observers.
type Event int

const (
	// EventQueued fires when a shown toast has to wait for a free slot.
	EventQueued Event = iota + 1
	// EventShown fires when a toast is admitted to the stack.
	EventShown
	// EventHiding fires when a toast starts fading out.
	EventHiding
	// EventClosed fires when a toast has faded out and left the stack.
	EventClosed
	// EventReset fires once per Registry.Reset.
	EventReset
)

func (e Event) String() string {
	switch e {
	case EventQueued:
		return "queued"
	case EventShown:
		return "shown"
	case EventHiding:
		return "hiding"
	case EventClosed:
		return "closed"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Observer receives lifecycle events. t is nil for EventReset.
type Observer interface {
	ToastEvent(e Event, t *Toast)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e Event, t *Toast)

// ToastEvent implements Observer.
func (f ObserverFunc) ToastEvent(e Event, t *Toast) {
	f(e, t)
}

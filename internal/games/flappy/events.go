package flappy

// EventKind tags a notification emitted by the engine.
type EventKind int

const (
	EventJumped EventKind = iota
	EventScored
	EventCollided
	EventGameOver
)

// String returns the event tag.
func (k EventKind) String() string {
	switch k {
	case EventJumped:
		return "jumped"
	case EventScored:
		return "scored"
	case EventCollided:
		return "collided"
	case EventGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Event is a notification with the score and lives at the time it happened.
type Event struct {
	Kind  EventKind
	Score int
	Lives int
}

// Notifier receives engine events synchronously. Implementations must not
// block; the engine neither waits for nor checks their outcome.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Event)

// Notify calls f(e).
func (f NotifierFunc) Notify(e Event) {
	f(e)
}

// Notifiers fans an event out to several notifiers in order.
type Notifiers []Notifier

// Notify forwards e to every notifier.
func (ns Notifiers) Notify(e Event) {
	for _, n := range ns {
		if n != nil {
			n.Notify(e)
		}
	}
}

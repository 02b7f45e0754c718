package life

import "fmt"

// EventKind identifies what happened to a cell.
type EventKind uint8

const (
	EventAlive EventKind = iota + 1
	EventDead
	EventDecay
	EventHistoryCleared
)

func (k EventKind) String() string {
	switch k {
	case EventAlive:
		return "alive"
	case EventDead:
		return "dead"
	case EventDecay:
		return "decay"
	case EventHistoryCleared:
		return "history-cleared"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Event is emitted by the Board for render collaborators. Decay is only set
// for EventDecay, where 1 is the most recently superseded live state.
type Event struct {
	Kind  EventKind
	Cell  int
	X, Y  int
	Decay int
}

// Observer receives board events. Events are delivered synchronously on the
// goroutine that mutated the board.
type Observer interface {
	OnEvent(e Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(e Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

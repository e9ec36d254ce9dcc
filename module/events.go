package module

import (
	"github.com/solo-machine/solo-machine/model/events"
)

// EventEmitter is the producing side of an event channel, as seen by a flow.
type EventEmitter interface {
	// Emit hands over a completed milestone. It never blocks.
	// Returns an error if the channel was already closed.
	Emit(event events.Event) error
}

// NoopEmitter discards every event.
type NoopEmitter struct{}

func (NoopEmitter) Emit(events.Event) error { return nil }

package command

import (
	"errors"
	"fmt"

	"github.com/solo-machine/solo-machine/model/events"
)

// UnexpectedEventError indicates that a renderer received an event outside the
// vocabulary of its command. The invocation is aborted.
type UnexpectedEventError struct {
	Command string
	Event   events.Type
}

func NewUnexpectedEventError(command string, event events.Event) UnexpectedEventError {
	return UnexpectedEventError{Command: command, Event: event.Type()}
}

func IsUnexpectedEventError(err error) bool {
	var target UnexpectedEventError
	return errors.As(err, &target)
}

func (err UnexpectedEventError) Error() string {
	return fmt.Sprintf("non-%s event in %s command: %s", err.Command, err.Command, err.Event)
}

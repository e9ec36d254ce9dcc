package ibc

import (
	"errors"
	"fmt"
)

// InvalidInputError indicates that the arguments of a flow failed validation. The flow
// was rejected before any event was emitted and before the chain was contacted.
type InvalidInputError struct {
	Err error
}

func NewInvalidInputErrorf(msg string, args ...any) InvalidInputError {
	return InvalidInputError{
		Err: fmt.Errorf(msg, args...),
	}
}

func IsInvalidInputError(err error) bool {
	var target InvalidInputError
	return errors.As(err, &target)
}

func (err InvalidInputError) Error() string {
	return err.Err.Error()
}

func (err InvalidInputError) Unwrap() error {
	return err.Err
}

// ProtocolError indicates that a step of a flow could not be completed: the chain
// rejected or failed a request, or the solo machine's state does not allow the step
// (for example a transfer over a chain that is not connected). Steps that completed
// before the failing one are not rolled back.
type ProtocolError struct {
	Step string
	Err  error
}

func NewProtocolError(step string, err error) ProtocolError {
	return ProtocolError{Step: step, Err: err}
}

func NewProtocolErrorf(step string, msg string, args ...any) ProtocolError {
	return ProtocolError{Step: step, Err: fmt.Errorf(msg, args...)}
}

func IsProtocolError(err error) bool {
	var target ProtocolError
	return errors.As(err, &target)
}

func (err ProtocolError) Error() string {
	return fmt.Sprintf("%s failed: %v", err.Step, err.Err)
}

func (err ProtocolError) Unwrap() error {
	return err.Err
}

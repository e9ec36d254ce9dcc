package chain

import (
	"errors"
	"fmt"
)

// InvalidInputError indicates that a chain record was rejected before anything was stored.
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

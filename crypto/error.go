package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedAlgo is returned for public key algorithms this package does not know.
	ErrUnsupportedAlgo = errors.New("unsupported public key algorithm")

	// ErrCapabilityNotEnabled is returned when a known algorithm is selected that was
	// not compiled into this build.
	ErrCapabilityNotEnabled = errors.New("capability not enabled")

	// ErrInvalidPublicKey is returned when bytes do not encode a point on the curve.
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// invalidInputError indicates a malformed argument, such as undecodable hex or a bad
// derivation path.
type invalidInputError struct {
	msg string
	err error
}

func newInvalidInputErrorf(err error, msg string, args ...interface{}) invalidInputError {
	return invalidInputError{msg: fmt.Sprintf(msg, args...), err: err}
}

func (e invalidInputError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e invalidInputError) Unwrap() error {
	return e.err
}

// IsInvalidInputError returns true if the error was caused by a malformed argument.
func IsInvalidInputError(err error) bool {
	var target invalidInputError
	return errors.As(err, &target) || errors.Is(err, ErrInvalidPublicKey) ||
		errors.Is(err, ErrUnsupportedAlgo) || errors.Is(err, ErrCapabilityNotEnabled)
}

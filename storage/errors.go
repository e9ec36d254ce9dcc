package storage

import (
	"errors"
)

var (
	// ErrNotFound is returned when a chain or IBC object does not exist. The badger
	// implementation translates badger.ErrKeyNotFound into it, so callers never see
	// badger's own sentinel.
	ErrNotFound = errors.New("key not found")

	// ErrAlreadyExists is returned when inserting under a key that is taken.
	ErrAlreadyExists = errors.New("key already exists")

	// ErrDataMismatch is returned when a database was created by a different
	// application.
	ErrDataMismatch = errors.New("data for key is different")
)

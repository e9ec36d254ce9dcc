package operation

import (
	"errors"
	"syscall"

	"github.com/dgraph-io/badger/v2"

	"github.com/solo-machine/solo-machine/storage"
)

// SkipDuplicates turns storage.ErrAlreadyExists from an insert into a no-op.
func SkipDuplicates(op func(*badger.Txn) error) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		err := op(tx)
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil
		}
		return err
	}
}

// RetryOnConflict reruns op in a fresh transaction until it commits without a
// badger.ErrConflict. op must be safe to run more than once.
func RetryOnConflict(update func(func(*badger.Txn) error) error, op func(*badger.Txn) error) error {
	err := update(op)
	for errors.Is(err, badger.ErrConflict) {
		err = update(op)
	}
	return err
}

// TerminateOnFullDisk panics on ENOSPC. Continuing would leave a chain's
// sequence consumed without the matching proof ever being sent.
func TerminateOnFullDisk(err error) error {
	if errors.Is(err, syscall.ENOSPC) {
		panic("disk full, terminating solo machine")
	}
	return err
}

package operation

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/solo-machine/solo-machine/storage"
)

// insert encodes entity and writes it under key.
// Error returns:
//   - storage.ErrAlreadyExists if key is taken
//   - generic error on encoding or database failure
func insert(key []byte, entity interface{}) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		if err == nil {
			return storage.ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("could not check key: %w", err)
		}
		return set(tx, key, entity)
	}
}

// update replaces the value under an existing key.
// Error returns:
//   - storage.ErrNotFound if key is not set
//   - generic error on encoding or database failure
func update(key []byte, entity interface{}) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("could not check key: %w", err)
		}
		return set(tx, key, entity)
	}
}

func set(tx *badger.Txn, key []byte, entity interface{}) error {
	val, err := values.encode(entity)
	if err != nil {
		return err
	}
	err = tx.Set(key, val)
	if err != nil {
		return fmt.Errorf("could not store data: %w", err)
	}
	return nil
}

// retrieve decodes the value under key into entity, which must be a pointer.
// Error returns:
//   - storage.ErrNotFound if key is not set
//   - generic error on decoding or database failure
func retrieve(key []byte, entity interface{}) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("could not load data: %w", err)
		}

		err = item.Value(func(val []byte) error {
			return values.decode(val, entity)
		})
		if err != nil {
			return fmt.Errorf("could not decode entity: %w", err)
		}
		return nil
	}
}

func exists(key []byte, keyExists *bool) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		switch {
		case err == nil:
			*keyExists = true
		case errors.Is(err, badger.ErrKeyNotFound):
			*keyExists = false
		default:
			return fmt.Errorf("could not check key: %w", err)
		}
		return nil
	}
}

// iterationFunc is called once per key during a traversal. It returns the entity
// to decode the value into and the callback to run once it is decoded.
type iterationFunc func() (entity interface{}, handle func() error)

// traverse visits every key under prefix in ascending order.
func traverse(prefix []byte, iteration iterationFunc) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		if len(prefix) == 0 {
			return fmt.Errorf("prefix must not be empty")
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			entity, handle := iteration()
			err := it.Item().Value(func(val []byte) error {
				return values.decode(val, entity)
			})
			if err != nil {
				return fmt.Errorf("could not decode entity: %w", err)
			}

			err = handle()
			if err != nil {
				return fmt.Errorf("could not handle entity: %w", err)
			}
		}
		return nil
	}
}

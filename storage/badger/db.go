package badger

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"

	"github.com/solo-machine/solo-machine/storage"
	"github.com/solo-machine/solo-machine/storage/badger/operation"
)

// Open opens (creating if needed) the solo machine database in dir and checks that
// it was not created by another application.
func Open(dir string, log zerolog.Logger) (*badger.DB, error) {
	opts := badger.
		DefaultOptions(dir).
		WithLogger(&badgerLogger{log: log.With().Str("component", "badger").Logger()})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("could not open db at %s: %w", dir, err)
	}

	err = InitDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// InitDB marks an empty database as owned by the solo machine, or verifies the marker
// of an existing one.
// Returns storage.ErrDataMismatch if the database belongs to another application.
func InitDB(db *badger.DB) error {
	err := db.Update(operation.SkipDuplicates(operation.InsertDBType(operation.DBTypeSoloMachine)))
	if err != nil {
		return fmt.Errorf("could not mark database type: %w", err)
	}

	var dbType string
	err = db.View(operation.RetrieveDBType(&dbType))
	if err != nil {
		return fmt.Errorf("could not check database type: %w", err)
	}
	if dbType != operation.DBTypeSoloMachine {
		return fmt.Errorf("unexpected database type %q: %w", dbType, storage.ErrDataMismatch)
	}
	return nil
}

// IsDBMismatch returns true if the database was created by another application.
func IsDBMismatch(err error) bool {
	return errors.Is(err, storage.ErrDataMismatch)
}

// badgerLogger routes badger's own logging through zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l *badgerLogger) Errorf(msg string, args ...interface{}) {
	l.log.Error().Msgf(msg, args...)
}

func (l *badgerLogger) Warningf(msg string, args ...interface{}) {
	l.log.Warn().Msgf(msg, args...)
}

func (l *badgerLogger) Infof(msg string, args ...interface{}) {
	l.log.Debug().Msgf(msg, args...)
}

func (l *badgerLogger) Debugf(msg string, args ...interface{}) {
	l.log.Trace().Msgf(msg, args...)
}

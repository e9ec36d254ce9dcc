package badger_test

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bstorage "github.com/solo-machine/solo-machine/storage/badger"
	"github.com/solo-machine/solo-machine/storage/badger/operation"
	"github.com/solo-machine/solo-machine/utils/unittest"
)

func TestInitDB(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		require.NoError(t, bstorage.InitDB(db))
		// idempotent
		require.NoError(t, bstorage.InitDB(db))
	})
}

func TestInitDB_Mismatch(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		require.NoError(t, db.Update(operation.InsertDBType("some-other-app")))

		err := bstorage.InitDB(db)
		require.Error(t, err)
		assert.True(t, bstorage.IsDBMismatch(err))
	})
}

func TestOpen(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		db, err := bstorage.Open(dir, unittest.Logger())
		require.NoError(t, err)
		require.NoError(t, db.Close())

		// reopening an existing solo machine database succeeds
		db, err = bstorage.Open(dir, unittest.Logger())
		require.NoError(t, err)
		require.NoError(t, db.Close())
	})
}

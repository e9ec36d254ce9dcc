package badger_test

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/storage"
	bstorage "github.com/solo-machine/solo-machine/storage/badger"
	"github.com/solo-machine/solo-machine/utils/unittest"
)

func TestIBCClients(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		store := bstorage.NewIBC(db)
		clientID := unittest.IdentifierFixture(ibc.TendermintClientPrefix)
		state := unittest.TendermintClientStateFixture("testchain-1")

		_, err := store.Client(clientID)
		require.ErrorIs(t, err, storage.ErrNotFound)

		require.NoError(t, store.StoreClient(clientID, state))
		require.ErrorIs(t, store.StoreClient(clientID, state), storage.ErrAlreadyExists)

		actual, err := store.Client(clientID)
		require.NoError(t, err)
		if diff := cmp.Diff(state, actual); diff != "" {
			t.Fatalf("stored client state mismatch (-want +got):\n%s", diff)
		}

		state.LatestHeight.RevisionHeight++
		require.NoError(t, store.UpdateClient(clientID, state))
		actual, err = store.Client(clientID)
		require.NoError(t, err)
		assert.Equal(t, state.LatestHeight, actual.LatestHeight)
	})
}

func TestIBCConnectionLifecycle(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		store := bstorage.NewIBC(db)
		connectionID := unittest.IdentifierFixture(ibc.ConnectionPrefix)
		end := unittest.ConnectionEndFixture(ibc.StateInit)

		require.ErrorIs(t, store.UpdateConnection(connectionID, end), storage.ErrNotFound)
		require.NoError(t, store.StoreConnection(connectionID, end))

		end.State = ibc.StateOpen
		require.NoError(t, store.UpdateConnection(connectionID, end))

		actual, err := store.Connection(connectionID)
		require.NoError(t, err)
		assert.Equal(t, ibc.StateOpen, actual.State)
		assert.Equal(t, end, actual)
	})
}

func TestIBCChannelLifecycle(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		store := bstorage.NewIBC(db)
		channelID := unittest.IdentifierFixture(ibc.ChannelPrefix)
		end := unittest.ChannelEndFixture(ibc.StateTryOpen)

		_, err := store.Channel(ibc.TransferPort, channelID)
		require.ErrorIs(t, err, storage.ErrNotFound)

		require.NoError(t, store.StoreChannel(ibc.TransferPort, channelID, end))
		end.State = ibc.StateOpen
		require.NoError(t, store.UpdateChannel(ibc.TransferPort, channelID, end))

		actual, err := store.Channel(ibc.TransferPort, channelID)
		require.NoError(t, err)
		assert.Equal(t, end, actual)
	})
}

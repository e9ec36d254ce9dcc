package operation

import (
	"time"

	"github.com/dgraph-io/badger/v2"

	"github.com/solo-machine/solo-machine/model/ibc"
)

// msgpack decodes timestamps in the local time zone; all stored timestamps are
// handed out in UTC instead.
func utc(ts *time.Time) {
	*ts = ts.UTC()
}

func retrieveChainUTC(key []byte, chain *ibc.Chain) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		err := retrieve(key, chain)(tx)
		if err != nil {
			return err
		}
		normalizeChain(chain)
		return nil
	}
}

func normalizeChain(chain *ibc.Chain) {
	utc(&chain.ConsensusTimestamp)
	utc(&chain.CreatedAt)
	utc(&chain.UpdatedAt)
}

func retrieveClientUTC(key []byte, state *ibc.TendermintClientState) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		err := retrieve(key, state)(tx)
		if err != nil {
			return err
		}
		utc(&state.ConsensusState.Timestamp)
		return nil
	}
}

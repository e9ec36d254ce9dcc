package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/solo-machine/solo-machine/model/ibc"
)

// InsertChain inserts a chain record keyed by its chain ID.
// Returns storage.ErrAlreadyExists if the chain was inserted before.
func InsertChain(chain *ibc.Chain) func(*badger.Txn) error {
	return insert(makePrefix(codeChain, chain.ID), chain)
}

// UpdateChain overwrites an existing chain record.
// Returns storage.ErrNotFound if the chain does not exist.
func UpdateChain(chain *ibc.Chain) func(*badger.Txn) error {
	return update(makePrefix(codeChain, chain.ID), chain)
}

// RetrieveChain retrieves the chain record with the given ID.
// Returns storage.ErrNotFound if the chain does not exist.
func RetrieveChain(chainID ibc.ChainID, chain *ibc.Chain) func(*badger.Txn) error {
	return retrieveChainUTC(makePrefix(codeChain, chainID), chain)
}

// ChainExists checks whether a chain record with the given ID exists.
func ChainExists(chainID ibc.ChainID, chainExists *bool) func(*badger.Txn) error {
	return exists(makePrefix(codeChain, chainID), chainExists)
}

// LookupChains collects all chain records in ascending chain ID order.
func LookupChains(chains *[]*ibc.Chain) func(*badger.Txn) error {
	*chains = make([]*ibc.Chain, 0)
	iteration := func() (interface{}, func() error) {
		var chain ibc.Chain
		return &chain, func() error {
			normalizeChain(&chain)
			*chains = append(*chains, &chain)
			return nil
		}
	}
	return traverse(makePrefix(codeChain), iteration)
}

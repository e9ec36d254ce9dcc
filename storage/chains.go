package storage

import (
	"github.com/solo-machine/solo-machine/model/ibc"
)

// Chains persists the solo machine's records of IBC enabled chains.
type Chains interface {

	// Store inserts a new chain record.
	// Returns ErrAlreadyExists if a chain with the same ID was added before.
	Store(chain *ibc.Chain) error

	// ByID returns the chain with the given ID.
	// Returns ErrNotFound if the chain is unknown.
	ByID(chainID ibc.ChainID) (*ibc.Chain, error)

	// All returns every stored chain, ordered by chain ID.
	All() ([]*ibc.Chain, error)

	// Update reads the chain, applies modify to it and writes it back within a
	// single transaction. An error from modify aborts the transaction.
	// Returns ErrNotFound if the chain is unknown.
	Update(chainID ibc.ChainID, modify func(*ibc.Chain) error) (*ibc.Chain, error)

	// ConsumeSequence returns the chain's current solo machine sequence and
	// increments the stored value.
	ConsumeSequence(chainID ibc.ChainID) (uint64, error)

	// ConsumePacketSequence returns the chain's current packet sequence and
	// increments the stored value.
	ConsumePacketSequence(chainID ibc.ChainID) (uint64, error)

	// SetConnectionDetails records the identifiers of an established connection.
	// Returns ErrAlreadyExists if the chain already has connection details.
	SetConnectionDetails(chainID ibc.ChainID, details ibc.ConnectionDetails) error
}

package ibc

import (
	"time"
)

// State is the handshake state of a connection or channel end.
type State int

const (
	StateUninitialized State = iota
	StateInit
	StateTryOpen
	StateOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateTryOpen:
		return "TRYOPEN"
	case StateOpen:
		return "OPEN"
	default:
		return "UNINITIALIZED"
	}
}

// Order is the packet ordering of a channel.
type Order int

const (
	OrderUnordered Order = iota
	OrderOrdered
)

// TransferVersion is the ICS-20 channel version.
const TransferVersion = "ics20-1"

// Height is a block height qualified by the chain's revision.
type Height struct {
	RevisionNumber uint64
	RevisionHeight uint64
}

// IsZero returns true if the height has not been set.
func (h Height) IsZero() bool {
	return h.RevisionNumber == 0 && h.RevisionHeight == 0
}

// Header is the subset of a chain's block header the solo machine needs to track
// the chain with a tendermint client.
type Header struct {
	ChainID            ChainID
	Height             Height
	Time               time.Time
	AppHash            []byte
	NextValidatorsHash []byte
}

// TendermintClientState is a tendermint light client hosted on the solo machine.
type TendermintClientState struct {
	ChainID        ChainID
	TrustingPeriod time.Duration
	MaxClockDrift  time.Duration
	LatestHeight   Height
	// ConsensusState is the consensus state at LatestHeight.
	ConsensusState ConsensusState
}

// ConsensusState is the state of the tracked chain at one height.
type ConsensusState struct {
	Timestamp          time.Time
	Root               []byte
	NextValidatorsHash []byte
}

// ConnectionCounterparty is the remote end of a connection.
type ConnectionCounterparty struct {
	ClientID     Identifier
	ConnectionID Identifier
}

// ConnectionEnd is a connection as stored by one side of the handshake.
type ConnectionEnd struct {
	State        State
	ClientID     Identifier
	Counterparty ConnectionCounterparty
	DelayPeriod  time.Duration
}

// ChannelCounterparty is the remote end of a channel.
type ChannelCounterparty struct {
	PortID    Identifier
	ChannelID Identifier
}

// ChannelEnd is a channel as stored by one side of the handshake.
type ChannelEnd struct {
	State          State
	Ordering       Order
	Counterparty   ChannelCounterparty
	ConnectionHops []Identifier
	Version        string
}

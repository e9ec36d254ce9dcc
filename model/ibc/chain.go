package ibc

import (
	"fmt"
	"time"
)

// Default values of a chain's configuration.
const (
	DefaultFeeAmount      = 1000
	DefaultGasLimit       = 300000
	DefaultTrustingPeriod = 14 * 24 * time.Hour
	DefaultMaxClockDrift  = 3 * time.Second
	DefaultRPCTimeout     = 60 * time.Second
	DefaultDiversifier    = "solo-machine-diversifier"
)

// Fee is paid for every transaction the solo machine submits to the chain.
type Fee struct {
	Amount   uint64
	Denom    Identifier
	GasLimit uint64
}

// ChainConfig is the operator supplied configuration of an IBC enabled chain.
type ChainConfig struct {
	// GatewayAddr is the base URL of the chain's transaction gateway.
	GatewayAddr    string
	Fee            Fee
	TrustingPeriod time.Duration
	MaxClockDrift  time.Duration
	RPCTimeout     time.Duration
	// Diversifier is mixed into every solo machine signature so that signatures
	// cannot be replayed against another solo machine client with the same key.
	Diversifier string
	PortID      Identifier
}

// Validate checks the configuration for values the handshake cannot work with.
func (c ChainConfig) Validate() error {
	if c.GatewayAddr == "" {
		return fmt.Errorf("gateway address must not be empty")
	}
	if c.Fee.Denom == "" {
		return fmt.Errorf("fee denom must not be empty")
	}
	if c.TrustingPeriod <= 0 {
		return fmt.Errorf("trusting period must be positive, got %s", c.TrustingPeriod)
	}
	if c.MaxClockDrift < 0 {
		return fmt.Errorf("max clock drift must not be negative, got %s", c.MaxClockDrift)
	}
	if c.Diversifier == "" {
		return fmt.Errorf("diversifier must not be empty")
	}
	if c.PortID == "" {
		return fmt.Errorf("port id must not be empty")
	}
	return nil
}

// Chain is the solo machine's record of an IBC enabled chain.
type Chain struct {
	ID     ChainID
	Config ChainConfig
	// ConsensusTimestamp is the timestamp of the solo machine's latest consensus
	// state as known by the chain.
	ConsensusTimestamp time.Time
	// Sequence is the next sequence of the solo machine client on the chain. Every
	// solo machine signature consumes one sequence.
	Sequence uint64
	// PacketSequence is the sequence of the next packet sent by the solo machine.
	PacketSequence uint64
	// PublicKeyAlgo and PublicKey identify the signer currently registered with the
	// solo machine client on the chain. PublicKey is SEC1 compressed.
	PublicKeyAlgo string
	PublicKey     []byte
	// ConnectionDetails is nil until a connection has been established.
	ConnectionDetails *ConnectionDetails
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsConnected returns true if the handshake with the chain has completed.
func (c *Chain) IsConnected() bool {
	return c.ConnectionDetails != nil
}

// Copy returns a deep copy of the chain. Mutating the copy never affects c.
func (c *Chain) Copy() *Chain {
	cp := *c
	if c.PublicKey != nil {
		cp.PublicKey = append([]byte(nil), c.PublicKey...)
	}
	if c.ConnectionDetails != nil {
		details := *c.ConnectionDetails
		cp.ConnectionDetails = &details
	}
	return &cp
}

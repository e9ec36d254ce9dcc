// Package rpc defines the solo machine's view of a remote IBC enabled chain: one
// method per remote step of the handshake, token transfers and signer rotation.
//
// Implementations submit transactions on behalf of the solo machine's signer and
// block until the chain has included them. They own any retry policy; callers treat
// every returned error as terminal.
package rpc

import (
	"context"

	"github.com/solo-machine/solo-machine/model/ibc"
)

// Chain is a remote IBC enabled chain.
type Chain interface {

	// LatestHeader returns the chain's latest committed header, which the solo machine
	// uses to create and update the tendermint client tracking the chain.
	LatestHeader(ctx context.Context) (*ibc.Header, error)

	// CreateSoloMachineClient creates a solo machine client on the chain and returns
	// its identifier.
	CreateSoloMachineClient(ctx context.Context, req *CreateSoloMachineClientRequest) (ibc.Identifier, error)

	// ConnectionOpenTry answers the solo machine's connection INIT and returns the
	// identifier of the connection end created on the chain.
	ConnectionOpenTry(ctx context.Context, req *ConnectionOpenTryRequest) (ibc.Identifier, error)

	// ConnectionOpenConfirm moves the chain's connection end to OPEN.
	ConnectionOpenConfirm(ctx context.Context, req *ConnectionOpenConfirmRequest) error

	// ChannelOpenInit creates a channel end on the chain and returns its identifier.
	ChannelOpenInit(ctx context.Context, req *ChannelOpenInitRequest) (ibc.Identifier, error)

	// ChannelOpenAck moves the chain's channel end to OPEN.
	ChannelOpenAck(ctx context.Context, req *ChannelOpenAckRequest) error

	// RecvPacket delivers a packet sent by the solo machine to the chain.
	RecvPacket(ctx context.Context, req *RecvPacketRequest) error

	// Transfer sends tokens from the signer's account on the chain over a channel.
	Transfer(ctx context.Context, req *TransferRequest) error

	// UpdateSoloMachineClient replaces the public key of the solo machine client.
	UpdateSoloMachineClient(ctx context.Context, req *UpdateSoloMachineClientRequest) error
}

// Factory connects to the chain described by a chain record.
type Factory interface {
	Connect(chain *ibc.Chain) (Chain, error)
}

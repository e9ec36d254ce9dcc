// Package events defines the milestones reported by the solo machine while it
// executes a flow against an IBC enabled chain.
//
// Event is a closed union: only the types in this package implement it. Events are
// immutable values; producers create them once a step has completed and hand them
// over to an event channel.
package events

import (
	"github.com/solo-machine/solo-machine/crypto"
	"github.com/solo-machine/solo-machine/model/ibc"
)

// Type names an event variant.
type Type string

// List of event types.
const (
	TypeTokensSent                         Type = "tokens_sent"
	TypeTokensReceived                     Type = "tokens_received"
	TypeSignerUpdated                      Type = "signer_updated"
	TypeCreatedSoloMachineClient           Type = "created_solo_machine_client"
	TypeCreatedTendermintClient            Type = "created_tendermint_client"
	TypeInitializedConnectionOnTendermint  Type = "initialized_connection_on_tendermint"
	TypeInitializedConnectionOnSoloMachine Type = "initialized_connection_on_solo_machine"
	TypeConfirmedConnectionOnTendermint    Type = "confirmed_connection_on_tendermint"
	TypeConfirmedConnectionOnSoloMachine   Type = "confirmed_connection_on_solo_machine"
	TypeInitializedChannelOnTendermint     Type = "initialized_channel_on_tendermint"
	TypeInitializedChannelOnSoloMachine    Type = "initialized_channel_on_solo_machine"
	TypeConfirmedChannelOnTendermint       Type = "confirmed_channel_on_tendermint"
	TypeConfirmedChannelOnSoloMachine      Type = "confirmed_channel_on_solo_machine"
	TypeConnectionEstablished              Type = "connection_established"
	TypeChainAdded                         Type = "chain_added"
)

// Event is a completed milestone.
type Event interface {
	// Type returns the variant of the event.
	Type() Type
	sealed()
}

// TokensSent is emitted once tokens were sent from the solo machine to the chain.
type TokensSent struct {
	ChainID     ibc.ChainID
	FromAddress string
	ToAddress   string
	Amount      uint64
	Denom       ibc.Identifier
}

// TokensReceived is emitted once tokens were received by the solo machine from the chain.
type TokensReceived struct {
	ChainID     ibc.ChainID
	FromAddress string
	ToAddress   string
	Amount      uint64
	Denom       ibc.Identifier
}

// SignerUpdated is emitted once the chain accepted a new solo machine public key.
type SignerUpdated struct {
	ChainID      ibc.ChainID
	OldPublicKey crypto.PublicKey
	NewPublicKey crypto.PublicKey
}

// CreatedSoloMachineClient is emitted once a solo machine client exists on the chain.
type CreatedSoloMachineClient struct {
	ClientID ibc.Identifier
}

// CreatedTendermintClient is emitted once a tendermint client exists on the solo machine.
type CreatedTendermintClient struct {
	ClientID ibc.Identifier
}

type InitializedConnectionOnTendermint struct {
	ConnectionID ibc.Identifier
}

type InitializedConnectionOnSoloMachine struct {
	ConnectionID ibc.Identifier
}

type ConfirmedConnectionOnTendermint struct {
	ConnectionID ibc.Identifier
}

type ConfirmedConnectionOnSoloMachine struct {
	ConnectionID ibc.Identifier
}

type InitializedChannelOnTendermint struct {
	ChannelID ibc.Identifier
}

type InitializedChannelOnSoloMachine struct {
	ChannelID ibc.Identifier
}

type ConfirmedChannelOnTendermint struct {
	ChannelID ibc.Identifier
}

type ConfirmedChannelOnSoloMachine struct {
	ChannelID ibc.Identifier
}

// ConnectionEstablished terminates a successful handshake.
type ConnectionEstablished struct {
	ChainID           ibc.ChainID
	ConnectionDetails ibc.ConnectionDetails
}

// ChainAdded is emitted once a chain has been registered with the solo machine.
type ChainAdded struct {
	ChainID ibc.ChainID
}

func (TokensSent) Type() Type                         { return TypeTokensSent }
func (TokensReceived) Type() Type                     { return TypeTokensReceived }
func (SignerUpdated) Type() Type                      { return TypeSignerUpdated }
func (CreatedSoloMachineClient) Type() Type           { return TypeCreatedSoloMachineClient }
func (CreatedTendermintClient) Type() Type            { return TypeCreatedTendermintClient }
func (InitializedConnectionOnTendermint) Type() Type  { return TypeInitializedConnectionOnTendermint }
func (InitializedConnectionOnSoloMachine) Type() Type { return TypeInitializedConnectionOnSoloMachine }
func (ConfirmedConnectionOnTendermint) Type() Type    { return TypeConfirmedConnectionOnTendermint }
func (ConfirmedConnectionOnSoloMachine) Type() Type   { return TypeConfirmedConnectionOnSoloMachine }
func (InitializedChannelOnTendermint) Type() Type     { return TypeInitializedChannelOnTendermint }
func (InitializedChannelOnSoloMachine) Type() Type    { return TypeInitializedChannelOnSoloMachine }
func (ConfirmedChannelOnTendermint) Type() Type       { return TypeConfirmedChannelOnTendermint }
func (ConfirmedChannelOnSoloMachine) Type() Type      { return TypeConfirmedChannelOnSoloMachine }
func (ConnectionEstablished) Type() Type              { return TypeConnectionEstablished }
func (ChainAdded) Type() Type                         { return TypeChainAdded }

func (TokensSent) sealed()                         {}
func (TokensReceived) sealed()                     {}
func (SignerUpdated) sealed()                      {}
func (CreatedSoloMachineClient) sealed()           {}
func (CreatedTendermintClient) sealed()            {}
func (InitializedConnectionOnTendermint) sealed()  {}
func (InitializedConnectionOnSoloMachine) sealed() {}
func (ConfirmedConnectionOnTendermint) sealed()    {}
func (ConfirmedConnectionOnSoloMachine) sealed()   {}
func (InitializedChannelOnTendermint) sealed()     {}
func (InitializedChannelOnSoloMachine) sealed()    {}
func (ConfirmedChannelOnTendermint) sealed()       {}
func (ConfirmedChannelOnSoloMachine) sealed()      {}
func (ConnectionEstablished) sealed()              {}
func (ChainAdded) sealed()                         {}

// IBCTypes is the vocabulary of the IBC flows (connect, send, receive, update signer).
var IBCTypes = []Type{
	TypeTokensSent,
	TypeTokensReceived,
	TypeSignerUpdated,
	TypeCreatedSoloMachineClient,
	TypeCreatedTendermintClient,
	TypeInitializedConnectionOnTendermint,
	TypeInitializedConnectionOnSoloMachine,
	TypeConfirmedConnectionOnTendermint,
	TypeConfirmedConnectionOnSoloMachine,
	TypeInitializedChannelOnTendermint,
	TypeInitializedChannelOnSoloMachine,
	TypeConfirmedChannelOnTendermint,
	TypeConfirmedChannelOnSoloMachine,
	TypeConnectionEstablished,
}

// ChainTypes is the vocabulary of the chain registry flows.
var ChainTypes = []Type{
	TypeChainAdded,
}

package command

import (
	"context"

	"github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/module"
	"github.com/solo-machine/solo-machine/module/output"
)

// IBCService executes the IBC flows.
type IBCService interface {
	Connect(ctx context.Context, chainID ibc.ChainID, memo string) error
	SendToChain(ctx context.Context, chainID ibc.ChainID, amount uint64, denom string, receiver string, memo string) error
	ReceiveFromChain(ctx context.Context, chainID ibc.ChainID, amount uint64, denom string, receiver string, memo string) error
	UpdateSigner(ctx context.Context, chainID ibc.ChainID, newPublicKeyHex string, algoName string, memo string) error
}

// IBCCommand is one of Connect, Send, Receive or UpdateSigner.
type IBCCommand interface {
	run(ctx context.Context, service IBCService) error
}

// Connect establishes a connection with an IBC enabled chain.
type Connect struct {
	ChainID ibc.ChainID
	Memo    string
}

// Send sends tokens to an IBC enabled chain. An empty Receiver sends to the signer's
// own address.
type Send struct {
	ChainID  ibc.ChainID
	Amount   uint64
	Denom    string
	Receiver string
	Memo     string
}

// Receive receives tokens from an IBC enabled chain. An empty Receiver receives to
// the signer's own address.
type Receive struct {
	ChainID  ibc.ChainID
	Amount   uint64
	Denom    string
	Receiver string
	Memo     string
}

// UpdateSigner replaces the signer's public key on an IBC enabled chain.
type UpdateSigner struct {
	ChainID       ibc.ChainID
	NewPublicKey  string
	PublicKeyAlgo string
	Memo          string
}

func (c Connect) run(ctx context.Context, service IBCService) error {
	return service.Connect(ctx, c.ChainID, c.Memo)
}

func (c Send) run(ctx context.Context, service IBCService) error {
	return service.SendToChain(ctx, c.ChainID, c.Amount, c.Denom, c.Receiver, c.Memo)
}

func (c Receive) run(ctx context.Context, service IBCService) error {
	return service.ReceiveFromChain(ctx, c.ChainID, c.Amount, c.Denom, c.Receiver, c.Memo)
}

func (c UpdateSigner) run(ctx context.Context, service IBCService) error {
	return service.UpdateSigner(ctx, c.ChainID, c.NewPublicKey, c.PublicKeyAlgo, c.Memo)
}

// ExecuteIBC runs the command against a service reporting to the invocation's event
// channel, rendering to sink.
func ExecuteIBC(
	ctx context.Context,
	dispatcher *Dispatcher,
	sink *output.Sink,
	cmd IBCCommand,
	newService func(emitter module.EventEmitter) IBCService,
) error {
	return dispatcher.Dispatch(ctx, NewIBCRenderer(sink), func(ctx context.Context, emitter module.EventEmitter) error {
		return cmd.run(ctx, newService(emitter))
	})
}

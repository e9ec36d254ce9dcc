// Package ibc drives the solo machine's side of the IBC protocol against a remote
// chain: the connection handshake, fungible token transfers in both directions and
// the rotation of the solo machine's signing key.
//
// Every flow reports the milestones it completes to an event emitter, in protocol
// order. A flow stops at the first failing step and does not undo completed steps;
// the caller sees the error and no further event.
package ibc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/solo-machine/solo-machine/crypto"
	"github.com/solo-machine/solo-machine/model/events"
	model "github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/module"
	"github.com/solo-machine/solo-machine/module/metrics"
	"github.com/solo-machine/solo-machine/rpc"
	"github.com/solo-machine/solo-machine/storage"
)

// DefaultMemo is attached to every transaction when the operator does not provide one.
const DefaultMemo = "solo-machine-memo"

// DefaultPacketTimeout bounds how long a packet sent by the solo machine may wait for
// delivery on the chain.
const DefaultPacketTimeout = 10 * time.Minute

// Service executes the IBC flows. Flows on the same chain are serialized; flows on
// different chains may run concurrently.
type Service struct {
	log     zerolog.Logger
	chains  storage.Chains
	ibc     storage.IBC
	factory rpc.Factory
	signer  crypto.Signer
	emitter module.EventEmitter
	metrics module.FlowMetrics
	locks   *ChainLocks
	now     func() time.Time
}

type Option func(*Service)

func WithMetrics(collector module.FlowMetrics) Option {
	return func(s *Service) {
		s.metrics = collector
	}
}

// WithChainLocks shares chain locks between services of the same process.
func WithChainLocks(locks *ChainLocks) Option {
	return func(s *Service) {
		s.locks = locks
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a service reporting to `emitter`. The service never closes the
// emitter; whoever created it does so once the flow returned.
func NewService(
	log zerolog.Logger,
	chains storage.Chains,
	ibcStore storage.IBC,
	factory rpc.Factory,
	signer crypto.Signer,
	emitter module.EventEmitter,
	opts ...Option,
) *Service {
	s := &Service{
		log:     log.With().Str("component", "ibc_service").Logger(),
		chains:  chains,
		ibc:     ibcStore,
		factory: factory,
		signer:  signer,
		emitter: emitter,
		metrics: metrics.NewNoopCollector(),
		locks:   NewChainLocks(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect establishes a client, connection and channel triple between the solo
// machine and the chain. On success the chain's connection details are stored and
// ConnectionEstablished is the last emitted event.
//
// Expected errors:
//   - storage.ErrNotFound if the chain was never added
//   - ProtocolError if the chain is already connected or a handshake step failed
func (s *Service) Connect(ctx context.Context, chainID model.ChainID, memo string) (err error) {
	defer s.track(metrics.FlowConnect, time.Now(), &err)

	unlock, err := s.locks.Lock(ctx, chainID)
	if err != nil {
		return fmt.Errorf("could not lock chain %s: %w", chainID, err)
	}
	defer unlock()

	chain, err := s.chains.ByID(chainID)
	if err != nil {
		return err
	}
	if chain.IsConnected() {
		return NewProtocolErrorf("connect", "chain %s is already connected", chainID)
	}

	remote, err := s.factory.Connect(chain)
	if err != nil {
		return fmt.Errorf("could not connect to chain %s: %w", chainID, err)
	}

	h := &handshake{
		Service: s,
		log:     s.log.With().Str("chain_id", chainID.String()).Logger(),
		remote:  remote,
		chain:   chain,
		memo:    memo,
	}
	details, err := h.run(ctx)
	if err != nil {
		return err
	}

	err = s.chains.SetConnectionDetails(chainID, *details)
	if err != nil {
		return fmt.Errorf("could not store connection details of chain %s: %w", chainID, err)
	}
	return s.emit(events.ConnectionEstablished{ChainID: chainID, ConnectionDetails: *details})
}

// SendToChain sends `amount` of `denom` from the solo machine to `receiver` on the
// chain. An empty receiver means the signer's own account.
//
// Expected errors:
//   - InvalidInputError if amount is zero or denom is not a valid identifier
//   - storage.ErrNotFound if the chain was never added
//   - ProtocolError if the chain is not connected or rejected the packet
func (s *Service) SendToChain(ctx context.Context, chainID model.ChainID, amount uint64, denom string, receiver string, memo string) (err error) {
	defer s.track(metrics.FlowSend, time.Now(), &err)

	denomID, err := validateTransfer(amount, denom)
	if err != nil {
		return err
	}

	unlock, err := s.locks.Lock(ctx, chainID)
	if err != nil {
		return fmt.Errorf("could not lock chain %s: %w", chainID, err)
	}
	defer unlock()

	chain, remote, err := s.connected(chainID)
	if err != nil {
		return err
	}
	sender, receiver, err := s.addresses(ctx, receiver)
	if err != nil {
		return err
	}
	details := chain.ConnectionDetails

	sequence, err := s.chains.ConsumePacketSequence(chainID)
	if err != nil {
		return fmt.Errorf("could not consume packet sequence: %w", err)
	}
	data, err := encodePacketData(denomID, amount, sender, receiver)
	if err != nil {
		return err
	}
	packet := rpc.Packet{
		Sequence:           sequence,
		SourcePort:         chain.Config.PortID,
		SourceChannel:      details.SoloMachineChannelID,
		DestinationPort:    chain.Config.PortID,
		DestinationChannel: details.TendermintChannelID,
		Data:               data,
		TimeoutTimestamp:   uint64(s.now().Add(DefaultPacketTimeout).UnixNano()),
	}
	proof, err := s.prove(ctx, chain, PacketCommitmentPath(packet.SourcePort, packet.SourceChannel, sequence), PacketCommitment(packet))
	if err != nil {
		return err
	}

	err = remote.RecvPacket(ctx, &rpc.RecvPacketRequest{
		Memo:            memo,
		Packet:          packet,
		ProofCommitment: proof,
	})
	if err != nil {
		return NewProtocolError("recv packet", err)
	}
	s.log.Debug().
		Str("chain_id", chainID.String()).
		Uint64("packet_sequence", sequence).
		Msg("packet received by chain")

	return s.emit(events.TokensSent{
		ChainID:     chainID,
		FromAddress: sender,
		ToAddress:   receiver,
		Amount:      amount,
		Denom:       denomID,
	})
}

// ReceiveFromChain transfers `amount` of `denom` from the signer's account on the
// chain to `receiver` on the solo machine. An empty receiver means the signer's own
// account.
//
// Expected errors:
//   - InvalidInputError if amount is zero or denom is not a valid identifier
//   - storage.ErrNotFound if the chain was never added
//   - ProtocolError if the chain is not connected or rejected the transfer
func (s *Service) ReceiveFromChain(ctx context.Context, chainID model.ChainID, amount uint64, denom string, receiver string, memo string) (err error) {
	defer s.track(metrics.FlowReceive, time.Now(), &err)

	denomID, err := validateTransfer(amount, denom)
	if err != nil {
		return err
	}

	unlock, err := s.locks.Lock(ctx, chainID)
	if err != nil {
		return fmt.Errorf("could not lock chain %s: %w", chainID, err)
	}
	defer unlock()

	chain, remote, err := s.connected(chainID)
	if err != nil {
		return err
	}
	sender, receiver, err := s.addresses(ctx, receiver)
	if err != nil {
		return err
	}

	err = remote.Transfer(ctx, &rpc.TransferRequest{
		Memo:          memo,
		SourcePort:    chain.Config.PortID,
		SourceChannel: chain.ConnectionDetails.TendermintChannelID,
		Denom:         denomID,
		Amount:        amount,
		Receiver:      receiver,
	})
	if err != nil {
		return NewProtocolError("transfer", err)
	}

	return s.emit(events.TokensReceived{
		ChainID:     chainID,
		FromAddress: sender,
		ToAddress:   receiver,
		Amount:      amount,
		Denom:       denomID,
	})
}

// headerData is the payload of a signer rotation, signed by the key being replaced.
type headerData struct {
	NewPublicKey   []byte `cbor:"1,keyasint"`
	NewDiversifier string `cbor:"2,keyasint"`
}

// UpdateSigner replaces the public key of the solo machine client on the chain.
// `newPublicKeyHex` is a hex encoded SEC1 key of algorithm `algoName`.
//
// Expected errors:
//   - InvalidInputError if the algorithm is unknown or not enabled in this build, or
//     the key does not decode
//   - storage.ErrNotFound if the chain was never added
//   - ProtocolError if the chain is not connected or rejected the update
func (s *Service) UpdateSigner(ctx context.Context, chainID model.ChainID, newPublicKeyHex string, algoName string, memo string) (err error) {
	defer s.track(metrics.FlowUpdateSigner, time.Now(), &err)

	algo, err := crypto.ParsePublicKeyAlgo(algoName)
	if err != nil {
		return InvalidInputError{Err: err}
	}
	newKey, err := crypto.DecodePublicKeyHex(algo, newPublicKeyHex)
	if err != nil {
		return InvalidInputError{Err: fmt.Errorf("invalid new public key: %w", err)}
	}

	unlock, err := s.locks.Lock(ctx, chainID)
	if err != nil {
		return fmt.Errorf("could not lock chain %s: %w", chainID, err)
	}
	defer unlock()

	chain, remote, err := s.connected(chainID)
	if err != nil {
		return err
	}
	oldKey, err := storedPublicKey(chain)
	if err != nil {
		return err
	}

	proof, err := s.proveObject(ctx, chain, HeaderPath, headerData{
		NewPublicKey:   newKey.Bytes(),
		NewDiversifier: chain.Config.Diversifier,
	})
	if err != nil {
		return err
	}
	err = remote.UpdateSoloMachineClient(ctx, &rpc.UpdateSoloMachineClientRequest{
		Memo:         memo,
		ClientID:     chain.ConnectionDetails.SoloMachineClientID,
		NewPublicKey: newKey,
		Header:       proof,
	})
	if err != nil {
		return NewProtocolError("update solo machine client", err)
	}

	_, err = s.chains.Update(chainID, func(chain *model.Chain) error {
		chain.PublicKeyAlgo = newKey.Algo().String()
		chain.PublicKey = newKey.Bytes()
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not store new public key of chain %s: %w", chainID, err)
	}

	return s.emit(events.SignerUpdated{
		ChainID:      chainID,
		OldPublicKey: oldKey,
		NewPublicKey: newKey,
	})
}

func validateTransfer(amount uint64, denom string) (model.Identifier, error) {
	if amount == 0 {
		return "", NewInvalidInputErrorf("amount must be positive")
	}
	denomID, err := model.NewIdentifier(denom)
	if err != nil {
		return "", InvalidInputError{Err: fmt.Errorf("invalid denom: %w", err)}
	}
	return denomID, nil
}

// connected loads a chain that completed the handshake and connects to it.
func (s *Service) connected(chainID model.ChainID) (*model.Chain, rpc.Chain, error) {
	chain, err := s.chains.ByID(chainID)
	if err != nil {
		return nil, nil, err
	}
	if !chain.IsConnected() {
		return nil, nil, NewProtocolErrorf("check connection", "connection is not established with chain %s", chainID)
	}
	remote, err := s.factory.Connect(chain)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to chain %s: %w", chainID, err)
	}
	return chain, remote, nil
}

// addresses returns the signer's address and the receiver, defaulting to the signer.
func (s *Service) addresses(ctx context.Context, receiver string) (string, string, error) {
	address, err := s.signer.Address(ctx)
	if err != nil {
		return "", "", fmt.Errorf("could not get signer address: %w", err)
	}
	if receiver == "" {
		receiver = address
	}
	return address, receiver, nil
}

func storedPublicKey(chain *model.Chain) (crypto.PublicKey, error) {
	algo, err := crypto.ParsePublicKeyAlgo(chain.PublicKeyAlgo)
	if err != nil {
		return crypto.PublicKey{}, fmt.Errorf("invalid stored public key algorithm of chain %s: %w", chain.ID, err)
	}
	key, err := crypto.ParsePublicKey(algo, chain.PublicKey)
	if err != nil {
		return crypto.PublicKey{}, fmt.Errorf("invalid stored public key of chain %s: %w", chain.ID, err)
	}
	return key, nil
}

func (s *Service) emit(event events.Event) error {
	err := s.emitter.Emit(event)
	if err != nil {
		return fmt.Errorf("could not emit %s event: %w", event.Type(), err)
	}
	return nil
}

func (s *Service) track(flow string, start time.Time, err *error) {
	failed := *err != nil
	s.metrics.FlowFinished(flow, time.Since(start), failed)
	if failed && !errors.Is(*err, context.Canceled) {
		s.log.Debug().Err(*err).Str("flow", flow).Msg("flow failed")
	}
}

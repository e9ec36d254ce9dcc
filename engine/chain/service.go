// Package chain manages the registry of IBC enabled chains the solo machine can
// connect to.
package chain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/solo-machine/solo-machine/crypto"
	"github.com/solo-machine/solo-machine/model/events"
	"github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/module"
	"github.com/solo-machine/solo-machine/module/metrics"
	"github.com/solo-machine/solo-machine/storage"
)

// AddChainRequest is the operator supplied description of a chain.
type AddChainRequest struct {
	ChainID        string        `validate:"required,max=50"`
	GatewayAddr    string        `validate:"required,url"`
	FeeAmount      uint64        `validate:"gte=0"`
	FeeDenom       string        `validate:"required"`
	GasLimit       uint64        `validate:"gt=0"`
	TrustingPeriod time.Duration `validate:"gt=0"`
	MaxClockDrift  time.Duration `validate:"gte=0"`
	RPCTimeout     time.Duration `validate:"gt=0"`
	Diversifier    string        `validate:"required"`
	PortID         string        `validate:"required"`
}

// DefaultAddChainRequest returns a request carrying the default configuration for the
// given chain and gateway.
func DefaultAddChainRequest(chainID string, gatewayAddr string) AddChainRequest {
	return AddChainRequest{
		ChainID:        chainID,
		GatewayAddr:    gatewayAddr,
		FeeAmount:      ibc.DefaultFeeAmount,
		FeeDenom:       "stake",
		GasLimit:       ibc.DefaultGasLimit,
		TrustingPeriod: ibc.DefaultTrustingPeriod,
		MaxClockDrift:  ibc.DefaultMaxClockDrift,
		RPCTimeout:     ibc.DefaultRPCTimeout,
		Diversifier:    ibc.DefaultDiversifier,
		PortID:         ibc.TransferPort.String(),
	}
}

type Service struct {
	log      zerolog.Logger
	chains   storage.Chains
	signer   crypto.Signer
	emitter  module.EventEmitter
	metrics  module.FlowMetrics
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*Service)

func WithMetrics(collector module.FlowMetrics) Option {
	return func(s *Service) {
		s.metrics = collector
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(log zerolog.Logger, chains storage.Chains, signer crypto.Signer, emitter module.EventEmitter, opts ...Option) *Service {
	s := &Service{
		log:      log.With().Str("component", "chain_service").Logger(),
		chains:   chains,
		signer:   signer,
		emitter:  emitter,
		metrics:  metrics.NewNoopCollector(),
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddChain registers a chain with the signer's current public key and initial
// sequences of 1, then emits ChainAdded.
//
// Expected errors:
//   - InvalidInputError if the request is malformed
//   - storage.ErrAlreadyExists if the chain was added before
func (s *Service) AddChain(ctx context.Context, req AddChainRequest) (chain *ibc.Chain, err error) {
	start := time.Now()
	defer func() {
		s.metrics.FlowFinished(metrics.FlowAddChain, time.Since(start), err != nil)
	}()

	chain, err = s.newChain(ctx, req)
	if err != nil {
		return nil, err
	}

	err = s.chains.Store(chain)
	if err != nil {
		return nil, fmt.Errorf("could not store chain %s: %w", chain.ID, err)
	}
	s.log.Info().Str("chain_id", chain.ID.String()).Str("gateway", chain.Config.GatewayAddr).Msg("chain added")

	err = s.emitter.Emit(events.ChainAdded{ChainID: chain.ID})
	if err != nil {
		return nil, fmt.Errorf("could not emit %s event: %w", events.TypeChainAdded, err)
	}
	return chain, nil
}

func (s *Service) newChain(ctx context.Context, req AddChainRequest) (*ibc.Chain, error) {
	err := s.validate.Struct(req)
	if err != nil {
		return nil, InvalidInputError{Err: validationError(err)}
	}
	chainID, err := ibc.NewChainID(req.ChainID)
	if err != nil {
		return nil, InvalidInputError{Err: err}
	}
	feeDenom, err := ibc.NewIdentifier(req.FeeDenom)
	if err != nil {
		return nil, NewInvalidInputErrorf("invalid fee denom: %w", err)
	}
	portID, err := ibc.NewIdentifier(req.PortID)
	if err != nil {
		return nil, NewInvalidInputErrorf("invalid port id: %w", err)
	}

	config := ibc.ChainConfig{
		GatewayAddr: strings.TrimSuffix(req.GatewayAddr, "/"),
		Fee: ibc.Fee{
			Amount:   req.FeeAmount,
			Denom:    feeDenom,
			GasLimit: req.GasLimit,
		},
		TrustingPeriod: req.TrustingPeriod,
		MaxClockDrift:  req.MaxClockDrift,
		RPCTimeout:     req.RPCTimeout,
		Diversifier:    req.Diversifier,
		PortID:         portID,
	}
	err = config.Validate()
	if err != nil {
		return nil, InvalidInputError{Err: err}
	}

	key, err := s.signer.PublicKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get signer public key: %w", err)
	}
	now := s.now()
	return &ibc.Chain{
		ID:                 chainID,
		Config:             config,
		ConsensusTimestamp: now,
		Sequence:           1,
		PacketSequence:     1,
		PublicKeyAlgo:      key.Algo().String(),
		PublicKey:          key.Bytes(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// Chain returns the chain with the given ID.
//
// Expected errors:
//   - InvalidInputError if the chain ID is malformed
//   - storage.ErrNotFound if the chain is unknown
func (s *Service) Chain(chainID string) (*ibc.Chain, error) {
	id, err := ibc.NewChainID(chainID)
	if err != nil {
		return nil, InvalidInputError{Err: err}
	}
	return s.chains.ByID(id)
}

// Chains returns every registered chain.
func (s *Service) Chains() ([]*ibc.Chain, error) {
	return s.chains.All()
}

// validationError flattens validator errors into one readable message.
func validationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		if fieldErr.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fieldErr.Field(), fieldErr.Tag(), fieldErr.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("invalid chain: %s", strings.Join(msgs, ", "))
}

package ibc

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/solo-machine/solo-machine/model/events"
	model "github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/rpc"
)

// handshake holds the state of one Connect flow. Identifiers are filled in as the
// steps complete.
type handshake struct {
	*Service
	log    zerolog.Logger
	remote rpc.Chain
	chain  *model.Chain
	memo   string

	details model.ConnectionDetails
}

func (h *handshake) run(ctx context.Context) (*model.ConnectionDetails, error) {
	steps := []struct {
		name string
		run  func(context.Context) (events.Event, error)
	}{
		{"create solo machine client", h.createSoloMachineClient},
		{"create tendermint client", h.createTendermintClient},
		{"init connection on solo machine", h.initConnectionOnSoloMachine},
		{"init connection on tendermint", h.initConnectionOnTendermint},
		{"confirm connection on tendermint", h.confirmConnectionOnTendermint},
		{"confirm connection on solo machine", h.confirmConnectionOnSoloMachine},
		{"init channel on tendermint", h.initChannelOnTendermint},
		{"init channel on solo machine", h.initChannelOnSoloMachine},
		{"confirm channel on tendermint", h.confirmChannelOnTendermint},
		{"confirm channel on solo machine", h.confirmChannelOnSoloMachine},
	}

	for _, step := range steps {
		// a cancelled flow stops between steps even if the last remote call ignored ctx
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("handshake interrupted before %s: %w", step.name, err)
		}
		event, err := step.run(ctx)
		if err != nil {
			return nil, err
		}
		h.log.Debug().Str("step", step.name).Str("event", string(event.Type())).Msg("handshake step completed")
		err = h.emit(event)
		if err != nil {
			return nil, err
		}
	}
	return &h.details, nil
}

func (h *handshake) createSoloMachineClient(ctx context.Context) (events.Event, error) {
	key, err := h.signer.PublicKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get signer public key: %w", err)
	}
	now := h.now()
	chain, err := h.chains.Update(h.chain.ID, func(chain *model.Chain) error {
		chain.ConsensusTimestamp = now
		chain.PublicKeyAlgo = key.Algo().String()
		chain.PublicKey = key.Bytes()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not update consensus timestamp: %w", err)
	}
	h.chain = chain

	clientID, err := h.remote.CreateSoloMachineClient(ctx, &rpc.CreateSoloMachineClientRequest{
		Memo:        h.memo,
		PublicKey:   key,
		Diversifier: chain.Config.Diversifier,
		Sequence:    chain.Sequence,
		Timestamp:   uint64(chain.ConsensusTimestamp.Unix()),
	})
	if err != nil {
		return nil, NewProtocolError("create solo machine client", err)
	}
	h.details.SoloMachineClientID = clientID
	return events.CreatedSoloMachineClient{ClientID: clientID}, nil
}

func (h *handshake) createTendermintClient(ctx context.Context) (events.Event, error) {
	header, err := h.remote.LatestHeader(ctx)
	if err != nil {
		return nil, NewProtocolError("fetch latest header", err)
	}
	if header.ChainID != h.chain.ID {
		return nil, NewProtocolErrorf("fetch latest header", "header is for chain %s, expected %s", header.ChainID, h.chain.ID)
	}

	clientID, err := model.GenerateIdentifier(model.TendermintClientPrefix)
	if err != nil {
		return nil, err
	}
	state := &model.TendermintClientState{
		ChainID:        h.chain.ID,
		TrustingPeriod: h.chain.Config.TrustingPeriod,
		MaxClockDrift:  h.chain.Config.MaxClockDrift,
		LatestHeight:   header.Height,
		ConsensusState: model.ConsensusState{
			Timestamp:          header.Time,
			Root:               header.AppHash,
			NextValidatorsHash: header.NextValidatorsHash,
		},
	}
	err = h.ibc.StoreClient(clientID, state)
	if err != nil {
		return nil, fmt.Errorf("could not store tendermint client: %w", err)
	}
	h.details.TendermintClientID = clientID
	return events.CreatedTendermintClient{ClientID: clientID}, nil
}

func (h *handshake) initConnectionOnSoloMachine(_ context.Context) (events.Event, error) {
	connectionID, err := model.GenerateIdentifier(model.ConnectionPrefix)
	if err != nil {
		return nil, err
	}
	err = h.ibc.StoreConnection(connectionID, &model.ConnectionEnd{
		State:    model.StateInit,
		ClientID: h.details.TendermintClientID,
		Counterparty: model.ConnectionCounterparty{
			ClientID: h.details.SoloMachineClientID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not store connection: %w", err)
	}
	h.details.SoloMachineConnectionID = connectionID
	return events.InitializedConnectionOnSoloMachine{ConnectionID: connectionID}, nil
}

func (h *handshake) initConnectionOnTendermint(ctx context.Context) (events.Event, error) {
	connection, err := h.ibc.Connection(h.details.SoloMachineConnectionID)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve connection: %w", err)
	}
	clientState, err := h.ibc.Client(h.details.TendermintClientID)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve tendermint client: %w", err)
	}

	proofInit, err := h.proveObject(ctx, h.chain, ConnectionPath(h.details.SoloMachineConnectionID), connection)
	if err != nil {
		return nil, err
	}
	proofClient, err := h.proveObject(ctx, h.chain, ClientStatePath(h.details.TendermintClientID), clientState)
	if err != nil {
		return nil, err
	}

	connectionID, err := h.remote.ConnectionOpenTry(ctx, &rpc.ConnectionOpenTryRequest{
		Memo:                     h.memo,
		ClientID:                 h.details.SoloMachineClientID,
		CounterpartyClientID:     h.details.TendermintClientID,
		CounterpartyConnectionID: h.details.SoloMachineConnectionID,
		ClientState:              clientState,
		ProofInit:                proofInit,
		ProofClient:              proofClient,
	})
	if err != nil {
		return nil, NewProtocolError("connection open try", err)
	}
	h.details.TendermintConnectionID = connectionID
	return events.InitializedConnectionOnTendermint{ConnectionID: connectionID}, nil
}

func (h *handshake) confirmConnectionOnTendermint(ctx context.Context) (events.Event, error) {
	// the chain confirms against the end the solo machine is about to open
	open := &model.ConnectionEnd{
		State:    model.StateOpen,
		ClientID: h.details.TendermintClientID,
		Counterparty: model.ConnectionCounterparty{
			ClientID:     h.details.SoloMachineClientID,
			ConnectionID: h.details.TendermintConnectionID,
		},
	}
	proofAck, err := h.proveObject(ctx, h.chain, ConnectionPath(h.details.SoloMachineConnectionID), open)
	if err != nil {
		return nil, err
	}

	err = h.remote.ConnectionOpenConfirm(ctx, &rpc.ConnectionOpenConfirmRequest{
		Memo:         h.memo,
		ConnectionID: h.details.TendermintConnectionID,
		ProofAck:     proofAck,
	})
	if err != nil {
		return nil, NewProtocolError("connection open confirm", err)
	}
	return events.ConfirmedConnectionOnTendermint{ConnectionID: h.details.TendermintConnectionID}, nil
}

func (h *handshake) confirmConnectionOnSoloMachine(_ context.Context) (events.Event, error) {
	connection, err := h.ibc.Connection(h.details.SoloMachineConnectionID)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve connection: %w", err)
	}
	connection.State = model.StateOpen
	connection.Counterparty.ConnectionID = h.details.TendermintConnectionID

	err = h.ibc.UpdateConnection(h.details.SoloMachineConnectionID, connection)
	if err != nil {
		return nil, fmt.Errorf("could not open connection: %w", err)
	}
	return events.ConfirmedConnectionOnSoloMachine{ConnectionID: h.details.SoloMachineConnectionID}, nil
}

func (h *handshake) initChannelOnTendermint(ctx context.Context) (events.Event, error) {
	channelID, err := h.remote.ChannelOpenInit(ctx, &rpc.ChannelOpenInitRequest{
		Memo:               h.memo,
		PortID:             h.chain.Config.PortID,
		ConnectionID:       h.details.TendermintConnectionID,
		CounterpartyPortID: h.chain.Config.PortID,
		Version:            model.TransferVersion,
	})
	if err != nil {
		return nil, NewProtocolError("channel open init", err)
	}
	h.details.TendermintChannelID = channelID
	return events.InitializedChannelOnTendermint{ChannelID: channelID}, nil
}

func (h *handshake) initChannelOnSoloMachine(_ context.Context) (events.Event, error) {
	channelID, err := model.GenerateIdentifier(model.ChannelPrefix)
	if err != nil {
		return nil, err
	}
	err = h.ibc.StoreChannel(h.chain.Config.PortID, channelID, &model.ChannelEnd{
		State:    model.StateTryOpen,
		Ordering: model.OrderUnordered,
		Counterparty: model.ChannelCounterparty{
			PortID:    h.chain.Config.PortID,
			ChannelID: h.details.TendermintChannelID,
		},
		ConnectionHops: []model.Identifier{h.details.SoloMachineConnectionID},
		Version:        model.TransferVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("could not store channel: %w", err)
	}
	h.details.SoloMachineChannelID = channelID
	return events.InitializedChannelOnSoloMachine{ChannelID: channelID}, nil
}

func (h *handshake) confirmChannelOnTendermint(ctx context.Context) (events.Event, error) {
	channel, err := h.ibc.Channel(h.chain.Config.PortID, h.details.SoloMachineChannelID)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve channel: %w", err)
	}
	proofTry, err := h.proveObject(ctx, h.chain, ChannelPath(h.chain.Config.PortID, h.details.SoloMachineChannelID), channel)
	if err != nil {
		return nil, err
	}

	err = h.remote.ChannelOpenAck(ctx, &rpc.ChannelOpenAckRequest{
		Memo:                  h.memo,
		PortID:                h.chain.Config.PortID,
		ChannelID:             h.details.TendermintChannelID,
		CounterpartyChannelID: h.details.SoloMachineChannelID,
		CounterpartyVersion:   channel.Version,
		ProofTry:              proofTry,
	})
	if err != nil {
		return nil, NewProtocolError("channel open ack", err)
	}
	return events.ConfirmedChannelOnTendermint{ChannelID: h.details.TendermintChannelID}, nil
}

func (h *handshake) confirmChannelOnSoloMachine(_ context.Context) (events.Event, error) {
	channel, err := h.ibc.Channel(h.chain.Config.PortID, h.details.SoloMachineChannelID)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve channel: %w", err)
	}
	channel.State = model.StateOpen

	err = h.ibc.UpdateChannel(h.chain.Config.PortID, h.details.SoloMachineChannelID, channel)
	if err != nil {
		return nil, fmt.Errorf("could not open channel: %w", err)
	}
	return events.ConfirmedChannelOnSoloMachine{ChannelID: h.details.SoloMachineChannelID}, nil
}

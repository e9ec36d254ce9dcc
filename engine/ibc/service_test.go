package ibc_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/solo-machine/solo-machine/crypto"
	"github.com/solo-machine/solo-machine/engine/ibc"
	"github.com/solo-machine/solo-machine/model/events"
	model "github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/rpc"
	rpcmock "github.com/solo-machine/solo-machine/rpc/mock"
	"github.com/solo-machine/solo-machine/storage"
	bstorage "github.com/solo-machine/solo-machine/storage/badger"
	"github.com/solo-machine/solo-machine/utils/unittest"
)

// recorder collects emitted events.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Emit(event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

func (r *recorder) Types() []events.Type {
	var types []events.Type
	for _, event := range r.Events() {
		types = append(types, event.Type())
	}
	return types
}

type ServiceSuite struct {
	suite.Suite

	dir      string
	db       *badger.DB
	chains   *bstorage.Chains
	ibcStore *bstorage.IBC
	factory  *rpcmock.Factory
	remote   *rpcmock.Chain
	signer   *crypto.MnemonicSigner
	recorder *recorder
	now      time.Time
	service  *ibc.Service
}

func TestService(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.dir = unittest.TempDir(s.T())
	s.db = unittest.BadgerDB(s.T(), s.dir)
	s.chains = bstorage.NewChains(s.db)
	s.ibcStore = bstorage.NewIBC(s.db)
	s.factory = rpcmock.NewFactory(s.T())
	s.remote = rpcmock.NewChain(s.T())
	s.signer = unittest.SignerFixture(s.T())
	s.recorder = &recorder{}
	s.now = time.Unix(1_700_000_000, 0).UTC()

	s.service = ibc.NewService(
		unittest.Logger(),
		s.chains,
		s.ibcStore,
		s.factory,
		s.signer,
		s.recorder,
		ibc.WithClock(func() time.Time { return s.now }),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
	s.Require().NoError(os.RemoveAll(s.dir))
}

// storeChain stores a chain registered with the test signer's key.
func (s *ServiceSuite) storeChain(opts ...func(*model.Chain)) *model.Chain {
	key, err := s.signer.PublicKey(context.Background())
	s.Require().NoError(err)

	opts = append([]func(*model.Chain){func(chain *model.Chain) {
		chain.PublicKey = key.Bytes()
	}}, opts...)
	chain := unittest.ChainFixture(opts...)
	s.Require().NoError(s.chains.Store(chain))
	return chain
}

func (s *ServiceSuite) storeConnectedChain() *model.Chain {
	return s.storeChain(unittest.WithConnectionDetails(unittest.ConnectionDetailsFixture()))
}

func (s *ServiceSuite) signerKey() crypto.PublicKey {
	key, err := s.signer.PublicKey(context.Background())
	s.Require().NoError(err)
	return key
}

func (s *ServiceSuite) signerAddress() string {
	address, err := s.signer.Address(context.Background())
	s.Require().NoError(err)
	return address
}

// expectHandshake registers the remote side of a successful handshake.
func (s *ServiceSuite) expectHandshake(chain *model.Chain) {
	s.remote.On("CreateSoloMachineClient", mock.Anything, mock.Anything).Return(model.Identifier("06-solomachine-0"), nil).Once()
	s.remote.On("LatestHeader", mock.Anything).Return(unittest.HeaderFixture(chain.ID), nil).Once()
	s.remote.On("ConnectionOpenTry", mock.Anything, mock.Anything).Return(model.Identifier("connection-0"), nil).Once()
	s.remote.On("ConnectionOpenConfirm", mock.Anything, mock.Anything).Return(nil).Once()
	s.remote.On("ChannelOpenInit", mock.Anything, mock.Anything).Return(model.Identifier("channel-0"), nil).Once()
	s.remote.On("ChannelOpenAck", mock.Anything, mock.Anything).Return(nil).Once()
}

func (s *ServiceSuite) TestConnect() {
	chain := s.storeChain()
	s.factory.On("Connect", mock.Anything).Return(s.remote, nil).Once()
	s.expectHandshake(chain)

	err := s.service.Connect(context.Background(), chain.ID, ibc.DefaultMemo)
	s.Require().NoError(err)

	s.Assert().Equal([]events.Type{
		events.TypeCreatedSoloMachineClient,
		events.TypeCreatedTendermintClient,
		events.TypeInitializedConnectionOnSoloMachine,
		events.TypeInitializedConnectionOnTendermint,
		events.TypeConfirmedConnectionOnTendermint,
		events.TypeConfirmedConnectionOnSoloMachine,
		events.TypeInitializedChannelOnTendermint,
		events.TypeInitializedChannelOnSoloMachine,
		events.TypeConfirmedChannelOnTendermint,
		events.TypeConfirmedChannelOnSoloMachine,
		events.TypeConnectionEstablished,
	}, s.recorder.Types())

	emitted := s.recorder.Events()
	established, ok := emitted[len(emitted)-1].(events.ConnectionEstablished)
	s.Require().True(ok)
	s.Assert().Equal(chain.ID, established.ChainID)

	details := established.ConnectionDetails
	s.Assert().Equal(model.Identifier("06-solomachine-0"), details.SoloMachineClientID)
	s.Assert().Equal(model.Identifier("connection-0"), details.TendermintConnectionID)
	s.Assert().Equal(model.Identifier("channel-0"), details.TendermintChannelID)

	s.Run("identifiers are pairwise distinct", func() {
		seen := make(map[model.Identifier]struct{})
		for _, id := range details.Identifiers() {
			s.Assert().NotEmpty(id)
			_, dup := seen[id]
			s.Assert().False(dup, "identifier %s used twice", id)
			seen[id] = struct{}{}
		}
	})

	s.Run("events carry the identifiers of their step", func() {
		s.Assert().Equal(events.CreatedSoloMachineClient{ClientID: details.SoloMachineClientID}, emitted[0])
		s.Assert().Equal(events.CreatedTendermintClient{ClientID: details.TendermintClientID}, emitted[1])
		s.Assert().Equal(events.InitializedConnectionOnSoloMachine{ConnectionID: details.SoloMachineConnectionID}, emitted[2])
		s.Assert().Equal(events.InitializedConnectionOnTendermint{ConnectionID: details.TendermintConnectionID}, emitted[3])
		s.Assert().Equal(events.ConfirmedConnectionOnTendermint{ConnectionID: details.TendermintConnectionID}, emitted[4])
		s.Assert().Equal(events.ConfirmedConnectionOnSoloMachine{ConnectionID: details.SoloMachineConnectionID}, emitted[5])
		s.Assert().Equal(events.InitializedChannelOnTendermint{ChannelID: details.TendermintChannelID}, emitted[6])
		s.Assert().Equal(events.InitializedChannelOnSoloMachine{ChannelID: details.SoloMachineChannelID}, emitted[7])
		s.Assert().Equal(events.ConfirmedChannelOnTendermint{ChannelID: details.TendermintChannelID}, emitted[8])
		s.Assert().Equal(events.ConfirmedChannelOnSoloMachine{ChannelID: details.SoloMachineChannelID}, emitted[9])
	})

	s.Run("solo machine objects are open", func() {
		connection, err := s.ibcStore.Connection(details.SoloMachineConnectionID)
		s.Require().NoError(err)
		s.Assert().Equal(model.StateOpen, connection.State)
		s.Assert().Equal(details.TendermintClientID, connection.ClientID)
		s.Assert().Equal(details.TendermintConnectionID, connection.Counterparty.ConnectionID)

		channel, err := s.ibcStore.Channel(chain.Config.PortID, details.SoloMachineChannelID)
		s.Require().NoError(err)
		s.Assert().Equal(model.StateOpen, channel.State)
		s.Assert().Equal(details.TendermintChannelID, channel.Counterparty.ChannelID)

		client, err := s.ibcStore.Client(details.TendermintClientID)
		s.Require().NoError(err)
		s.Assert().Equal(chain.ID, client.ChainID)
	})

	s.Run("chain record is connected", func() {
		stored, err := s.chains.ByID(chain.ID)
		s.Require().NoError(err)
		s.Require().True(stored.IsConnected())
		s.Assert().Equal(details, *stored.ConnectionDetails)
		s.Assert().Equal(s.now, stored.ConsensusTimestamp)
		// four proofs: connection init, client state, connection ack, channel try
		s.Assert().Equal(chain.Sequence+4, stored.Sequence)
	})
}

func (s *ServiceSuite) TestConnect_Proofs() {
	chain := s.storeChain()
	s.factory.On("Connect", mock.Anything).Return(s.remote, nil).Once()

	var create *rpc.CreateSoloMachineClientRequest
	var try *rpc.ConnectionOpenTryRequest
	s.remote.On("CreateSoloMachineClient", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { create = args.Get(1).(*rpc.CreateSoloMachineClientRequest) }).
		Return(model.Identifier("06-solomachine-0"), nil).Once()
	s.remote.On("LatestHeader", mock.Anything).Return(unittest.HeaderFixture(chain.ID), nil).Once()
	s.remote.On("ConnectionOpenTry", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { try = args.Get(1).(*rpc.ConnectionOpenTryRequest) }).
		Return(model.Identifier("connection-0"), nil).Once()
	s.remote.On("ConnectionOpenConfirm", mock.Anything, mock.Anything).Return(nil).Once()
	s.remote.On("ChannelOpenInit", mock.Anything, mock.Anything).Return(model.Identifier("channel-0"), nil).Once()
	s.remote.On("ChannelOpenAck", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.service.Connect(context.Background(), chain.ID, "memo")
	s.Require().NoError(err)

	key := s.signerKey()
	s.Require().NotNil(create)
	s.Assert().True(key.Equals(create.PublicKey))
	s.Assert().Equal("memo", create.Memo)
	s.Assert().Equal(chain.Sequence, create.Sequence)
	s.Assert().Equal(uint64(s.now.Unix()), create.Timestamp)

	s.Require().NotNil(try)
	s.Assert().Equal(chain.Sequence, try.ProofInit.Sequence)
	s.Assert().Equal(chain.Sequence+1, try.ProofClient.Sequence)

	data, err := ibc.EncodeProofData(&model.ConnectionEnd{
		State:    model.StateInit,
		ClientID: try.CounterpartyClientID,
		Counterparty: model.ConnectionCounterparty{
			ClientID: try.ClientID,
		},
	})
	s.Require().NoError(err)
	msg, err := ibc.SignBytes(try.ProofInit.Sequence, try.ProofInit.Timestamp, chain.Config.Diversifier, ibc.ConnectionPath(try.CounterpartyConnectionID), data)
	s.Require().NoError(err)
	s.Assert().True(key.Verify(msg, try.ProofInit.Signature))
}

func (s *ServiceSuite) TestConnect_FailureStopsFlow() {
	chain := s.storeChain()
	s.factory.On("Connect", mock.Anything).Return(s.remote, nil).Once()
	s.remote.On("CreateSoloMachineClient", mock.Anything, mock.Anything).Return(model.Identifier("06-solomachine-0"), nil).Once()
	s.remote.On("LatestHeader", mock.Anything).Return(unittest.HeaderFixture(chain.ID), nil).Once()
	s.remote.On("ConnectionOpenTry", mock.Anything, mock.Anything).Return(model.Identifier("connection-0"), nil).Once()
	s.remote.On("ConnectionOpenConfirm", mock.Anything, mock.Anything).Return(errors.New("proof verification failed")).Once()

	err := s.service.Connect(context.Background(), chain.ID, ibc.DefaultMemo)
	s.Require().Error(err)
	s.Assert().True(ibc.IsProtocolError(err))
	s.Assert().Contains(err.Error(), "proof verification failed")

	s.Assert().Equal([]events.Type{
		events.TypeCreatedSoloMachineClient,
		events.TypeCreatedTendermintClient,
		events.TypeInitializedConnectionOnSoloMachine,
		events.TypeInitializedConnectionOnTendermint,
	}, s.recorder.Types())

	stored, err := s.chains.ByID(chain.ID)
	s.Require().NoError(err)
	s.Assert().False(stored.IsConnected())
}

func (s *ServiceSuite) TestConnect_Cancelled() {
	chain := s.storeChain()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.factory.On("Connect", mock.Anything).Return(s.remote, nil).Once()
	s.remote.On("CreateSoloMachineClient", mock.Anything, mock.Anything).Return(model.Identifier("06-solomachine-0"), nil).Once()
	s.remote.On("LatestHeader", mock.Anything).Return(unittest.HeaderFixture(chain.ID), nil).Once()
	// the operator interrupts while the chain processes the try; the chain still answers
	s.remote.On("ConnectionOpenTry", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(model.Identifier("connection-0"), nil).Once()

	err := s.service.Connect(ctx, chain.ID, ibc.DefaultMemo)
	s.Require().ErrorIs(err, context.Canceled)

	s.Assert().Equal([]events.Type{
		events.TypeCreatedSoloMachineClient,
		events.TypeCreatedTendermintClient,
		events.TypeInitializedConnectionOnSoloMachine,
		events.TypeInitializedConnectionOnTendermint,
	}, s.recorder.Types())
	s.Assert().NotContains(s.recorder.Types(), events.TypeConnectionEstablished)

	stored, err := s.chains.ByID(chain.ID)
	s.Require().NoError(err)
	s.Assert().False(stored.IsConnected())
}

func (s *ServiceSuite) TestConnect_HeaderOfOtherChain() {
	chain := s.storeChain()
	s.factory.On("Connect", mock.Anything).Return(s.remote, nil).Once()
	s.remote.On("CreateSoloMachineClient", mock.Anything, mock.Anything).Return(model.Identifier("06-solomachine-0"), nil).Once()
	s.remote.On("LatestHeader", mock.Anything).Return(unittest.HeaderFixture("otherchain-1"), nil).Once()

	err := s.service.Connect(context.Background(), chain.ID, ibc.DefaultMemo)
	s.Require().Error(err)
	s.Assert().True(ibc.IsProtocolError(err))
	s.Assert().Equal([]events.Type{events.TypeCreatedSoloMachineClient}, s.recorder.Types())
}

func (s *ServiceSuite) TestConnect_AlreadyConnected() {
	chain := s.storeConnectedChain()

	err := s.service.Connect(context.Background(), chain.ID, ibc.DefaultMemo)
	s.Require().Error(err)
	s.Assert().True(ibc.IsProtocolError(err))
	s.Assert().Empty(s.recorder.Events())
}

func (s *ServiceSuite) TestConnect_UnknownChain() {
	err := s.service.Connect(context.Background(), unittest.ChainIDFixture(), ibc.DefaultMemo)
	s.Require().Error(err)
	s.Assert().ErrorIs(err, storage.ErrNotFound)
	s.Assert().Empty(s.recorder.Events())
}

func (s *ServiceSuite) TestSendToChain() {
	chain := s.storeConnectedChain()
	details := chain.ConnectionDetails
	s.factory.On("Connect", mock.Anything).Return(s.remote, nil).Once()

	var req *rpc.RecvPacketRequest
	s.remote.On("RecvPacket", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { req = args.Get(1).(*rpc.RecvPacketRequest) }).
		Return(nil).Once()

	err := s.service.SendToChain(context.Background(), chain.ID, 100, "stake", "", "memo")
	s.Require().NoError(err)

	address := s.signerAddress()
	s.Require().Len(s.recorder.Events(), 1)
	s.Assert().Equal(events.TokensSent{
		ChainID:     chain.ID,
		FromAddress: address,
		ToAddress:   address,
		Amount:      100,
		Denom:       "stake",
	}, s.recorder.Events()[0])

	s.Require().NotNil(req)
	s.Assert().Equal("memo", req.Memo)
	s.Assert().Equal(chain.PacketSequence, req.Packet.Sequence)
	s.Assert().Equal(details.SoloMachineChannelID, req.Packet.SourceChannel)
	s.Assert().Equal(details.TendermintChannelID, req.Packet.DestinationChannel)
	s.Assert().Equal(uint64(s.now.Add(ibc.DefaultPacketTimeout).UnixNano()), req.Packet.TimeoutTimestamp)
	s.Assert().JSONEq(`{"amount":"100","denom":"stake","receiver":"`+address+`","sender":"`+address+`"}`, string(req.Packet.Data))

	msg, err := ibc.SignBytes(
		req.ProofCommitment.Sequence,
		req.ProofCommitment.Timestamp,
		chain.Config.Diversifier,
		ibc.PacketCommitmentPath(req.Packet.SourcePort, req.Packet.SourceChannel, req.Packet.Sequence),
		ibc.PacketCommitment(req.Packet),
	)
	s.Require().NoError(err)
	s.Assert().True(s.signerKey().Verify(msg, req.ProofCommitment.Signature))

	stored, err := s.chains.ByID(chain.ID)
	s.Require().NoError(err)
	s.Assert().Equal(chain.PacketSequence+1, stored.PacketSequence)
	s.Assert().Equal(chain.Sequence+1, stored.Sequence)
}

func (s *ServiceSuite) TestSendToChain_InvalidInput() {
	chain := s.storeConnectedChain()

	cases := map[string]struct {
		amount uint64
		denom  string
	}{
		"zero amount":       {0, "stake"},
		"empty denom":       {100, ""},
		"denom with space":  {100, "st ake"},
		"single char denom": {100, "s"},
	}
	for name, c := range cases {
		s.Run(name, func() {
			err := s.service.SendToChain(context.Background(), chain.ID, c.amount, c.denom, "", ibc.DefaultMemo)
			s.Require().Error(err)
			s.Assert().True(ibc.IsInvalidInputError(err))

			err = s.service.ReceiveFromChain(context.Background(), chain.ID, c.amount, c.denom, "", ibc.DefaultMemo)
			s.Require().Error(err)
			s.Assert().True(ibc.IsInvalidInputError(err))
		})
	}
	s.Assert().Empty(s.recorder.Events())
}

func (s *ServiceSuite) TestSendToChain_NotConnected() {
	chain := s.storeChain()

	err := s.service.SendToChain(context.Background(), chain.ID, 100, "stake", "", ibc.DefaultMemo)
	s.Require().Error(err)
	s.Assert().True(ibc.IsProtocolError(err))
	s.Assert().Empty(s.recorder.Events())
}

func (s *ServiceSuite) TestReceiveFromChain() {
	chain := s.storeConnectedChain()
	s.factory.On("Connect", mock.Anything).Return(s.remote, nil).Once()

	receiver := "cosmos1receiver"
	s.remote.On("Transfer", mock.Anything, &rpc.TransferRequest{
		Memo:          ibc.DefaultMemo,
		SourcePort:    chain.Config.PortID,
		SourceChannel: chain.ConnectionDetails.TendermintChannelID,
		Denom:         "uatom",
		Amount:        7,
		Receiver:      receiver,
	}).Return(nil).Once()

	err := s.service.ReceiveFromChain(context.Background(), chain.ID, 7, "uatom", receiver, ibc.DefaultMemo)
	s.Require().NoError(err)

	s.Assert().Equal([]events.Event{events.TokensReceived{
		ChainID:     chain.ID,
		FromAddress: s.signerAddress(),
		ToAddress:   receiver,
		Amount:      7,
		Denom:       "uatom",
	}}, s.recorder.Events())
}

func (s *ServiceSuite) TestReceiveFromChain_RemoteFailure() {
	chain := s.storeConnectedChain()
	s.factory.On("Connect", mock.Anything).Return(s.remote, nil).Once()
	s.remote.On("Transfer", mock.Anything, mock.Anything).Return(errors.New("insufficient funds")).Once()

	err := s.service.ReceiveFromChain(context.Background(), chain.ID, 7, "uatom", "", ibc.DefaultMemo)
	s.Require().Error(err)
	s.Assert().True(ibc.IsProtocolError(err))
	s.Assert().Empty(s.recorder.Events())
}

func (s *ServiceSuite) TestUpdateSigner() {
	chain := s.storeConnectedChain()
	s.factory.On("Connect", mock.Anything).Return(s.remote, nil).Once()

	oldKey := s.signerKey()
	newKey := unittest.PublicKeyFixture()

	var req *rpc.UpdateSoloMachineClientRequest
	s.remote.On("UpdateSoloMachineClient", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { req = args.Get(1).(*rpc.UpdateSoloMachineClientRequest) }).
		Return(nil).Once()

	err := s.service.UpdateSigner(context.Background(), chain.ID, newKey.Hex(), crypto.Secp256k1Name, ibc.DefaultMemo)
	s.Require().NoError(err)

	s.Require().Len(s.recorder.Events(), 1)
	updated, ok := s.recorder.Events()[0].(events.SignerUpdated)
	s.Require().True(ok)
	s.Assert().Equal(chain.ID, updated.ChainID)
	s.Assert().True(oldKey.Equals(updated.OldPublicKey))
	s.Assert().True(newKey.Equals(updated.NewPublicKey))

	s.Require().NotNil(req)
	s.Assert().Equal(chain.ConnectionDetails.SoloMachineClientID, req.ClientID)
	s.Assert().True(newKey.Equals(req.NewPublicKey))
	s.Assert().Equal(chain.Sequence, req.Header.Sequence)

	stored, err := s.chains.ByID(chain.ID)
	s.Require().NoError(err)
	s.Assert().Equal(newKey.Bytes(), stored.PublicKey)
	s.Assert().Equal(crypto.Secp256k1Name, stored.PublicKeyAlgo)
}

func (s *ServiceSuite) TestUpdateSigner_InvalidInput() {
	chain := s.storeConnectedChain()
	key := unittest.PublicKeyFixture()

	s.Run("unknown algorithm", func() {
		err := s.service.UpdateSigner(context.Background(), chain.ID, key.Hex(), "ed25519", ibc.DefaultMemo)
		s.Require().Error(err)
		s.Assert().True(ibc.IsInvalidInputError(err))
		s.Assert().ErrorIs(err, crypto.ErrUnsupportedAlgo)
	})

	s.Run("invalid hex", func() {
		err := s.service.UpdateSigner(context.Background(), chain.ID, "zz", crypto.Secp256k1Name, ibc.DefaultMemo)
		s.Require().Error(err)
		s.Assert().True(ibc.IsInvalidInputError(err))
	})

	s.Run("not a curve point", func() {
		err := s.service.UpdateSigner(context.Background(), chain.ID, "02"+"00", crypto.Secp256k1Name, ibc.DefaultMemo)
		s.Require().Error(err)
		s.Assert().True(ibc.IsInvalidInputError(err))
		s.Assert().ErrorIs(err, crypto.ErrInvalidPublicKey)
	})

	s.Assert().Empty(s.recorder.Events())
}

func TestService_SerializesFlowsPerChain(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		chains := bstorage.NewChains(db)
		signer := unittest.SignerFixture(t)
		key, err := signer.PublicKey(context.Background())
		require.NoError(t, err)

		chain := unittest.ChainFixture(
			unittest.WithConnectionDetails(unittest.ConnectionDetailsFixture()),
			func(chain *model.Chain) { chain.PublicKey = key.Bytes() },
		)
		require.NoError(t, chains.Store(chain))

		var inFlight, maxInFlight int
		var mu sync.Mutex
		remote := rpcmock.NewChain(t)
		remote.On("Transfer", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				mu.Lock()
				inFlight++
				if inFlight > maxInFlight {
					maxInFlight = inFlight
				}
				mu.Unlock()
				time.Sleep(10 * time.Millisecond)
				mu.Lock()
				inFlight--
				mu.Unlock()
			}).
			Return(nil).Times(5)
		factory := rpcmock.NewFactory(t)
		factory.On("Connect", mock.Anything).Return(remote, nil).Times(5)

		rec := &recorder{}
		service := ibc.NewService(unittest.Logger(), chains, bstorage.NewIBC(db), factory, signer, rec)

		var flows errgroup.Group
		for i := 0; i < 5; i++ {
			flows.Go(func() error {
				return service.ReceiveFromChain(context.Background(), chain.ID, 1, "uatom", "", ibc.DefaultMemo)
			})
		}
		var flowErr error
		unittest.RequireReturnsBefore(t, func() { flowErr = flows.Wait() }, 5*time.Second, "flows did not finish")
		require.NoError(t, flowErr)

		assert.Equal(t, 1, maxInFlight)
		assert.Len(t, rec.Events(), 5)
	})
}

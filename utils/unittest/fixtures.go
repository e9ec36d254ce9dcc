package unittest

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solo-machine/solo-machine/crypto"
	"github.com/solo-machine/solo-machine/model/ibc"
)

// TestMnemonic is the well known BIP39 test vector. Never use it outside tests.
const TestMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// OtherTestMnemonic derives a key different from TestMnemonic.
const OtherTestMnemonic = "legal winner thank year wave sausage worth useful legal winner thank yellow"

// TimeFixture returns a UTC timestamp without monotonic clock reading, so that it
// compares equal to its decoded storage round trip.
func TimeFixture() time.Time {
	return time.Unix(1_600_000_000+rand.Int63n(100_000_000), rand.Int63n(int64(time.Second))).UTC()
}

func ChainIDFixture() ibc.ChainID {
	return ibc.ChainID(fmt.Sprintf("testchain-%d", 1+rand.Intn(1000)))
}

func IdentifierFixture(prefix string) ibc.Identifier {
	id, err := ibc.GenerateIdentifier(prefix)
	if err != nil {
		panic(err)
	}
	return id
}

func ChainConfigFixture(opts ...func(*ibc.ChainConfig)) ibc.ChainConfig {
	config := ibc.ChainConfig{
		GatewayAddr: "http://localhost:1317",
		Fee: ibc.Fee{
			Amount:   ibc.DefaultFeeAmount,
			Denom:    "stake",
			GasLimit: ibc.DefaultGasLimit,
		},
		TrustingPeriod: ibc.DefaultTrustingPeriod,
		MaxClockDrift:  ibc.DefaultMaxClockDrift,
		RPCTimeout:     ibc.DefaultRPCTimeout,
		Diversifier:    ibc.DefaultDiversifier,
		PortID:         ibc.TransferPort,
	}
	for _, opt := range opts {
		opt(&config)
	}
	return config
}

func ChainFixture(opts ...func(*ibc.Chain)) *ibc.Chain {
	createdAt := TimeFixture()
	chain := &ibc.Chain{
		ID:                 ChainIDFixture(),
		Config:             ChainConfigFixture(),
		ConsensusTimestamp: createdAt,
		Sequence:           1,
		PacketSequence:     1,
		PublicKeyAlgo:      crypto.Secp256k1Name,
		PublicKey:          PublicKeyFixture().Bytes(),
		CreatedAt:          createdAt,
		UpdatedAt:          createdAt,
	}
	for _, opt := range opts {
		opt(chain)
	}
	return chain
}

func WithChainID(chainID ibc.ChainID) func(*ibc.Chain) {
	return func(chain *ibc.Chain) {
		chain.ID = chainID
	}
}

func WithConnectionDetails(details ibc.ConnectionDetails) func(*ibc.Chain) {
	return func(chain *ibc.Chain) {
		chain.ConnectionDetails = &details
	}
}

func WithGatewayAddr(addr string) func(*ibc.Chain) {
	return func(chain *ibc.Chain) {
		chain.Config.GatewayAddr = addr
	}
}

func ConnectionDetailsFixture() ibc.ConnectionDetails {
	return ibc.ConnectionDetails{
		SoloMachineClientID:     ibc.Identifier(fmt.Sprintf("%s-%d", ibc.SoloMachineClientPrefix, rand.Intn(100))),
		TendermintClientID:      IdentifierFixture(ibc.TendermintClientPrefix),
		SoloMachineConnectionID: IdentifierFixture(ibc.ConnectionPrefix),
		TendermintConnectionID:  ibc.Identifier(fmt.Sprintf("%s-%d", ibc.ConnectionPrefix, rand.Intn(100))),
		SoloMachineChannelID:    IdentifierFixture(ibc.ChannelPrefix),
		TendermintChannelID:     ibc.Identifier(fmt.Sprintf("%s-%d", ibc.ChannelPrefix, rand.Intn(100))),
	}
}

func HeightFixture() ibc.Height {
	return ibc.Height{RevisionNumber: 1, RevisionHeight: 1 + uint64(rand.Uint32())}
}

func HeaderFixture(chainID ibc.ChainID) *ibc.Header {
	return &ibc.Header{
		ChainID:            chainID,
		Height:             ibc.Height{RevisionNumber: chainID.Revision(), RevisionHeight: 1 + uint64(rand.Uint32())},
		Time:               TimeFixture(),
		AppHash:            RandomBytes(32),
		NextValidatorsHash: RandomBytes(32),
	}
}

func TendermintClientStateFixture(chainID ibc.ChainID) *ibc.TendermintClientState {
	return &ibc.TendermintClientState{
		ChainID:        chainID,
		TrustingPeriod: ibc.DefaultTrustingPeriod,
		MaxClockDrift:  ibc.DefaultMaxClockDrift,
		LatestHeight:   HeightFixture(),
		ConsensusState: ibc.ConsensusState{
			Timestamp:          TimeFixture(),
			Root:               RandomBytes(32),
			NextValidatorsHash: RandomBytes(32),
		},
	}
}

func ConnectionEndFixture(state ibc.State) *ibc.ConnectionEnd {
	return &ibc.ConnectionEnd{
		State:    state,
		ClientID: IdentifierFixture(ibc.TendermintClientPrefix),
		Counterparty: ibc.ConnectionCounterparty{
			ClientID:     ibc.Identifier(fmt.Sprintf("%s-%d", ibc.SoloMachineClientPrefix, rand.Intn(100))),
			ConnectionID: ibc.Identifier(fmt.Sprintf("%s-%d", ibc.ConnectionPrefix, rand.Intn(100))),
		},
	}
}

func ChannelEndFixture(state ibc.State) *ibc.ChannelEnd {
	return &ibc.ChannelEnd{
		State:    state,
		Ordering: ibc.OrderUnordered,
		Counterparty: ibc.ChannelCounterparty{
			PortID:    ibc.TransferPort,
			ChannelID: ibc.Identifier(fmt.Sprintf("%s-%d", ibc.ChannelPrefix, rand.Intn(100))),
		},
		ConnectionHops: []ibc.Identifier{IdentifierFixture(ibc.ConnectionPrefix)},
		Version:        ibc.TransferVersion,
	}
}

func RandomBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

// PublicKeyFixture returns the secp256k1 key derived from OtherTestMnemonic.
func PublicKeyFixture() crypto.PublicKey {
	signer, err := crypto.NewMnemonicSigner(OtherTestMnemonic, crypto.DefaultHDPath, crypto.DefaultAccountPrefix, crypto.Secp256k1)
	if err != nil {
		panic(err)
	}
	key, err := signer.PublicKey(context.Background())
	if err != nil {
		panic(err)
	}
	return key
}

// SignerFixture returns the secp256k1 signer derived from TestMnemonic.
func SignerFixture(t testing.TB) *crypto.MnemonicSigner {
	signer, err := crypto.NewMnemonicSigner(TestMnemonic, crypto.DefaultHDPath, crypto.DefaultAccountPrefix, crypto.Secp256k1)
	require.NoError(t, err)
	return signer
}

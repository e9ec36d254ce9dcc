package rpc

import (
	"github.com/solo-machine/solo-machine/crypto"
	"github.com/solo-machine/solo-machine/model/ibc"
)

// Proof is a solo machine signature over the sign bytes of one state transition. The
// chain checks it against the solo machine client's public key and sequence.
type Proof struct {
	Sequence  uint64 `json:"sequence"`
	Timestamp uint64 `json:"timestamp"`
	Signature []byte `json:"signature"`
}

type CreateSoloMachineClientRequest struct {
	Memo        string           `json:"memo"`
	PublicKey   crypto.PublicKey `json:"public_key"`
	Diversifier string           `json:"diversifier"`
	Sequence    uint64           `json:"sequence"`
	Timestamp   uint64           `json:"timestamp"`
}

type ConnectionOpenTryRequest struct {
	Memo string `json:"memo"`
	// ClientID is the solo machine client on the chain.
	ClientID ibc.Identifier `json:"client_id"`
	// CounterpartyClientID is the tendermint client on the solo machine.
	CounterpartyClientID ibc.Identifier `json:"counterparty_client_id"`
	// CounterpartyConnectionID is the connection end on the solo machine.
	CounterpartyConnectionID ibc.Identifier `json:"counterparty_connection_id"`
	// ClientState is the solo machine's view of the chain, proven by ProofClient.
	ClientState *ibc.TendermintClientState `json:"client_state"`
	ProofInit   Proof                      `json:"proof_init"`
	ProofClient Proof                      `json:"proof_client"`
}

type ConnectionOpenConfirmRequest struct {
	Memo         string         `json:"memo"`
	ConnectionID ibc.Identifier `json:"connection_id"`
	ProofAck     Proof          `json:"proof_ack"`
}

type ChannelOpenInitRequest struct {
	Memo               string         `json:"memo"`
	PortID             ibc.Identifier `json:"port_id"`
	ConnectionID       ibc.Identifier `json:"connection_id"`
	CounterpartyPortID ibc.Identifier `json:"counterparty_port_id"`
	Version            string         `json:"version"`
}

type ChannelOpenAckRequest struct {
	Memo                  string         `json:"memo"`
	PortID                ibc.Identifier `json:"port_id"`
	ChannelID             ibc.Identifier `json:"channel_id"`
	CounterpartyChannelID ibc.Identifier `json:"counterparty_channel_id"`
	CounterpartyVersion   string         `json:"counterparty_version"`
	ProofTry              Proof          `json:"proof_try"`
}

// Packet is an IBC packet sent by the solo machine.
type Packet struct {
	Sequence           uint64         `json:"sequence"`
	SourcePort         ibc.Identifier `json:"source_port"`
	SourceChannel      ibc.Identifier `json:"source_channel"`
	DestinationPort    ibc.Identifier `json:"destination_port"`
	DestinationChannel ibc.Identifier `json:"destination_channel"`
	Data               []byte         `json:"data"`
	TimeoutTimestamp   uint64         `json:"timeout_timestamp"`
}

type RecvPacketRequest struct {
	Memo            string `json:"memo"`
	Packet          Packet `json:"packet"`
	ProofCommitment Proof  `json:"proof_commitment"`
}

type TransferRequest struct {
	Memo          string         `json:"memo"`
	SourcePort    ibc.Identifier `json:"source_port"`
	SourceChannel ibc.Identifier `json:"source_channel"`
	Denom         ibc.Identifier `json:"denom"`
	Amount        uint64         `json:"amount"`
	Receiver      string         `json:"receiver"`
}

type UpdateSoloMachineClientRequest struct {
	Memo         string           `json:"memo"`
	ClientID     ibc.Identifier   `json:"client_id"`
	NewPublicKey crypto.PublicKey `json:"new_public_key"`
	// Header is signed by the key being replaced.
	Header Proof `json:"header"`
}

package ibc

import (
	"context"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	model "github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/rpc"
)

// encMode produces the deterministic CBOR encoding that both the solo machine and
// the chain's solo machine client compute sign bytes with.
var encMode = func() cbor.EncMode {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("could not create canonical cbor encoding mode: %v", err))
	}
	return mode
}()

type signBytes struct {
	Sequence    uint64 `cbor:"1,keyasint"`
	Timestamp   uint64 `cbor:"2,keyasint"`
	Diversifier string `cbor:"3,keyasint"`
	Path        string `cbor:"4,keyasint"`
	Data        []byte `cbor:"5,keyasint"`
}

// SignBytes returns the bytes the solo machine signs to prove that it stores `data`
// under `path` at the given sequence.
func SignBytes(sequence uint64, timestamp uint64, diversifier string, path string, data []byte) ([]byte, error) {
	encoded, err := encMode.Marshal(signBytes{
		Sequence:    sequence,
		Timestamp:   timestamp,
		Diversifier: diversifier,
		Path:        path,
		Data:        data,
	})
	if err != nil {
		return nil, fmt.Errorf("could not encode sign bytes: %w", err)
	}
	return encoded, nil
}

// EncodeProofData returns the canonical encoding of an object proven by the solo machine.
func EncodeProofData(object interface{}) ([]byte, error) {
	data, err := encMode.Marshal(object)
	if err != nil {
		return nil, fmt.Errorf("could not encode proof data: %w", err)
	}
	return data, nil
}

// Commitment paths, as laid out by ICS-24.
func ClientStatePath(clientID model.Identifier) string {
	return fmt.Sprintf("clients/%s/clientState", clientID)
}

func ConnectionPath(connectionID model.Identifier) string {
	return fmt.Sprintf("connections/%s", connectionID)
}

func ChannelPath(portID, channelID model.Identifier) string {
	return fmt.Sprintf("channelEnds/ports/%s/channels/%s", portID, channelID)
}

func PacketCommitmentPath(portID, channelID model.Identifier, sequence uint64) string {
	return fmt.Sprintf("commitments/ports/%s/channels/%s/sequences/%d", portID, channelID, sequence)
}

// HeaderPath is the path of the data signed when the solo machine rotates its key.
const HeaderPath = "solomachine/header"

// prove consumes the chain's next solo machine sequence and signs `data` under `path`.
func (s *Service) prove(ctx context.Context, chain *model.Chain, path string, data []byte) (rpc.Proof, error) {
	sequence, err := s.chains.ConsumeSequence(chain.ID)
	if err != nil {
		return rpc.Proof{}, fmt.Errorf("could not consume sequence: %w", err)
	}
	timestamp := uint64(chain.ConsensusTimestamp.Unix())

	msg, err := SignBytes(sequence, timestamp, chain.Config.Diversifier, path, data)
	if err != nil {
		return rpc.Proof{}, err
	}
	signature, err := s.signer.Sign(ctx, msg)
	if err != nil {
		return rpc.Proof{}, fmt.Errorf("could not sign proof for %s: %w", path, err)
	}
	return rpc.Proof{Sequence: sequence, Timestamp: timestamp, Signature: signature}, nil
}

// proveObject encodes the object and proves it under `path`.
func (s *Service) proveObject(ctx context.Context, chain *model.Chain, path string, object interface{}) (rpc.Proof, error) {
	data, err := EncodeProofData(object)
	if err != nil {
		return rpc.Proof{}, err
	}
	return s.prove(ctx, chain, path, data)
}

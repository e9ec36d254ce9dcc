package ibc

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	model "github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/rpc"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FungibleTokenPacketData is the ICS-20 packet payload. Fields are declared in
// alphabetical order, which is the order the transfer module expects them on the wire.
type FungibleTokenPacketData struct {
	Amount   string `json:"amount"`
	Denom    string `json:"denom"`
	Receiver string `json:"receiver"`
	Sender   string `json:"sender"`
}

func encodePacketData(denom model.Identifier, amount uint64, sender string, receiver string) ([]byte, error) {
	data, err := json.Marshal(FungibleTokenPacketData{
		Amount:   strconv.FormatUint(amount, 10),
		Denom:    denom.String(),
		Receiver: receiver,
		Sender:   sender,
	})
	if err != nil {
		return nil, fmt.Errorf("could not encode packet data: %w", err)
	}
	return data, nil
}

// PacketCommitment is the value the solo machine proves for a sent packet:
// sha256(timeout_timestamp || timeout_revision_number || timeout_revision_height || sha256(data)).
// Packets sent by the solo machine carry no timeout height.
func PacketCommitment(packet rpc.Packet) []byte {
	buf := make([]byte, 0, 24+sha256.Size)
	buf = binary.BigEndian.AppendUint64(buf, packet.TimeoutTimestamp)
	buf = binary.BigEndian.AppendUint64(buf, 0)
	buf = binary.BigEndian.AppendUint64(buf, 0)
	dataHash := sha256.Sum256(packet.Data)
	buf = append(buf, dataHash[:]...)
	commitment := sha256.Sum256(buf)
	return commitment[:]
}

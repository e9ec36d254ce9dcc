package operation

import (
	"encoding/binary"
	"fmt"

	"github.com/solo-machine/solo-machine/model/ibc"
)

const (

	// codes for special database markers
	codeDBType = 2 // specifies a database type

	// codes for chain records
	codeChain = 10

	// codes for the IBC objects hosted by the solo machine
	codeTendermintClient = 20
	codeConnection       = 21
	codeChannel          = 22
)

// separator terminates variable length key parts, so that one identifier is never a
// prefix of the key of another one.
const separator = 0x00

func makePrefix(code byte, keys ...interface{}) []byte {
	prefix := make([]byte, 1)
	prefix[0] = code
	for _, key := range keys {
		prefix = append(prefix, b(key)...)
	}
	return prefix
}

func b(v interface{}) []byte {
	switch i := v.(type) {
	case uint8:
		return []byte{i}
	case uint32:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, i)
		return b
	case uint64:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, i)
		return b
	case string:
		return append([]byte(i), separator)
	case ibc.ChainID:
		return append([]byte(i), separator)
	case ibc.Identifier:
		return append([]byte(i), separator)
	default:
		panic(fmt.Sprintf("unsupported type to convert (%T)", v))
	}
}

package ibc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/solo-machine/solo-machine/utils/rand"
)

// Identifier prefixes of IBC objects.
const (
	SoloMachineClientPrefix = "06-solomachine"
	TendermintClientPrefix  = "07-tendermint"
	ConnectionPrefix        = "connection"
	ChannelPrefix           = "channel"

	// TransferPort is the port bound by the fungible token transfer module.
	TransferPort Identifier = "transfer"
)

const (
	// MinIdentifierLength and MaxIdentifierLength bound the length of any identifier.
	MinIdentifierLength = 2
	MaxIdentifierLength = 128

	// MaxChainIDLength is the longest chain ID accepted by tendermint.
	MaxChainIDLength = 50

	// generatedSuffixLength is the length of the random suffix of identifiers minted
	// by the solo machine.
	generatedSuffixLength = 10
)

// Identifier is a validated name of an IBC object (client, connection, channel, port)
// or of a denomination. Values must be obtained through NewIdentifier or
// GenerateIdentifier; a zero Identifier is invalid.
type Identifier string

// NewIdentifier validates `s` against the ICS-24 identifier rules: length between
// MinIdentifierLength and MaxIdentifierLength, and characters restricted to
// alphanumerics and `._+-#[]<>`.
func NewIdentifier(s string) (Identifier, error) {
	if err := validateIdentifier(s, MinIdentifierLength, MaxIdentifierLength); err != nil {
		return "", err
	}
	return Identifier(s), nil
}

// MustIdentifier is NewIdentifier for constants; it panics on invalid input.
func MustIdentifier(s string) Identifier {
	id, err := NewIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateIdentifier mints a fresh identifier of the form `<prefix>-<suffix>` where the
// suffix is random. Identifiers minted this way never collide with the counter based
// identifiers (`connection-0`, ...) assigned by a chain.
func GenerateIdentifier(prefix string) (Identifier, error) {
	suffix, err := rand.String(generatedSuffixLength, rand.LowerAlphanumeric)
	if err != nil {
		return "", fmt.Errorf("could not generate identifier suffix: %w", err)
	}
	return NewIdentifier(prefix + "-" + suffix)
}

// String returns the identifier as a string.
func (id Identifier) String() string {
	return string(id)
}

// ChainID identifies a remote chain. Chain IDs in the `{name}-{revision}` format
// carry a revision number.
type ChainID string

// NewChainID validates `s` as a chain ID.
func NewChainID(s string) (ChainID, error) {
	if err := validateIdentifier(s, 1, MaxChainIDLength); err != nil {
		return "", fmt.Errorf("invalid chain id: %w", err)
	}
	return ChainID(s), nil
}

// String returns the chain ID as a string.
func (c ChainID) String() string {
	return string(c)
}

// Revision returns the revision number encoded in the chain ID, or 0 if the chain ID
// does not follow the `{name}-{revision}` format.
func (c ChainID) Revision() uint64 {
	s := string(c)
	i := strings.LastIndexByte(s, '-')
	if i <= 0 || i == len(s)-1 {
		return 0
	}
	revision, err := strconv.ParseUint(s[i+1:], 10, 64)
	if err != nil {
		return 0
	}
	return revision
}

func validateIdentifier(s string, min, max int) error {
	if len(s) < min || len(s) > max {
		return fmt.Errorf("identifier %q has invalid length %d, expected between %d and %d", s, len(s), min, max)
	}
	for _, c := range s {
		if !isIdentifierChar(c) {
			return fmt.Errorf("identifier %q contains invalid character %q", s, c)
		}
	}
	return nil
}

func isIdentifierChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.ContainsRune("._+-#[]<>", c)
}

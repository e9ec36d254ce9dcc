package crypto

import (
	"fmt"
)

// PublicKeyAlgo is an identifier for a public key scheme.
type PublicKeyAlgo int

const (
	// Supported public key algorithms
	UnknownPublicKeyAlgo PublicKeyAlgo = iota
	// Secp256k1 keys are used by cosmos-sdk accounts; addresses are derived from
	// RIPEMD160(SHA256(compressed key)) and messages are signed over their SHA256.
	Secp256k1
	// EthSecp256k1 keys are used by ethermint accounts; addresses are derived from
	// KECCAK256(uncompressed key)[12:] and messages are signed over their KECCAK256.
	// The algorithm is only available when built with the `ethermint` tag.
	EthSecp256k1
)

// Names of the public key algorithms as accepted on the command line.
const (
	Secp256k1Name    = "secp256k1"
	EthSecp256k1Name = "eth-secp256k1"
)

// PublicKeyAlgoNames lists every algorithm name, regardless of build capabilities, so
// that the command line surface is identical across builds.
var PublicKeyAlgoNames = []string{Secp256k1Name, EthSecp256k1Name}

const (
	// PubKeyLenSecp256k1Compressed is the length of a SEC1 compressed key.
	PubKeyLenSecp256k1Compressed = 33
	// SignatureLenSecp256k1 is the length of an R||S signature.
	SignatureLenSecp256k1 = 64
)

// String returns the command line name of the algorithm.
func (a PublicKeyAlgo) String() string {
	switch a {
	case Secp256k1:
		return Secp256k1Name
	case EthSecp256k1:
		return EthSecp256k1Name
	default:
		return "unknown"
	}
}

// TypeURL returns the protobuf type URL under which the chain knows keys of this
// algorithm.
func (a PublicKeyAlgo) TypeURL() string {
	switch a {
	case Secp256k1:
		return "/cosmos.crypto.secp256k1.PubKey"
	case EthSecp256k1:
		return "/ethermint.crypto.v1.ethsecp256k1.PubKey"
	default:
		return ""
	}
}

// Enabled returns true if the algorithm can be used by this build.
func (a PublicKeyAlgo) Enabled() bool {
	switch a {
	case Secp256k1:
		return true
	case EthSecp256k1:
		return ethermintEnabled
	default:
		return false
	}
}

// ParsePublicKeyAlgo parses an algorithm name. It only checks that the name is known;
// capability checks happen when a key of the algorithm is constructed.
//
// Expected errors:
//   - ErrUnsupportedAlgo if the name is not one of PublicKeyAlgoNames
func ParsePublicKeyAlgo(name string) (PublicKeyAlgo, error) {
	switch name {
	case Secp256k1Name:
		return Secp256k1, nil
	case EthSecp256k1Name:
		return EthSecp256k1, nil
	default:
		return UnknownPublicKeyAlgo, fmt.Errorf("%w: %q (expected one of %v)", ErrUnsupportedAlgo, name, PublicKeyAlgoNames)
	}
}

// checkEnabled returns ErrCapabilityNotEnabled for algorithms this build cannot use.
func checkEnabled(algo PublicKeyAlgo) error {
	switch {
	case algo == EthSecp256k1 && !ethermintEnabled:
		return fmt.Errorf("%w: %s requires a build with the ethermint tag", ErrCapabilityNotEnabled, algo)
	case !algo.Enabled():
		return fmt.Errorf("%w: %d", ErrUnsupportedAlgo, int(algo))
	}
	return nil
}

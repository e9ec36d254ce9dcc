package crypto

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // cosmos-sdk addresses are defined over RIPEMD160
)

// DefaultAccountPrefix is the bech32 human readable part of cosmos hub accounts.
const DefaultAccountPrefix = "cosmos"

// accountAddress derives the bech32 account address of a key.
func accountAddress(k PublicKey, prefix string) (string, error) {
	var raw []byte
	switch k.algo {
	case Secp256k1:
		sha := sha256.Sum256(k.key.SerializeCompressed())
		hasher := ripemd160.New()
		hasher.Write(sha[:])
		raw = hasher.Sum(nil)
	case EthSecp256k1:
		// the uncompressed encoding is prefixed with 0x04, which is not hashed
		raw = keccak256(k.key.SerializeUncompressed()[1:])[12:]
	default:
		return "", fmt.Errorf("%w: %d", ErrUnsupportedAlgo, int(k.algo))
	}

	converted, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("could not convert address bits: %w", err)
	}
	address, err := bech32.Encode(prefix, converted)
	if err != nil {
		return "", fmt.Errorf("could not encode bech32 address: %w", err)
	}
	return address, nil
}

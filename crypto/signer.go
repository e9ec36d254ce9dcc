package crypto

import (
	"context"
)

// Signer holds the key material of the solo machine and signs on its behalf.
// Implementations may be backed by a local mnemonic or a remote signing service, so
// every operation takes a context.
type Signer interface {
	// Sign hashes `msg` as required by the signer's algorithm and returns the 64 byte
	// R||S signature over the digest.
	Sign(ctx context.Context, msg []byte) ([]byte, error)

	// PublicKey returns the signer's current public key.
	PublicKey(ctx context.Context) (PublicKey, error)

	// Address returns the signer's bech32 account address.
	Address(ctx context.Context) (string, error)
}

package crypto

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// PublicKey is a verifying key tagged with the algorithm it is used with. Exactly one
// algorithm is active per key; rotating a signer replaces the whole value.
type PublicKey struct {
	algo PublicKeyAlgo
	key  *btcec.PublicKey
}

// NewPublicKey wraps a verifying key in the variant for `algo`.
//
// Expected errors:
//   - ErrCapabilityNotEnabled if `algo` is not compiled into this build
//   - ErrUnsupportedAlgo if `algo` is unknown
func NewPublicKey(algo PublicKeyAlgo, key *btcec.PublicKey) (PublicKey, error) {
	if err := checkEnabled(algo); err != nil {
		return PublicKey{}, err
	}
	if key == nil {
		return PublicKey{}, fmt.Errorf("%w: nil key", ErrInvalidPublicKey)
	}
	return PublicKey{algo: algo, key: key}, nil
}

// ParsePublicKey parses a SEC1 encoded (compressed, uncompressed or hybrid) key of
// the given algorithm.
//
// Expected errors:
//   - ErrInvalidPublicKey if the bytes do not decode to a point on the curve
//   - ErrCapabilityNotEnabled, ErrUnsupportedAlgo as NewPublicKey
func ParsePublicKey(algo PublicKeyAlgo, sec1 []byte) (PublicKey, error) {
	if err := checkEnabled(algo); err != nil {
		return PublicKey{}, err
	}
	key, err := btcec.ParsePubKey(sec1)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: invalid secp256k1 bytes: %v", ErrInvalidPublicKey, err)
	}
	return NewPublicKey(algo, key)
}

// DecodePublicKeyHex decodes a hex encoded SEC1 key of the given algorithm. Either
// hex case and any SEC1 form are accepted; Hex of the result is always the lower case
// compressed encoding. The algorithm is checked before the input is looked at, so a
// disabled algorithm is rejected deterministically whatever the key.
func DecodePublicKeyHex(algo PublicKeyAlgo, s string) (PublicKey, error) {
	if err := checkEnabled(algo); err != nil {
		return PublicKey{}, err
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return PublicKey{}, newInvalidInputErrorf(err, "unable to decode hex bytes")
	}
	return ParsePublicKey(algo, raw)
}

// Algo returns the algorithm the key is used with.
func (k PublicKey) Algo() PublicKeyAlgo {
	return k.algo
}

// IsZero returns true for the zero value, which holds no key.
func (k PublicKey) IsZero() bool {
	return k.key == nil
}

// Bytes returns the SEC1 compressed encoding of the key.
func (k PublicKey) Bytes() []byte {
	if k.key == nil {
		return nil
	}
	return k.key.SerializeCompressed()
}

// Hex returns the lower case hex encoding of Bytes.
func (k PublicKey) Hex() string {
	return hex.EncodeToString(k.Bytes())
}

// Equals returns true if both keys have the same algorithm and point.
func (k PublicKey) Equals(other PublicKey) bool {
	if k.key == nil || other.key == nil {
		return k.key == other.key && k.algo == other.algo
	}
	return k.algo == other.algo && k.key.IsEqual(other.key)
}

// String returns `<algo>:<hex>`.
func (k PublicKey) String() string {
	return fmt.Sprintf("%s:%s", k.algo, k.Hex())
}

// Address returns the bech32 account address of the key under `prefix`.
func (k PublicKey) Address(prefix string) (string, error) {
	if k.key == nil {
		return "", fmt.Errorf("%w: empty key", ErrInvalidPublicKey)
	}
	return accountAddress(k, prefix)
}

// Verify checks an R||S signature over `msg`, hashed the way signers of this
// algorithm hash it.
func (k PublicKey) Verify(msg []byte, sig []byte) bool {
	if k.key == nil || len(sig) != SignatureLenSecp256k1 {
		return false
	}
	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow {
		return false
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow {
		return false
	}
	return ecdsa.NewSignature(&r, &s).Verify(digest(k.algo, msg), k.key)
}

package crypto

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

const (
	// DefaultHDPath is the cosmos hub derivation path of the first account.
	DefaultHDPath = "m/44'/118'/0'/0/0"
	// EthHDPath is the ethereum derivation path of the first account.
	EthHDPath = "m/44'/60'/0'/0/0"
)

// MnemonicSigner derives a secp256k1 key from a BIP39 mnemonic along a BIP32 path and
// signs locally.
type MnemonicSigner struct {
	privateKey    *btcec.PrivateKey
	publicKey     PublicKey
	accountPrefix string
}

var _ Signer = (*MnemonicSigner)(nil)

// NewMnemonicSigner derives the signing key for `mnemonic` at `hdPath`.
//
// Expected errors:
//   - invalid input errors for a malformed mnemonic or derivation path
//   - ErrCapabilityNotEnabled, ErrUnsupportedAlgo for unusable algorithms
func NewMnemonicSigner(mnemonic string, hdPath string, accountPrefix string, algo PublicKeyAlgo) (*MnemonicSigner, error) {
	if err := checkEnabled(algo); err != nil {
		return nil, err
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, newInvalidInputErrorf(nil, "invalid mnemonic")
	}
	path, err := parseHDPath(hdPath)
	if err != nil {
		return nil, err
	}

	seed := bip39.NewSeed(mnemonic, "")
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("could not derive master key: %w", err)
	}
	for _, index := range path {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, fmt.Errorf("could not derive child key %d: %w", index, err)
		}
	}

	privateKey, verifyingKey := btcec.PrivKeyFromBytes(key.Key)
	publicKey, err := NewPublicKey(algo, verifyingKey)
	if err != nil {
		return nil, err
	}

	return &MnemonicSigner{
		privateKey:    privateKey,
		publicKey:     publicKey,
		accountPrefix: accountPrefix,
	}, nil
}

// NewMnemonic generates a fresh 24 word mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("could not generate entropy: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

// Sign returns the R||S signature over the algorithm specific digest of `msg`.
func (s *MnemonicSigner) Sign(_ context.Context, msg []byte) ([]byte, error) {
	compact, err := ecdsa.SignCompact(s.privateKey, digest(s.publicKey.Algo(), msg), true)
	if err != nil {
		return nil, fmt.Errorf("could not sign message: %w", err)
	}
	// the first byte of a compact signature is the recovery code
	return compact[1:], nil
}

// PublicKey returns the derived public key.
func (s *MnemonicSigner) PublicKey(_ context.Context) (PublicKey, error) {
	return s.publicKey, nil
}

// Address returns the account address of the derived key.
func (s *MnemonicSigner) Address(_ context.Context) (string, error) {
	return s.publicKey.Address(s.accountPrefix)
}

// parseHDPath parses a path like `m/44'/118'/0'/0/0` into child indices, with
// hardened indices offset by bip32.FirstHardenedChild.
func parseHDPath(path string) ([]uint32, error) {
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] != "m" {
		return nil, newInvalidInputErrorf(nil, "invalid hd path %q: must start with m/", path)
	}

	indices := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'")
		part = strings.TrimSuffix(part, "'")
		index, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, newInvalidInputErrorf(err, "invalid hd path %q", path)
		}
		if hardened {
			index += uint64(bip32.FirstHardenedChild)
		}
		indices = append(indices, uint32(index))
	}
	return indices, nil
}

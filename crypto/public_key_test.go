package crypto

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generatorHex is the compressed encoding of the secp256k1 generator point.
const generatorHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestParsePublicKeyAlgo(t *testing.T) {
	algo, err := ParsePublicKeyAlgo("secp256k1")
	require.NoError(t, err)
	assert.Equal(t, Secp256k1, algo)
	assert.True(t, algo.Enabled())

	// known names always parse, capability is checked on use
	algo, err = ParsePublicKeyAlgo("eth-secp256k1")
	require.NoError(t, err)
	assert.Equal(t, EthSecp256k1, algo)

	_, err = ParsePublicKeyAlgo("ed25519")
	require.ErrorIs(t, err, ErrUnsupportedAlgo)
	assert.True(t, IsInvalidInputError(err))
}

func TestDecodePublicKeyHex(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		key, err := DecodePublicKeyHex(Secp256k1, generatorHex)
		require.NoError(t, err)
		assert.Equal(t, generatorHex, key.Hex())
		assert.Len(t, key.Bytes(), PubKeyLenSecp256k1Compressed)
		assert.Equal(t, Secp256k1, key.Algo())
	})

	t.Run("upper case input is normalized to lower case", func(t *testing.T) {
		key, err := DecodePublicKeyHex(Secp256k1, strings.ToUpper(generatorHex))
		require.NoError(t, err)
		assert.Equal(t, generatorHex, key.Hex())

		lower, err := DecodePublicKeyHex(Secp256k1, generatorHex)
		require.NoError(t, err)
		assert.True(t, key.Equals(lower))
	})

	t.Run("uncompressed hex is normalized to compressed", func(t *testing.T) {
		priv, _ := btcec.PrivKeyFromBytes([]byte(strings.Repeat("k", 32)))
		uncompressedHex := hex.EncodeToString(priv.PubKey().SerializeUncompressed())

		key, err := DecodePublicKeyHex(Secp256k1, uncompressedHex)
		require.NoError(t, err)
		assert.Equal(t, hex.EncodeToString(priv.PubKey().SerializeCompressed()), key.Hex())
	})

	t.Run("uncompressed input is normalized", func(t *testing.T) {
		priv, _ := btcec.PrivKeyFromBytes([]byte(strings.Repeat("k", 32)))
		uncompressed := priv.PubKey().SerializeUncompressed()

		key, err := ParsePublicKey(Secp256k1, uncompressed)
		require.NoError(t, err)
		assert.Equal(t, priv.PubKey().SerializeCompressed(), key.Bytes())
	})

	t.Run("invalid hex", func(t *testing.T) {
		_, err := DecodePublicKeyHex(Secp256k1, "not-hex")
		require.Error(t, err)
		assert.True(t, IsInvalidInputError(err))
		assert.Contains(t, err.Error(), "unable to decode hex bytes")
	})

	t.Run("not a curve point", func(t *testing.T) {
		_, err := DecodePublicKeyHex(Secp256k1, "02"+strings.Repeat("ff", 32))
		require.ErrorIs(t, err, ErrInvalidPublicKey)

		_, err = DecodePublicKeyHex(Secp256k1, "0279be")
		require.ErrorIs(t, err, ErrInvalidPublicKey)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := DecodePublicKeyHex(UnknownPublicKeyAlgo, generatorHex)
		require.ErrorIs(t, err, ErrUnsupportedAlgo)
	})
}

func TestPublicKey_Equals(t *testing.T) {
	a, err := DecodePublicKeyHex(Secp256k1, generatorHex)
	require.NoError(t, err)
	b, err := DecodePublicKeyHex(Secp256k1, generatorHex)
	require.NoError(t, err)
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(PublicKey{}))
	assert.True(t, PublicKey{}.IsZero())
	assert.Equal(t, "secp256k1:"+generatorHex, a.String())
}

func TestMnemonicSigner(t *testing.T) {
	ctx := context.Background()

	signer, err := NewMnemonicSigner(testMnemonic, DefaultHDPath, DefaultAccountPrefix, Secp256k1)
	require.NoError(t, err)

	t.Run("deterministic derivation", func(t *testing.T) {
		other, err := NewMnemonicSigner(testMnemonic, DefaultHDPath, DefaultAccountPrefix, Secp256k1)
		require.NoError(t, err)

		a, err := signer.PublicKey(ctx)
		require.NoError(t, err)
		b, err := other.PublicKey(ctx)
		require.NoError(t, err)
		assert.True(t, a.Equals(b))

		// a different path yields a different key
		third, err := NewMnemonicSigner(testMnemonic, "m/44'/118'/0'/0/1", DefaultAccountPrefix, Secp256k1)
		require.NoError(t, err)
		c, err := third.PublicKey(ctx)
		require.NoError(t, err)
		assert.False(t, a.Equals(c))
	})

	t.Run("signatures verify", func(t *testing.T) {
		msg := []byte("solo machine sign bytes")
		sig, err := signer.Sign(ctx, msg)
		require.NoError(t, err)
		require.Len(t, sig, SignatureLenSecp256k1)

		key, err := signer.PublicKey(ctx)
		require.NoError(t, err)
		assert.True(t, key.Verify(msg, sig))
		assert.False(t, key.Verify([]byte("other message"), sig))
	})

	t.Run("address", func(t *testing.T) {
		address, err := signer.Address(ctx)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(address, DefaultAccountPrefix+"1"))
		// 20 bytes in bech32 plus prefix, separator and checksum
		assert.Len(t, address, len(DefaultAccountPrefix)+1+32+6)
	})

	t.Run("invalid mnemonic", func(t *testing.T) {
		_, err := NewMnemonicSigner("abandon abandon", DefaultHDPath, DefaultAccountPrefix, Secp256k1)
		require.Error(t, err)
		assert.True(t, IsInvalidInputError(err))
	})

	t.Run("invalid hd path", func(t *testing.T) {
		for _, path := range []string{"", "44'/118'", "m/x'/1", "m/44'/-1"} {
			_, err := NewMnemonicSigner(testMnemonic, path, DefaultAccountPrefix, Secp256k1)
			require.Error(t, err, path)
			assert.True(t, IsInvalidInputError(err), path)
		}
	})
}

func TestNewMnemonic(t *testing.T) {
	mnemonic, err := NewMnemonic()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(mnemonic), 24)

	_, err = NewMnemonicSigner(mnemonic, DefaultHDPath, DefaultAccountPrefix, Secp256k1)
	require.NoError(t, err)
}

func TestPublicKey_JSON(t *testing.T) {
	key, err := DecodePublicKeyHex(Secp256k1, generatorHex)
	require.NoError(t, err)

	data, err := key.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"@type":"/cosmos.crypto.secp256k1.PubKey"`)

	var decoded PublicKey
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.True(t, key.Equals(decoded))

	var empty PublicKey
	data, err = empty.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	err = decoded.UnmarshalJSON([]byte(`{"@type":"/unknown.PubKey","key":"AA=="}`))
	require.ErrorIs(t, err, ErrUnsupportedAlgo)
}

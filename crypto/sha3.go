package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/sha3"
)

// digest hashes a message the way signers of `algo` hash it before signing.
func digest(algo PublicKeyAlgo, msg []byte) []byte {
	if algo == EthSecp256k1 {
		return keccak256(msg)
	}
	sum := sha256.Sum256(msg)
	return sum[:]
}

// keccak256 is the pre-standard SHA3 variant used by ethereum.
func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

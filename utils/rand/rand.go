// Package rand is a wrapper around `crypto/rand` that uses the system RNG underneath
// to extract secure entropy.
//
// It is used to mint identifiers of objects owned by the solo machine. Functions in
// this package return an error if the underlying system implementation fails to read
// new randoms; callers should treat that as an exception.
package rand

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// LowerAlphanumeric is the alphabet used for identifier suffixes.
const LowerAlphanumeric = "abcdefghijklmnopqrstuvwxyz0123456789"

// Uint64n returns a random uint64 strictly less than `n`.
// `n` has to be a strictly positive integer.
//
// It returns:
//   - (0, exception) if `n==0`
//   - (0, exception) if crypto/rand fails to provide entropy
//   - (random, nil) otherwise
func Uint64n(n uint64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("n should be strictly positive, got %d", n)
	}
	max := n - 1
	size := 0
	for tmp := max; tmp != 0; tmp >>= 8 {
		size++
	}
	mask := uint64(0)
	for max&mask != max {
		mask = (mask << 1) | 1
	}

	// rejection sampling keeps the output uniform: loop until a masked sample fits
	buffer := make([]byte, 8)
	random := n
	for random > max {
		if _, err := rand.Read(buffer[:size]); err != nil {
			return 0, fmt.Errorf("crypto/rand read failed: %w", err)
		}
		random = binary.LittleEndian.Uint64(buffer)
		random &= mask
	}
	return random, nil
}

// String returns a random string of length `n` drawn uniformly from `alphabet`.
//
// It returns:
//   - ("", exception) if the alphabet is empty
//   - ("", exception) if crypto/rand fails to provide entropy
//   - (random, nil) otherwise
func String(n int, alphabet string) (string, error) {
	if len(alphabet) == 0 {
		return "", fmt.Errorf("alphabet must not be empty")
	}
	out := make([]byte, n)
	for i := range out {
		j, err := Uint64n(uint64(len(alphabet)))
		if err != nil {
			return "", err
		}
		out[i] = alphabet[j]
	}
	return string(out), nil
}

//go:build ethermint

package crypto

// ethermintEnabled makes EthSecp256k1 keys available.
const ethermintEnabled = true

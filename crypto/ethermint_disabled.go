//go:build !ethermint

package crypto

const ethermintEnabled = false

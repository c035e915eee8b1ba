package types

import "math/rand/v2"

// RandomPubkey generates random account key.
func RandomPubkey() Pubkey {
	var k Pubkey
	for i := range k {
		k[i] = byte(rand.IntN(256))
	}
	return k
}

// RandomHash32 generates random hash.
func RandomHash32() Hash32 {
	var h Hash32
	for i := range h {
		h[i] = byte(rand.IntN(256))
	}
	return h
}

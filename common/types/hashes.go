package types

import (
	"github.com/mr-tron/base58"
	"github.com/spacemeshos/go-scale"

	"github.com/cavemanloverboy/versioned-tx-simd/hash"
)

// Hash32Length is 32, the expected length of the hash.
const Hash32Length = 32

// Hash32 represents a 32-byte blake3 hash of arbitrary data. Messages carry one
// as their recent blockhash.
type Hash32 [Hash32Length]byte

// CalcHash32 returns the 32-byte blake3 sum of the concatenated chunks.
func CalcHash32(chunks ...[]byte) Hash32 {
	return hash.Sum(chunks...)
}

// Bytes gets the byte representation of the underlying hash.
func (h Hash32) Bytes() []byte { return h[:] }

// String returns the base58 representation of the hash.
func (h Hash32) String() string {
	return base58.Encode(h[:])
}

// ShortString returns the first 5 characters of the hash, for logging purposes.
func (h Hash32) ShortString() string {
	s := h.String()
	return s[:min(5, len(s))]
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash32) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText parses a hash in base58 syntax.
func (h *Hash32) UnmarshalText(input []byte) error {
	return unmarshalBase58("Hash32", input, h[:])
}

// EncodeScale implements scale codec interface.
func (h *Hash32) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, h[:])
}

// DecodeScale implements scale codec interface.
func (h *Hash32) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, h[:])
}

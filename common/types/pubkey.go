package types

import (
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/spacemeshos/go-scale"
)

// PubkeySize is the length of an account key in bytes.
const PubkeySize = 32

// Pubkey is an opaque account identifier. Instructions refer to accounts by their
// position in the message key list, so the order of keys is significant.
type Pubkey [PubkeySize]byte

// PubkeyFromBase58 parses the base58 text form of an account key.
func PubkeyFromBase58(s string) (Pubkey, error) {
	var k Pubkey
	if err := unmarshalBase58("Pubkey", []byte(s), k[:]); err != nil {
		return Pubkey{}, err
	}
	return k, nil
}

// MustPubkeyFromBase58 is PubkeyFromBase58 that panics on malformed input.
// Use it only for compile-time known keys.
func MustPubkeyFromBase58(s string) Pubkey {
	k, err := PubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return k
}

// BytesToPubkey copies b into a Pubkey. If b is shorter than PubkeySize the key is right-padded with zeros.
func BytesToPubkey(b []byte) (k Pubkey) {
	copy(k[:], b)
	return k
}

// Bytes returns the key as a byte slice.
func (k Pubkey) Bytes() []byte { return k[:] }

// String returns the base58 representation of the key.
func (k Pubkey) String() string {
	return base58.Encode(k[:])
}

// ShortString returns the first 5 characters of the key, for logging purposes.
func (k Pubkey) ShortString() string {
	s := k.String()
	return s[:min(5, len(s))]
}

// MarshalText implements encoding.TextMarshaler.
func (k Pubkey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Pubkey) UnmarshalText(input []byte) error {
	return unmarshalBase58("Pubkey", input, k[:])
}

// EncodeScale implements scale codec interface.
func (k *Pubkey) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, k[:])
}

// DecodeScale implements scale codec interface.
func (k *Pubkey) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, k[:])
}

func unmarshalBase58(typname string, input, out []byte) error {
	raw, err := base58.Decode(string(input))
	if err != nil {
		return fmt.Errorf("%s: decode base58 %q: %w", typname, input, err)
	}
	if len(raw) != len(out) {
		return fmt.Errorf("%s: expected %d bytes, got %d", typname, len(out), len(raw))
	}
	copy(out, raw)
	return nil
}

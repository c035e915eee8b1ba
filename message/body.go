package message

import (
	"fmt"
	"slices"

	"github.com/spacemeshos/go-scale"

	"github.com/cavemanloverboy/versioned-tx-simd/common/types"
)

// Body is the part of a message that every generation shares.
//
// Messages are built once and then only encoded or compared, callers must not
// modify a Body after passing it to a constructor.
type Body struct {
	AccountKeys         []types.Pubkey              `json:"accountKeys"`
	RecentBlockhash     types.Hash32                `json:"recentBlockhash"`
	Instructions        []types.CompiledInstruction `json:"instructions"`
	AddressTableLookups []types.AddressTableLookup  `json:"addressTableLookups"`
}

// NewBody copies its inputs into a Body. It fails if an input does not fit the
// wire limits. Empty lists are stored as nil.
func NewBody(
	keys []types.Pubkey,
	blockhash types.Hash32,
	instructions []types.CompiledInstruction,
	lookups []types.AddressTableLookup,
) (Body, error) {
	b := Body{
		AccountKeys:     cloneSlice(keys),
		RecentBlockhash: blockhash,
	}
	if len(instructions) > 0 {
		b.Instructions = make([]types.CompiledInstruction, len(instructions))
		for i, ci := range instructions {
			b.Instructions[i] = types.CompiledInstruction{
				ProgramIDIndex: ci.ProgramIDIndex,
				Accounts:       cloneSlice(ci.Accounts),
				Data:           cloneSlice(ci.Data),
			}
		}
	}
	if len(lookups) > 0 {
		b.AddressTableLookups = make([]types.AddressTableLookup, len(lookups))
		for i, l := range lookups {
			b.AddressTableLookups[i] = types.AddressTableLookup{
				AccountKey:      l.AccountKey,
				WritableIndexes: cloneSlice(l.WritableIndexes),
				ReadonlyIndexes: cloneSlice(l.ReadonlyIndexes),
			}
		}
	}
	if err := b.Validate(); err != nil {
		return Body{}, err
	}
	return b, nil
}

// Validate checks the list lengths against the wire limits. It does not check
// that instructions reference existing keys.
func (b *Body) Validate() error {
	if len(b.AccountKeys) > MaxAccountKeys {
		return fmt.Errorf("%w: %d > %d", ErrTooManyAccountKeys, len(b.AccountKeys), MaxAccountKeys)
	}
	if len(b.Instructions) > MaxInstructions {
		return fmt.Errorf("%w: %d > %d", ErrTooManyInstructions, len(b.Instructions), MaxInstructions)
	}
	for i, ci := range b.Instructions {
		if len(ci.Accounts) > types.MaxInstructionAccounts {
			return fmt.Errorf("%w: instruction %d has %d accounts", ErrInstructionTooLarge, i, len(ci.Accounts))
		}
		if len(ci.Data) > types.MaxInstructionData {
			return fmt.Errorf("%w: instruction %d has %d bytes of data", ErrInstructionTooLarge, i, len(ci.Data))
		}
	}
	if len(b.AddressTableLookups) > MaxAddressTableLookups {
		return fmt.Errorf("%w: %d > %d", ErrTooManyLookups, len(b.AddressTableLookups), MaxAddressTableLookups)
	}
	for i, l := range b.AddressTableLookups {
		if len(l.WritableIndexes) > types.MaxLookupIndexes || len(l.ReadonlyIndexes) > types.MaxLookupIndexes {
			return fmt.Errorf("%w: lookup %d", ErrLookupTooLarge, i)
		}
	}
	return nil
}

// EncodedSize returns the number of bytes EncodeScale writes.
func (b *Body) EncodedSize() int {
	size := types.CompactLenSize(len(b.AccountKeys)) + len(b.AccountKeys)*types.PubkeySize
	size += types.Hash32Length
	size += types.CompactLenSize(len(b.Instructions))
	for i := range b.Instructions {
		size += b.Instructions[i].EncodedSize()
	}
	size += types.CompactLenSize(len(b.AddressTableLookups))
	for i := range b.AddressTableLookups {
		size += b.AddressTableLookups[i].EncodedSize()
	}
	return size
}

// EncodeScale implements scale codec interface.
func (b *Body) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeStructSliceWithLimit(enc, b.AccountKeys, MaxAccountKeys)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := b.RecentBlockhash.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeStructSliceWithLimit(enc, b.Instructions, MaxInstructions)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeStructSliceWithLimit(enc, b.AddressTableLookups, MaxAddressTableLookups)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (b *Body) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeStructSliceWithLimit[types.Pubkey](dec, MaxAccountKeys)
		if err != nil {
			return total, err
		}
		total += n
		b.AccountKeys = field
	}
	{
		n, err := b.RecentBlockhash.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		field, n, err := scale.DecodeStructSliceWithLimit[types.CompiledInstruction](dec, MaxInstructions)
		if err != nil {
			return total, err
		}
		total += n
		b.Instructions = field
	}
	{
		field, n, err := scale.DecodeStructSliceWithLimit[types.AddressTableLookup](dec, MaxAddressTableLookups)
		if err != nil {
			return total, err
		}
		total += n
		b.AddressTableLookups = field
	}
	return total, nil
}

func cloneSlice[S ~[]E, E any](s S) S {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}

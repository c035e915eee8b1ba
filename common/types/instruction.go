package types

import (
	"github.com/spacemeshos/go-scale"
)

const (
	// MaxInstructionAccounts bounds the account index list of an instruction.
	// Indices are uint8, so a longer list would repeat accounts.
	MaxInstructionAccounts = 256
	// MaxInstructionData bounds instruction data by the size of a network packet.
	MaxInstructionData = 1232
	// MaxLookupIndexes bounds each index list of an address table lookup.
	MaxLookupIndexes = 256
)

// CompiledInstruction is an instruction whose program and accounts are given as
// indices into the message account key list.
type CompiledInstruction struct {
	ProgramIDIndex uint8  `json:"programIdIndex"`
	Accounts       []byte `json:"accounts"`
	Data           []byte `json:"data"`
}

// EncodedSize returns the number of bytes EncodeScale writes.
func (ci *CompiledInstruction) EncodedSize() int {
	return 1 +
		CompactLenSize(len(ci.Accounts)) + len(ci.Accounts) +
		CompactLenSize(len(ci.Data)) + len(ci.Data)
}

// EncodeScale implements scale codec interface.
func (ci *CompiledInstruction) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByte(enc, ci.ProgramIDIndex)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, ci.Accounts, MaxInstructionAccounts)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, ci.Data, MaxInstructionData)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (ci *CompiledInstruction) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeByte(dec)
		if err != nil {
			return total, err
		}
		total += n
		ci.ProgramIDIndex = field
	}
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, MaxInstructionAccounts)
		if err != nil {
			return total, err
		}
		total += n
		ci.Accounts = field
	}
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, MaxInstructionData)
		if err != nil {
			return total, err
		}
		total += n
		ci.Data = field
	}
	return total, nil
}

// AddressTableLookup loads additional accounts for a message from an on-chain
// address lookup table.
type AddressTableLookup struct {
	AccountKey      Pubkey `json:"accountKey"`
	WritableIndexes []byte `json:"writableIndexes"`
	ReadonlyIndexes []byte `json:"readonlyIndexes"`
}

// EncodedSize returns the number of bytes EncodeScale writes.
func (l *AddressTableLookup) EncodedSize() int {
	return PubkeySize +
		CompactLenSize(len(l.WritableIndexes)) + len(l.WritableIndexes) +
		CompactLenSize(len(l.ReadonlyIndexes)) + len(l.ReadonlyIndexes)
}

// EncodeScale implements scale codec interface.
func (l *AddressTableLookup) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := l.AccountKey.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, l.WritableIndexes, MaxLookupIndexes)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, l.ReadonlyIndexes, MaxLookupIndexes)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (l *AddressTableLookup) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := l.AccountKey.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, MaxLookupIndexes)
		if err != nil {
			return total, err
		}
		total += n
		l.WritableIndexes = field
	}
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, MaxLookupIndexes)
		if err != nil {
			return total, err
		}
		total += n
		l.ReadonlyIndexes = field
	}
	return total, nil
}

package message

import "errors"

const (
	// MaxAccountKeys bounds the key list. Instructions index keys with a single byte.
	MaxAccountKeys = 256
	// MaxInstructions bounds the instruction list.
	MaxInstructions = 64
	// MaxAddressTableLookups bounds the lookup list.
	MaxAddressTableLookups = 64
)

var (
	ErrTooManyAccountKeys  = errors.New("too many account keys")
	ErrTooManyInstructions = errors.New("too many instructions")
	ErrInstructionTooLarge = errors.New("instruction too large")
	ErrTooManyLookups      = errors.New("too many address table lookups")
	ErrLookupTooLarge      = errors.New("address table lookup too large")
	ErrInvalidProgramIndex = errors.New("program index out of range")
)

package budget

import (
	"fmt"
	"math/bits"
	"strings"
)

// Field identifies one of the budget parameters.
type Field uint8

const (
	ComputeUnitLimit Field = iota
	ComputeUnitPrice
	LoadedAccountsDataLimit
	RequestedHeapBytesLimit

	numFields
)

// Fields lists all budget parameters in canonical order. Both the order of flag bits
// and the order of values on the wire follow it.
var Fields = [numFields]Field{
	ComputeUnitLimit,
	ComputeUnitPrice,
	LoadedAccountsDataLimit,
	RequestedHeapBytesLimit,
}

const flagsField = "flags"

var fieldNames = [numFields]string{
	ComputeUnitLimit:        "compute_unit_limit",
	ComputeUnitPrice:        "compute_unit_price",
	LoadedAccountsDataLimit: "loaded_accounts_data_limit",
	RequestedHeapBytesLimit: "requested_heap_bytes_limit",
}

// Flag returns the presence bit of the field.
func (f Field) Flag() BudgetFlags {
	return 1 << f
}

// Name returns the name of the field in keyed encodings.
func (f Field) Name() string {
	if f >= numFields {
		return fmt.Sprintf("field(%d)", uint8(f))
	}
	return fieldNames[f]
}

// String implements fmt.Stringer.
func (f Field) String() string { return f.Name() }

// Width returns the number of bytes the field occupies in the compact encoding.
func (f Field) Width() int {
	if f == ComputeUnitPrice {
		return 8
	}
	return 4
}

// Max returns the largest value the field can hold.
func (f Field) Max() uint64 {
	if f.Width() == 8 {
		return 1<<64 - 1
	}
	return 1<<32 - 1
}

// position is the index of the field in a keyed record, where flags take position 0.
func (f Field) position() int {
	return int(f) + 1
}

func lookupField(name string) (Field, bool) {
	for _, f := range Fields {
		if fieldNames[f] == name {
			return f, true
		}
	}
	return 0, false
}

// BudgetFlags records which budget parameters are present in a header.
type BudgetFlags uint8

const (
	FlagComputeUnitLimit BudgetFlags = 1 << iota
	FlagComputeUnitPrice
	FlagLoadedAccountsDataLimit
	FlagRequestedHeapBytesLimit

	// AllFlags is the set of defined bits. All other bits are reserved.
	AllFlags = FlagComputeUnitLimit | FlagComputeUnitPrice | FlagLoadedAccountsDataLimit | FlagRequestedHeapBytesLimit
)

// Has returns true if every bit of flag is set.
func (f BudgetFlags) Has(flag BudgetFlags) bool {
	return f&flag == flag
}

// Reserved returns the reserved bits that are set.
func (f BudgetFlags) Reserved() BudgetFlags {
	return f &^ AllFlags
}

// Valid returns true if no reserved bit is set.
func (f BudgetFlags) Valid() bool {
	return f.Reserved() == 0
}

// Count returns the number of present fields.
func (f BudgetFlags) Count() int {
	return bits.OnesCount8(uint8(f & AllFlags))
}

// String returns names of the set flags joined by "|".
func (f BudgetFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, field := range Fields {
		if f.Has(field.Flag()) {
			parts = append(parts, field.Name())
		}
	}
	if r := f.Reserved(); r != 0 {
		parts = append(parts, fmt.Sprintf("reserved(%#08b)", uint8(r)))
	}
	return strings.Join(parts, "|")
}

func checkReserved(flags BudgetFlags) error {
	if r := flags.Reserved(); r != 0 {
		return fmt.Errorf("%w: reserved bits %#08b", ErrInvalidFlags, uint8(r))
	}
	return nil
}

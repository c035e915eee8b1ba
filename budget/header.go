package budget

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
	"golang.org/x/exp/constraints"
)

// Some returns a pointer to v. It reads well when passing present parameters to NewBudgetHeader.
func Some[T constraints.Unsigned](v T) *T {
	return &v
}

// BudgetParameters holds the four optional budget parameters. A nil field is
// absent, which is different from an explicit zero.
type BudgetParameters struct {
	ComputeUnitLimit        *uint32 `json:"computeUnitLimit,omitempty"`
	ComputeUnitPrice        *uint64 `json:"computeUnitPrice,omitempty"`
	LoadedAccountsDataLimit *uint32 `json:"loadedAccountsDataLimit,omitempty"`
	RequestedHeapBytesLimit *uint32 `json:"requestedHeapBytesLimit,omitempty"`
}

// Header builds a BudgetHeader from the parameters.
func (p BudgetParameters) Header() BudgetHeader {
	return NewBudgetHeader(p.ComputeUnitLimit, p.ComputeUnitPrice, p.LoadedAccountsDataLimit, p.RequestedHeapBytesLimit)
}

// set stores v as the value of f. v must fit the width of f.
func (p *BudgetParameters) set(f Field, v uint64) {
	switch f {
	case ComputeUnitLimit:
		p.ComputeUnitLimit = Some(uint32(v))
	case ComputeUnitPrice:
		p.ComputeUnitPrice = Some(v)
	case LoadedAccountsDataLimit:
		p.LoadedAccountsDataLimit = Some(uint32(v))
	case RequestedHeapBytesLimit:
		p.RequestedHeapBytesLimit = Some(uint32(v))
	default:
		panic(fmt.Sprintf("unknown budget field %d", f))
	}
}

// BudgetHeader is the compute budget header of a v3 message.
//
// The zero value is a header with no parameters. Any other value must come from
// NewBudgetHeader or a decoder, which keep flags and values in agreement. Absent
// values are stored as zero, so == compares headers semantically.
//
// Fields are ordered by size to keep the struct free of interior padding: 24 bytes,
// 8-byte aligned.
type BudgetHeader struct {
	computeUnitPrice        uint64
	computeUnitLimit        uint32
	loadedAccountsDataLimit uint32
	requestedHeapBytesLimit uint32
	flags                   BudgetFlags
}

// NewBudgetHeader creates a header from optional parameters. Flags are derived
// from which parameters are non-nil.
func NewBudgetHeader(
	computeUnitLimit *uint32,
	computeUnitPrice *uint64,
	loadedAccountsDataLimit *uint32,
	requestedHeapBytesLimit *uint32,
) BudgetHeader {
	var h BudgetHeader
	if computeUnitLimit != nil {
		h.flags |= FlagComputeUnitLimit
		h.computeUnitLimit = *computeUnitLimit
	}
	if computeUnitPrice != nil {
		h.flags |= FlagComputeUnitPrice
		h.computeUnitPrice = *computeUnitPrice
	}
	if loadedAccountsDataLimit != nil {
		h.flags |= FlagLoadedAccountsDataLimit
		h.loadedAccountsDataLimit = *loadedAccountsDataLimit
	}
	if requestedHeapBytesLimit != nil {
		h.flags |= FlagRequestedHeapBytesLimit
		h.requestedHeapBytesLimit = *requestedHeapBytesLimit
	}
	return h
}

// Flags returns the presence flags of the header.
func (h BudgetHeader) Flags() BudgetFlags { return h.flags }

// IsEmpty returns true if no parameter is present.
func (h BudgetHeader) IsEmpty() bool { return h.flags == 0 }

// ComputeUnitLimit returns the compute unit limit, if present.
func (h BudgetHeader) ComputeUnitLimit() (uint32, bool) {
	return h.computeUnitLimit, h.flags.Has(FlagComputeUnitLimit)
}

// ComputeUnitPrice returns the compute unit price, if present.
func (h BudgetHeader) ComputeUnitPrice() (uint64, bool) {
	return h.computeUnitPrice, h.flags.Has(FlagComputeUnitPrice)
}

// LoadedAccountsDataLimit returns the loaded accounts data limit, if present.
func (h BudgetHeader) LoadedAccountsDataLimit() (uint32, bool) {
	return h.loadedAccountsDataLimit, h.flags.Has(FlagLoadedAccountsDataLimit)
}

// RequestedHeapBytesLimit returns the requested heap size, if present.
func (h BudgetHeader) RequestedHeapBytesLimit() (uint32, bool) {
	return h.requestedHeapBytesLimit, h.flags.Has(FlagRequestedHeapBytesLimit)
}

// Value returns the value of f widened to uint64, if present.
func (h BudgetHeader) Value(f Field) (uint64, bool) {
	switch f {
	case ComputeUnitLimit:
		v, ok := h.ComputeUnitLimit()
		return uint64(v), ok
	case ComputeUnitPrice:
		return h.ComputeUnitPrice()
	case LoadedAccountsDataLimit:
		v, ok := h.LoadedAccountsDataLimit()
		return uint64(v), ok
	case RequestedHeapBytesLimit:
		v, ok := h.RequestedHeapBytesLimit()
		return uint64(v), ok
	}
	return 0, false
}

// Parameters returns the header values as optional parameters.
func (h BudgetHeader) Parameters() BudgetParameters {
	var p BudgetParameters
	for _, f := range Fields {
		if v, ok := h.Value(f); ok {
			p.set(f, v)
		}
	}
	return p
}

// String implements fmt.Stringer.
func (h BudgetHeader) String() string {
	var b strings.Builder
	b.WriteString("budget{")
	for i, f := range presentFields(h.flags) {
		if i > 0 {
			b.WriteByte(' ')
		}
		v, _ := h.Value(f)
		fmt.Fprintf(&b, "%s=%d", f.Name(), v)
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalLogObject implements logging interface.
func (h BudgetHeader) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("flags", h.flags.String())
	for _, f := range presentFields(h.flags) {
		v, _ := h.Value(f)
		enc.AddUint64(f.Name(), v)
	}
	return nil
}

func presentFields(flags BudgetFlags) []Field {
	fields := make([]Field, 0, numFields)
	for _, f := range Fields {
		if flags.Has(f.Flag()) {
			fields = append(fields, f)
		}
	}
	return fields
}

// seal builds a header from decoded parameters and checks that the flags read
// from the input are exactly the flags the parameters derive. Every decoder returns
// through seal. mismatch is the error reported when the two disagree.
func seal(flags BudgetFlags, p BudgetParameters, mismatch error) (BudgetHeader, error) {
	if err := checkReserved(flags); err != nil {
		return BudgetHeader{}, flagsError(err)
	}
	h := p.Header()
	if h.flags != flags {
		return BudgetHeader{}, fmt.Errorf("%w: flags %s, fields %s", mismatch, flags, h.flags)
	}
	return h, nil
}

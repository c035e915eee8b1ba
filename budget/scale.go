package budget

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spacemeshos/go-scale"

	"github.com/cavemanloverboy/versioned-tx-simd/codec"
)

const (
	// MinCompactSize is the compact size of a header without parameters.
	MinCompactSize = 1
	// MaxCompactSize is the compact size of a header with all parameters.
	MaxCompactSize = 1 + 4 + 8 + 4 + 4
)

// CompactSize returns the number of bytes EncodeScale writes for h.
func (h BudgetHeader) CompactSize() int {
	size := MinCompactSize
	for _, f := range presentFields(h.flags) {
		size += f.Width()
	}
	return size
}

// EncodeScale writes the flag byte followed by the present values in canonical order.
func (h *BudgetHeader) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByte(enc, byte(h.flags))
		if err != nil {
			return total, err
		}
		total += n
	}
	for _, f := range presentFields(h.flags) {
		v, _ := h.Value(f)
		var n int
		if f.Width() == 8 {
			n, err = scale.EncodeUint64(enc, v)
		} else {
			n, err = scale.EncodeUint32(enc, uint32(v))
		}
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale reads a header written by EncodeScale.
//
// A reserved flag bit fails with ErrInvalidFlags before any value is read. Input
// that ends early fails with ErrUnexpectedEnd wrapped in a *FieldError naming the
// field being read.
func (h *BudgetHeader) DecodeScale(dec *scale.Decoder) (total int, err error) {
	var flags BudgetFlags
	{
		field, n, err := scale.DecodeByte(dec)
		if err != nil {
			return total, flagsError(readError(err))
		}
		total += n
		flags = BudgetFlags(field)
	}
	if err := checkReserved(flags); err != nil {
		return total, flagsError(err)
	}
	var params BudgetParameters
	for _, f := range presentFields(flags) {
		var (
			v uint64
			n int
		)
		if f.Width() == 8 {
			v, n, err = scale.DecodeUint64(dec)
		} else {
			var v32 uint32
			v32, n, err = scale.DecodeUint32(dec)
			v = uint64(v32)
		}
		total += n
		if err != nil {
			return total, fieldError(f, readError(err))
		}
		params.set(f, v)
	}
	decoded, err := seal(flags, params, ErrCorruptEncoding)
	if err != nil {
		return total, err
	}
	*h = decoded
	return total, nil
}

// EncodeCompact returns the compact encoding of h.
func (h BudgetHeader) EncodeCompact() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, h.CompactSize()))
	// writes to bytes.Buffer do not fail
	_, _ = h.EncodeScale(scale.NewEncoder(buf))
	return buf.Bytes()
}

// DecodeCompact decodes a header that occupies all of buf. Bytes left after the
// header fail with ErrCorruptEncoding.
func DecodeCompact(buf []byte) (BudgetHeader, error) {
	var h BudgetHeader
	if err := codec.DecodeExact(buf, &h); err != nil {
		if errors.Is(err, codec.ErrTrailingBytes) {
			return BudgetHeader{}, fmt.Errorf("%w: %w", ErrCorruptEncoding, err)
		}
		return BudgetHeader{}, err
	}
	return h, nil
}

func readError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrUnexpectedEnd, err)
	}
	return err
}

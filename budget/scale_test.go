package budget

import (
	"bytes"
	"context"
	"testing"

	"github.com/spacemeshos/go-scale"
	"github.com/spacemeshos/go-scale/tester"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"pgregory.net/rapid"

	"github.com/cavemanloverboy/versioned-tx-simd/codec"
)

func TestCompactRoundTrip(t *testing.T) {
	for _, h := range allHeaders() {
		buf := h.EncodeCompact()
		require.Len(t, buf, h.CompactSize())
		require.Equal(t, byte(h.Flags()), buf[0])

		got, err := DecodeCompact(buf)
		require.NoError(t, err, "header %s", h)
		require.Equal(t, h, got)
		requireAgreement(t, got)
	}
}

func TestCompactSizeBounds(t *testing.T) {
	empty := NewBudgetHeader(nil, nil, nil, nil)
	require.Equal(t, []byte{0b00000000}, empty.EncodeCompact())
	require.Equal(t, MinCompactSize, empty.CompactSize())

	full := NewBudgetHeader(Some[uint32](12), Some[uint64](34), Some[uint32](56), Some[uint32](78))
	buf := full.EncodeCompact()
	require.Len(t, buf, 21)
	require.Equal(t, MaxCompactSize, len(buf))
	require.Equal(t, byte(0b00001111), buf[0])
}

func TestCompactLayout(t *testing.T) {
	h := NewBudgetHeader(
		Some[uint32](0x04030201),
		Some[uint64](0x1817161514131211),
		nil,
		Some[uint32](0x24232221),
	)
	require.Equal(t, []byte{
		0b00001011,
		0x01, 0x02, 0x03, 0x04,
		0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
		0x21, 0x22, 0x23, 0x24,
	}, h.EncodeCompact())
}

func TestCompactRejectsReservedBits(t *testing.T) {
	rejected := 0
	for b := 0; b < 256; b++ {
		if b&0xf0 == 0 {
			continue
		}
		buf := append([]byte{byte(b)}, make([]byte, MaxCompactSize)...)
		_, err := DecodeCompact(buf)
		require.ErrorIs(t, err, ErrInvalidFlags, "flags %#08b", b)

		var ferr *FieldError
		require.ErrorAs(t, err, &ferr)
		require.Equal(t, flagsField, ferr.Field)
		require.Zero(t, ferr.Index)
		rejected++
	}
	require.Equal(t, 240, rejected)
}

func TestCompactTruncated(t *testing.T) {
	full := NewBudgetHeader(Some[uint32](12), Some[uint64](34), Some[uint32](56), Some[uint32](78)).EncodeCompact()
	for _, tc := range []struct {
		desc  string
		buf   []byte
		field string
		index int
	}{
		{"empty", nil, "flags", 0},
		{"in limit", full[:3], "compute_unit_limit", 1},
		{"before price", full[:5], "compute_unit_price", 2},
		{"in price", full[:9], "compute_unit_price", 2},
		{"in loaded", full[:15], "loaded_accounts_data_limit", 3},
		{"in heap", full[:20], "requested_heap_bytes_limit", 4},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := DecodeCompact(tc.buf)
			require.ErrorIs(t, err, ErrUnexpectedEnd)
			require.NotErrorIs(t, err, ErrCorruptEncoding)

			var ferr *FieldError
			require.ErrorAs(t, err, &ferr)
			require.Equal(t, tc.field, ferr.Field)
			require.Equal(t, tc.index, ferr.Index)
		})
	}
}

func TestCompactTrailingBytes(t *testing.T) {
	buf := NewBudgetHeader(Some[uint32](12), nil, nil, nil).EncodeCompact()
	_, err := DecodeCompact(append(buf, 0))
	require.ErrorIs(t, err, ErrCorruptEncoding)
	require.ErrorIs(t, err, codec.ErrTrailingBytes)
	require.ErrorContains(t, err, "1 bytes left after value")
}

func TestDecodeScaleInStream(t *testing.T) {
	// a header followed by other data decodes and leaves the rest unread
	var buf bytes.Buffer
	h := NewBudgetHeader(nil, Some[uint64](34), nil, nil)
	enc := scale.NewEncoder(&buf)
	n, err := h.EncodeScale(enc)
	require.NoError(t, err)
	require.Equal(t, h.CompactSize(), n)
	_, err = scale.EncodeByte(enc, 0xff)
	require.NoError(t, err)

	dec := scale.NewDecoder(bytes.NewReader(buf.Bytes()))
	var got BudgetHeader
	n, err = got.DecodeScale(dec)
	require.NoError(t, err)
	require.Equal(t, 9, n)
	require.Equal(t, h, got)
	rest, _, err := scale.DecodeByte(dec)
	require.NoError(t, err)
	require.Equal(t, byte(0xff), rest)
}

func TestCompactDecodeFailureKeepsTarget(t *testing.T) {
	h := NewBudgetHeader(Some[uint32](12), nil, nil, nil)
	target := h
	_, err := target.DecodeScale(scale.NewDecoder(bytes.NewReader([]byte{0x01, 0x00})))
	require.Error(t, err)
	require.Equal(t, h, target)
}

func TestCompactProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := drawHeader(t)
		got, err := DecodeCompact(h.EncodeCompact())
		require.NoError(t, err)
		require.Equal(t, h, got)
	})
}

func TestCompactDecodedAgreement(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		buf := rapid.SliceOfN(rapid.Byte(), 0, 32).Draw(t, "buf")
		h, err := DecodeCompact(buf)
		if err != nil {
			return
		}
		requireAgreement(t, h)
		require.Equal(t, buf, h.EncodeCompact())
	})
}

func TestCompactConcurrent(t *testing.T) {
	headers := allHeaders()
	eg, _ := errgroup.WithContext(context.Background())
	for i := 0; i < 8; i++ {
		eg.Go(func() error {
			for _, h := range headers {
				got, err := DecodeCompact(h.EncodeCompact())
				if err != nil {
					return err
				}
				if got != h {
					return ErrCorruptEncoding
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
}

func drawHeader(t *rapid.T) BudgetHeader {
	var p BudgetParameters
	if rapid.Bool().Draw(t, "has_limit") {
		p.ComputeUnitLimit = Some(rapid.Uint32().Draw(t, "limit"))
	}
	if rapid.Bool().Draw(t, "has_price") {
		p.ComputeUnitPrice = Some(rapid.Uint64().Draw(t, "price"))
	}
	if rapid.Bool().Draw(t, "has_loaded") {
		p.LoadedAccountsDataLimit = Some(rapid.Uint32().Draw(t, "loaded"))
	}
	if rapid.Bool().Draw(t, "has_heap") {
		p.RequestedHeapBytesLimit = Some(rapid.Uint32().Draw(t, "heap"))
	}
	return p.Header()
}

func FuzzBudgetHeaderConsistency(f *testing.F) {
	tester.FuzzConsistency[BudgetHeader](f)
}

func FuzzBudgetHeaderSafety(f *testing.F) {
	tester.FuzzSafety[BudgetHeader](f)
}

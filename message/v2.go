package message

import (
	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"

	"github.com/cavemanloverboy/versioned-tx-simd/budget"
	"github.com/cavemanloverboy/versioned-tx-simd/codec"
	"github.com/cavemanloverboy/versioned-tx-simd/common/types"
)

// V2HeaderSize is the encoded size of V2Header.
const V2HeaderSize = 8 + 4 + 4 + 4 + types.MessageHeaderSize

// V2Header has a fixed slot for every budget parameter.
type V2Header struct {
	ComputeUnitPrice        uint64 `json:"computeUnitPrice"`
	ComputeUnitLimit        uint32 `json:"computeUnitLimit"`
	LoadedAccountsDataLimit uint32 `json:"loadedAccountsDataLimit"`
	RequestedHeapBytes      uint32 `json:"requestedHeapBytes"`
	types.MessageHeader
}

// EncodeScale implements scale codec interface.
func (h *V2Header) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeUint64(enc, h.ComputeUnitPrice)
		if err != nil {
			return total, err
		}
		total += n
	}
	for _, v := range [...]uint32{h.ComputeUnitLimit, h.LoadedAccountsDataLimit, h.RequestedHeapBytes} {
		n, err := scale.EncodeUint32(enc, v)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := h.MessageHeader.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (h *V2Header) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeUint64(dec)
		if err != nil {
			return total, err
		}
		total += n
		h.ComputeUnitPrice = field
	}
	for _, dst := range [...]*uint32{&h.ComputeUnitLimit, &h.LoadedAccountsDataLimit, &h.RequestedHeapBytes} {
		field, n, err := scale.DecodeUint32(dec)
		if err != nil {
			return total, err
		}
		total += n
		*dst = field
	}
	{
		n, err := h.MessageHeader.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// V2 is a message with a V2Header.
type V2 struct {
	Header V2Header `json:"header"`
	Body
}

// CompileV2 builds a message signed by payer alone with every parameter in the
// header. Absent parameters are zero.
func CompileV2(payer types.Pubkey, params budget.BudgetParameters, blockhash types.Hash32) *V2 {
	h := params.Header()
	limit, _ := h.ComputeUnitLimit()
	price, _ := h.ComputeUnitPrice()
	loaded, _ := h.LoadedAccountsDataLimit()
	heap, _ := h.RequestedHeapBytesLimit()
	return &V2{
		Header: V2Header{
			ComputeUnitPrice:        price,
			ComputeUnitLimit:        limit,
			LoadedAccountsDataLimit: loaded,
			RequestedHeapBytes:      heap,
			MessageHeader:           types.MessageHeader{NumRequiredSignatures: 1},
		},
		Body: Body{
			AccountKeys:     []types.Pubkey{payer},
			RecentBlockhash: blockhash,
		},
	}
}

// EstimatedSize returns the encoded size of the message without encoding it.
func (m *V2) EstimatedSize() int {
	return V2HeaderSize + m.Body.EncodedSize()
}

// ID returns the hash of the encoded message.
func (m *V2) ID() types.Hash32 {
	return types.CalcHash32(codec.MustEncode(m))
}

// MarshalLogObject implements logging interface.
func (m *V2) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("version", "v2")
	enc.AddUint64("compute_unit_price", m.Header.ComputeUnitPrice)
	enc.AddUint32("compute_unit_limit", m.Header.ComputeUnitLimit)
	enc.AddUint32("loaded_accounts_data_limit", m.Header.LoadedAccountsDataLimit)
	enc.AddUint32("requested_heap_bytes", m.Header.RequestedHeapBytes)
	enc.AddObject("header", m.Header.MessageHeader)
	return marshalBody(enc, &m.Body)
}

// EncodeScale implements scale codec interface.
func (m *V2) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := m.Header.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := m.Body.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (m *V2) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := m.Header.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := m.Body.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

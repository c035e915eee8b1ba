package message

import (
	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"

	"github.com/cavemanloverboy/versioned-tx-simd/budget"
	"github.com/cavemanloverboy/versioned-tx-simd/codec"
	"github.com/cavemanloverboy/versioned-tx-simd/common/types"
)

// V1HeaderSize is the encoded size of V1Header.
const V1HeaderSize = 8 + 4 + types.MessageHeaderSize

// V1Header moves the unit price and limit into fixed header slots. Both are paid
// for even when unset.
type V1Header struct {
	ComputeUnitPrice uint64 `json:"computeUnitPrice"`
	ComputeUnitLimit uint32 `json:"computeUnitLimit"`
	types.MessageHeader
}

// EncodeScale implements scale codec interface.
func (h *V1Header) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeUint64(enc, h.ComputeUnitPrice)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeUint32(enc, h.ComputeUnitLimit)
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
func (h *V1Header) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeUint64(dec)
		if err != nil {
			return total, err
		}
		total += n
		h.ComputeUnitPrice = field
	}
	{
		field, n, err := scale.DecodeUint32(dec)
		if err != nil {
			return total, err
		}
		total += n
		h.ComputeUnitLimit = field
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

// V1 is a message with a V1Header.
type V1 struct {
	Header V1Header `json:"header"`
	Body
}

// CompileV1 builds a message signed by payer alone. Unit price and limit go to the
// header, absent ones as zero. The loaded accounts limit and heap size still need
// compute budget instructions.
func CompileV1(payer types.Pubkey, params budget.BudgetParameters, blockhash types.Hash32) *V1 {
	h := params.Header()
	limit, _ := h.ComputeUnitLimit()
	price, _ := h.ComputeUnitPrice()
	m := &V1{
		Header: V1Header{
			ComputeUnitPrice: price,
			ComputeUnitLimit: limit,
			MessageHeader:    types.MessageHeader{NumRequiredSignatures: 1},
		},
		Body: Body{
			AccountKeys:     []types.Pubkey{payer},
			RecentBlockhash: blockhash,
		},
	}
	rest := budget.NewBudgetHeader(nil, nil, params.LoadedAccountsDataLimit, params.RequestedHeapBytesLimit)
	m.Instructions = appendBudgetInstructions(&m.Header.MessageHeader, &m.Body, rest.InstructionData())
	return m
}

// EstimatedSize returns the encoded size of the message without encoding it.
func (m *V1) EstimatedSize() int {
	return V1HeaderSize + m.Body.EncodedSize()
}

// ID returns the hash of the encoded message.
func (m *V1) ID() types.Hash32 {
	return types.CalcHash32(codec.MustEncode(m))
}

// MarshalLogObject implements logging interface.
func (m *V1) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("version", "v1")
	enc.AddUint64("compute_unit_price", m.Header.ComputeUnitPrice)
	enc.AddUint32("compute_unit_limit", m.Header.ComputeUnitLimit)
	enc.AddObject("header", m.Header.MessageHeader)
	return marshalBody(enc, &m.Body)
}

// EncodeScale implements scale codec interface.
func (m *V1) EncodeScale(enc *scale.Encoder) (total int, err error) {
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
func (m *V1) DecodeScale(dec *scale.Decoder) (total int, err error) {
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

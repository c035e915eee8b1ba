package message

import (
	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"

	"github.com/cavemanloverboy/versioned-tx-simd/budget"
	"github.com/cavemanloverboy/versioned-tx-simd/codec"
	"github.com/cavemanloverboy/versioned-tx-simd/common/types"
)

// V3 starts with a budget header that carries only the parameters that are set.
// The budget header is always present, possibly empty.
//
// Field order keeps the struct 8-byte aligned with a size that is a multiple of 8,
// see layout.go.
type V3 struct {
	Budget budget.BudgetHeader `json:"budget"`
	Header types.MessageHeader `json:"header"`
	Body
}

// NewV3 assembles a message from optional budget parameters, a legacy header and
// copies of the body inputs. It fails only if a body input exceeds the wire
// limits. Instructions are not checked against the key list.
func NewV3(
	computeUnitLimit *uint32,
	computeUnitPrice *uint64,
	loadedAccountsDataLimit *uint32,
	requestedHeapBytesLimit *uint32,
	header types.MessageHeader,
	keys []types.Pubkey,
	blockhash types.Hash32,
	instructions []types.CompiledInstruction,
	lookups []types.AddressTableLookup,
) (*V3, error) {
	body, err := NewBody(keys, blockhash, instructions, lookups)
	if err != nil {
		return nil, err
	}
	return &V3{
		Budget: budget.NewBudgetHeader(computeUnitLimit, computeUnitPrice, loadedAccountsDataLimit, requestedHeapBytesLimit),
		Header: header,
		Body:   body,
	}, nil
}

// CompileV3 builds a message signed by payer alone with params in the budget header.
func CompileV3(payer types.Pubkey, params budget.BudgetParameters, blockhash types.Hash32) *V3 {
	return &V3{
		Budget: params.Header(),
		Header: types.MessageHeader{NumRequiredSignatures: 1},
		Body: Body{
			AccountKeys:     []types.Pubkey{payer},
			RecentBlockhash: blockhash,
		},
	}
}

// EstimatedSize returns the encoded size of the message without encoding it.
func (m *V3) EstimatedSize() int {
	return m.Budget.CompactSize() + types.MessageHeaderSize + m.Body.EncodedSize()
}

// ID returns the hash of the encoded message.
func (m *V3) ID() types.Hash32 {
	return types.CalcHash32(codec.MustEncode(m))
}

// MarshalLogObject implements logging interface.
func (m *V3) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("version", "v3")
	enc.AddObject("budget", m.Budget)
	enc.AddObject("header", m.Header)
	return marshalBody(enc, &m.Body)
}

// EncodeScale implements scale codec interface.
func (m *V3) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := m.Budget.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
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
func (m *V3) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := m.Budget.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
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

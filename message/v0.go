package message

import (
	"fmt"

	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"

	"github.com/cavemanloverboy/versioned-tx-simd/budget"
	"github.com/cavemanloverboy/versioned-tx-simd/codec"
	"github.com/cavemanloverboy/versioned-tx-simd/common/types"
)

// V0 carries no budget in its header. Budget parameters are compute budget
// instructions, which cost the program key and instruction framing.
type V0 struct {
	Header types.MessageHeader `json:"header"`
	Body
}

// NewV0 creates a V0 message from a legacy header and a copy of the body inputs.
func NewV0(
	header types.MessageHeader,
	keys []types.Pubkey,
	blockhash types.Hash32,
	instructions []types.CompiledInstruction,
	lookups []types.AddressTableLookup,
) (*V0, error) {
	body, err := NewBody(keys, blockhash, instructions, lookups)
	if err != nil {
		return nil, err
	}
	return &V0{Header: header, Body: body}, nil
}

// CompileV0 builds a message signed by payer alone that sets params through compute
// budget instructions. The program key is appended as a readonly non-signer only
// when at least one parameter is present.
func CompileV0(payer types.Pubkey, params budget.BudgetParameters, blockhash types.Hash32) *V0 {
	m := &V0{
		Header: types.MessageHeader{NumRequiredSignatures: 1},
		Body: Body{
			AccountKeys:     []types.Pubkey{payer},
			RecentBlockhash: blockhash,
		},
	}
	m.Instructions = appendBudgetInstructions(&m.Header, &m.Body, params.Header().InstructionData())
	return m
}

// appendBudgetInstructions adds the compute budget program to the keys of b and
// returns the instructions of b followed by one instruction per data entry.
func appendBudgetInstructions(header *types.MessageHeader, b *Body, data [][]byte) []types.CompiledInstruction {
	if len(data) == 0 {
		return b.Instructions
	}
	program := uint8(len(b.AccountKeys))
	b.AccountKeys = append(b.AccountKeys, budget.ComputeBudgetProgramID)
	header.NumReadonlyUnsignedAccounts++
	instructions := b.Instructions
	for _, d := range data {
		instructions = append(instructions, types.CompiledInstruction{ProgramIDIndex: program, Data: d})
	}
	return instructions
}

// budgetInstructionData returns the data of instructions addressed to the compute
// budget program.
func budgetInstructionData(b *Body) ([][]byte, error) {
	var data [][]byte
	for i, ci := range b.Instructions {
		if int(ci.ProgramIDIndex) >= len(b.AccountKeys) {
			return nil, fmt.Errorf("%w: instruction %d uses key %d of %d",
				ErrInvalidProgramIndex, i, ci.ProgramIDIndex, len(b.AccountKeys))
		}
		if b.AccountKeys[ci.ProgramIDIndex] == budget.ComputeBudgetProgramID {
			data = append(data, ci.Data)
		}
	}
	return data, nil
}

// Budget parses the compute budget instructions of the message.
func (m *V0) Budget() (budget.BudgetHeader, error) {
	data, err := budgetInstructionData(&m.Body)
	if err != nil {
		return budget.BudgetHeader{}, err
	}
	h, err := budget.ParseInstructions(data)
	if err != nil {
		return budget.BudgetHeader{}, fmt.Errorf("parse compute budget: %w", err)
	}
	return h, nil
}

// EstimatedSize returns the encoded size of the message without encoding it.
func (m *V0) EstimatedSize() int {
	return types.MessageHeaderSize + m.Body.EncodedSize()
}

// ID returns the hash of the encoded message.
func (m *V0) ID() types.Hash32 {
	return types.CalcHash32(codec.MustEncode(m))
}

// MarshalLogObject implements logging interface.
func (m *V0) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("version", "v0")
	enc.AddObject("header", m.Header)
	return marshalBody(enc, &m.Body)
}

// EncodeScale implements scale codec interface.
func (m *V0) EncodeScale(enc *scale.Encoder) (total int, err error) {
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
func (m *V0) DecodeScale(dec *scale.Decoder) (total int, err error) {
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

func marshalBody(enc zapcore.ObjectEncoder, b *Body) error {
	enc.AddInt("account_keys", len(b.AccountKeys))
	enc.AddString("blockhash", b.RecentBlockhash.ShortString())
	enc.AddInt("instructions", len(b.Instructions))
	enc.AddInt("lookups", len(b.AddressTableLookups))
	return nil
}

package budget

import (
	"bytes"
	"fmt"

	"github.com/spacemeshos/go-scale"

	"github.com/cavemanloverboy/versioned-tx-simd/common/types"
)

// ComputeBudgetProgramID is the program that v0 messages address budget instructions to.
var ComputeBudgetProgramID = types.MustPubkeyFromBase58("ComputeBudget111111111111111111111111111111")

// InstructionTag is the first byte of compute budget instruction data.
type InstructionTag uint8

const (
	TagRequestHeapFrame               InstructionTag = 1
	TagSetComputeUnitLimit            InstructionTag = 2
	TagSetComputeUnitPrice            InstructionTag = 3
	TagSetLoadedAccountsDataSizeLimit InstructionTag = 4
)

var fieldTags = [numFields]InstructionTag{
	ComputeUnitLimit:        TagSetComputeUnitLimit,
	ComputeUnitPrice:        TagSetComputeUnitPrice,
	LoadedAccountsDataLimit: TagSetLoadedAccountsDataSizeLimit,
	RequestedHeapBytesLimit: TagRequestHeapFrame,
}

// Tag returns the compute budget instruction that sets f.
func (f Field) Tag() InstructionTag {
	return fieldTags[f]
}

func (t InstructionTag) field() (Field, bool) {
	for _, f := range Fields {
		if fieldTags[f] == t {
			return f, true
		}
	}
	return 0, false
}

// InstructionData encodes the compute budget instruction that sets f to v:
// the tag byte followed by the value in the width of f.
func InstructionData(f Field, v uint64) []byte {
	var buf bytes.Buffer
	enc := scale.NewEncoder(&buf)
	// writes to bytes.Buffer do not fail
	_, _ = scale.EncodeByte(enc, byte(f.Tag()))
	if f.Width() == 8 {
		_, _ = scale.EncodeUint64(enc, v)
	} else {
		_, _ = scale.EncodeUint32(enc, uint32(v))
	}
	return buf.Bytes()
}

// InstructionData returns the data of one compute budget instruction per present
// parameter, in canonical order.
func (h BudgetHeader) InstructionData() [][]byte {
	fields := presentFields(h.flags)
	if len(fields) == 0 {
		return nil
	}
	data := make([][]byte, 0, len(fields))
	for _, f := range fields {
		v, _ := h.Value(f)
		data = append(data, InstructionData(f, v))
	}
	return data
}

// ParseInstruction decodes the data of a single compute budget instruction.
func ParseInstruction(data []byte) (Field, uint64, error) {
	dec := scale.NewDecoder(bytes.NewReader(data))
	tag, n, err := scale.DecodeByte(dec)
	if err != nil {
		return 0, 0, fmt.Errorf("instruction tag: %w", readError(err))
	}
	f, ok := InstructionTag(tag).field()
	if !ok {
		return 0, 0, fmt.Errorf("%w: tag %d", ErrUnknownInstruction, tag)
	}
	var (
		v     uint64
		total = n
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
		return 0, 0, fieldError(f, readError(err))
	}
	if total != len(data) {
		return 0, 0, fieldError(f, fmt.Errorf("%w: %d bytes after value", ErrCorruptEncoding, len(data)-total))
	}
	return f, v, nil
}

// ParseInstructions collects budget parameters from compute budget instruction data.
// Setting the same parameter twice fails with ErrDuplicateInstruction.
func ParseInstructions(data [][]byte) (BudgetHeader, error) {
	var params BudgetParameters
	var seen BudgetFlags
	for i, d := range data {
		f, v, err := ParseInstruction(d)
		if err != nil {
			return BudgetHeader{}, fmt.Errorf("instruction %d: %w", i, err)
		}
		if seen.Has(f.Flag()) {
			return BudgetHeader{}, fmt.Errorf("instruction %d: %w: %s", i, ErrDuplicateInstruction, f)
		}
		seen |= f.Flag()
		params.set(f, v)
	}
	return params.Header(), nil
}

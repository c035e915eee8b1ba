package message

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cavemanloverboy/versioned-tx-simd/budget"
	"github.com/cavemanloverboy/versioned-tx-simd/codec"
	"github.com/cavemanloverboy/versioned-tx-simd/common/types"
)

func TestNewV3CopiesInputs(t *testing.T) {
	keys := []types.Pubkey{testPayer}
	instructions := []types.CompiledInstruction{{ProgramIDIndex: 0, Accounts: []byte{0}, Data: []byte{1, 2}}}
	lookups := []types.AddressTableLookup{{WritableIndexes: []byte{3}}}
	limit := uint32(12)

	m, err := NewV3(&limit, nil, nil, nil, types.MessageHeader{NumRequiredSignatures: 1},
		keys, testBlockhash, instructions, lookups)
	require.NoError(t, err)

	keys[0] = types.Pubkey{}
	instructions[0].Data[0] = 9
	instructions[0].Accounts[0] = 9
	lookups[0].WritableIndexes[0] = 9
	limit = 0

	require.Equal(t, testPayer, m.AccountKeys[0])
	require.Equal(t, []byte{1, 2}, m.Instructions[0].Data)
	require.Equal(t, []byte{0}, m.Instructions[0].Accounts)
	require.Equal(t, []byte{3}, m.AddressTableLookups[0].WritableIndexes)
	v, ok := m.Budget.ComputeUnitLimit()
	require.True(t, ok)
	require.EqualValues(t, 12, v)
}

func TestNewV3EmptyBody(t *testing.T) {
	m, err := NewV3(nil, nil, nil, nil, types.MessageHeader{}, []types.Pubkey{}, types.Hash32{},
		[]types.CompiledInstruction{}, []types.AddressTableLookup{})
	require.NoError(t, err)
	require.Nil(t, m.AccountKeys)
	require.Nil(t, m.Instructions)
	require.Nil(t, m.AddressTableLookups)
	require.True(t, m.Budget.IsEmpty())
}

func TestNewV3NoCrossFieldChecks(t *testing.T) {
	// instructions may reference keys that do not exist
	_, err := NewV3(nil, nil, nil, nil, types.MessageHeader{NumRequiredSignatures: 5}, nil, testBlockhash,
		[]types.CompiledInstruction{{ProgramIDIndex: 200, Accounts: []byte{100}}}, nil)
	require.NoError(t, err)
}

func TestNewV3Limits(t *testing.T) {
	for _, tc := range []struct {
		desc         string
		keys         []types.Pubkey
		instructions []types.CompiledInstruction
		lookups      []types.AddressTableLookup
		err          error
	}{
		{
			desc: "keys",
			keys: make([]types.Pubkey, MaxAccountKeys+1),
			err:  ErrTooManyAccountKeys,
		},
		{
			desc:         "instructions",
			instructions: make([]types.CompiledInstruction, MaxInstructions+1),
			err:          ErrTooManyInstructions,
		},
		{
			desc:         "instruction accounts",
			instructions: []types.CompiledInstruction{{Accounts: make([]byte, types.MaxInstructionAccounts+1)}},
			err:          ErrInstructionTooLarge,
		},
		{
			desc:         "instruction data",
			instructions: []types.CompiledInstruction{{Data: make([]byte, types.MaxInstructionData+1)}},
			err:          ErrInstructionTooLarge,
		},
		{
			desc:    "lookups",
			lookups: make([]types.AddressTableLookup, MaxAddressTableLookups+1),
			err:     ErrTooManyLookups,
		},
		{
			desc:    "lookup indexes",
			lookups: []types.AddressTableLookup{{ReadonlyIndexes: make([]byte, types.MaxLookupIndexes+1)}},
			err:     ErrLookupTooLarge,
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			m, err := NewV3(budget.Some[uint32](1), nil, nil, nil, types.MessageHeader{},
				tc.keys, testBlockhash, tc.instructions, tc.lookups)
			require.ErrorIs(t, err, tc.err)
			require.Nil(t, m)
		})
	}
}

func TestBodyAtLimits(t *testing.T) {
	body, err := NewBody(
		make([]types.Pubkey, MaxAccountKeys),
		testBlockhash,
		[]types.CompiledInstruction{{
			Accounts: make([]byte, types.MaxInstructionAccounts),
			Data:     make([]byte, types.MaxInstructionData),
		}},
		nil,
	)
	require.NoError(t, err)
	m := &V0{Body: body}
	buf, err := codec.Encode(m)
	require.NoError(t, err)
	require.Len(t, buf, m.EstimatedSize())
}

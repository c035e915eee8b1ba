package budget

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldOrder(t *testing.T) {
	expected := []struct {
		field Field
		name  string
		flag  BudgetFlags
		width int
	}{
		{ComputeUnitLimit, "compute_unit_limit", 0b0001, 4},
		{ComputeUnitPrice, "compute_unit_price", 0b0010, 8},
		{LoadedAccountsDataLimit, "loaded_accounts_data_limit", 0b0100, 4},
		{RequestedHeapBytesLimit, "requested_heap_bytes_limit", 0b1000, 4},
	}
	require.Len(t, Fields, len(expected))
	for i, tc := range expected {
		require.Equal(t, tc.field, Fields[i])
		require.Equal(t, tc.name, tc.field.Name())
		require.Equal(t, tc.flag, tc.field.Flag())
		require.Equal(t, tc.width, tc.field.Width())
		require.Equal(t, i+1, tc.field.position())

		f, ok := lookupField(tc.name)
		require.True(t, ok)
		require.Equal(t, tc.field, f)
	}
	_, ok := lookupField(flagsField)
	require.False(t, ok)
	require.Equal(t, "field(7)", Field(7).Name())
}

func TestFlags(t *testing.T) {
	require.Equal(t, BudgetFlags(0x0f), AllFlags)
	for b := 0; b < 256; b++ {
		flags := BudgetFlags(b)
		require.Equal(t, b&0xf0 == 0, flags.Valid(), "flags %#08b", b)
		require.Equal(t, BudgetFlags(b&0xf0), flags.Reserved())
	}
	require.Equal(t, 0, BudgetFlags(0).Count())
	require.Equal(t, 4, BudgetFlags(0xff).Count())
	require.Equal(t, 2, (FlagComputeUnitLimit | FlagRequestedHeapBytesLimit).Count())

	require.True(t, AllFlags.Has(FlagComputeUnitPrice|FlagComputeUnitLimit))
	require.False(t, FlagComputeUnitPrice.Has(FlagComputeUnitPrice|FlagComputeUnitLimit))
}

func TestFlagsString(t *testing.T) {
	require.Equal(t, "none", BudgetFlags(0).String())
	require.Equal(t, "compute_unit_limit|compute_unit_price", (FlagComputeUnitLimit | FlagComputeUnitPrice).String())
	require.Equal(t, "requested_heap_bytes_limit|reserved(0b00100000)", (FlagRequestedHeapBytesLimit | 0x20).String())
}

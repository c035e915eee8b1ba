package budget

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchemaAcceptsEncodedHeaders(t *testing.T) {
	for _, h := range allHeaders() {
		data, err := json.Marshal(h)
		require.NoError(t, err)
		require.NoError(t, ValidateSchema(data), string(data))
	}
	widest := NewBudgetHeader(Some(uint32(1<<32-1)), Some(uint64(1<<64-1)), nil, nil)
	data, err := json.Marshal(widest)
	require.NoError(t, err)
	require.NoError(t, ValidateSchema(data))
}

func TestSchemaRejects(t *testing.T) {
	for _, tc := range []struct {
		desc string
		data string
	}{
		{"missing flags", `{"compute_unit_limit":1}`},
		{"unknown field", `{"flags":0,"gas":1}`},
		{"reserved bit", `{"flags":16}`},
		{"negative", `{"flags":1,"compute_unit_limit":-1}`},
		{"fraction", `{"flags":1,"compute_unit_limit":1.5}`},
		{"string", `{"flags":"1"}`},
		{"limit overflow", `{"flags":1,"compute_unit_limit":4294967296}`},
		{"price overflow", `{"flags":2,"compute_unit_price":18446744073709551616}`},
		{"array", `[1,2]`},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			require.ErrorContains(t, ValidateSchema([]byte(tc.data)), "validate budget header")
		})
	}
	require.ErrorContains(t, ValidateSchema([]byte(`{`)), "unmarshal budget header")
}

func TestSchemaLeavesConsistencyToDecoder(t *testing.T) {
	data := []byte(`{"flags":1}`)
	require.NoError(t, ValidateSchema(data))
	var h BudgetHeader
	require.ErrorIs(t, h.UnmarshalJSON(data), ErrInconsistentFlags)
}

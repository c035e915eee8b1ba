package message

import (
	"strconv"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/cavemanloverboy/versioned-tx-simd/budget"
)

func TestV3Layout(t *testing.T) {
	if strconv.IntSize != 64 {
		t.Skip("layout is defined for 64-bit targets")
	}
	require.Zero(t, unsafe.Sizeof(V3{})%8)
	require.EqualValues(t, 8, unsafe.Alignof(V3{}))
	require.Zero(t, unsafe.Offsetof(V3{}.Budget))
	require.EqualValues(t, 136, unsafe.Sizeof(V3{}))

	require.EqualValues(t, 24, unsafe.Sizeof(budget.BudgetHeader{}))
	require.EqualValues(t, 8, unsafe.Alignof(budget.BudgetHeader{}))
}

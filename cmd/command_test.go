package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/cavemanloverboy/versioned-tx-simd/budget"
	"github.com/cavemanloverboy/versioned-tx-simd/compare"
)

func execute(tb testing.TB, fs afero.Fs, args ...string) (string, error) {
	tb.Helper()
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	c := newCommand(fs)
	var out, errOut bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&errOut)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	require.Equal(t, "dev\n", out)

	Version, Commit = "v1.2.3", "abcdef"
	t.Cleanup(func() { Version, Commit = "", "" })
	out, err = execute(t, nil, "version")
	require.NoError(t, err)
	require.Equal(t, "v1.2.3+abcdef\n", out)
}

func TestCompareTable(t *testing.T) {
	out, err := execute(t, nil, "compare", "--color=false")
	require.NoError(t, err)
	require.Equal(t, ""+
		"scenario        v0    v1    v2    v3\n"+
		"noop            70    82    90    71\n"+
		"limit_price    122    82    90    83\n"+
		"full           138   130    90    91\n", out)
}

func TestCompareJSON(t *testing.T) {
	out, err := execute(t, nil, "compare", "--format", "json", "--value", "9")
	require.NoError(t, err)
	var r compare.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.EqualValues(t, 9, r.Value)
	require.Len(t, r.Cells, 12)
	require.Equal(t, compare.PayerFromSeed("payer"), r.Payer)
}

func TestCompareConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/vtx.yaml", []byte(`
compare:
  value: 7
  format: json
  payer-seed: alice
logging:
  level: error
`), 0o600))

	out, err := execute(t, fs, "compare", "-c", "/etc/vtx.yaml")
	require.NoError(t, err)
	var r compare.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.EqualValues(t, 7, r.Value)
	require.Equal(t, compare.PayerFromSeed("alice"), r.Payer)

	t.Run("flags override the file", func(t *testing.T) {
		out, err := execute(t, fs, "compare", "-c", "/etc/vtx.yaml", "--value", "8")
		require.NoError(t, err)
		var r compare.Report
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		require.EqualValues(t, 8, r.Value)
		require.Equal(t, compare.PayerFromSeed("alice"), r.Payer)
	})
}

func TestCompareConfigErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/unknown.yaml", []byte("compare:\n  colour: true\n"), 0o600))

	_, err := execute(t, fs, "compare", "-c", "/unknown.yaml")
	require.ErrorContains(t, err, "loading config")

	_, err = execute(t, fs, "compare", "-c", "/missing.yaml")
	require.ErrorContains(t, err, "failed to read config file")

	_, err = execute(t, fs, "compare", "--value", "4294967296")
	require.ErrorContains(t, err, "does not fit")

	_, err = execute(t, fs, "compare", "--format", "csv")
	require.ErrorContains(t, err, "unknown report format")

	_, err = execute(t, fs, "compare", "--log-level", "loud")
	require.ErrorContains(t, err, "parse log level")
}

func TestCompareOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.prom")
	out, err := execute(t, nil, "compare", "--format", "prometheus", "--output", path)
	require.NoError(t, err)
	require.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `vtx_compare_encoded_size_bytes{generation="v3",scenario="noop"} 71`)
}

func TestEncode(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		args     []string
		expected string
	}{
		{
			desc:     "empty",
			args:     []string{"encode"},
			expected: "00\n",
		},
		{
			desc:     "compact",
			args:     []string{"encode", "--limit", "12", "--price", "34"},
			expected: "030c0000002200000000000000\n",
		},
		{
			desc:     "explicit zero",
			args:     []string{"encode", "--heap", "0"},
			expected: "0800000000\n",
		},
		{
			desc:     "json",
			args:     []string{"encode", "--limit", "12", "--price", "34", "--form", "json"},
			expected: `{"flags":3,"compute_unit_limit":12,"compute_unit_price":34}` + "\n",
		},
		{
			desc:     "instructions",
			args:     []string{"encode", "--limit", "12", "--price", "34", "--form", "instructions"},
			expected: "020c000000\n032200000000000000\n",
		},
		{
			desc:     "no instructions",
			args:     []string{"encode", "--form", "instructions"},
			expected: "",
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			out, err := execute(t, nil, tc.args...)
			require.NoError(t, err)
			require.Equal(t, tc.expected, out)
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	_, err := execute(t, nil, "encode", "--limit", "4294967296")
	require.ErrorContains(t, err, "does not fit 32 bits")

	_, err = execute(t, nil, "encode", "--form", "xml")
	require.ErrorContains(t, err, "unknown form")
}

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		desc string
		args []string
	}{
		{"compact", []string{"decode", "030c0000002200000000000000"}},
		{"compact with prefix", []string{"decode", "0x030c0000002200000000000000"}},
		{"json", []string{"decode", "--form", "json", `{"compute_unit_price":34,"flags":3,"compute_unit_limit":12}`}},
		{"instructions", []string{"decode", "--form", "instructions", "032200000000000000", "020c000000"}},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			out, err := execute(t, nil, tc.args...)
			require.NoError(t, err)
			require.Equal(t, "budget{compute_unit_limit=12 compute_unit_price=34}\n", out)
		})
	}
}

func TestEncodeDecodeMsgpack(t *testing.T) {
	encoded, err := execute(t, nil, "encode", "--form", "msgpack", "--loaded", "56", "--heap", "78")
	require.NoError(t, err)
	out, err := execute(t, nil, "decode", "--form", "msgpack", encoded[:len(encoded)-1])
	require.NoError(t, err)
	require.Equal(t, "budget{loaded_accounts_data_limit=56 requested_heap_bytes_limit=78}\n", out)

	_, err = execute(t, nil, "decode", "--form", "msgpack", encoded[:len(encoded)-1]+"00")
	require.ErrorIs(t, err, budget.ErrCorruptEncoding)
}

func TestDecodeErrors(t *testing.T) {
	_, err := execute(t, nil, "decode", "20")
	require.ErrorIs(t, err, budget.ErrInvalidFlags)

	_, err = execute(t, nil, "decode", "030c000000")
	require.ErrorIs(t, err, budget.ErrUnexpectedEnd)

	_, err = execute(t, nil, "decode", "zz")
	require.ErrorContains(t, err, "decode hex")

	_, err = execute(t, nil, "decode", "00", "00")
	require.ErrorContains(t, err, "exactly one input")

	_, err = execute(t, nil, "decode", "--form", "instructions", "020c000000", "020c000000")
	require.ErrorIs(t, err, budget.ErrDuplicateInstruction)

	_, err = execute(t, nil, "decode", "--form", "json", `{"flags":1}`)
	require.ErrorIs(t, err, budget.ErrInconsistentFlags)

	_, err = execute(t, nil, "decode")
	require.Error(t, err)
}

func TestSchema(t *testing.T) {
	out, err := execute(t, nil, "schema")
	require.NoError(t, err)
	require.Equal(t, budget.JSONSchema+"\n", out)

	out, err = execute(t, nil, "schema", `{"flags":2,"compute_unit_price":34}`)
	require.NoError(t, err)
	require.Equal(t, "valid\n", out)

	_, err = execute(t, nil, "schema", `{"flags":2,"price":34}`)
	require.ErrorContains(t, err, "validate budget header")
}

package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cavemanloverboy/versioned-tx-simd/budget"
)

// Header forms accepted by encode and decode.
const (
	formCompact      = "compact"
	formMsgpack      = "msgpack"
	formJSON         = "json"
	formInstructions = "instructions"
)

var forms = []string{formCompact, formMsgpack, formJSON, formInstructions}

func formUsage() string {
	return "header form, one of " + strings.Join(forms, ", ")
}

func encodeCommand() *cobra.Command {
	var (
		form                          string
		limit, loaded, heap, priceArg uint64
	)
	c := &cobra.Command{
		Use:   "encode",
		Short: "encode a compute budget header from the parameters that are set",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			var params budget.BudgetParameters
			for _, p := range []struct {
				name  string
				value uint64
				dst   **uint32
			}{
				{"limit", limit, &params.ComputeUnitLimit},
				{"loaded", loaded, &params.LoadedAccountsDataLimit},
				{"heap", heap, &params.RequestedHeapBytesLimit},
			} {
				if !c.Flags().Changed(p.name) {
					continue
				}
				if p.value > 1<<32-1 {
					return fmt.Errorf("--%s %d does not fit 32 bits", p.name, p.value)
				}
				*p.dst = budget.Some(uint32(p.value))
			}
			if c.Flags().Changed("price") {
				params.ComputeUnitPrice = budget.Some(priceArg)
			}
			c.SilenceUsage = true
			return writeHeader(c.OutOrStdout(), form, params.Header())
		},
	}
	c.Flags().Uint64Var(&limit, "limit", 0, "compute unit limit")
	c.Flags().Uint64Var(&priceArg, "price", 0, "compute unit price in micro-lamports")
	c.Flags().Uint64Var(&loaded, "loaded", 0, "loaded accounts data size limit in bytes")
	c.Flags().Uint64Var(&heap, "heap", 0, "requested heap frame size in bytes")
	c.Flags().StringVar(&form, "form", formCompact, formUsage())
	return c
}

func decodeCommand() *cobra.Command {
	var form string
	c := &cobra.Command{
		Use:   "decode <input>...",
		Short: "decode a compute budget header and print its parameters",
		Long: "decode reads a header in the given form. Binary forms are hex encoded.\n" +
			"The instructions form takes the data of every compute budget instruction as\n" +
			"a separate argument.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if form != formInstructions && len(args) != 1 {
				return fmt.Errorf("form %s takes exactly one input, got %d", form, len(args))
			}
			c.SilenceUsage = true
			h, err := readHeader(form, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), h.String())
			return nil
		},
	}
	c.Flags().StringVar(&form, "form", formCompact, formUsage())
	return c
}

func schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [json]",
		Short: "print the json schema of the keyed header form, or validate a header against it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := fmt.Fprintln(c.OutOrStdout(), budget.JSONSchema)
				return err
			}
			c.SilenceUsage = true
			if err := budget.ValidateSchema([]byte(args[0])); err != nil {
				return err
			}
			_, err := fmt.Fprintln(c.OutOrStdout(), "valid")
			return err
		},
	}
}

func writeHeader(w io.Writer, form string, h budget.BudgetHeader) error {
	var lines []string
	switch form {
	case formCompact:
		lines = append(lines, hex.EncodeToString(h.EncodeCompact()))
	case formMsgpack:
		lines = append(lines, hex.EncodeToString(h.MarshalMsg(nil)))
	case formJSON:
		data, err := json.Marshal(h)
		if err != nil {
			return err
		}
		lines = append(lines, string(data))
	case formInstructions:
		for _, data := range h.InstructionData() {
			lines = append(lines, hex.EncodeToString(data))
		}
	default:
		return fmt.Errorf("unknown form %q", form)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func readHeader(form string, args []string) (budget.BudgetHeader, error) {
	switch form {
	case formCompact:
		data, err := decodeHex(args[0])
		if err != nil {
			return budget.BudgetHeader{}, err
		}
		return budget.DecodeCompact(data)
	case formMsgpack:
		data, err := decodeHex(args[0])
		if err != nil {
			return budget.BudgetHeader{}, err
		}
		var h budget.BudgetHeader
		rest, err := h.UnmarshalMsg(data)
		if err != nil {
			return budget.BudgetHeader{}, err
		}
		if len(rest) != 0 {
			return budget.BudgetHeader{}, fmt.Errorf("%w: %d bytes after header", budget.ErrCorruptEncoding, len(rest))
		}
		return h, nil
	case formJSON:
		var h budget.BudgetHeader
		if err := h.UnmarshalJSON([]byte(args[0])); err != nil {
			return budget.BudgetHeader{}, err
		}
		return h, nil
	case formInstructions:
		data := make([][]byte, 0, len(args))
		for _, arg := range args {
			d, err := decodeHex(arg)
			if err != nil {
				return budget.BudgetHeader{}, err
			}
			data = append(data, d)
		}
		return budget.ParseInstructions(data)
	}
	return budget.BudgetHeader{}, fmt.Errorf("unknown form %q", form)
}

func decodeHex(s string) ([]byte, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decode hex %q: %w", s, err)
	}
	return data, nil
}

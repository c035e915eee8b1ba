package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/cavemanloverboy/versioned-tx-simd/compare"
	"github.com/cavemanloverboy/versioned-tx-simd/config"
)

// AddFlags adds the flags shared by every command to flagSet and binds them to cfg.
// The returned pointer holds the config file path after parsing.
func AddFlags(flagSet *pflag.FlagSet, cfg *config.Config) (configPath *string) {
	configPath = flagSet.StringP("config", "c", "", "load configuration from file")

	/** ======================== Logging Flags ========================== **/

	flagSet.StringVar(&cfg.Logging.Level, "log-level",
		cfg.Logging.Level, "log level (debug, info, warn, error)")
	flagSet.StringVar(&cfg.Logging.Encoder, "log-encoder",
		cfg.Logging.Encoder, "log as plain text (console) or json")

	return configPath
}

// addCompareFlags adds the flags of the compare command and binds them to cfg.
func addCompareFlags(flagSet *pflag.FlagSet, cfg *config.CompareConfig) {
	flagSet.Uint64Var(&cfg.Value, "value",
		cfg.Value, "value of every present budget parameter")
	flagSet.StringVar(&cfg.PayerSeed, "payer-seed",
		cfg.PayerSeed, "seed of the ed25519 key that pays for the sample envelopes")
	flagSet.StringVar(&cfg.BlockhashSeed, "blockhash-seed",
		cfg.BlockhashSeed, "seed of the recent blockhash of the sample envelopes")
	flagSet.StringVarP(&cfg.Format, "format", "f",
		cfg.Format, "report format, one of "+strings.Join(compare.Formats, ", "))
	flagSet.StringVarP(&cfg.Output, "output", "o",
		cfg.Output, "write the report to this file instead of stdout")
	flagSet.BoolVar(&cfg.Color, "color",
		cfg.Color, "highlight the smallest generation of every scenario")
	flagSet.DurationVar(&cfg.Timeout, "timeout",
		cfg.Timeout, "abort the comparison after this long")
}

// Package config contains the configuration of the comparator and its command line.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// DefaultValue is the parameter value of the sample envelopes.
const DefaultValue = 12345

// Config defines the top level configuration.
type Config struct {
	Compare CompareConfig `mapstructure:"compare"`
	Logging LoggerConfig  `mapstructure:"logging"`
}

// CompareConfig configures how sample envelopes are built and reported.
type CompareConfig struct {
	// Value is used for every present budget parameter.
	Value uint64 `mapstructure:"value"`
	// PayerSeed derives the ed25519 key that pays for the sample envelopes.
	PayerSeed string `mapstructure:"payer-seed"`
	// BlockhashSeed derives the recent blockhash of the sample envelopes.
	BlockhashSeed string `mapstructure:"blockhash-seed"`

	Format  string        `mapstructure:"format"`
	Output  string        `mapstructure:"output"`
	Color   bool          `mapstructure:"color"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Compare: CompareConfig{
			Value:         DefaultValue,
			PayerSeed:     "payer",
			BlockhashSeed: "blockhash",
			Format:        "table",
			Color:         true,
			Timeout:       10 * time.Second,
		},
		Logging: defaultLoggingConfig(),
	}
}

// Validate checks values that the decoder can not check.
func (cfg *Config) Validate() error {
	if cfg.Compare.Value > 1<<32-1 {
		return fmt.Errorf("compare value %d does not fit a 32-bit parameter", cfg.Compare.Value)
	}
	if cfg.Compare.Timeout <= 0 {
		return errors.New("compare timeout must be positive")
	}
	return nil
}

// LoadConfig reads the config file at path from fs into vip. An empty path leaves
// vip empty.
func LoadConfig(fs afero.Fs, path string, vip *viper.Viper) error {
	if path == "" {
		return nil
	}
	vip.SetFs(fs)
	vip.SetConfigFile(path)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %w", err)
	}
	return nil
}

// Unmarshal decodes what vip holds over cfg. Keys that do not match a field are an
// error.
func Unmarshal(vip *viper.Viper, cfg *Config) error {
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		WithIgnoreUntagged(),
		WithErrorUnused(),
	}
	if err := vip.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func WithIgnoreUntagged() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.IgnoreUntaggedFields = true
	}
}

func WithErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/natefinch/atomic"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cavemanloverboy/versioned-tx-simd/compare"
	"github.com/cavemanloverboy/versioned-tx-simd/config"
	"github.com/cavemanloverboy/versioned-tx-simd/log"
)

// GetCommand returns the root command reading config files from the os filesystem.
func GetCommand() *cobra.Command {
	return newCommand(afero.NewOsFs())
}

func newCommand(fs afero.Fs) *cobra.Command {
	conf := config.DefaultConfig()
	var configPath *string
	c := &cobra.Command{
		Use:   "vtx",
		Short: "encode, decode and compare compute budget headers",
		Long: "vtx works with the compute budget header of v3 messages and compares the\n" +
			"encoded size of its parameters across message generations.",
		SilenceErrors: true,
	}
	configPath = AddFlags(c.PersistentFlags(), &conf)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "report the encoded size of sample envelopes of every generation",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if err := configure(c, fs, *configPath, &conf); err != nil {
				return err
			}
			c.SilenceUsage = true
			logger, err := newLogger(c, &conf)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runCompare(c.Context(), c.OutOrStdout(), logger, conf.Compare)
		},
	}
	addCompareFlags(compareCmd.Flags(), &conf.Compare)
	c.AddCommand(compareCmd)

	c.AddCommand(encodeCommand(), decodeCommand(), schemaCommand())

	// versionCmd returns the current version of the toolkit.
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(c.OutOrStdout(), versionString())
		},
	}
	c.AddCommand(versionCmd)

	return c
}

// configure loads the config file into conf and applies flags set on the command
// line over it.
func configure(c *cobra.Command, fs afero.Fs, path string, conf *config.Config) error {
	changed := map[*pflag.Flag]string{}
	c.Flags().Visit(func(f *pflag.Flag) {
		changed[f] = f.Value.String()
	})

	v := viper.New()
	if err := config.LoadConfig(fs, path, v); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := config.Unmarshal(v, conf); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	for f, value := range changed {
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("apply flag %s: %w", f.Name, err)
		}
	}
	return conf.Validate()
}

func newLogger(c *cobra.Command, conf *config.Config) (*zap.Logger, error) {
	logger, err := log.FromConfig("vtx", conf.Logging.Level, conf.Logging.Encoder, c.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

func runCompare(ctx context.Context, stdout io.Writer, logger *zap.Logger, cfg config.CompareConfig) error {
	colored := cfg.Color && cfg.Output == "" && !color.NoColor
	writer, err := compare.NewReportWriter(cfg.Format, colored)
	if err != nil {
		return err
	}
	cmp, err := compare.New(cfg, compare.WithLogger(logger), compare.WithWriter(writer))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if cfg.Output == "" {
		return cmp.Report(ctx, stdout)
	}
	var buf bytes.Buffer
	if err := cmp.Report(ctx, &buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(cfg.Output, &buf); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output, err)
	}
	logger.Info("report written", zap.String("path", cfg.Output), zap.String("format", cfg.Format))
	return nil
}

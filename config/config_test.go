package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/vtx.yaml", []byte(`
compare:
  value: 7
  format: json
  timeout: 3s
logging:
  level: debug
`), 0o600))

	vip := viper.New()
	require.NoError(t, LoadConfig(fs, "/etc/vtx.yaml", vip))

	cfg := DefaultConfig()
	require.NoError(t, Unmarshal(vip, &cfg))
	require.NoError(t, cfg.Validate())

	expected := DefaultConfig()
	expected.Compare.Value = 7
	expected.Compare.Format = "json"
	expected.Compare.Timeout = 3 * time.Second
	expected.Logging.Level = "debug"
	require.Equal(t, expected, cfg)
}

func TestLoadConfigMissingFile(t *testing.T) {
	err := LoadConfig(afero.NewMemMapFs(), "/missing.toml", viper.New())
	require.ErrorContains(t, err, "failed to read config file")
}

func TestLoadConfigEmptyPath(t *testing.T) {
	vip := viper.New()
	require.NoError(t, LoadConfig(afero.NewMemMapFs(), "", vip))

	cfg := DefaultConfig()
	require.NoError(t, Unmarshal(vip, &cfg))
	require.Equal(t, DefaultConfig(), cfg)
}

func TestUnmarshalUnknownKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "vtx.toml", []byte("[compare]\nvalu = 7\n"), 0o600))

	vip := viper.New()
	require.NoError(t, LoadConfig(fs, "vtx.toml", vip))
	cfg := DefaultConfig()
	require.ErrorContains(t, Unmarshal(vip, &cfg), "valu")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Compare.Value = 1 << 32
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Compare.Timeout = 0
	require.Error(t, cfg.Validate())
}

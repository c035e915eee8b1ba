package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cavemanloverboy/versioned-tx-simd/common/types"
)

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	enc, err := Encoder(ConsoleEncoder)
	require.NoError(t, err)

	hooked := 0
	logger := New("vtx", zap.NewAtomicLevelAt(zapcore.InfoLevel), enc, &buf, func(e zapcore.Entry) error {
		hooked++
		require.Equal(t, zapcore.InfoLevel, e.Level)
		return nil
	})
	logger.Debug("hidden")
	logger.Info("shown")

	require.Equal(t, "INFO\tvtx\tshown\n", buf.String())
	require.Equal(t, 1, hooked)
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := FromConfig("vtx", "debug", JSONEncoder, &buf)
	require.NoError(t, err)

	key := types.BytesToPubkey([]byte{1})
	logger.Debug("entry", ZShortStringer("key", key))

	var fields map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	require.Equal(t, "entry", fields["msg"])
	require.Equal(t, "vtx", fields["logger"])
	require.Equal(t, key.ShortString(), fields["key"])
}

func TestFromConfigErrors(t *testing.T) {
	_, err := FromConfig("vtx", "loud", ConsoleEncoder, nil)
	require.ErrorContains(t, err, "parse log level")

	_, err = FromConfig("vtx", "info", "xml", nil)
	require.ErrorContains(t, err, "unknown log encoder")
}

// Package log builds the zap loggers used by the comparator and the command line.
package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is the level of loggers built without an explicit one.
const DefaultLevel = zapcore.InfoLevel

// Encoders supported by New.
const (
	ConsoleEncoder = "console"
	JSONEncoder    = "json"
)

// where logs go by default.
var logWriter io.Writer = os.Stderr

// NewNop creates silent logger.
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// Encoder returns the zap encoder named by format.
func Encoder(format string) (zapcore.Encoder, error) {
	switch format {
	case "", ConsoleEncoder:
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		return zapcore.NewConsoleEncoder(cfg), nil
	case JSONEncoder:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	}
	return nil, fmt.Errorf("unknown log encoder %q", format)
}

// New creates a named logger writing to w, or to stderr if w is nil. Hooks run for
// every entry that passes level.
func New(name string,
	level zap.AtomicLevel,
	encoder zapcore.Encoder,
	w io.Writer,
	hooks ...func(zapcore.Entry) error,
) *zap.Logger {
	if w == nil {
		w = logWriter
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(zapcore.RegisterHooks(core, hooks...)).Named(name)
}

// FromConfig parses a level and an encoder name and creates a logger with them.
func FromConfig(name, level, format string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	enc, err := Encoder(format)
	if err != nil {
		return nil, err
	}
	return New(name, lvl, enc, w), nil
}

// ShortString is implemented by values with an abbreviated form for logs.
type ShortString interface {
	ShortString() string
}

// ZShortStringer returns a field with the abbreviated form of val.
func ZShortStringer(key string, val ShortString) zap.Field {
	return zap.String(key, val.ShortString())
}

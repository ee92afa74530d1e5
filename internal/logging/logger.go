// Package logging builds the zap loggers used by the server and adapts them
// to the tile fetcher's progress observer.
//
// All output goes to stderr by default: stdout carries the MCP protocol.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnvVar overrides the configured log level when set.
const LevelEnvVar = "TILE_STITCH_LOG_LEVEL"

// New creates a JSON logger at the given level writing to stderr.
func New(level string) (*zap.Logger, error) {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter creates a JSON logger at the given level writing to w.
// An empty level means info.
func NewWithWriter(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		lvl,
	)
	return zap.New(core), nil
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") into a
// zap level. Matching is case-insensitive.
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// ResolveLevel returns the level from LevelEnvVar if set, otherwise
// configured.
func ResolveLevel(configured string) string {
	if env := os.Getenv(LevelEnvVar); env != "" {
		return env
	}
	return configured
}

// Package logger builds the process logger.
//
// Records go to stderr so they never mix with command output on stdout.
// The console encoding is meant for humans, json for log collectors.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// New returns a logger writing records at or above level ("debug", "info",
// "warn" or "error") in the given encoding.
func New(level, encoding string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch encoding {
	case EncodingConsole, EncodingJSON:
	default:
		return nil, fmt.Errorf("invalid log format %q: expected %s or %s", encoding, EncodingConsole, EncodingJSON)
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(lvl)
	c.Encoding = encoding
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.Sampling = nil

	log, err := c.Build(
		zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}

	return log, nil
}

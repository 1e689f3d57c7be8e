// Package logger builds the zap loggers used by the command line tools and services.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns an info level sugared logger tagged with the service name.
// It falls back to a no-op logger if zap cannot be built.
func New(service string) *zap.SugaredLogger {
	log, err := NewWithLevel(service, "info")
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return log
}

// NewWithLevel returns a sugared logger writing JSON to stderr at the given level.
// Accepted levels are the ones understood by zapcore: debug, info, warn, error.
func NewWithLevel(service, level string) (*zap.SugaredLogger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q : %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = true
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.InitialFields = map[string]any{"service": service}

	log, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("error building logger : %w", err)
	}

	return log.Sugar(), nil
}

// OrNop returns log, or a no-op logger when log is nil.
func OrNop(log *zap.SugaredLogger) *zap.SugaredLogger {
	if log == nil {
		return zap.NewNop().Sugar()
	}
	return log
}

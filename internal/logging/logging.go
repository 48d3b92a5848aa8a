// Package logging builds the zap logger the rest of the client reports to.
// The TUI owns the terminal, so logs always go to a file.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a file-backed logger. An unwritable path degrades to a no-op
// logger rather than failing the client.
func New(path, level string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

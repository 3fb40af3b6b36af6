// Package zap builds the structured debug logger.
package zap

import (
	"fmt"
	"os"
	"path/filepath"

	zaplib "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultFileName is the debug log name inside the state directory.
const DefaultFileName = "debug.log"

// NewLogger returns a logger writing JSON lines at debug level to path,
// creating parent directories as needed. Call Sync before exit.
func NewLogger(path string) (*zaplib.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	cfg := zaplib.NewProductionConfig()
	cfg.Level = zaplib.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Nop returns a logger that discards everything.
func Nop() *zaplib.Logger {
	return zaplib.NewNop()
}

package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a file-backed logger. The TUI owns the terminal, so
// everything goes to ~/.config/gridcal/gridcal.log. When the file cannot be
// opened the logger is a nop rather than an error.
func NewLogger() *zap.Logger {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return zap.NewNop()
	}

	dir := filepath.Join(homeDir, ".config", "gridcal")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return zap.NewNop()
	}

	f, err := os.OpenFile(filepath.Join(dir, "gridcal.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return zap.NewNop()
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(f),
		zap.InfoLevel,
	)
	return zap.New(core)
}

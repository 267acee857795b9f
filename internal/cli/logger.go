package cli

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the console logger. Only warnings are shown until
// SetVerbose raises the level.
func NewLogger() (*zap.Logger, zap.AtomicLevel, error) {
	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, level, err
	}
	return logger, level, nil
}

// SetVerbose switches the logger to debug output
func SetVerbose(level zap.AtomicLevel, verbose bool) {
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.WarnLevel)
}

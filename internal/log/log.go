// Package log is the process-wide zap logger used by the library packages.
package log

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// Init builds the global logger at the given level ("debug", "info", ...).
// Calling it again replaces the logger.
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	logger.Store(l)
	return nil
}

func get() *zap.Logger {
	return logger.Load()
}

func Debug(msg string, fields ...zap.Field) {
	get().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	get().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	get().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	get().Error(msg, fields...)
}

func Sync() error {
	return get().Sync()
}

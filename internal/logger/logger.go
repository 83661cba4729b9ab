// Package logger provides structured logging for the video-translator application.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.Mutex
	base = build(false)
)

func build(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// Init reconfigures the default logger. Verbose enables debug output.
func Init(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	base = build(verbose)
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	_ = base.Sync()
}

// Debug logs a debug message with printf-style formatting.
func Debug(format string, args ...interface{}) {
	base.Debugf(format, args...)
}

// Info logs an informational message with printf-style formatting.
func Info(format string, args ...interface{}) {
	base.Infof(format, args...)
}

// Warn logs a warning message with printf-style formatting.
func Warn(format string, args ...interface{}) {
	base.Warnf(format, args...)
}

// Error logs an error message with printf-style formatting.
func Error(format string, args ...interface{}) {
	base.Errorf(format, args...)
}

// Package logger builds the service's zap logger. INFO and WARN go to stdout,
// ERROR and above go to stderr, and an optional file receives everything.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New instantiates a JSON logger. If logPath is non-empty, all levels are
// also appended to that file. The returned cleanup flushes and closes it.
func New(logPath string) (*zap.Logger, func(), error) {
	var file zapcore.WriteSyncer
	cleanup := func() {}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		file = zapcore.AddSync(f)
		cleanup = func() { f.Close() }
	}

	log := build(zapcore.Lock(os.Stdout), zapcore.Lock(os.Stderr), file)
	return log, func() {
		_ = log.Sync()
		cleanup()
	}, nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// build tees the level-split stdout/stderr cores with an optional file core.
func build(stdout, stderr, file zapcore.WriteSyncer) *zap.Logger {
	enc := zapcore.NewJSONEncoder(encoderConfig())

	info := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.InfoLevel && l < zapcore.ErrorLevel
	})
	errs := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.ErrorLevel
	})

	cores := []zapcore.Core{
		zapcore.NewCore(enc, stdout, info),
		zapcore.NewCore(enc, stderr, errs),
	}
	if file != nil {
		cores = append(cores, zapcore.NewCore(enc, file, zapcore.InfoLevel))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// Named returns a child logger with the provided component name.
func Named(base *zap.Logger, component string) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(component)
}

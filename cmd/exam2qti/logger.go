package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the diagnostics logger writing to w.
// Warnings are shown by default; verbose adds debug output with timestamps
// and callers, quiet keeps errors only. Writes are serialized across workers.
func newLogger(w io.Writer, quiet, verbose bool) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	level := zap.WarnLevel
	var opts []zap.Option
	switch {
	case quiet:
		level = zap.ErrorLevel
	case verbose:
		level = zap.DebugLevel
		encoderConfig.TimeKey = "time"
		encoderConfig.CallerKey = "caller"
		opts = append(opts, zap.AddCaller())
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core, opts...)
}

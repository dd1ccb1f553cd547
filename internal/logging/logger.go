// Package logging builds the app's zap logger. The terminal belongs to the
// UI, so records go to a rotated JSON file only.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	File  string
	Debug bool
}

// New returns a logger writing to opts.File and a func that flushes and
// closes it.
func New(opts Options) (*zap.Logger, func(), error) {
	if opts.File == "" {
		return nil, nil, fmt.Errorf("log file path is required")
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	logger := NewWithSyncer(zapcore.AddSync(rotator), opts.Debug)

	cleanup := func() {
		_ = logger.Sync()
		_ = rotator.Close()
	}

	return logger, cleanup, nil
}

func NewWithSyncer(ws zapcore.WriteSyncer, debug bool) *zap.Logger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), ws, level)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
}

package infra

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName is the rolling log file, colocated with the executable.
const LogFileName = "dwm_monitor.log"

const (
	logMaxSizeMB  = 20 // rotate at 20 MiB
	logMaxBackups = 5  // oldest rotated file is discarded past this
)

// NewRollingLogger builds a zap logger writing human-readable
// "timestamp - LEVEL - message" lines to a size-rotated file.
// An unopenable log file is a fatal startup condition for the caller.
func NewRollingLogger(path string) (*zap.Logger, error) {
	// lumberjack defers opening until the first write; probe up front so
	// startup fails instead of silently losing the only observability channel.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	f.Close()

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.ConsoleSeparator = " - "

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(sink),
		zap.InfoLevel,
	)

	return zap.New(core), nil
}

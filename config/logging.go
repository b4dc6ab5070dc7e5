package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
	gormlogger "gorm.io/gorm/logger"
)

// SetupLogging points the standard logger at the configured output and returns that writer.
// The returned close func flushes and releases the rotating file, if any.
func SetupLogging(cfg LoggingConfig) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	var out io.Writer
	closer := noop
	switch cfg.Output {
	case "", "stdout":
		out = os.Stdout
	case "file", "both":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, noop, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  false,
		}
		closer = rotator.Close
		out = rotator
		if cfg.Output == "both" {
			out = io.MultiWriter(os.Stdout, rotator)
		}
	default:
		return nil, noop, fmt.Errorf("unknown log output %q", cfg.Output)
	}

	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.LUTC)
	return out, closer, nil
}

// NewGormLogger builds the GORM logger writing to w at a level derived from the app log level
func NewGormLogger(w io.Writer, level string, slowThreshold time.Duration) gormlogger.Interface {
	return gormlogger.New(
		log.New(w, "gorm ", log.LstdFlags|log.Lmicroseconds|log.LUTC),
		gormlogger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  gormLogLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "info", "warn":
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}

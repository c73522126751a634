package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootLogger is the process-wide logger. Packages derive scoped loggers from it with
// With. The level comes from GLPI_LOG_LEVEL (debug, info, warn, error), default info.
var RootLogger = newRootLogger()

func newRootLogger() *zap.Logger {
	level := zapcore.InfoLevel
	if err := level.Set(getEnvOrDefault(GLPI_LOG_LEVEL, "info")); err != nil {
		level = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Package observability builds the structured loggers used by the Avrellant tools.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/avrellant/internal/config"
)

// NewLogger creates a structured logger from the given logging configuration.
// An empty Output writes to stderr so stdout stays free for command output.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	output := cfg.Output
	if output == "" {
		output = "stderr"
	}
	zapCfg.OutputPaths = []string{output}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// Must returns the logger built from cfg, falling back to a development logger
// when cfg is unusable. The fallback is reported through the returned logger.
func Must(cfg config.LoggingConfig) *zap.Logger {
	logger, err := NewLogger(cfg)
	if err == nil {
		return logger
	}
	fallback, ferr := zap.NewDevelopment()
	if ferr != nil {
		return zap.NewNop()
	}
	fallback.Warn("falling back to development logger", zap.Error(err))
	return fallback
}

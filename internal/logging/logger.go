// Package logging builds the zap logger used across Kara. Logs go to stderr so
// they never interleave with the conversation on stdout.
package logging

import (
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kara/internal/config"
)

// DebugEnvVar turns on debug logging regardless of configuration.
const DebugEnvVar = "KARA_DEBUG"

// DebugEnabled returns true if KARA_DEBUG is set to a non-empty value
func DebugEnabled() bool {
	return os.Getenv(DebugEnvVar) != ""
}

// Level picks warn by default and debug when verbose or KARA_DEBUG is set.
func Level(cfg config.ApplicationConfig) zapcore.Level {
	if cfg.Verbose || DebugEnabled() {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}

// New returns a logger writing to stderr, tagged with a fresh session_id.
func New(cfg config.ApplicationConfig) *zap.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg config.ApplicationConfig, w io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.LogFormat == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), Level(cfg))
	return zap.New(core).With(zap.String("session_id", uuid.NewString()))
}

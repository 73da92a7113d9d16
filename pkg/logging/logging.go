package logging

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production JSON logger at the given level. Unknown level
// strings fall back to info.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

// NewRunLogger returns a logger tagged with a fresh run id, so one
// generator run can be filtered out of interleaved output.
func NewRunLogger(level string) (*zap.Logger, string, error) {
	logger, err := New(level)
	if err != nil {
		return nil, "", err
	}

	runID := uuid.NewString()
	return logger.With(zap.String("run_id", runID)), runID, nil
}

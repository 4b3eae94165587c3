package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envLocal = "local"
	envTest  = "test"
)

// New returns a development logger for local and test environments and a JSON
// production logger otherwise.
func New(env string) (*zap.Logger, error) {
	switch env {
	case envLocal, envTest:
		return zap.NewDevelopment()
	default:
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg.Build()
	}
}

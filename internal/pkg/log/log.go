package log

import (
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *otelzap.Logger

func SetupLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if os.Getenv("LOG_LEVEL") == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func Init(l *zap.Logger) {
	logger = otelzap.New(l, otelzap.WithMinLevel(zap.InfoLevel))
}

func GetLogger() *otelzap.Logger {
	if logger == nil {
		Init(SetupLogger())
	}
	return logger
}

// Setup builds the process logger and returns it.
func Setup() *otelzap.Logger {
	Init(SetupLogger())
	return logger
}

package logger

import (
	"go.uber.org/zap"

	"os-manager/pkg/config"
)

func NewLogger(cfg config.LogConfig) *zap.Logger {
	level := zap.InfoLevel
	if cfg.Debug {
		level = zap.DebugLevel
	}

	outputs := []string{"stdout"}
	if cfg.FilePath != "" {
		outputs = append(outputs, cfg.FilePath)
	}

	dualConfig := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	dualLogger, err := dualConfig.Build()
	if err != nil {
		panic(err)
	}

	return dualLogger
}

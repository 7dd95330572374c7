package logger

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fatflowers/console/pkg/config"
)

// New builds the process logger. Dev keeps JSON output but logs at debug level.
func New(cfg *config.Config) (*zap.SugaredLogger, error) {
	zc := zap.NewProductionConfig()
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.EncoderConfig.TimeKey = "time"
	if cfg != nil && cfg.Env == config.EnvDev {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	env := config.EnvDev
	if cfg != nil {
		env = cfg.Env
	}
	return l.Sugar().With("service", "console", "env", env), nil
}

var Module = fx.Options(
	fx.Provide(New),
)

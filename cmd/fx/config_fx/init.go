package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"foodybuddy/internal/config"
	"foodybuddy/internal/logger"
)

var Module = fx.Options(
	fx.Provide(config.Load, provideLogger),
	fx.WithLogger(logger.FxEventLogger),
)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Environment))
	zap.ReplaceGlobals(log)

	lc.Append(fx.StopHook(func() {
		_ = log.Sync()
	}))
	return log, nil
}

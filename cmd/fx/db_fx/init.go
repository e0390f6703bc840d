package db_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodybuddy/internal/config"
	"foodybuddy/internal/infra"
)

var Module = fx.Provide(
	provideDB, provideRedis)

func provideDB(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.Database.Postgres, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		infra.ClosePostgresql(db, log)
	}))
	return db, nil
}

// provideRedis yields a nil client when redis is not configured.
func provideRedis(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	client, err := infra.InitRedis(context.Background(), cfg.Database.Redis, log)
	if err != nil || client == nil {
		return nil, err
	}
	lc.Append(fx.StopHook(client.Close))
	return client, nil
}

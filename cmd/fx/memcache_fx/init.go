package memcache_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	mem "foodybuddy/pkg/memcache"
)

const keyPrefix = "foodybuddy:"

var Module = fx.Provide(provideStore)

func provideStore(client *redis.Client, log *zap.Logger) mem.Store {
	if client == nil {
		log.Debug("expansion cache backed by process memory")
		return mem.NewMemoryStore()
	}
	return mem.NewRedisStore(client, keyPrefix)
}

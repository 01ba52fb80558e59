package bootstrap

import (
	"context"

	"pinmarket/internal/infra/cache"
	"pinmarket/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		func(rdb *redis.Client) redis.UniversalClient { return rdb },
		cache.NewStockCache,
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.RedisConfig) *redis.Client {
	rdb := cache.NewRedisClient(cfg)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	return rdb
}

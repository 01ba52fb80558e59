package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"pinmarket/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const stockKeyFormat = "stock:available:%s"

// StockCache keeps a short-lived copy of per-product availability for the
// stock-display path. It is never the authority for allocation decisions:
// every pool mutation invalidates the key instead of adjusting it.
type StockCache struct {
	rdb    redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewStockCache(rdb redis.UniversalClient, cfg config.RedisConfig, logger *slog.Logger) *StockCache {
	return &StockCache{rdb: rdb, ttl: cfg.StockTTL, logger: logger}
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func (c *StockCache) Get(ctx context.Context, productID uuid.UUID) (int64, bool) {
	val, err := c.rdb.Get(ctx, stockKey(productID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("stock cache read failed", "product_id", productID, "error", err)
		}
		return 0, false
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *StockCache) Set(ctx context.Context, productID uuid.UUID, available int64) {
	if err := c.rdb.Set(ctx, stockKey(productID), available, c.ttl).Err(); err != nil {
		c.logger.Warn("stock cache write failed", "product_id", productID, "error", err)
	}
}

// Invalidate drops the cached counts after any allocation-side mutation.
// Cache errors are logged and swallowed; the database count stays correct.
func (c *StockCache) Invalidate(ctx context.Context, productIDs ...uuid.UUID) {
	if len(productIDs) == 0 {
		return
	}

	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = stockKey(id)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("stock cache invalidation failed", "keys", len(keys), "error", err)
	}
}

func stockKey(productID uuid.UUID) string {
	return fmt.Sprintf(stockKeyFormat, productID)
}

// File: utils/cache.go
package utils

import (
	"context"

	"slotbook/config"

	"github.com/cockroachdb/errors"
	"github.com/go-redis/redis/v8"
)

// NewCacheClient connects to the Redis instance used for slot caching.
// It returns a nil client when no address is configured.
func NewCacheClient(cfg config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), CachePingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "failed to connect to Redis (Cache) at %s", cfg.RedisAddr)
	}
	return client, nil
}

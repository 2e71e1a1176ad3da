// Package redis connects to the Redis instance used for tokens and caching.
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"users_backend/internal/platform/config"
)

// NewRedisClient connects to Redis using the loaded configuration and
// verifies the connection with a ping.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	addr := cfg.Redis.Host + ":" + cfg.Redis.Port

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}

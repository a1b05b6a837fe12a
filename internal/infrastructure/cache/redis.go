// Package cache owns the optional Redis connection shared by the
// impersonation store and the realtime broker.
package cache

import (
	"context"
	"fmt"
	"time"

	"labtracker/internal/infrastructure/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns nil when no address is configured. A configured but
// unreachable server is an error.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

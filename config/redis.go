package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// OpenRedis returns nil when no address is configured or the server does not
// answer; callers treat a nil client as "cache disabled".
func OpenRedis(cfg *Config) *redis.Client {
	redisConf := cfg.Redis
	if redisConf.Addr == "" {
		slog.Info("redis not configured, news cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisConf.Addr,
		Password: redisConf.Password,
		DB:       redisConf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect to redis, news cache disabled", "addr", redisConf.Addr, "error", err)
		_ = client.Close()
		return nil
	}

	return client
}

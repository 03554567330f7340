package utils

import (
	"context"
	"fmt"
	"time"

	"lunchbox/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the shared Redis client used for reminder locks.
var CacheClient *redis.Client

// InitCache connects the Redis client using the cache DB from AppConfig.
func InitCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis (cache): %w", err)
	}
	CacheClient = client
	return nil
}

// GetCacheClient returns the Redis client, or nil when InitCache has not succeeded.
func GetCacheClient() *redis.Client {
	return CacheClient
}

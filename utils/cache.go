// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"svdiagnostic/config"

	"github.com/go-redis/redis/v8"
)

// StoreClient backs the durable device store when STORE_DRIVER=redis.
var StoreClient *redis.Client

// InitRedis connects the store client and verifies it with a ping.
func InitRedis() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisStoreDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis (store): %w", err)
	}
	StoreClient = client
	return nil
}

// GetStoreClient returns the redis client for the device store.
func GetStoreClient() (*redis.Client, error) {
	if StoreClient == nil {
		if err := InitRedis(); err != nil {
			return nil, err
		}
	}
	return StoreClient, nil
}

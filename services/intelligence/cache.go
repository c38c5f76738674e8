package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const adviceCachePrefix = "ai:advice:"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, symptoms string) (string, bool, error) {
	advice, err := c.client.Get(ctx, CacheKey(symptoms)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return advice, true, nil
}

func (c *RedisCache) Set(ctx context.Context, symptoms, advice string) error {
	return c.client.Set(ctx, CacheKey(symptoms), advice, c.ttl).Err()
}

// CacheKey hashes the normalised symptoms so equivalent wording shares an entry.
func CacheKey(symptoms string) string {
	normalised := strings.Join(strings.Fields(strings.ToLower(symptoms)), " ")
	sum := sha256.Sum256([]byte(normalised))
	return adviceCachePrefix + hex.EncodeToString(sum[:])
}

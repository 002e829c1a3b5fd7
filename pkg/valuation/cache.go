// 文件: pkg/valuation/cache.go
// 估值结果缓存 (cache-aside)，key 为合约指纹

package valuation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "valuation:result:"

// Cache 估值结果缓存，未命中返回 (nil, nil)
type Cache interface {
	Get(ctx context.Context, fingerprint string) (*Record, error)
	Set(ctx context.Context, fingerprint string, rec *Record) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(fingerprint string) string {
	return cacheKeyPrefix + fingerprint
}

func (c *RedisCache) Get(ctx context.Context, fingerprint string) (*Record, error) {
	data, err := c.client.Get(ctx, cacheKey(fingerprint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode cached valuation: %w", err)
	}
	return &rec, nil
}

func (c *RedisCache) Set(ctx context.Context, fingerprint string, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(fingerprint), data, c.ttl).Err()
}

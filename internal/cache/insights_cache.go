package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// InsightsCache stores rendered insights reports per user and range.
type InsightsCache interface {
	GetReport(ctx context.Context, userID uint, rangeKey string, dst any) (bool, error)
	SetReport(ctx context.Context, userID uint, rangeKey string, report any) error
	Invalidate(ctx context.Context, userID uint) error
}

type insightsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInsightsCache creates a redis backed cache. A nil client yields a cache
// that never hits.
func NewInsightsCache(client *redis.Client, ttl time.Duration) InsightsCache {
	if client == nil {
		return Noop{}
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &insightsCache{client: client, ttl: ttl}
}

// Key helpers
func (c *insightsCache) reportKey(userID uint, rangeKey string) string {
	return fmt.Sprintf("user:%d:insights:%s", userID, rangeKey)
}

func (c *insightsCache) indexKey(userID uint) string {
	return fmt.Sprintf("user:%d:insights", userID)
}

func (c *insightsCache) GetReport(ctx context.Context, userID uint, rangeKey string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, c.reportKey(userID, rangeKey)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := DecodeReport(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *insightsCache) SetReport(ctx context.Context, userID uint, rangeKey string, report any) error {
	data, err := EncodeReport(report)
	if err != nil {
		return err
	}
	key := c.reportKey(userID, rangeKey)
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, c.indexKey(userID), key)
	pipe.Expire(ctx, c.indexKey(userID), c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Invalidate drops every cached range for the user.
func (c *insightsCache) Invalidate(ctx context.Context, userID uint) error {
	keys, err := c.client.SMembers(ctx, c.indexKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	keys = append(keys, c.indexKey(userID))
	return c.client.Del(ctx, keys...).Err()
}

// EncodeReport serializes a report the way it is stored in redis.
func EncodeReport(report any) ([]byte, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encoding insights report: %w", err)
	}
	return data, nil
}

// DecodeReport reads a stored report into dst.
func DecodeReport(data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding insights report: %w", err)
	}
	return nil
}

// Noop is the cache used when redis is not configured.
type Noop struct{}

func (Noop) GetReport(context.Context, uint, string, any) (bool, error) {
	return false, nil
}

func (Noop) SetReport(context.Context, uint, string, any) error {
	return nil
}

func (Noop) Invalidate(context.Context, uint) error {
	return nil
}

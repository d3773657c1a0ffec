package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-timetable/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.StatsCache = (*RedisStatsCache)(nil)

const defaultStatsTTL = 24 * time.Hour

type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	return &RedisStatsCache{client: client, ttl: ttl}
}

func statsKey(timetableID string) string {
	return fmt.Sprintf("stats:%s", timetableID)
}

func (c *RedisStatsCache) Get(ctx context.Context, timetableID string) (*domain.TimetableStats, error) {
	data, err := c.client.Get(ctx, statsKey(timetableID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("stats cache: get: %w", err)
	}

	var stats domain.TimetableStats
	if err := json.Unmarshal(data, &stats); err != nil {
		c.client.Del(ctx, statsKey(timetableID))
		return nil, domain.ErrCacheMiss
	}
	return &stats, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, stats *domain.TimetableStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache: marshal: %w", err)
	}
	if err := c.client.Set(ctx, statsKey(stats.TimetableID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("stats cache: set: %w", err)
	}
	return nil
}

func (c *RedisStatsCache) Delete(ctx context.Context, timetableID string) error {
	if err := c.client.Del(ctx, statsKey(timetableID)).Err(); err != nil {
		return fmt.Errorf("stats cache: delete: %w", err)
	}
	return nil
}

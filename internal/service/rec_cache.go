package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"video-recommendation-service/internal/models"
)

const recCacheTTL = 10 * time.Minute

// recCache caches recommendation responses in Redis, keyed per user and
// limit. A nil client disables caching; every method is a no-op then.
type recCache struct {
	rdb *redis.Client
}

func newRecCache(rdb *redis.Client) *recCache {
	return &recCache{rdb: rdb}
}

func recCacheKey(userID string, limit int) string {
	return fmt.Sprintf("rec:user:%s:limit:%d", userID, limit)
}

func (c *recCache) Get(ctx context.Context, userID string, limit int) (*models.RecommendationResponse, bool) {
	if c.rdb == nil {
		return nil, false
	}
	cached, err := c.rdb.Get(ctx, recCacheKey(userID, limit)).Result()
	if err != nil {
		return nil, false
	}
	var resp models.RecommendationResponse
	if json.Unmarshal([]byte(cached), &resp) != nil {
		return nil, false
	}
	return &resp, true
}

func (c *recCache) Set(ctx context.Context, userID string, limit int, resp *models.RecommendationResponse) {
	if c.rdb == nil {
		return
	}
	if data, err := json.Marshal(resp); err == nil {
		c.rdb.Set(ctx, recCacheKey(userID, limit), data, recCacheTTL)
	}
}

// InvalidateUser drops the cached responses of a single user.
func (c *recCache) InvalidateUser(ctx context.Context, userID string) {
	c.deletePattern(ctx, fmt.Sprintf("rec:user:%s:limit:*", userID))
}

// InvalidateAll drops every cached response. Used when the catalog changes
// in a way that affects all users, such as a video deletion.
func (c *recCache) InvalidateAll(ctx context.Context) {
	c.deletePattern(ctx, "rec:user:*")
}

func (c *recCache) deletePattern(ctx context.Context, pattern string) {
	if c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}

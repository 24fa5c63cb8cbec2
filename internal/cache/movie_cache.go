package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/juarodriguezg/Backend-FilmStack/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyListPrefix = "movies:list:"

// MovieCache caches per-user movie lists in Redis.
type MovieCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewMovieCache returns a new MovieCache.
func NewMovieCache(rdb *redis.Client, ttl time.Duration) *MovieCache {
	return &MovieCache{rdb: rdb, ttl: ttl}
}

func listKey(userID int64) string {
	return keyListPrefix + strconv.FormatInt(userID, 10)
}

// GetList returns the cached list for the user, or nil on miss.
func (c *MovieCache) GetList(ctx context.Context, userID int64) ([]dom.Movie, error) {
	b, err := c.rdb.Get(ctx, listKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Movie
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the user's list in cache.
func (c *MovieCache) SetList(ctx context.Context, userID int64, list []dom.Movie) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(userID), b, c.ttl).Err()
}

// Invalidate drops the user's cached list (called on every mutation).
func (c *MovieCache) Invalidate(ctx context.Context, userID int64) error {
	return c.rdb.Del(ctx, listKey(userID)).Err()
}

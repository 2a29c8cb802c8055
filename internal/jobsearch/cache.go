package jobsearch

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores serialized provider responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// CacheKey builds a deterministic cache key from parts.
func CacheKey(parts ...string) string {
	joined := strings.ToLower(strings.Join(parts, "|"))
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("hirekit:jobs:%x", hash[:12])
}

// RedisCache is a Cache backed by Redis. Errors are logged and treated as
// misses.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache connects to redisURL and verifies the connection.
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", opts.Addr, err)
	}
	return &RedisCache{rdb: rdb, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cache: redis get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		slog.Warn("cache: redis set failed", "key", key, "error", err)
	}
}

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// CachedProvider serves repeated queries from a Cache. Only non-empty
// results are stored. Listings are cached with their creation time so the
// relative posted date is computed when they are served.
type CachedProvider struct {
	next  Provider
	cache Cache
	now   func() time.Time
}

// cachedListing is the stored form of a JobListing.
type cachedListing struct {
	JobListing
	PostedAt time.Time `json:"postedAt"`
}

// WithCache wraps p with cache. A nil cache returns p unchanged.
func WithCache(p Provider, cache Cache) Provider {
	if cache == nil {
		return p
	}
	return &CachedProvider{next: p, cache: cache, now: time.Now}
}

func (c *CachedProvider) Search(ctx context.Context, q Query) ([]JobListing, error) {
	key := CacheKey(q.What, q.Where, q.Country)
	if data, ok := c.cache.Get(ctx, key); ok {
		var stored []cachedListing
		if err := json.Unmarshal(data, &stored); err == nil {
			slog.Debug("cache: hit", "key", key)
			now := c.now()
			listings := make([]JobListing, len(stored))
			for i, s := range stored {
				l := s.JobListing
				if !s.PostedAt.IsZero() {
					l.Posted = s.PostedAt
					l.PostedDate = RelativeTime(s.PostedAt, now)
				}
				listings[i] = l
			}
			return listings, nil
		}
	}

	listings, err := c.next.Search(ctx, q)
	if err != nil || len(listings) == 0 {
		return listings, err
	}
	stored := make([]cachedListing, len(listings))
	for i, l := range listings {
		stored[i] = cachedListing{JobListing: l, PostedAt: l.Posted}
	}
	if data, err := json.Marshal(stored); err == nil {
		c.cache.Set(ctx, key, data)
	}
	return listings, nil
}

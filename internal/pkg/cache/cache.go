package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys for the cached list reads
const (
	KeyFaculties  = "faculties"
	KeyPromotions = "promotions"
	KeyStudents   = "students"
)

const (
	keyPrefix     = "unicampus:list:"
	generationKey = keyPrefix + "generation"
)

// ListCache stores serialized list reads. Any write to the registry
// invalidates every entry because joined reads embed parent names.
//
// Entries belong to a generation. Readers take the generation before loading
// from the database and store under it; Invalidate moves to a new generation,
// so a list loaded before a write can never be served after it.
type ListCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, generation int64, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, generation int64, key string, value interface{}) error
	Invalidate(ctx context.Context) error
}

// Noop is used when no Redis address is configured.
type Noop struct{}

func (Noop) Generation(context.Context) (int64, error)                      { return 0, nil }
func (Noop) Get(context.Context, int64, string, interface{}) (bool, error) { return false, nil }
func (Noop) Set(context.Context, int64, string, interface{}) error         { return nil }
func (Noop) Invalidate(context.Context) error                              { return nil }

// RedisCache is a ListCache backed by Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Connect opens a Redis client and verifies the connection.
func Connect(ctx context.Context, opts Options) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisCache(client, opts.TTL), nil
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Generation returns the current cache generation, 0 before the first write.
func (c *RedisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return gen, nil
}

// Get decodes the cached value into dest and reports whether it was present.
func (c *RedisCache) Get(ctx context.Context, generation int64, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, entryKey(generation, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set stores value as JSON with the configured TTL. A value stored under a
// generation that has since been invalidated is never read back.
func (c *RedisCache) Set(ctx context.Context, generation int64, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", key, err)
	}
	if err := c.client.Set(ctx, entryKey(generation, key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Invalidate starts a new generation and removes the entries of older ones.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	gen, err := c.client.Incr(ctx, generationKey).Result()
	if err != nil {
		return fmt.Errorf("redis incr generation: %w", err)
	}

	current := entryKey(gen, "")
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		key := iter.Val()
		if key == generationKey || strings.HasPrefix(key, current) {
			continue
		}
		keys = append(keys, key)
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close releases the Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func entryKey(generation int64, key string) string {
	return fmt.Sprintf("%s%d:%s", keyPrefix, generation, key)
}

// PromotionsByFacultyKey is the cache key for one faculty's promotions.
func PromotionsByFacultyKey(facultyID int64) string {
	return fmt.Sprintf("%s:faculty:%d", KeyPromotions, facultyID)
}

// StudentsByPromotionKey is the cache key for one promotion's students.
func StudentsByPromotionKey(promotionID int64) string {
	return fmt.Sprintf("%s:promotion:%d", KeyStudents, promotionID)
}

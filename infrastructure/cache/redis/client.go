// ABOUTME: Redis cache implementation using go-redis client
// ABOUTME: Stores entries as plain strings or, optionally, as RedisJSON documents

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nitishm/go-rejson/v4"
	"github.com/redis/go-redis/v9"

	"newsdesk-api/core/interfaces"
	"newsdesk-api/pkg/config"
)

// ErrInvalidJSON is returned in JSON mode for values that are not JSON documents
var ErrInvalidJSON = errors.New("redis json mode requires a JSON value")

// RedisCache implements the Cache interface using Redis
type RedisCache struct {
	client  *redis.Client
	handler *rejson.Handler
	useJSON bool
}

// NewRedisCache creates a new Redis cache instance and checks the connection
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewRedisCacheFromClient(client, cfg.UseJSON), nil
}

// NewRedisCacheFromClient wraps an existing client. With useJSON set,
// entries are written with JSON.SET so they can be inspected with RedisJSON.
func NewRedisCacheFromClient(client *redis.Client, useJSON bool) *RedisCache {
	c := &RedisCache{client: client, useJSON: useJSON}
	if useJSON {
		c.handler = rejson.NewReJSONHandler()
		c.handler.SetGoRedisClient(client)
	}
	return c
}

// Get retrieves a value from Redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.useJSON {
		return c.getJSON(key)
	}

	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrCacheMiss, key)
		}
		return nil, err
	}
	return val, nil
}

// Set stores a value in Redis with the given TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if !c.useJSON {
		// Redis SET with 0 TTL means no expiration
		return c.client.Set(ctx, key, value, ttl).Err()
	}

	if !json.Valid(value) {
		return ErrInvalidJSON
	}
	if _, err := c.handler.JSONSet(key, ".", json.RawMessage(value)); err != nil {
		return err
	}
	if ttl > 0 {
		return c.client.Expire(ctx, key, ttl).Err()
	}
	// JSON.SET keeps an existing TTL, so a never-expiring write must clear it
	return c.client.Persist(ctx, key).Err()
}

// Delete removes a key from Redis
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	// deleting a missing key is not an error
	return c.client.Del(ctx, key).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) getJSON(key string) ([]byte, error) {
	res, err := c.handler.JSONGet(key, ".")
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrCacheMiss, key)
		}
		return nil, err
	}

	switch v := res.(type) {
	case nil:
		return nil, fmt.Errorf("%w: %s", interfaces.ErrCacheMiss, key)
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unexpected JSON.GET reply %T", res)
	}
}

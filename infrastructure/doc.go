// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, translation and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache backed by go-cache
// - cache/redis: Redis cache with an optional RedisJSON document mode
// - cache/sqlite: File-backed cache that survives restarts
// - http/standard: HTTP client with retry and pacing, plus the image prober
// - logger/structured: logrus logger with optional file rotation
// - translate: LibreTranslate client and a caching decorator
//
// # Cache Implementations
//
// Every backend treats a zero TTL as "never expires" and reports absent keys
// with a wrapped interfaces.ErrCacheMiss.
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "content:National:6", entry, 0)
//	value, err := cache.Get(ctx, "content:National:6")
//
//	cache, err := sqlite.NewSQLiteCache("newsdesk-cache.db")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address: "localhost:6379",
//	    UseJSON: true,
//	})
//
// # HTTP Client
//
// GET requests are retried on transport errors and 5xx responses:
//
//	client := standard.NewStandardHTTPClientWithOptions(standard.Options{
//	    Timeout:           10 * time.Second,
//	    RequestsPerSecond: 20,
//	    Burst:             5,
//	})
//	resp, err := client.Get(ctx, "https://api.example.com/api/content?limit=6")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger, err := structured.New(structured.Options{Level: "info", Format: "json"})
//	logger.Warn("Origin fetch failed, using cache", map[string]interface{}{
//	    "selector": "National",
//	    "count":    6,
//	})
package infrastructure

// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for creating default service implementations

package newsdesk

import (
	"time"

	"newsdesk-api/core/interfaces"
	"newsdesk-api/infrastructure/cache/memory"
	"newsdesk-api/infrastructure/cache/sqlite"
	httpInfra "newsdesk-api/infrastructure/http/standard"
	"newsdesk-api/infrastructure/logger/structured"
)

// DefaultProbeTimeout bounds a single image probe
const DefaultProbeTimeout = 10 * time.Second

// DefaultHTTPClient creates a default HTTP client
func DefaultHTTPClient() interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(10 * time.Second)
}

// DefaultMemoryCache creates a default in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache()
}

// DefaultSQLiteCache creates a SQLite cache with the given file path
func DefaultSQLiteCache(filePath string) (*sqlite.Client, error) {
	return sqlite.NewSQLiteCache(filePath)
}

// DefaultLogger creates a default logger that writes JSON to stdout
func DefaultLogger() interfaces.Logger {
	return structured.NewDefault()
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return interfaces.NopLogger{}
}

// CacheOption represents cache configuration options
type CacheOption struct {
	Type     CacheType
	FilePath string // For SQLite cache
}

// CacheType represents the type of cache
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeSQLite CacheType = "sqlite"
)

// WithCacheOption creates a cache based on the provided options
func WithCacheOption(opt CacheOption) Option {
	return func(c *Config) error {
		switch opt.Type {
		case CacheTypeMemory:
			c.Cache = DefaultMemoryCache()
		case CacheTypeSQLite:
			if opt.FilePath == "" {
				opt.FilePath = "newsdesk_cache.db"
			}
			cache, err := DefaultSQLiteCache(opt.FilePath)
			if err != nil {
				return NewError(ErrorTypeConfiguration, "failed to open sqlite cache").
					WithCause(err).
					WithContext("path", opt.FilePath)
			}
			c.Cache = cache
			c.closers = append(c.closers, cache.Close)
		default:
			return NewError(ErrorTypeConfiguration, "invalid cache type").
				WithContext("type", string(opt.Type))
		}
		return nil
	}
}

// WithImageProbing probes images with the standard prober
func WithImageProbing(probeTimeout time.Duration) Option {
	return WithImageProber(httpInfra.NewImageProber(probeTimeout))
}

// WithoutImageProbing accepts every non-empty image URL without loading it
func WithoutImageProbing() Option {
	return func(c *Config) error {
		c.ImageProber = nil
		c.TrustImageURLs = true
		return nil
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = QuietLogger()
		return nil
	}
}

// applyDefaults fills every dependency left unset
func applyDefaults(c *Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = DefaultHTTPClient()
	}
	if c.Cache == nil {
		c.Cache = DefaultMemoryCache()
	}
	if c.Logger == nil {
		c.Logger = DefaultLogger()
	}
	if c.ImageProber == nil && !c.TrustImageURLs {
		c.ImageProber = httpInfra.NewImageProber(DefaultProbeTimeout)
	}
}

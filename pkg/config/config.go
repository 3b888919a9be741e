// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defaults are overlaid by an optional YAML file, a .env file and the environment

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"newsdesk-api/pkg/utils/parse"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `yaml:"server"`

	// Origin describes the remote content API
	Origin OriginConfig `yaml:"origin"`

	// Images configures the image availability gate
	Images ImageConfig `yaml:"images"`

	// Translation configures the optional translation capability
	Translation TranslationConfig `yaml:"translation"`

	// Cache contains cache configuration
	Cache CacheConfig `yaml:"cache"`

	Log LogConfig `yaml:"log"`

	// Prefetch configures background cache warming
	Prefetch PrefetchConfig `yaml:"prefetch"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `yaml:"port"`

	// RequestsPerSecond and Burst size the per-client rate limiter
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	// AllowedOrigins lists CORS origins, "*" allows any
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// OriginConfig holds origin service settings
type OriginConfig struct {
	BaseURL string `yaml:"base_url"`

	// Timeout applies to ordinary fetches, BreakingTimeout to breaking lists
	Timeout         time.Duration `yaml:"timeout"`
	BreakingTimeout time.Duration `yaml:"breaking_timeout"`

	// RequestsPerSecond throttles outgoing requests, zero disables throttling
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	MaxRetries int `yaml:"max_retries"`
}

// ImageConfig holds image gate settings
type ImageConfig struct {
	// GateTimeout is the shared deadline for one batch of probes
	GateTimeout time.Duration `yaml:"gate_timeout"`

	// ProbeTimeout bounds a single probe request
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	ProbeConcurrency int `yaml:"probe_concurrency"`

	// PlaceholderTemplate must contain one %d for the seed
	PlaceholderTemplate string `yaml:"placeholder_template"`
}

// TranslationConfig holds translation capability settings
type TranslationConfig struct {
	// Endpoint is a LibreTranslate-compatible base URL; empty disables translation
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`

	// Timeout bounds one translation request
	Timeout time.Duration `yaml:"timeout"`

	// SourceLanguage is the language articles are stored in
	SourceLanguage string `yaml:"source_language"`

	// CacheTTL is how long translated strings are memoized
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string `yaml:"type"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `yaml:"redis"`

	// Memory contains in-memory cache configuration
	Memory MemoryConfig `yaml:"memory"`

	// SQLite contains file-backed cache configuration
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `yaml:"address"`

	// Password is the Redis authentication password
	Password string `yaml:"password"`

	// DB is the Redis database number
	DB int `yaml:"db"`

	// UseJSON stores entries as RedisJSON documents
	UseJSON bool `yaml:"use_json"`
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// CleanupInterval is how often expired entries are purged
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// SQLiteConfig holds SQLite cache configuration
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`

	// Format is json or text
	Format string `yaml:"format"`

	// File enables rotated file output when set
	File string `yaml:"file"`
}

// PrefetchConfig holds background cache warming configuration
type PrefetchConfig struct {
	// Selectors are kept warm, in the textual selector form
	Selectors []string      `yaml:"selectors"`
	Count     int           `yaml:"count"`
	Interval  time.Duration `yaml:"interval"`
	Workers   int           `yaml:"workers"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              "8000",
			RequestsPerSecond: 10,
			Burst:             20,
			AllowedOrigins:    []string{"*"},
		},
		Origin: OriginConfig{
			BaseURL:         "http://localhost:5000/api",
			Timeout:         5 * time.Second,
			BreakingTimeout: 10 * time.Second,
			MaxRetries:      0,
		},
		Images: ImageConfig{
			GateTimeout:         15 * time.Second,
			ProbeTimeout:        10 * time.Second,
			ProbeConcurrency:    8,
			PlaceholderTemplate: "https://picsum.photos/seed/%d/800/450",
		},
		Translation: TranslationConfig{
			Timeout:        10 * time.Second,
			SourceLanguage: "en",
			CacheTTL:       24 * time.Hour,
		},
		Cache: CacheConfig{
			Type: "memory",
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
			Memory: MemoryConfig{
				CleanupInterval: 10 * time.Minute,
			},
			SQLite: SQLiteConfig{
				Path: "newsdesk-cache.db",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Prefetch: PrefetchConfig{
			Selectors: []string{"breaking", "trending"},
			Count:     0,
			Interval:  5 * time.Minute,
			Workers:   2,
		},
	}
}

// LoadFromEnv loads configuration from environment variables. A .env file
// in the working directory is read first, then CONFIG_FILE if it is set.
func LoadFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFromFile loads a YAML file over the defaults, then applies the environment
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.RequestsPerSecond = getEnvAsFloatOrDefault("RATE_LIMIT_RPS", c.Server.RequestsPerSecond)
	c.Server.Burst = getEnvAsIntOrDefault("RATE_LIMIT_BURST", c.Server.Burst)
	c.Server.AllowedOrigins = getEnvAsListOrDefault("CORS_ORIGINS", c.Server.AllowedOrigins)

	c.Origin.BaseURL = getEnvOrDefault("ORIGIN_BASE_URL", c.Origin.BaseURL)
	c.Origin.Timeout = getEnvAsDurationOrDefault("ORIGIN_TIMEOUT", c.Origin.Timeout)
	c.Origin.BreakingTimeout = getEnvAsDurationOrDefault("ORIGIN_BREAKING_TIMEOUT", c.Origin.BreakingTimeout)
	c.Origin.RequestsPerSecond = getEnvAsFloatOrDefault("ORIGIN_RPS", c.Origin.RequestsPerSecond)
	c.Origin.MaxRetries = getEnvAsIntOrDefault("ORIGIN_MAX_RETRIES", c.Origin.MaxRetries)

	c.Images.GateTimeout = getEnvAsDurationOrDefault("IMAGE_GATE_TIMEOUT", c.Images.GateTimeout)
	c.Images.ProbeTimeout = getEnvAsDurationOrDefault("IMAGE_PROBE_TIMEOUT", c.Images.ProbeTimeout)
	c.Images.ProbeConcurrency = getEnvAsIntOrDefault("IMAGE_PROBE_CONCURRENCY", c.Images.ProbeConcurrency)
	c.Images.PlaceholderTemplate = getEnvOrDefault("PLACEHOLDER_TEMPLATE", c.Images.PlaceholderTemplate)

	c.Translation.Endpoint = getEnvOrDefault("TRANSLATE_ENDPOINT", c.Translation.Endpoint)
	c.Translation.APIKey = getEnvOrDefault("TRANSLATE_API_KEY", c.Translation.APIKey)
	c.Translation.Timeout = getEnvAsDurationOrDefault("TRANSLATE_TIMEOUT", c.Translation.Timeout)
	c.Translation.SourceLanguage = getEnvOrDefault("SOURCE_LANGUAGE", c.Translation.SourceLanguage)
	c.Translation.CacheTTL = getEnvAsDurationOrDefault("TRANSLATE_CACHE_TTL", c.Translation.CacheTTL)

	c.Cache.Type = getEnvOrDefault("CACHE_TYPE", c.Cache.Type)
	c.Cache.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", c.Cache.Redis.Address)
	c.Cache.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Cache.Redis.Password)
	c.Cache.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", c.Cache.Redis.DB)
	c.Cache.Redis.UseJSON = getEnvAsBoolOrDefault("REDIS_USE_JSON", c.Cache.Redis.UseJSON)
	c.Cache.Memory.CleanupInterval = getEnvAsDurationOrDefault("MEMORY_CLEANUP_INTERVAL", c.Cache.Memory.CleanupInterval)
	c.Cache.SQLite.Path = getEnvOrDefault("SQLITE_PATH", c.Cache.SQLite.Path)

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)
	c.Log.File = getEnvOrDefault("LOG_FILE", c.Log.File)

	c.Prefetch.Selectors = getEnvAsListOrDefault("PREFETCH_SELECTORS", c.Prefetch.Selectors)
	c.Prefetch.Count = getEnvAsIntOrDefault("PREFETCH_COUNT", c.Prefetch.Count)
	c.Prefetch.Interval = getEnvAsDurationOrDefault("PREFETCH_INTERVAL", c.Prefetch.Interval)
	c.Prefetch.Workers = getEnvAsIntOrDefault("PREFETCH_WORKERS", c.Prefetch.Workers)
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	return parse.IntOrDefault(os.Getenv(key), defaultValue)
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("5s") or plain seconds
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getEnvAsListOrDefault splits a comma separated variable
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Origin.BaseURL == "" {
		return errors.New("origin base URL cannot be empty")
	}

	if c.Origin.Timeout <= 0 || c.Origin.BreakingTimeout <= 0 {
		return errors.New("origin timeouts must be positive")
	}

	if c.Images.GateTimeout <= 0 {
		return errors.New("image gate timeout must be positive")
	}

	if c.Images.PlaceholderTemplate != "" && !strings.Contains(c.Images.PlaceholderTemplate, "%d") {
		return errors.New("placeholder template must contain %d")
	}

	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "sqlite":
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return errors.New("log format must be 'json' or 'text'")
	}

	if c.Prefetch.Interval < 0 {
		return errors.New("prefetch interval cannot be negative")
	}

	return nil
}

// ABOUTME: Configuration options for the newsdesk library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package newsdesk

import (
	"time"

	"newsdesk-api/core/interfaces"
	"newsdesk-api/core/workers"
	"newsdesk-api/pkg/featureflags"
)

// Config holds the configuration for the client
type Config struct {
	// BaseURL is the origin API root
	BaseURL string

	Cache      interfaces.Cache
	HTTPClient interfaces.HTTPClient
	Logger     interfaces.Logger

	// Translator is optional; nil disables translation
	Translator interfaces.Translator

	// ImageProber checks that image URLs load; unset uses the standard prober
	ImageProber interfaces.ImageProber

	// TrustImageURLs skips probing and accepts every non-empty image URL
	TrustImageURLs bool

	// GateTimeout bounds image probing for one fetch
	GateTimeout time.Duration

	// PlaceholderTemplate must contain one %d for the seed
	PlaceholderTemplate string

	SourceLanguage string

	Flags featureflags.Manager

	// WorkerConfig sizes the background prefetch pool
	WorkerConfig workers.WorkerConfig

	// EnableBackgroundPrefetch makes Prefetch queue work instead of blocking
	EnableBackgroundPrefetch bool

	// closers are released by Client.Close
	closers []func() error
}

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithBaseURL sets the origin API root
func WithBaseURL(baseURL string) Option {
	return func(c *Config) error {
		c.BaseURL = baseURL
		return nil
	}
}

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithTranslator enables translation through the given capability
func WithTranslator(translator interfaces.Translator) Option {
	return func(c *Config) error {
		c.Translator = translator
		return nil
	}
}

// WithImageProber sets a custom image prober
func WithImageProber(prober interfaces.ImageProber) Option {
	return func(c *Config) error {
		c.ImageProber = prober
		return nil
	}
}

// WithGateTimeout sets the image gate deadline
func WithGateTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return NewError(ErrorTypeConfiguration, "gate timeout must be positive").
				WithContext("timeout", timeout.String())
		}
		c.GateTimeout = timeout
		return nil
	}
}

// WithPlaceholderTemplate sets the placeholder image URL template
func WithPlaceholderTemplate(template string) Option {
	return func(c *Config) error {
		c.PlaceholderTemplate = template
		return nil
	}
}

// WithSourceLanguage sets the language articles are stored in
func WithSourceLanguage(lang string) Option {
	return func(c *Config) error {
		c.SourceLanguage = lang
		return nil
	}
}

// WithFeatureFlags sets the flag manager
func WithFeatureFlags(flags featureflags.Manager) Option {
	return func(c *Config) error {
		c.Flags = flags
		return nil
	}
}

// WithWorkerConfig sets the worker pool configuration
func WithWorkerConfig(config workers.WorkerConfig) Option {
	return func(c *Config) error {
		c.WorkerConfig = config
		return nil
	}
}

// WithBackgroundPrefetch enables or disables background prefetching
func WithBackgroundPrefetch(enabled bool) Option {
	return func(c *Config) error {
		c.EnableBackgroundPrefetch = enabled
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		SourceLanguage: "en",
		WorkerConfig:   workers.DefaultWorkerConfig(),
	}
}

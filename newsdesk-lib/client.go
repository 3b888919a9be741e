// ABOUTME: Main client for the newsdesk library providing cached news delivery
// ABOUTME: Offers the content core to presentation code without HTTP server dependencies

package newsdesk

import (
	"context"
	"errors"
	"sync"

	"newsdesk-api/core/content"
	"newsdesk-api/core/domain"
	"newsdesk-api/core/interfaces"
	"newsdesk-api/core/workers"
)

// Article is the presentation-ready article returned by the client
type Article = domain.Article

// Client is the main entry point for the newsdesk library
type Client struct {
	service  *content.Service
	prefetch *workers.PrefetchWorker
	config   Config

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a new client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			closeAll(config.closers)
			return nil, err
		}
	}

	if config.BaseURL == "" {
		closeAll(config.closers)
		return nil, NewError(ErrorTypeConfiguration, "base URL is required")
	}

	applyDefaults(&config)

	deps := interfaces.Dependencies{
		Cache:       config.Cache,
		HTTPClient:  config.HTTPClient,
		Logger:      config.Logger,
		Translator:  config.Translator,
		ImageProber: config.ImageProber,
	}

	service := content.NewService(deps, content.Config{
		BaseURL:             config.BaseURL,
		GateTimeout:         config.GateTimeout,
		PlaceholderTemplate: config.PlaceholderTemplate,
		SourceLanguage:      config.SourceLanguage,
		Flags:               config.Flags,
	})

	client := &Client{
		service: service,
		config:  config,
	}

	if config.EnableBackgroundPrefetch {
		client.prefetch = workers.NewPrefetchWorker(service, config.Logger, config.WorkerConfig)
		if err := client.prefetch.Start(); err != nil {
			closeAll(config.closers)
			return nil, NewError(ErrorTypeInternal, "failed to start prefetch worker").WithCause(err)
		}
	}

	return client, nil
}

// Close gracefully shuts down the client
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	if c.prefetch != nil {
		if err := c.prefetch.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := closeAll(c.config.closers); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Fetch returns up to count articles for selector, translated into lang
// when lang is not empty. Origin failures never surface as errors; only
// an unparseable selector or a closed client does.
func (c *Client) Fetch(ctx context.Context, selector string, count int, lang string) ([]Article, error) {
	if c.isClosed() {
		return nil, ErrClientClosed
	}

	sel, err := domain.ParseSelector(selector)
	if err != nil {
		return nil, NewError(ErrorTypeValidation, "invalid selector").
			WithCause(err).
			WithContext("selector", selector)
	}

	return c.service.Fetch(ctx, sel, count, lang), nil
}

// Detail returns one article by its detail-fetchable id
func (c *Client) Detail(ctx context.Context, id, lang string) (Article, error) {
	if c.isClosed() {
		return Article{}, ErrClientClosed
	}

	article, err := c.service.Detail(ctx, id, lang)
	if err != nil {
		return Article{}, fromCore(err)
	}
	return article, nil
}

// Invalidate removes the cached collection for selector and count
func (c *Client) Invalidate(ctx context.Context, selector string, count int) error {
	if c.isClosed() {
		return ErrClientClosed
	}

	sel, err := domain.ParseSelector(selector)
	if err != nil {
		return NewError(ErrorTypeValidation, "invalid selector").WithCause(err)
	}
	return fromCore(c.service.Invalidate(ctx, sel, count))
}

// Prefetch warms the cache for selector. With background prefetch enabled
// the refresh is queued and Prefetch returns at once; otherwise it blocks
// and reports the origin error, if any.
func (c *Client) Prefetch(ctx context.Context, selector string, count int) error {
	if c.isClosed() {
		return ErrClientClosed
	}

	sel, err := domain.ParseSelector(selector)
	if err != nil {
		return NewError(ErrorTypeValidation, "invalid selector").WithCause(err)
	}

	if c.prefetch != nil {
		if err := c.prefetch.Submit(workers.Target{Selector: sel, Count: count}); err != nil {
			return NewError(ErrorTypeInternal, "prefetch queue rejected job").WithCause(err)
		}
		return nil
	}

	_, err = c.service.Refresh(ctx, sel, count)
	return fromCore(err)
}

func closeAll(closers []func() error) error {
	var errs []error
	for _, fn := range closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

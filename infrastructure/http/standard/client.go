// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Retries transient failures with exponential backoff and paces requests with a token bucket

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"newsdesk-api/core/interfaces"
)

const (
	defaultMaxRetries = 3
	userAgent         = "NewsdeskAPI/1.0"
)

// Options tunes a StandardHTTPClient
type Options struct {
	// Timeout bounds a single attempt; the caller's context bounds the whole call
	Timeout time.Duration

	// RequestsPerSecond paces outgoing requests, zero disables pacing
	RequestsPerSecond float64
	Burst             int

	// MaxRetries is the number of GET attempts, at least one
	MaxRetries int
}

// StandardHTTPClient implements the HTTPClient interface using net/http
type StandardHTTPClient struct {
	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return NewStandardHTTPClientWithOptions(Options{Timeout: timeout})
}

// NewStandardHTTPClientWithOptions creates a paced client with custom retry settings
func NewStandardHTTPClientWithOptions(opts Options) *StandardHTTPClient {
	c := &StandardHTTPClient{
		client:     &http.Client{Timeout: opts.Timeout},
		maxRetries: opts.MaxRetries,
	}
	if c.maxRetries < 1 {
		c.maxRetries = defaultMaxRetries
	}
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return c
}

// wait blocks until the limiter admits one request or ctx is done
func (c *StandardHTTPClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		resp, err = c.client.Do(req)
		if err != nil {
			resp = nil
			lastErr = err
			if ctx.Err() != nil {
				return nil, err
			}
			continue
		}

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 {
			break
		}

		// The last 5xx is handed to the caller as-is
		if attempt == c.maxRetries-1 {
			break
		}
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp.Body.Close()
		resp = nil
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// Post performs an HTTP POST request with a JSON body. Posts are not retried.
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}

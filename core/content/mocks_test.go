package content

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"newsdesk-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc  func(ctx context.Context, url string) (interfaces.Response, error)
	postFunc func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	if m.postFunc != nil {
		return m.postFunc(ctx, url, body)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// mapCache is an in-memory Cache that records every write
type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	sets    int
	deletes int
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (m *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return v, nil
}

func (m *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	m.sets++
	return nil
}

func (m *mapCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.deletes++
	return nil
}

func (m *mapCache) writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// mockProber is a mock implementation of the ImageProber interface
type mockProber struct {
	probeFunc func(ctx context.Context, url string) error
}

func (m *mockProber) Probe(ctx context.Context, url string) error {
	if m.probeFunc != nil {
		return m.probeFunc(ctx, url)
	}
	return nil
}

// mockTranslator prefixes text with the target language
type mockTranslator struct{}

func (mockTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return "[" + targetLang + "] " + text, nil
}

func (mockTranslator) DetectIsTargetLanguage(ctx context.Context, text, targetLang string) (bool, error) {
	return false, nil
}

package translate

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk-api/core/interfaces"
	"newsdesk-api/infrastructure/cache/memory"
)

// jsonOnlyCache rejects non-JSON values the way the RedisJSON backend does
type jsonOnlyCache struct {
	interfaces.Cache
	rejected int32
}

func (c *jsonOnlyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !json.Valid(value) {
		atomic.AddInt32(&c.rejected, 1)
		return errors.New("json mode requires a JSON value")
	}
	return c.Cache.Set(ctx, key, value, ttl)
}

// warnRecorder records warnings
type warnRecorder struct {
	interfaces.NopLogger
	warns int32
}

func (w *warnRecorder) Warn(msg string, fields map[string]interface{}) {
	atomic.AddInt32(&w.warns, 1)
}

// countingTranslator counts calls to the wrapped translator
type countingTranslator struct {
	calls   int32
	detects int32
	err     error
}

func (c *countingTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	atomic.AddInt32(&c.calls, 1)
	if c.err != nil {
		return "", c.err
	}
	return targetLang + ":" + text, nil
}

func (c *countingTranslator) DetectIsTargetLanguage(ctx context.Context, text, targetLang string) (bool, error) {
	atomic.AddInt32(&c.detects, 1)
	return false, nil
}

func TestCachedTranslator_Memoizes(t *testing.T) {
	next := &countingTranslator{}
	cache := memory.NewMemoryCache()
	translator := NewCachedTranslator(next, cache, time.Hour, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := translator.Translate(ctx, "Breaking news", "en", "fr")
		require.NoError(t, err)
		assert.Equal(t, "fr:Breaking news", got)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&next.calls))

	// A different target is a different entry
	got, err := translator.Translate(ctx, "Breaking news", "en", "de")
	require.NoError(t, err)
	assert.Equal(t, "de:Breaking news", got)
	assert.Equal(t, int32(2), atomic.LoadInt32(&next.calls))
	assert.Equal(t, 2, cache.Len())
}

func TestCachedTranslator_ErrorsAreNotCached(t *testing.T) {
	next := &countingTranslator{err: errors.New("unavailable")}
	translator := NewCachedTranslator(next, memory.NewMemoryCache(), 0, nil)
	ctx := context.Background()

	_, err := translator.Translate(ctx, "text", "en", "fr")
	assert.Error(t, err)
	_, err = translator.Translate(ctx, "text", "en", "fr")
	assert.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&next.calls))
}

func TestCachedTranslator_DetectPassesThrough(t *testing.T) {
	next := &countingTranslator{}
	translator := NewCachedTranslator(next, memory.NewMemoryCache(), time.Minute, nil)

	_, err := translator.DetectIsTargetLanguage(context.Background(), "text", "fr")
	require.NoError(t, err)
	_, _ = translator.DetectIsTargetLanguage(context.Background(), "text", "fr")
	assert.Equal(t, int32(2), atomic.LoadInt32(&next.detects))
}

func TestCacheKey(t *testing.T) {
	a := cacheKey("hello", "en", "fr")
	b := cacheKey("hello", "en", "fr")
	c := cacheKey("hello!", "en", "fr")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "translation:en:fr:")
}

func TestCachedTranslator_JSONOnlyCache(t *testing.T) {
	next := &countingTranslator{}
	cache := &jsonOnlyCache{Cache: memory.NewMemoryCache()}
	logger := &warnRecorder{}
	translator := NewCachedTranslator(next, cache, time.Hour, logger)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := translator.Translate(ctx, "Bonjour le monde", "fr", "en")
		require.NoError(t, err)
		assert.Equal(t, "en:Bonjour le monde", got)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&next.calls))
	assert.Zero(t, atomic.LoadInt32(&cache.rejected))
	assert.Zero(t, atomic.LoadInt32(&logger.warns))

	raw, err := cache.Get(ctx, cacheKey("Bonjour le monde", "fr", "en"))
	require.NoError(t, err)
	assert.JSONEq(t, `"en:Bonjour le monde"`, string(raw))
}

func TestCachedTranslator_UnreadableEntryIsRefetched(t *testing.T) {
	next := &countingTranslator{}
	cache := memory.NewMemoryCache()
	translator := NewCachedTranslator(next, cache, time.Hour, nil)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, cacheKey("text", "en", "fr"), []byte("raw text"), 0))

	got, err := translator.Translate(ctx, "text", "en", "fr")
	require.NoError(t, err)
	assert.Equal(t, "fr:text", got)
	assert.Equal(t, int32(1), atomic.LoadInt32(&next.calls))
}

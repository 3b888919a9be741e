// ABOUTME: Cached translator memoizes translations in the shared cache
// ABOUTME: Detection calls are passed through unchanged

package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"newsdesk-api/core/interfaces"
)

// DefaultCacheTTL keeps translations for a day
const DefaultCacheTTL = 24 * time.Hour

// CachedTranslator decorates a Translator with a cache
type CachedTranslator struct {
	next   interfaces.Translator
	cache  interfaces.Cache
	ttl    time.Duration
	logger interfaces.Logger
}

// NewCachedTranslator wraps next. A ttl of zero uses DefaultCacheTTL.
func NewCachedTranslator(next interfaces.Translator, cache interfaces.Cache, ttl time.Duration, logger interfaces.Logger) *CachedTranslator {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &CachedTranslator{next: next, cache: cache, ttl: ttl, logger: logger}
}

// cacheKey hashes text so long article bodies make short keys
func cacheKey(text, sourceLang, targetLang string) string {
	return fmt.Sprintf("translation:%s:%s:%016x", sourceLang, targetLang, xxhash.Sum64String(text))
}

// Translate returns a memoized translation or asks the wrapped translator
func (t *CachedTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	key := cacheKey(text, sourceLang, targetLang)

	if cached, ok := t.lookup(ctx, key); ok {
		return cached, nil
	}

	translated, err := t.next.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		return "", err
	}

	if translated != "" {
		t.store(ctx, key, translated)
	}
	return translated, nil
}

// lookup reads a translation stored as a JSON string
func (t *CachedTranslator) lookup(ctx context.Context, key string) (string, bool) {
	raw, err := t.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			t.logger.Debug("Translation cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return "", false
	}

	var translated string
	if err := json.Unmarshal(raw, &translated); err != nil || translated == "" {
		t.logger.Debug("Translation cache entry unreadable", map[string]interface{}{
			"key": key,
		})
		return "", false
	}
	return translated, true
}

// store writes the translation as a JSON string so JSON-only caches accept it
func (t *CachedTranslator) store(ctx context.Context, key, translated string) {
	value, err := json.Marshal(translated)
	if err == nil {
		err = t.cache.Set(ctx, key, value, t.ttl)
	}
	if err != nil {
		t.logger.Warn("Translation cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// DetectIsTargetLanguage delegates to the wrapped translator
func (t *CachedTranslator) DetectIsTargetLanguage(ctx context.Context, text, targetLang string) (bool, error) {
	return t.next.DetectIsTargetLanguage(ctx, text, targetLang)
}

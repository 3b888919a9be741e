// ABOUTME: Cache entry domain model holds the last good collection for a selector
// ABOUTME: Entries are replaced wholesale on every successful fetch

package domain

import (
	"fmt"
	"time"
)

// CacheNamespace prefixes every content cache key
const CacheNamespace = "content"

// CacheEntry is the value stored for one (selector, count) pair
type CacheEntry struct {
	Articles  []Article `json:"articles"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// CacheKey builds the "{namespace}:{selector}:{count}" key
func CacheKey(sel Selector, count int) string {
	return fmt.Sprintf("%s:%s:%d", CacheNamespace, sel.String(), count)
}

// DetailCacheKey builds the key for a single detail article
func DetailCacheKey(id string) string {
	return fmt.Sprintf("%s:detail:%s:1", CacheNamespace, id)
}

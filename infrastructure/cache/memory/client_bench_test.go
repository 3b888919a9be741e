package memory

import (
	"context"
	"fmt"
	"testing"
)

func benchEntry(i int) []byte {
	return []byte(fmt.Sprintf(`{"articles":[{"id":"%d","title":"Story %d"}],"fetchedAt":"2024-03-15T12:00:00Z"}`, i, i))
}

func BenchmarkMemoryCache_Get(b *testing.B) {
	cache := NewMemoryCache()
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		cache.Set(ctx, fmt.Sprintf("content:National:%d", i), benchEntry(i), 0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cache.Get(ctx, fmt.Sprintf("content:National:%d", i%1000))
	}
}

func BenchmarkMemoryCache_Set(b *testing.B) {
	cache := NewMemoryCache()
	ctx := context.Background()
	value := benchEntry(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cache.Set(ctx, fmt.Sprintf("content:National:%d", i), value, 0)
	}
}

func BenchmarkMemoryCache_ConcurrentGet(b *testing.B) {
	cache := NewMemoryCache()
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		cache.Set(ctx, fmt.Sprintf("content:Sports:%d", i), benchEntry(i), 0)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = cache.Get(ctx, fmt.Sprintf("content:Sports:%d", i%100))
			i++
		}
	})
}

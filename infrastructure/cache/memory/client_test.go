package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"newsdesk-api/core/interfaces"
)

func TestNewMemoryCache(t *testing.T) {
	cache := NewMemoryCache()

	if cache == nil {
		t.Error("NewMemoryCache returned nil")
	}
}

func TestMemoryCache_Get_ExistingKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := "content:National:6"
	value := []byte(`{"articles":[]}`)
	if err := cache.Set(ctx, key, value, time.Hour); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Errorf("Get returned error: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get returned %s, want %s", string(got), string(value))
	}
}

func TestMemoryCache_Get_NonExistentKey(t *testing.T) {
	cache := NewMemoryCache()

	got, err := cache.Get(context.Background(), "non-existent")

	if !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get should return ErrCacheMiss, got %v", err)
	}
	if got != nil {
		t.Error("Get should return nil value for non-existent key")
	}
}

func TestMemoryCache_Get_ExpiredKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("expired key should be a miss, got %v", err)
	}
}

func TestMemoryCache_Set_WithZeroTTL(t *testing.T) {
	cache := NewMemoryCacheWithCleanup(5 * time.Millisecond)
	ctx := context.Background()

	// Zero TTL means the entry never expires
	if err := cache.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	if _, err := cache.Get(ctx, "forever"); err != nil {
		t.Errorf("zero TTL entry should still exist: %v", err)
	}
}

func TestMemoryCache_Set_ReplacesWholeValue(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "k", []byte("a much longer first value"), 0)
	cache.Set(ctx, "k", []byte("second"), 0)

	got, _ := cache.Get(ctx, "k")
	if string(got) != "second" {
		t.Errorf("Get returned %s, want second", got)
	}
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	value := []byte("original")
	cache.Set(ctx, "k", value, 0)
	value[0] = 'X'

	got, _ := cache.Get(ctx, "k")
	got[1] = 'Y'

	again, _ := cache.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("stored value was mutated: %s", again)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "k", []byte("v"), 0)
	if err := cache.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete returned error: %v", err)
	}
	if _, err := cache.Get(ctx, "k"); err == nil {
		t.Error("Get should return error for deleted key")
	}

	// Deleting a missing key is not an error
	if err := cache.Delete(ctx, "non-existent"); err != nil {
		t.Errorf("Delete should return nil for non-existent key, got: %v", err)
	}
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	cache := NewMemoryCache()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cache.Set(ctx, "k", []byte("v"), 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Set error = %v, want context.Canceled", err)
	}
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get error = %v, want context.Canceled", err)
	}
}

func TestMemoryCache_LenAndFlush(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "a", []byte("1"), 0)
	cache.Set(ctx, "b", []byte("2"), time.Hour)
	if cache.Len() != 2 {
		t.Errorf("Len = %d, want 2", cache.Len())
	}

	cache.Flush()
	if cache.Len() != 0 {
		t.Errorf("Len after flush = %d", cache.Len())
	}
}

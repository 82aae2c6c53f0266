package menu

import (
	"sync"
	"testing"
	"time"

	"github.com/bizxr/erp-portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree(id string) []models.MenuNode {
	return []models.MenuNode{{ID: id, Children: []models.MenuNode{}}}
}

func TestCache_GetSet(t *testing.T) {
	cache := NewCache(10, 5*time.Minute)

	_, ok := cache.Get("E1")
	assert.False(t, ok)

	cache.Set("E1", testTree("1"))
	tree, ok := cache.Get("E1")
	require.True(t, ok)
	assert.Equal(t, testTree("1"), tree)

	cache.Set("E1", testTree("2"))
	tree, _ = cache.Get("E1")
	assert.Equal(t, "2", tree[0].ID)

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestCache_TTL(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	cache := NewCache(10, time.Minute)
	cache.now = func() time.Time { return now }

	cache.Set("E1", testTree("1"))

	now = now.Add(59 * time.Second)
	_, ok := cache.Get("E1")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = cache.Get("E1")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Stats().Size)
}

func TestCache_LRUEviction(t *testing.T) {
	cache := NewCache(2, time.Minute)

	cache.Set("E1", testTree("1"))
	cache.Set("E2", testTree("2"))
	_, _ = cache.Get("E1")
	cache.Set("E3", testTree("3"))

	_, ok := cache.Get("E2")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = cache.Get("E1")
	assert.True(t, ok)
	_, ok = cache.Get("E3")
	assert.True(t, ok)
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache(10, time.Minute)
	cache.Set("E1", testTree("1"))
	cache.Set("E2", testTree("2"))

	cache.Clear()
	_, ok := cache.Get("E1")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Stats().Size)
}

func TestCache_CleanupExpired(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	cache := NewCache(10, time.Minute)
	cache.now = func() time.Time { return now }

	cache.Set("E1", testTree("1"))
	now = now.Add(30 * time.Second)
	cache.Set("E2", testTree("2"))
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, cache.CleanupExpired())
	assert.Equal(t, 1, cache.Stats().Size)
}

func TestCache_Disabled(t *testing.T) {
	for _, cache := range []*Cache{nil, NewCache(10, 0), NewCache(0, time.Minute)} {
		assert.False(t, cache.Enabled())
		cache.Set("E1", testTree("1"))
		_, ok := cache.Get("E1")
		assert.False(t, ok)
		cache.Clear()
		assert.Equal(t, 0, cache.CleanupExpired())
	}
}

func TestCache_Concurrent(t *testing.T) {
	cache := NewCache(8, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('A' + i%16))
			cache.Set(key, testTree(key))
			_, _ = cache.Get(key)
			if i%7 == 0 {
				cache.CleanupExpired()
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Stats().Size, 8)
}

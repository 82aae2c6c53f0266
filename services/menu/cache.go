package menu

import (
	"container/list"
	"sync"
	"time"

	"github.com/bizxr/erp-portal/models"
)

// cacheEntry represents a single cache entry with TTL
type cacheEntry struct {
	epCode     string
	tree       []models.MenuNode
	insertedAt time.Time
	element    *list.Element // For LRU tracking
}

func (e *cacheEntry) isExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.insertedAt) >= ttl
}

// Cache is an in-memory LRU cache with TTL holding built menu trees per employee code.
// Thread-safe implementation using sync.Mutex.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	lruList *list.List
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	hits    uint64
	misses  uint64
}

// NewCache creates a new Cache. A non-positive maxSize or ttl yields a cache that stores nothing.
func NewCache(maxSize int, ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
		lruList: list.New(),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Enabled reports whether the cache stores anything
func (c *Cache) Enabled() bool {
	return c != nil && c.maxSize > 0 && c.ttl > 0
}

// Get returns the cached tree for the employee, or false when missing or expired
func (c *Cache) Get(epCode string) ([]models.MenuNode, bool) {
	if !c.Enabled() {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[epCode]
	if !exists || entry.isExpired(c.now(), c.ttl) {
		c.misses++
		if exists {
			c.removeEntry(epCode)
		}
		return nil, false
	}

	c.lruList.MoveToFront(entry.element)
	c.hits++

	return entry.tree, true
}

// Set stores the tree for the employee, evicting the least recently used entry when full
func (c *Cache) Set(epCode string, tree []models.MenuNode) {
	if !c.Enabled() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.entries[epCode]; exists {
		entry.tree = tree
		entry.insertedAt = c.now()
		c.lruList.MoveToFront(entry.element)
		return
	}

	if c.lruList.Len() >= c.maxSize {
		c.evictLRU()
	}

	entry := &cacheEntry{
		epCode:     epCode,
		tree:       tree,
		insertedAt: c.now(),
	}
	entry.element = c.lruList.PushFront(epCode)
	c.entries[epCode] = entry
}

// Clear removes all entries from the cache
func (c *Cache) Clear() {
	if !c.Enabled() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.lruList.Init()
}

// CacheStats represents cache statistics
type CacheStats struct {
	Size    int
	MaxSize int
	Hits    uint64
	Misses  uint64
}

// Stats returns cache statistics
func (c *Cache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{
		Size:    c.lruList.Len(),
		MaxSize: c.maxSize,
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

// CleanupExpired removes all expired entries and returns how many were removed
func (c *Cache) CleanupExpired() int {
	if !c.Enabled() {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for epCode, entry := range c.entries {
		if entry.isExpired(now, c.ttl) {
			c.removeEntry(epCode)
			removed++
		}
	}
	return removed
}

// StartCleanupWorker periodically drops expired entries until stopCh is closed
func (c *Cache) StartCleanupWorker(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.CleanupExpired()
		case <-stopCh:
			return
		}
	}
}

// removeEntry must be called with the lock held
func (c *Cache) removeEntry(epCode string) {
	if entry, exists := c.entries[epCode]; exists {
		c.lruList.Remove(entry.element)
		delete(c.entries, epCode)
	}
}

// evictLRU must be called with the lock held
func (c *Cache) evictLRU() {
	back := c.lruList.Back()
	if back == nil {
		return
	}
	c.removeEntry(back.Value.(string))
}

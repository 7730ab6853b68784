// Package cache implements the full-page cache used by the feed. Entries are
// keyed by request URI, expire after a fixed window and are only ever
// invalidated wholesale through Clear.
package cache

import (
	"context"
	"time"

	"github.com/yatube/yatube/internal/utils/collectionutils"
)

// DefaultTTL is the staleness window of cached pages.
const DefaultTTL = 20 * time.Second

// Entry is a captured HTTP response.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type Cache interface {
	// Get returns the entry stored under key, or found=false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) (entry *Entry, found bool, err error)

	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error

	// Clear drops every cached page.
	Clear(ctx context.Context) error
}

type memoryEntry struct {
	entry     *Entry
	expiresAt time.Time
}

// MemoryCache is the in-process backend, used in development and tests.
type MemoryCache struct {
	entries *collectionutils.SafeMap[string, memoryEntry]
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: collectionutils.New[string, memoryEntry](),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*Entry, bool, error) {
	stored, exists := c.entries.Get(key)
	if !exists {
		return nil, false, nil
	}

	if c.now().After(stored.expiresAt) {
		c.entries.Delete(key)
		return nil, false, nil
	}

	return stored.entry, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	c.entries.Store(key, memoryEntry{
		entry:     entry,
		expiresAt: c.now().Add(ttl),
	})

	return nil
}

func (c *MemoryCache) Clear(ctx context.Context) error {
	c.entries.Clear()
	return nil
}

// Package memory is a process-local cache used when no Redis URL is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/openshift/sippy-chat/pkg/apis/cache"
)

type item struct {
	content []byte
	expires time.Time
}

type Cache struct {
	mu    sync.Mutex
	items map[string]item
	now   func() time.Time
}

func NewCache() *Cache {
	return &Cache{items: map[string]item{}, now: time.Now}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	if !it.expires.IsZero() && c.now().After(it.expires) {
		delete(c.items, key)
		return nil, cache.ErrMiss
	}
	return append([]byte(nil), it.content...), nil
}

// Set stores content; a zero duration never expires.
func (c *Cache) Set(_ context.Context, key string, content []byte, duration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := item{content: append([]byte(nil), content...)}
	if duration > 0 {
		it.expires = c.now().Add(duration)
	}
	c.items[key] = it
	return nil
}

package news

import (
	"context"
	"sync"
	"time"
)

// CachingProvider wraps another Provider with a TTL-based in-memory cache
// so the remote feed is not hit on every news tab load.
type CachingProvider struct {
	base Provider
	ttl  time.Duration

	mu      sync.RWMutex
	items   []Item
	expires time.Time
}

// NewCachingProvider returns a Provider that caches the catalog for the
// provided TTL.
func NewCachingProvider(base Provider, ttl time.Duration) *CachingProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachingProvider{base: base, ttl: ttl}
}

// List returns the cached catalog when fresh, otherwise it delegates to
// the underlying provider and stores the result.
func (c *CachingProvider) List(ctx context.Context) ([]Item, error) {
	if c == nil || c.base == nil {
		return nil, ErrProviderUnavailable
	}

	now := time.Now()

	c.mu.RLock()
	items, expires := c.items, c.expires
	c.mu.RUnlock()
	if items != nil && now.Before(expires) {
		return items, nil
	}

	fetched, err := c.base.List(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.items = fetched
	c.expires = now.Add(c.ttl)
	c.mu.Unlock()

	return fetched, nil
}

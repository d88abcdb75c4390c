package tenant

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// DefaultCacheTTL bounds how stale a cached tenant may get. Tenant rows are
// read-mostly, so a few minutes of staleness is acceptable in exchange for
// removing a lookup from nearly every request.
const DefaultCacheTTL = 5 * time.Minute

// DefaultCacheSize is the default maximum number of cached tenants.
const DefaultCacheSize = 1000

// Cache stores resolved tenants between requests.
type Cache interface {
	Get(ctx context.Context, key string) (*Tenant, bool)
	Set(ctx context.Context, key string, t *Tenant, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Close() error
}

type memoryItem struct {
	tenant    *Tenant
	expiresAt time.Time
}

// memoryCache is the default in-process cache: TTL expiry with LRU eviction
// and a background sweep for expired entries.
type memoryCache struct {
	mu      sync.Mutex
	items   map[string]memoryItem
	order   []string
	maxSize int
	stop    chan struct{}
	done    chan struct{}
	closed  bool
}

// NewMemoryCache creates an in-memory cache with the default size limit.
func NewMemoryCache() Cache {
	return NewMemoryCacheWithSize(DefaultCacheSize)
}

// NewMemoryCacheWithSize creates an in-memory cache holding at most maxSize
// tenants.
func NewMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	c := &memoryCache{
		items:   make(map[string]memoryItem),
		maxSize: maxSize,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *memoryCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		delete(c.items, key)
		c.dropOrder(key)
		return nil, false
	}
	c.touch(key)
	return item.tenant, true
}

func (c *memoryCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}
	c.items[key] = memoryItem{tenant: t, expiresAt: time.Now().Add(ttl)}
	c.touch(key)
}

func (c *memoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	c.dropOrder(key)
}

func (c *memoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

func (c *memoryCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, item := range c.items {
				if now.After(item.expiresAt) {
					delete(c.items, key)
					c.dropOrder(key)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

// touch moves the key to the most-recently-used end. Callers hold the lock.
func (c *memoryCache) touch(key string) {
	c.dropOrder(key)
	c.order = append(c.order, key)
}

func (c *memoryCache) dropOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// NopCache never caches. Useful in tests and when staleness is unacceptable.
type NopCache struct{}

func (NopCache) Get(ctx context.Context, key string) (*Tenant, bool)           { return nil, false }
func (NopCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) {}
func (NopCache) Delete(ctx context.Context, key string)                        {}
func (NopCache) Close() error                                                  { return nil }

// CachedProvider decorates a Provider with read-through caching. Only
// successful lookups are cached; misses and failures always go back to the
// source so a transient outage cannot pin a tenant as missing.
type CachedProvider struct {
	next  Provider
	cache Cache
	ttl   time.Duration
}

// NewCachedProvider wraps the provider with the given cache and TTL.
func NewCachedProvider(next Provider, cache Cache, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{next: next, cache: cache, ttl: ttl}
}

func (p *CachedProvider) ByID(ctx context.Context, id int64) (*Tenant, error) {
	key := "id:" + strconv.FormatInt(id, 10)
	if t, ok := p.cache.Get(ctx, key); ok {
		return t, nil
	}
	t, err := p.next.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.cache.Set(ctx, key, t, p.ttl)
	return t, nil
}

func (p *CachedProvider) ActiveBySlug(ctx context.Context, slug string) (*Tenant, error) {
	key := "slug:" + slug
	if t, ok := p.cache.Get(ctx, key); ok {
		return t, nil
	}
	t, err := p.next.ActiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	p.cache.Set(ctx, key, t, p.ttl)
	return t, nil
}

// Invalidate removes a tenant's cache entries after administrative changes
// (rename, deactivation) so the next request sees fresh data.
func (p *CachedProvider) Invalidate(ctx context.Context, t *Tenant) {
	if t == nil {
		return
	}
	p.cache.Delete(ctx, "id:"+strconv.FormatInt(t.ID, 10))
	p.cache.Delete(ctx, "slug:"+t.Slug)
}

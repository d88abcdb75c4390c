package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicboard/tenantkit/pkg/tenant"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache()
		defer cache.Close()

		cache.Set(ctx, "id:1", activeTenant(1, "firenze"), time.Minute)
		got, ok := cache.Get(ctx, "id:1")
		require.True(t, ok)
		assert.Equal(t, "firenze", got.Slug)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache()
		defer cache.Close()

		_, ok := cache.Get(ctx, "id:404")
		assert.False(t, ok)
	})

	t.Run("expired entries are gone", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache()
		defer cache.Close()

		cache.Set(ctx, "id:1", activeTenant(1, "firenze"), time.Millisecond)
		time.Sleep(5 * time.Millisecond)

		_, ok := cache.Get(ctx, "id:1")
		assert.False(t, ok)
	})

	t.Run("evicts least recently used at capacity", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCacheWithSize(2)
		defer cache.Close()

		cache.Set(ctx, "id:1", activeTenant(1, "firenze"), time.Minute)
		cache.Set(ctx, "id:2", activeTenant(2, "roma"), time.Minute)

		// Touch id:1 so id:2 becomes the eviction candidate.
		_, ok := cache.Get(ctx, "id:1")
		require.True(t, ok)

		cache.Set(ctx, "id:3", activeTenant(3, "siena"), time.Minute)

		_, ok = cache.Get(ctx, "id:2")
		assert.False(t, ok)
		_, ok = cache.Get(ctx, "id:1")
		assert.True(t, ok)
		_, ok = cache.Get(ctx, "id:3")
		assert.True(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache()
		defer cache.Close()

		cache.Set(ctx, "id:1", activeTenant(1, "firenze"), time.Minute)
		cache.Delete(ctx, "id:1")
		_, ok := cache.Get(ctx, "id:1")
		assert.False(t, ok)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache()
		require.NoError(t, cache.Close())
		require.NoError(t, cache.Close())
	})
}

func TestCachedProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("caches lookups by id and slug", func(t *testing.T) {
		t.Parallel()

		source := newMockProvider(activeTenant(1, "firenze"))
		cache := tenant.NewMemoryCache()
		defer cache.Close()
		provider := tenant.NewCachedProvider(source, cache, time.Minute)

		for range 3 {
			_, err := provider.ByID(ctx, 1)
			require.NoError(t, err)
		}
		assert.Equal(t, 1, source.callCount())

		for range 3 {
			_, err := provider.ActiveBySlug(ctx, "firenze")
			require.NoError(t, err)
		}
		assert.Equal(t, 2, source.callCount())
	})

	t.Run("failures are never cached", func(t *testing.T) {
		t.Parallel()

		source := newMockProvider()
		source.failWith(errStoreDown)
		cache := tenant.NewMemoryCache()
		defer cache.Close()
		provider := tenant.NewCachedProvider(source, cache, time.Minute)

		_, err := provider.ByID(ctx, 1)
		require.ErrorIs(t, err, errStoreDown)

		source.failWith(nil)
		source.add(activeTenant(1, "firenze"))

		got, err := provider.ByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "firenze", got.Slug)
	})

	t.Run("invalidate drops both keys", func(t *testing.T) {
		t.Parallel()

		target := activeTenant(1, "firenze")
		source := newMockProvider(target)
		cache := tenant.NewMemoryCache()
		defer cache.Close()
		provider := tenant.NewCachedProvider(source, cache, time.Minute)

		_, err := provider.ByID(ctx, 1)
		require.NoError(t, err)
		_, err = provider.ActiveBySlug(ctx, "firenze")
		require.NoError(t, err)

		provider.Invalidate(ctx, target)

		_, err = provider.ByID(ctx, 1)
		require.NoError(t, err)
		_, err = provider.ActiveBySlug(ctx, "firenze")
		require.NoError(t, err)
		assert.Equal(t, 4, source.callCount())
	})
}

func TestNopCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := tenant.NopCache{}

	cache.Set(ctx, "id:1", activeTenant(1, "firenze"), time.Minute)
	_, ok := cache.Get(ctx, "id:1")
	assert.False(t, ok)
	require.NoError(t, cache.Close())
}

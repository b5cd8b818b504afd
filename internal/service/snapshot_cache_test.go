package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/financeflow/financeflow/internal/cache"
	"github.com/financeflow/financeflow/internal/config"
	"github.com/financeflow/financeflow/internal/domain/snapshot"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSnapshotCache(ttl, fallbackTTL time.Duration) *SnapshotCache {
	cfg := config.GetDefaultConfig()
	return NewSnapshotCache(cache.NewInMemoryCache(cfg), ttl, fallbackTTL, logger.NewNopLogger())
}

func testSnapshot(ownerID string) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		OwnerID:             ownerID,
		Revenue:             decimal.NewFromInt(1000),
		ActiveSubscriptions: 2,
		Outstanding:         decimal.NewFromInt(400),
		TotalExpenses:       decimal.NewFromInt(250),
		BudgetPercent:       25,
		TaxDeductible:       decimal.Zero,
		LastUpdated:         time.Now(),
		Source:              types.SnapshotSourceLive,
	}
}

func TestSnapshotCacheStoreAndInvalidate(t *testing.T) {
	ctx := context.Background()
	c := newTestSnapshotCache(time.Minute, time.Hour)

	c.Store(ctx, testSnapshot("user_a"))

	fresh, ok := c.Fresh(ctx, "user_a")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(1000).Equal(fresh.Revenue))

	_, ok = c.Fresh(ctx, "user_b")
	assert.False(t, ok)

	c.Invalidate(ctx, "user_a")
	_, ok = c.Fresh(ctx, "user_a")
	assert.False(t, ok)

	fallback, ok := c.Fallback(ctx, "user_a")
	require.True(t, ok, "invalidation keeps the fallback entry")
	assert.Equal(t, 2, fallback.ActiveSubscriptions)
}

func TestSnapshotCacheReturnsDetachedCopies(t *testing.T) {
	ctx := context.Background()
	c := newTestSnapshotCache(time.Minute, time.Hour)
	c.Store(ctx, testSnapshot("user_a"))

	first, ok := c.Fresh(ctx, "user_a")
	require.True(t, ok)
	first.ActiveSubscriptions = 99

	second, ok := c.Fresh(ctx, "user_a")
	require.True(t, ok)
	assert.Equal(t, 2, second.ActiveSubscriptions)
}

func TestSnapshotCacheUpdatePatchesBothEntries(t *testing.T) {
	ctx := context.Background()
	c := newTestSnapshotCache(time.Minute, time.Hour)
	c.Store(ctx, testSnapshot("user_a"))

	updated := c.Update(ctx, "user_a", func(s *snapshot.Snapshot) {
		s.ApplyInvoicePaid(decimal.NewFromInt(150), time.Now())
	})
	require.True(t, updated)

	fresh, ok := c.Fresh(ctx, "user_a")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(250).Equal(fresh.Outstanding))

	fallback, ok := c.Fallback(ctx, "user_a")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(250).Equal(fallback.Outstanding))
}

func TestSnapshotCacheUpdateWithoutEntries(t *testing.T) {
	ctx := context.Background()
	c := newTestSnapshotCache(time.Minute, time.Hour)

	called := false
	updated := c.Update(ctx, "user_a", func(s *snapshot.Snapshot) { called = true })
	assert.False(t, updated)
	assert.False(t, called)

	_, ok := c.Fresh(ctx, "user_a")
	assert.False(t, ok, "update never creates entries")
}

func TestSnapshotCacheUpdateKeepsExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestSnapshotCache(150*time.Millisecond, time.Hour)
	c.Store(ctx, testSnapshot("user_a"))

	time.Sleep(100 * time.Millisecond)
	c.Update(ctx, "user_a", func(s *snapshot.Snapshot) {
		s.ApplySubscriptionCount(5, time.Now())
	})

	time.Sleep(100 * time.Millisecond)
	_, ok := c.Fresh(ctx, "user_a")
	assert.False(t, ok, "an update must not extend the freshness window")

	fallback, ok := c.Fallback(ctx, "user_a")
	require.True(t, ok)
	assert.Equal(t, 5, fallback.ActiveSubscriptions)
}

func TestSnapshotCacheOwnerLock(t *testing.T) {
	ctx := context.Background()
	c := newTestSnapshotCache(time.Minute, time.Hour)
	c.Store(ctx, testSnapshot("user_a"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := c.Lock("user_a")
			defer unlock()
			c.Update(ctx, "user_a", func(s *snapshot.Snapshot) {
				s.ApplySubscriptionCount(s.ActiveSubscriptions+1, time.Now())
			})
		}()
	}
	wg.Wait()

	fresh, ok := c.Fresh(ctx, "user_a")
	require.True(t, ok)
	assert.Equal(t, 52, fresh.ActiveSubscriptions)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Empty(t, c.locks, "released locks are dropped")
}

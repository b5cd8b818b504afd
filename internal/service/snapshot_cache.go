package service

import (
	"context"
	"sync"
	"time"

	"github.com/financeflow/financeflow/internal/cache"
	"github.com/financeflow/financeflow/internal/domain/snapshot"
	"github.com/financeflow/financeflow/internal/logger"
)

// SnapshotCache keeps two entries per owner: a fresh snapshot served while it is
// younger than ttl, and a longer lived fallback served when the ledger store is
// unavailable. Callers must hold the owner's lock (Lock) around every read-modify-write.
type SnapshotCache struct {
	cache       cache.Cache
	ttl         time.Duration
	fallbackTTL time.Duration
	logger      *logger.Logger

	mu    sync.Mutex
	locks map[string]*ownerLock
}

type ownerLock struct {
	mu   sync.Mutex
	refs int
}

func NewSnapshotCache(c cache.Cache, ttl, fallbackTTL time.Duration, logger *logger.Logger) *SnapshotCache {
	if fallbackTTL < ttl {
		fallbackTTL = ttl
	}
	return &SnapshotCache{
		cache:       c,
		ttl:         ttl,
		fallbackTTL: fallbackTTL,
		logger:      logger,
		locks:       make(map[string]*ownerLock),
	}
}

// Lock serialises snapshot access for one owner and returns the release func.
// Lock entries are dropped once nobody holds or waits on them.
func (c *SnapshotCache) Lock(ownerID string) func() {
	c.mu.Lock()
	l, ok := c.locks[ownerID]
	if !ok {
		l = &ownerLock{}
		c.locks[ownerID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, ownerID)
		}
		c.mu.Unlock()
	}
}

// Fresh returns the owner's snapshot if it is still inside the freshness window
func (c *SnapshotCache) Fresh(ctx context.Context, ownerID string) (*snapshot.Snapshot, bool) {
	return c.get(ctx, cache.Key(cache.NamespaceSnapshot, ownerID))
}

// Fallback returns the last snapshot computed from the ledger, however old
func (c *SnapshotCache) Fallback(ctx context.Context, ownerID string) (*snapshot.Snapshot, bool) {
	return c.get(ctx, cache.Key(cache.NamespaceSnapshotFallback, ownerID))
}

func (c *SnapshotCache) get(ctx context.Context, key string) (*snapshot.Snapshot, bool) {
	span := cache.StartCacheSpan(ctx, "get", key)
	value, found := c.cache.Get(ctx, key)
	cached, ok := value.(*snapshot.Snapshot)
	cache.FinishSpan(span, found && ok)
	if !found || !ok {
		return nil, false
	}
	return cached.Copy(), true
}

// Store replaces both entries with s
func (c *SnapshotCache) Store(ctx context.Context, s *snapshot.Snapshot) {
	span := cache.StartCacheSpan(ctx, "set", s.OwnerID)
	defer cache.FinishSpan(span, false)

	c.cache.Set(ctx, cache.Key(cache.NamespaceSnapshot, s.OwnerID), s.Copy(), c.ttl)
	c.cache.Set(ctx, cache.Key(cache.NamespaceSnapshotFallback, s.OwnerID), s.Copy(), c.fallbackTTL)
}

// Invalidate forces the next dashboard read to recompute. The fallback entry
// is kept for store outages.
func (c *SnapshotCache) Invalidate(ctx context.Context, ownerID string) {
	c.cache.Delete(ctx, cache.Key(cache.NamespaceSnapshot, ownerID))
}

// Update applies fn to every cached entry of the owner without extending its
// lifetime and reports whether any entry existed. Missing entries are left
// missing; the next read recomputes from the ledger.
func (c *SnapshotCache) Update(ctx context.Context, ownerID string, fn func(s *snapshot.Snapshot)) bool {
	updated := false
	for _, namespace := range []string{cache.NamespaceSnapshot, cache.NamespaceSnapshotFallback} {
		key := cache.Key(namespace, ownerID)
		value, expiresAt, found := c.cache.GetWithExpiration(ctx, key)
		if !found {
			continue
		}
		cached, ok := value.(*snapshot.Snapshot)
		if !ok {
			c.cache.Delete(ctx, key)
			continue
		}

		next := cached.Copy()
		fn(next)

		remaining := c.fallbackTTL
		if !expiresAt.IsZero() {
			remaining = time.Until(expiresAt)
			if remaining <= 0 {
				continue
			}
		}
		c.cache.Set(ctx, key, next, remaining)
		updated = true
	}

	if updated {
		c.logger.Debugw("updated cached snapshot", "owner_id", ownerID)
	}
	return updated
}

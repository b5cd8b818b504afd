package cache

import (
	"context"
	"time"
)

// Cache is the process local store behind dashboard snapshots
type Cache interface {
	// Get returns the value and whether the key was present
	Get(ctx context.Context, key string) (interface{}, bool)

	// GetWithExpiration also returns when the entry expires, the zero time
	// if it never does
	GetWithExpiration(ctx context.Context, key string) (interface{}, time.Time, bool)

	// Set stores value for expiration, or the default lifetime when expiration is 0
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	Delete(ctx context.Context, key string)

	Flush(ctx context.Context)
}

// Key namespaces. Bump the version when the shape of the cached value changes.
const (
	NamespaceSnapshot         = "snapshot:v1"
	NamespaceSnapshotFallback = "snapshot_fallback:v1"
)

// Key joins a namespace and an id, e.g. snapshot:v1:user_01HZ...
func Key(namespace, id string) string {
	return namespace + ":" + id
}

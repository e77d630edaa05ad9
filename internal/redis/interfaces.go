package redis

import (
	"context"
	"time"
)

// SessionLockInterface defines the interface for per-session confirmation locks.
type SessionLockInterface interface {
	AcquireSessionLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
	ReleaseSessionLock(ctx context.Context, sessionID string) error
}

// ParcelCacheInterface defines the interface for parcel caching.
type ParcelCacheInterface interface {
	GetParcel(ctx context.Context, parcelID string) (*CachedParcel, error)
	SetParcel(ctx context.Context, parcel *CachedParcel) error
	InvalidateParcel(ctx context.Context, parcelID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ SessionLockInterface = (*LockStore)(nil)
	_ ParcelCacheInterface = (*CacheStore)(nil)
)

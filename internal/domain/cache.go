package domain

import (
	"context"
	"errors"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the key/value port used for derived, disposable data such as
// statistics snapshots.
type Cache interface {
	// Get returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)
	// Set with a zero expiration keeps the item until it is deleted.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Delete does not fail for missing keys.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// ErrLockNotAcquired is returned when another holder owns the lock.
var ErrLockNotAcquired = errors.New("lock is held by another request")

// ReleaseFunc gives a lock back. It only removes the lock it acquired.
type ReleaseFunc func(ctx context.Context) error

// Locker provides short lived mutual exclusion keyed by name, used to
// serialize mutations of one quiz session across API instances.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, error)
}

// TransactionManager runs fn inside a database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

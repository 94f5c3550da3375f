package ports

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrKeyNotFound is returned by KeyValueStore.Get for a missing key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrConflict is returned by CompareAndSwap when the stored value no
	// longer matches the expected one.
	ErrConflict = errors.New("concurrent modification")
)

// KeyValueStore is the persistence surface behind the session store.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetWithTTL is Set with an expiry. An expired key reads as missing. A
	// ttl <= 0 behaves like Set.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// CompareAndSwap writes next only if the stored value still equals prev.
	// A nil prev means the key must not exist yet. The written value never
	// expires.
	CompareAndSwap(ctx context.Context, key string, prev, next []byte) error
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

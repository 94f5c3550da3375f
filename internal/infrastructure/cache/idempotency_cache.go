package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// IdempotencyCache is the in-process counterpart of the Redis idempotency store.
type IdempotencyCache struct {
	cache *expirable.LRU[string, string]
}

func NewIdempotencyCache(maxSize int, ttl time.Duration) *IdempotencyCache {
	return &IdempotencyCache{cache: expirable.NewLRU[string, string](maxSize, nil, ttl)}
}

func (c *IdempotencyCache) Lookup(_ context.Context, identityKey, key string) (string, bool, error) {
	id, ok := c.cache.Get(identityKey + ":" + key)
	return id, ok, nil
}

func (c *IdempotencyCache) Remember(_ context.Context, identityKey, key, grievanceID string) error {
	c.cache.Add(identityKey+":"+key, grievanceID)
	return nil
}

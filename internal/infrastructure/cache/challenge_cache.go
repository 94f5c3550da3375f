// Package cache holds in-process stores backed by an expirable LRU. They are
// used when no Redis is configured and only work for a single instance.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hp-grievance/portal/internal/core/domain"
)

// ChallengeCache keeps challenges in memory. The LRU applies one TTL to every
// entry; a shorter per-call ttl is enforced on read through ExpiresAt.
type ChallengeCache struct {
	mu     sync.Mutex
	cache  *expirable.LRU[string, domain.Challenge]
	latest *expirable.LRU[string, string]
	now    func() time.Time
}

// NewChallengeCache creates a cache holding at most maxSize live challenges
// for at most ttl each.
func NewChallengeCache(maxSize int, ttl time.Duration) *ChallengeCache {
	return &ChallengeCache{
		cache:  expirable.NewLRU[string, domain.Challenge](maxSize, nil, ttl),
		latest: expirable.NewLRU[string, string](maxSize, nil, ttl),
		now:    time.Now,
	}
}

func (c *ChallengeCache) Save(_ context.Context, ch domain.Challenge, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ttl <= 0 {
		c.cache.Remove(ch.ID)
		return nil
	}
	ch.CodeHash = append([]byte(nil), ch.CodeHash...)
	c.cache.Add(ch.ID, ch)
	return nil
}

func (c *ChallengeCache) Get(_ context.Context, id string) (*domain.Challenge, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.cache.Get(id)
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	if !ch.ExpiresAt.IsZero() && c.now().After(ch.ExpiresAt) {
		c.cache.Remove(id)
		return nil, domain.ErrChallengeNotFound
	}
	ch.CodeHash = append([]byte(nil), ch.CodeHash...)
	return &ch, nil
}

func (c *ChallengeCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Remove(id)
	return nil
}

func (c *ChallengeCache) Consume(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cache.Remove(id) {
		return domain.ErrChallengeNotFound
	}
	return nil
}

func (c *ChallengeCache) SetLatest(_ context.Context, mobile, id string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ttl <= 0 {
		c.latest.Remove(mobile)
		return nil
	}
	c.latest.Add(mobile, id)
	return nil
}

func (c *ChallengeCache) Latest(_ context.Context, mobile string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.latest.Get(mobile)
	if !ok {
		return "", domain.ErrChallengeNotFound
	}
	return id, nil
}

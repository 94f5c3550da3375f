package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = time.Hour

// IdempotencyStore remembers which grievance an Idempotency-Key produced.
// Key format: idempotency:<identity_key>:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup reports the grievance id previously stored for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, identityKey, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(identityKey, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember records grievanceID for key (expires after idempotencyTTL).
func (s *IdempotencyStore) Remember(ctx context.Context, identityKey, key, grievanceID string) error {
	return s.client.Set(ctx, s.key(identityKey, key), grievanceID, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(identityKey, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", identityKey, key)
}

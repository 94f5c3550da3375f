package ports

import (
	"context"
	"time"

	"github.com/hp-grievance/portal/internal/core/domain"
)

// ChallengeStore persists one-time code challenges between the request and
// verify steps. Get, Consume and Latest return domain.ErrChallengeNotFound
// for unknown or expired entries.
type ChallengeStore interface {
	Save(ctx context.Context, ch domain.Challenge, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Challenge, error)
	Delete(ctx context.Context, id string) error
	// Consume removes id atomically. Of several concurrent callers exactly
	// one gets a nil error.
	Consume(ctx context.Context, id string) error

	// SetLatest records id as the only challenge that may be verified for
	// mobile. Latest returns it.
	SetLatest(ctx context.Context, mobile, id string, ttl time.Duration) error
	Latest(ctx context.Context, mobile string) (string, error)
}

// IdempotencyStore remembers which grievance a client-supplied idempotency
// key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, identityKey, key string) (string, bool, error)
	Remember(ctx context.Context, identityKey, key, grievanceID string) error
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hp-grievance/portal/internal/core/domain"
)

// ChallengeStore keeps one-time code challenges under otp-challenge:<id> and
// the newest challenge id per mobile under otp-latest:<mobile>. Redis expires
// both.
type ChallengeStore struct {
	client *redis.Client
}

func NewChallengeStore(client *redis.Client) *ChallengeStore {
	return &ChallengeStore{client: client}
}

func (s *ChallengeStore) Save(ctx context.Context, ch domain.Challenge, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Delete(ctx, ch.ID)
	}
	raw, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("encode challenge: %w", err)
	}
	return s.client.Set(ctx, s.key(ch.ID), raw, ttl).Err()
}

func (s *ChallengeStore) Get(ctx context.Context, id string) (*domain.Challenge, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get challenge: %w", err)
	}

	var ch domain.Challenge
	if err := json.Unmarshal(raw, &ch); err != nil {
		return nil, fmt.Errorf("%w: challenge %s: %v", domain.ErrPersistenceParse, id, err)
	}
	return &ch, nil
}

func (s *ChallengeStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// Consume relies on DEL reporting how many keys it removed, so only one
// caller sees a count of one.
func (s *ChallengeStore) Consume(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("consume challenge: %w", err)
	}
	if n == 0 {
		return domain.ErrChallengeNotFound
	}
	return nil
}

func (s *ChallengeStore) SetLatest(ctx context.Context, mobile, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return s.client.Del(ctx, s.latestKey(mobile)).Err()
	}
	return s.client.Set(ctx, s.latestKey(mobile), id, ttl).Err()
}

func (s *ChallengeStore) Latest(ctx context.Context, mobile string) (string, error) {
	id, err := s.client.Get(ctx, s.latestKey(mobile)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrChallengeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get latest challenge: %w", err)
	}
	return id, nil
}

func (s *ChallengeStore) key(id string) string {
	return "otp-challenge:" + id
}

func (s *ChallengeStore) latestKey(mobile string) string {
	return "otp-latest:" + mobile
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
	"github.com/hp-grievance/portal/internal/pkg/metrics"
)

const (
	identityKey      = "identity-session"
	grievancesPrefix = "grievances:"

	maxUpdateAttempts = 5
)

// IdentityKey returns the key of the identity entry for sessionID.
func IdentityKey(sessionID string) string {
	if sessionID == "" {
		return identityKey
	}
	return identityKey + ":" + sessionID
}

// GrievancesKey returns the key of the grievance list for an identity.
func GrievancesKey(identityKey string) string {
	return grievancesPrefix + identityKey
}

// SessionStore implements ports.SessionStore on top of any KeyValueStore,
// using JSON for identities and grievance lists.
type SessionStore struct {
	kv         ports.KeyValueStore
	sessionTTL time.Duration
	log        zerolog.Logger
}

// NewSessionStore builds a store whose identity entries expire after
// sessionTTL, which should match the token lifetime. Grievance lists never
// expire. A sessionTTL <= 0 keeps identities until logout.
func NewSessionStore(kv ports.KeyValueStore, sessionTTL time.Duration, log zerolog.Logger) *SessionStore {
	return &SessionStore{kv: kv, sessionTTL: sessionTTL, log: log}
}

func (s *SessionStore) Restore(ctx context.Context, sessionID string) (*domain.Identity, error) {
	raw, err := s.kv.Get(ctx, IdentityKey(sessionID))
	if errors.Is(err, ports.ErrKeyNotFound) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	var id domain.Identity
	if err := json.Unmarshal(raw, &id); err != nil || !id.Role.Valid() {
		s.parseFailure("identity", IdentityKey(sessionID), err)
		return nil, domain.ErrNoSession
	}
	return &id, nil
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, identity domain.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := s.kv.SetWithTTL(ctx, IdentityKey(sessionID), raw, s.sessionTTL); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.kv.Delete(ctx, IdentityKey(sessionID)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) ListGrievances(ctx context.Context, identityKey string) ([]domain.GrievanceRecord, error) {
	records, _, err := s.load(ctx, GrievancesKey(identityKey))
	return records, err
}

func (s *SessionStore) SaveGrievances(ctx context.Context, identityKey string, records []domain.GrievanceRecord) error {
	raw, err := encodeRecords(records)
	if err != nil {
		return fmt.Errorf("save grievances: %w", err)
	}
	if err := s.kv.Set(ctx, GrievancesKey(identityKey), raw); err != nil {
		return fmt.Errorf("save grievances: %w", err)
	}
	return nil
}

// UpdateGrievances uses the raw bytes it read as the concurrency token: the
// write only lands if the stored value is still byte-identical.
func (s *SessionStore) UpdateGrievances(ctx context.Context, identityKey string, fn ports.GrievanceMutator) ([]domain.GrievanceRecord, error) {
	key := GrievancesKey(identityKey)

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		current, prev, err := s.load(ctx, key)
		if err != nil {
			return nil, err
		}

		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		raw, err := encodeRecords(next)
		if err != nil {
			return nil, fmt.Errorf("update grievances: %w", err)
		}

		err = s.kv.CompareAndSwap(ctx, key, prev, raw)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, ports.ErrConflict) {
			return nil, fmt.Errorf("update grievances: %w", err)
		}

		metrics.StoreConflictsTotal.Inc()
		s.log.Debug().Str("key", key).Int("attempt", attempt).Msg("grievance list changed concurrently, retrying")
	}
	return nil, fmt.Errorf("update grievances: %w", ports.ErrConflict)
}

// load returns the decoded list plus the raw bytes it came from (nil when the
// key does not exist). Corrupt data decodes as an empty list.
func (s *SessionStore) load(ctx context.Context, key string) ([]domain.GrievanceRecord, []byte, error) {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return []domain.GrievanceRecord{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load grievances: %w", err)
	}

	var records []domain.GrievanceRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		s.parseFailure("grievances", key, err)
		return []domain.GrievanceRecord{}, raw, nil
	}
	if records == nil {
		records = []domain.GrievanceRecord{}
	}
	return records, raw, nil
}

func (s *SessionStore) parseFailure(kind, key string, cause error) {
	err := fmt.Errorf("%w: %s", domain.ErrPersistenceParse, key)
	if cause != nil {
		err = fmt.Errorf("%w: %s: %v", domain.ErrPersistenceParse, key, cause)
	}
	metrics.PersistenceParseErrorsTotal.WithLabelValues(kind).Inc()
	s.log.Warn().Err(err).Str("kind", kind).Msg("treating unparseable stored data as empty")
}

func encodeRecords(records []domain.GrievanceRecord) ([]byte, error) {
	if records == nil {
		records = []domain.GrievanceRecord{}
	}
	return json.Marshal(records)
}

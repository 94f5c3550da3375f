package service

import (
	"context"
	"sync"
	"time"

	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs for the ports used by the services
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	mu         sync.Mutex
	identities map[string]domain.Identity
	grievances map[string][]domain.GrievanceRecord
	updateErr  error // if set, UpdateGrievances returns this error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{
		identities: make(map[string]domain.Identity),
		grievances: make(map[string][]domain.GrievanceRecord),
	}
}

func (s *stubSessionStore) Restore(_ context.Context, sid string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.identities[sid]
	if !ok {
		return nil, domain.ErrNoSession
	}
	return &id, nil
}

func (s *stubSessionStore) Save(_ context.Context, sid string, identity domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identities[sid] = identity
	return nil
}

func (s *stubSessionStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.identities, sid)
	return nil
}

func (s *stubSessionStore) ListGrievances(_ context.Context, key string) ([]domain.GrievanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecords(s.grievances[key]), nil
}

func (s *stubSessionStore) SaveGrievances(_ context.Context, key string, records []domain.GrievanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grievances[key] = cloneRecords(records)
	return nil
}

func (s *stubSessionStore) UpdateGrievances(_ context.Context, key string, fn ports.GrievanceMutator) ([]domain.GrievanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	next, err := fn(cloneRecords(s.grievances[key]))
	if err != nil {
		return nil, err
	}
	s.grievances[key] = cloneRecords(next)
	return cloneRecords(next), nil
}

func cloneRecords(in []domain.GrievanceRecord) []domain.GrievanceRecord {
	out := make([]domain.GrievanceRecord, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

type stubChallengeStore struct {
	mu      sync.Mutex
	entries map[string]domain.Challenge
	ttls    map[string]time.Duration
	latest  map[string]string
}

func newStubChallengeStore() *stubChallengeStore {
	return &stubChallengeStore{
		entries: make(map[string]domain.Challenge),
		ttls:    make(map[string]time.Duration),
		latest:  make(map[string]string),
	}
}

func (s *stubChallengeStore) Save(_ context.Context, ch domain.Challenge, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[ch.ID] = ch
	s.ttls[ch.ID] = ttl
	return nil
}

func (s *stubChallengeStore) Get(_ context.Context, id string) (*domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	return &ch, nil
}

func (s *stubChallengeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	delete(s.ttls, id)
	return nil
}

func (s *stubChallengeStore) Consume(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return domain.ErrChallengeNotFound
	}
	delete(s.entries, id)
	delete(s.ttls, id)
	return nil
}

func (s *stubChallengeStore) SetLatest(_ context.Context, mobile, id string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[mobile] = id
	return nil
}

func (s *stubChallengeStore) Latest(_ context.Context, mobile string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.latest[mobile]
	if !ok {
		return "", domain.ErrChallengeNotFound
	}
	return id, nil
}

type stubIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]string
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{seen: make(map[string]string)}
}

func (s *stubIdempotencyStore) Lookup(_ context.Context, identityKey, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.seen[identityKey+"|"+key]
	return id, ok, nil
}

func (s *stubIdempotencyStore) Remember(_ context.Context, identityKey, key, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[identityKey+"|"+key] = id
	return nil
}

type stubQueue struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (q *stubQueue) Enqueue(n domain.Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sent = append(q.sent, n)
}

// fixedCodes returns a generator yielding codes in order, then repeating the last.
func fixedCodes(codes ...string) CodeGenerator {
	var mu sync.Mutex
	i := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		c := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return c, nil
	}
}

// stepClock returns a clock starting at start that advances by step per call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := t
		t = t.Add(step)
		return now
	}
}

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
	"github.com/hp-grievance/portal/internal/pkg/metrics"
)

// GrievanceService creates grievances and appends replies. Every mutation is a
// read-modify-write of the owner's whole list through the session store.
type GrievanceService struct {
	store  ports.SessionStore
	idem   ports.IdempotencyStore
	ids    *IDGenerator
	logger zerolog.Logger
	now    func() time.Time
}

// NewGrievanceService wires the lifecycle manager. idem may be nil, in which
// case idempotency keys are ignored.
func NewGrievanceService(store ports.SessionStore, idem ports.IdempotencyStore, logger zerolog.Logger) *GrievanceService {
	now := func() time.Time { return time.Now().UTC() }
	return &GrievanceService{
		store:  store,
		idem:   idem,
		ids:    NewIDGenerator(now),
		logger: logger,
		now:    now,
	}
}

// Create files a grievance for identity and stores it at the head of the
// identity's list. If an idempotency key is provided and already seen, the
// previously created grievance is returned without side effects.
func (s *GrievanceService) Create(ctx context.Context, identity domain.Identity, input ports.CreateGrievanceInput) (*domain.GrievanceRecord, error) {
	key := identity.GrievanceKey()

	if input.IdempotencyKey != "" && s.idem != nil {
		id, ok, err := s.idem.Lookup(ctx, key, input.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency lookup failed, creating anyway")
		} else if ok {
			if existing, err := s.Get(ctx, identity, id); err == nil {
				s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("grievance_id", id).Msg("idempotent replay")
				return existing, nil
			}
		}
	}

	now := s.now()
	d := input.Draft
	record := domain.GrievanceRecord{
		Subject:           d.Subject,
		Description:       d.Description,
		Location:          d.Location,
		District:          d.District,
		Category:          d.Category,
		DateFiled:         now,
		LastUpdated:       now,
		Status:            domain.StatusUnderReview,
		AttachedFileNames: append([]string{}, d.AttachedFileNames...),
		IsAnonymized:      d.IsAnonymized,
		Timeline:          domain.InitialTimeline(now),
		Replies:           []domain.Reply{},
	}

	_, err := s.store.UpdateGrievances(ctx, key, func(list []domain.GrievanceRecord) ([]domain.GrievanceRecord, error) {
		record.ID = s.ids.Next(list)
		return append([]domain.GrievanceRecord{record}, list...), nil
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create grievance")
		return nil, fmt.Errorf("create grievance: %w", err)
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, key, input.IdempotencyKey, record.ID); err != nil {
			s.logger.Warn().Err(err).Str("grievance_id", record.ID).Msg("failed to remember idempotency key")
		}
	}

	metrics.GrievancesCreatedTotal.WithLabelValues(record.Category).Inc()
	s.logger.Info().Str("grievance_id", record.ID).Str("category", record.Category).Msg("grievance filed")

	out := record.Clone()
	return &out, nil
}

// List returns the identity's grievances, most recent first.
func (s *GrievanceService) List(ctx context.Context, identity domain.Identity) ([]domain.GrievanceRecord, error) {
	return s.store.ListGrievances(ctx, identity.GrievanceKey())
}

// Get returns a single grievance from the identity's own list.
func (s *GrievanceService) Get(ctx context.Context, identity domain.Identity, id string) (*domain.GrievanceRecord, error) {
	list, err := s.store.ListGrievances(ctx, identity.GrievanceKey())
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, domain.ErrGrievanceNotFound
}

// AppendReply adds message to the grievance's thread and bumps lastUpdated.
// A blank message changes nothing and the stored record is returned as is.
func (s *GrievanceService) AppendReply(ctx context.Context, identity domain.Identity, id, message string) (*domain.GrievanceRecord, error) {
	if strings.TrimSpace(message) == "" {
		return s.Get(ctx, identity, id)
	}

	var updated domain.GrievanceRecord
	_, err := s.store.UpdateGrievances(ctx, identity.GrievanceKey(), func(list []domain.GrievanceRecord) ([]domain.GrievanceRecord, error) {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			now := s.now()
			if now.Before(list[i].LastUpdated) {
				now = list[i].LastUpdated
			}
			list[i].Replies = append(list[i].Replies, domain.Reply{
				Author:  identity.DisplayName,
				Message: message,
				Date:    now,
			})
			list[i].LastUpdated = now
			updated = list[i].Clone()
			return list, nil
		}
		return nil, domain.ErrGrievanceNotFound
	})
	if err != nil {
		return nil, fmt.Errorf("append reply: %w", err)
	}

	metrics.RepliesTotal.Inc()
	s.logger.Info().Str("grievance_id", id).Msg("reply appended")
	return &updated, nil
}

// IDGenerator hands out HPG-<unix millis> identifiers that strictly increase
// within the process and never collide with ids already in the target list.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	return &IDGenerator{now: now}
}

func (g *IDGenerator) Next(existing []domain.GrievanceRecord) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	taken := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		taken[r.ID] = struct{}{}
	}

	n := g.now().UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	for {
		if _, ok := taken[formatID(n)]; !ok {
			break
		}
		n++
	}
	g.last = n
	return formatID(n)
}

func formatID(n int64) string {
	return fmt.Sprintf("HPG-%d", n)
}

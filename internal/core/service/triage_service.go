package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
	"github.com/hp-grievance/portal/internal/pkg/metrics"
)

type triageService struct {
	records []domain.GrievanceRecord
	queue   ports.NotificationQueue
	log     zerolog.Logger
	now     func() time.Time
}

// NewTriageService returns a TriageService over a fixed record set. queue may
// be nil, in which case notification requests are logged and dropped.
func NewTriageService(
	records []domain.GrievanceRecord,
	queue ports.NotificationQueue,
	log zerolog.Logger,
) ports.TriageService {
	owned := make([]domain.GrievanceRecord, len(records))
	for i, r := range records {
		owned[i] = r.Clone()
	}
	return &triageService{
		records: owned,
		queue:   queue,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// List returns the records whose status falls in bucket, in fixture order.
func (s *triageService) List(_ context.Context, bucket domain.TriageBucket) ([]domain.GrievanceRecord, error) {
	out := make([]domain.GrievanceRecord, 0, len(s.records))
	for _, r := range s.records {
		if bucket.Contains(r.Status) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

// ApplyOfficerAction validates an Action Taken Report and reports what it
// would do. Nothing is persisted; the record set is left untouched.
func (s *triageService) ApplyOfficerAction(ctx context.Context, officer domain.Identity, in ports.OfficerActionInput) (*domain.ActionReport, error) {
	if officer.Role != domain.RoleOfficer {
		return nil, domain.ErrForbidden
	}
	if !in.NewStatus.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", in.NewStatus))
	}

	var rec *domain.GrievanceRecord
	for i := range s.records {
		if s.records[i].ID == in.GrievanceID {
			rec = &s.records[i]
			break
		}
	}
	if rec == nil {
		return nil, domain.ErrGrievanceNotFound
	}

	// 1. Validate state machine transition.
	if !rec.Status.CanTransitionTo(in.NewStatus) {
		return nil, fmt.Errorf("officer action: %w (from %s to %s)", domain.ErrInvalidTransition, rec.Status, in.NewStatus)
	}

	report := &domain.ActionReport{
		GrievanceID:   rec.ID,
		PreviousState: rec.Status,
		NewStatus:     in.NewStatus,
		Remarks:       in.Remarks,
		NotifyCitizen: in.NotifyCitizen,
		Officer:       officer.DisplayName,
		SubmittedAt:   s.now(),
	}

	metrics.OfficerActionsTotal.WithLabelValues(string(in.NewStatus)).Inc()
	s.log.Info().
		Str("grievance_id", rec.ID).
		Str("from", string(rec.Status)).
		Str("to", string(in.NewStatus)).
		Bool("notify", in.NotifyCitizen).
		Msg("action taken report submitted")

	// 2. Hand the citizen notification to the dispatcher (non-blocking up to its buffer).
	if in.NotifyCitizen {
		if s.queue == nil {
			s.log.Warn().Str("grievance_id", rec.ID).Msg("no notification queue configured, notification dropped")
		} else {
			s.queue.Enqueue(domain.Notification{
				GrievanceID: rec.ID,
				Subject:     rec.Subject,
				Status:      in.NewStatus,
				Message:     in.Remarks,
				CreatedAt:   report.SubmittedAt,
			})
		}
	}

	return report, nil
}

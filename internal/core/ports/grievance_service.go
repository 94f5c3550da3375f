package ports

import (
	"context"

	"github.com/hp-grievance/portal/internal/core/domain"
)

// CreateGrievanceInput carries a completed wizard draft.
type CreateGrievanceInput struct {
	Draft domain.GrievanceDraft
	// IdempotencyKey is optional; a repeated key returns the first record.
	IdempotencyKey string
}

// GrievanceService is the grievance lifecycle manager.
type GrievanceService interface {
	Create(ctx context.Context, identity domain.Identity, input CreateGrievanceInput) (*domain.GrievanceRecord, error)
	List(ctx context.Context, identity domain.Identity) ([]domain.GrievanceRecord, error)
	Get(ctx context.Context, identity domain.Identity, id string) (*domain.GrievanceRecord, error)
	// AppendReply is a no-op returning the unchanged record when message is
	// blank.
	AppendReply(ctx context.Context, identity domain.Identity, id, message string) (*domain.GrievanceRecord, error)
}

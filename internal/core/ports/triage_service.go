package ports

import (
	"context"

	"github.com/hp-grievance/portal/internal/core/domain"
)

// OfficerActionInput is the content of an Action Taken Report.
type OfficerActionInput struct {
	GrievanceID   string
	NewStatus     domain.GrievanceStatus
	Remarks       string
	NotifyCitizen bool
}

// TriageService backs the officer dashboard. It works on a fixed record set and
// never touches the session store.
type TriageService interface {
	List(ctx context.Context, bucket domain.TriageBucket) ([]domain.GrievanceRecord, error)
	ApplyOfficerAction(ctx context.Context, officer domain.Identity, input OfficerActionInput) (*domain.ActionReport, error)
}

// NotificationQueue accepts citizen notifications for asynchronous delivery.
type NotificationQueue interface {
	Enqueue(n domain.Notification)
}

// Notifier delivers a single notification.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

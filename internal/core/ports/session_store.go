package ports

import (
	"context"

	"github.com/hp-grievance/portal/internal/core/domain"
)

// GrievanceMutator transforms a full grievance list. It receives a private
// copy and returns the list to persist.
type GrievanceMutator func(records []domain.GrievanceRecord) ([]domain.GrievanceRecord, error)

// SessionStore holds the authenticated identity and, per identity, the list of
// grievance records (most recent first).
//
// An empty sessionID addresses the single global identity entry.
type SessionStore interface {
	// Restore returns domain.ErrNoSession when nothing is stored.
	Restore(ctx context.Context, sessionID string) (*domain.Identity, error)
	Save(ctx context.Context, sessionID string, identity domain.Identity) error
	// Clear removes the identity entry. Grievance lists are kept.
	Clear(ctx context.Context, sessionID string) error

	// ListGrievances returns an empty slice when the key is missing or the
	// stored data is unparseable; only backend failures are returned as errors.
	ListGrievances(ctx context.Context, identityKey string) ([]domain.GrievanceRecord, error)
	// SaveGrievances overwrites the whole list. It assumes a single writer
	// per key: concurrent callers silently clobber each other (last write
	// wins). Use UpdateGrievances when several writers may be active.
	SaveGrievances(ctx context.Context, identityKey string, records []domain.GrievanceRecord) error
	// UpdateGrievances runs a read-modify-write cycle guarded by an optimistic
	// concurrency check, retrying fn on conflict. It returns the persisted list.
	UpdateGrievances(ctx context.Context, identityKey string, fn GrievanceMutator) ([]domain.GrievanceRecord, error)
}

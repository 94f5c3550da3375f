package ports

import (
	"context"
	"time"

	"github.com/hp-grievance/portal/internal/core/domain"
)

// ChallengeResult is returned when a one-time code is issued. Code is surfaced
// to the caller because the portal has no SMS channel.
type ChallengeResult struct {
	ChallengeID string
	Code        string
	ExpiresAt   time.Time
}

// LoginResult is returned after a successful authentication.
type LoginResult struct {
	Token     string
	SessionID string
	Identity  domain.Identity
	ExpiresAt time.Time
}

type AuthService interface {
	StartChallenge(ctx context.Context, mobile string) (*ChallengeResult, error)
	CompleteChallenge(ctx context.Context, challengeID, code string) (*LoginResult, error)
	OfficerLogin(ctx context.Context) (*LoginResult, error)
	CurrentIdentity(ctx context.Context, sessionID string) (*domain.Identity, error)
	Logout(ctx context.Context, sessionID string) error
}

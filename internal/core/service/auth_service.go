package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
	"github.com/hp-grievance/portal/internal/pkg/metrics"
)

const defaultChallengeTTL = 10 * time.Minute

// AuthOptions tunes the one-time code flow.
type AuthOptions struct {
	ChallengeTTL time.Duration
	// HashCost is the bcrypt cost used for stored codes.
	HashCost int
	// AllowOfficerDemo enables the officer bypass login.
	AllowOfficerDemo bool
	// GenerateCode overrides the code source; nil uses RandomCode.
	GenerateCode CodeGenerator
}

// AuthService drives the verifier across HTTP requests and turns a verified
// identity into a persisted session plus a signed token.
type AuthService struct {
	challenges ports.ChallengeStore
	sessions   ports.SessionStore
	tokens     *TokenIssuer
	opts       AuthOptions
	logger     zerolog.Logger
	now        func() time.Time
}

func NewAuthService(
	challenges ports.ChallengeStore,
	sessions ports.SessionStore,
	tokens *TokenIssuer,
	opts AuthOptions,
	logger zerolog.Logger,
) *AuthService {
	if opts.ChallengeTTL <= 0 {
		opts.ChallengeTTL = defaultChallengeTTL
	}
	return &AuthService{
		challenges: challenges,
		sessions:   sessions,
		tokens:     tokens,
		opts:       opts,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// StartChallenge issues a code for mobile under a new challenge id. The new
// challenge supersedes any earlier one for the same mobile.
func (s *AuthService) StartChallenge(ctx context.Context, mobile string) (*ports.ChallengeResult, error) {
	v := NewVerifier(s.opts.GenerateCode, s.opts.HashCost)
	code, err := v.RequestCode(mobile)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			metrics.OTPRequestsTotal.WithLabelValues("invalid_mobile").Inc()
		}
		return nil, err
	}

	now := s.now()
	id := uuid.NewString()
	ch := v.Snapshot(id, now, now.Add(s.opts.ChallengeTTL))
	prev, err := s.challenges.Latest(ctx, mobile)
	if err != nil && !errors.Is(err, domain.ErrChallengeNotFound) {
		return nil, fmt.Errorf("start challenge: %w", err)
	}
	if err := s.challenges.Save(ctx, ch, s.opts.ChallengeTTL); err != nil {
		return nil, fmt.Errorf("start challenge: %w", err)
	}
	if err := s.challenges.SetLatest(ctx, mobile, id, s.opts.ChallengeTTL); err != nil {
		s.deleteChallenge(ctx, id)
		return nil, fmt.Errorf("start challenge: %w", err)
	}
	if prev != "" && prev != id {
		s.deleteChallenge(ctx, prev)
	}

	metrics.OTPRequestsTotal.WithLabelValues("issued").Inc()
	s.logger.Info().Str("challenge_id", id).Msg("one-time code issued")

	return &ports.ChallengeResult{ChallengeID: id, Code: code, ExpiresAt: ch.ExpiresAt}, nil
}

// CompleteChallenge verifies code. A mismatch leaves the challenge untouched
// so the code can be retried. Success consumes it, so each code opens at most
// one session. Only the latest challenge for a mobile is accepted.
func (s *AuthService) CompleteChallenge(ctx context.Context, challengeID, code string) (*ports.LoginResult, error) {
	ch, err := s.challenges.Get(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	if !ch.ExpiresAt.IsZero() && s.now().After(ch.ExpiresAt) {
		metrics.OTPVerificationsTotal.WithLabelValues("expired").Inc()
		s.deleteChallenge(ctx, challengeID)
		return nil, domain.ErrChallengeNotFound
	}

	latest, err := s.challenges.Latest(ctx, ch.Mobile)
	if err != nil && !errors.Is(err, domain.ErrChallengeNotFound) {
		return nil, fmt.Errorf("complete challenge: %w", err)
	}
	if latest != challengeID {
		metrics.OTPVerificationsTotal.WithLabelValues("superseded").Inc()
		s.deleteChallenge(ctx, challengeID)
		return nil, domain.ErrChallengeNotFound
	}

	v := RestoreVerifier(*ch, s.opts.GenerateCode, s.opts.HashCost)
	identity, err := v.Verify(code)
	if err != nil {
		if errors.Is(err, domain.ErrAuth) {
			metrics.OTPVerificationsTotal.WithLabelValues("mismatch").Inc()
		}
		return nil, err
	}

	if err := s.challenges.Consume(ctx, challengeID); err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			metrics.OTPVerificationsTotal.WithLabelValues("replayed").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("complete challenge: %w", err)
	}

	metrics.OTPVerificationsTotal.WithLabelValues("success").Inc()
	return s.openSession(ctx, identity)
}

// OfficerLogin is the demo bypass into the officer role.
func (s *AuthService) OfficerLogin(ctx context.Context) (*ports.LoginResult, error) {
	if !s.opts.AllowOfficerDemo {
		return nil, domain.ErrOfficerLoginDenied
	}
	identity := NewVerifier(s.opts.GenerateCode, s.opts.HashCost).LoginAsOfficer()
	s.logger.Warn().Msg("officer demo login used")
	return s.openSession(ctx, identity)
}

// CurrentIdentity restores the identity bound to sessionID.
func (s *AuthService) CurrentIdentity(ctx context.Context, sessionID string) (*domain.Identity, error) {
	return s.sessions.Restore(ctx, sessionID)
}

// Logout clears the session entry. Grievance lists stay persisted.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info().Str("session_id", sessionID).Msg("session cleared")
	return nil
}

func (s *AuthService) openSession(ctx context.Context, identity domain.Identity) (*ports.LoginResult, error) {
	sid := uuid.NewString()
	if err := s.sessions.Save(ctx, sid, identity); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	token, exp, err := s.tokens.Issue(sid, identity, s.now())
	if err != nil {
		return nil, fmt.Errorf("open session: sign token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues(string(identity.Role)).Inc()
	s.logger.Info().Str("session_id", sid).Str("role", string(identity.Role)).Msg("session opened")

	return &ports.LoginResult{Token: token, SessionID: sid, Identity: identity, ExpiresAt: exp}, nil
}

func (s *AuthService) deleteChallenge(ctx context.Context, id string) {
	if err := s.challenges.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("challenge_id", id).Msg("failed to delete challenge")
	}
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
)

type stubAuthService struct {
	startFn    func(ctx context.Context, mobile string) (*ports.ChallengeResult, error)
	completeFn func(ctx context.Context, challengeID, code string) (*ports.LoginResult, error)
	officerFn  func(ctx context.Context) (*ports.LoginResult, error)
	currentFn  func(ctx context.Context, sessionID string) (*domain.Identity, error)
	logoutFn   func(ctx context.Context, sessionID string) error
}

func (s *stubAuthService) StartChallenge(ctx context.Context, mobile string) (*ports.ChallengeResult, error) {
	return s.startFn(ctx, mobile)
}

func (s *stubAuthService) CompleteChallenge(ctx context.Context, challengeID, code string) (*ports.LoginResult, error) {
	return s.completeFn(ctx, challengeID, code)
}

func (s *stubAuthService) OfficerLogin(ctx context.Context) (*ports.LoginResult, error) {
	return s.officerFn(ctx)
}

func (s *stubAuthService) CurrentIdentity(ctx context.Context, sessionID string) (*domain.Identity, error) {
	return s.currentFn(ctx, sessionID)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}

var expiry = time.Date(2024, 5, 20, 10, 10, 0, 0, time.UTC)

func TestAuthHandler_RequestCode_Success(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{
		startFn: func(_ context.Context, mobile string) (*ports.ChallengeResult, error) {
			if mobile != "9876543210" {
				t.Fatalf("unexpected mobile %q", mobile)
			}
			return &ports.ChallengeResult{ChallengeID: "c1", Code: "123456", ExpiresAt: expiry}, nil
		},
	})

	c, rec := newContext(e, http.MethodPost, "/auth/otp", `{"mobile":"9876543210"}`)
	if err := h.RequestCode(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)

	var resp map[string]any
	decode(t, rec, &resp)
	if resp["challengeId"] != "c1" || resp["code"] != "123456" || resp["expiresAt"] != "2024-05-20T10:10:00Z" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_RequestCode_InvalidMobile(t *testing.T) {
	for _, body := range []string{`{"mobile":"12"}`, `{"mobile":"98765abcde"}`, `{}`} {
		e := newEcho()
		h := NewAuthHandler(&stubAuthService{
			startFn: func(context.Context, string) (*ports.ChallengeResult, error) {
				t.Fatalf("service called for %s", body)
				return nil, nil
			},
		})

		c, _ := newContext(e, http.MethodPost, "/auth/otp", body)
		err := h.RequestCode(c)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected validation error, got %v", body, err)
		}
		if ve.Field != "mobile" {
			t.Fatalf("%s: expected field mobile, got %q", body, ve.Field)
		}
	}
}

func TestAuthHandler_Verify(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{
		completeFn: func(_ context.Context, challengeID, code string) (*ports.LoginResult, error) {
			if challengeID != "c1" {
				t.Fatalf("unexpected challenge %q", challengeID)
			}
			if code != "123456" {
				return nil, domain.ErrAuth
			}
			return &ports.LoginResult{Token: "tok", SessionID: "s1", Identity: citizen, ExpiresAt: expiry}, nil
		},
	})

	c, rec := newContext(e, http.MethodPost, "/auth/verify", `{"challengeId":"c1","code":"123456"}`)
	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var resp loginResponse
	decode(t, rec, &resp)
	if resp.Token != "tok" || resp.Identity != citizen {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	c, _ = newContext(e, http.MethodPost, "/auth/verify", `{"challengeId":"c1","code":"000000"}`)
	if err := h.Verify(c); !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestAuthHandler_Verify_MissingChallenge(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{
		completeFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	c, _ := newContext(e, http.MethodPost, "/auth/verify", `{"code":"123456"}`)
	err := h.Verify(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "challengeId" {
		t.Fatalf("expected challengeId validation error, got %v", err)
	}
}

func TestAuthHandler_OfficerDemo(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{
		officerFn: func(context.Context) (*ports.LoginResult, error) {
			return &ports.LoginResult{Token: "tok", SessionID: "s2", Identity: officer, ExpiresAt: expiry}, nil
		},
	})

	c, rec := newContext(e, http.MethodPost, "/auth/officer-demo", "")
	if err := h.OfficerDemo(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var resp loginResponse
	decode(t, rec, &resp)
	if resp.Identity.Role != domain.RoleOfficer {
		t.Fatalf("expected officer role, got %q", resp.Identity.Role)
	}
}

func TestAuthHandler_LogoutAndSession(t *testing.T) {
	e := newEcho()
	var cleared string
	h := NewAuthHandler(&stubAuthService{
		logoutFn: func(_ context.Context, sid string) error {
			cleared = sid
			return nil
		},
		currentFn: func(_ context.Context, sid string) (*domain.Identity, error) {
			if sid != "s1" {
				return nil, domain.ErrNoSession
			}
			id := citizen
			return &id, nil
		},
	})

	c, rec := newContext(e, http.MethodGet, "/v1/session", "")
	authenticate(c, citizen, "s1")
	if err := h.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
	var resp sessionResponse
	decode(t, rec, &resp)
	if resp.Identity != citizen {
		t.Fatalf("unexpected identity: %+v", resp.Identity)
	}

	c, rec = newContext(e, http.MethodPost, "/auth/logout", "")
	authenticate(c, citizen, "s1")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusNoContent)
	if cleared != "s1" {
		t.Fatalf("expected session s1 to be cleared, got %q", cleared)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newContext(e, http.MethodPost, "/auth/logout", "")
	if err := h.Logout(c); err == nil {
		t.Fatal("expected error without identity")
	}
}

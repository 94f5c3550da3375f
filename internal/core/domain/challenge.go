package domain

import "time"

// VerificationState is the state of a one-time code challenge.
type VerificationState string

const (
	StateIdle                 VerificationState = "idle"
	StateAwaitingVerification VerificationState = "awaiting_verification"
	StateAuthenticated        VerificationState = "authenticated"
)

// Challenge is the persisted snapshot of a single verifier. CodeHash is a
// bcrypt hash; the plain code is never stored.
type Challenge struct {
	ID        string            `json:"id"`
	Mobile    string            `json:"mobile"`
	CodeHash  []byte            `json:"code_hash"`
	State     VerificationState `json:"state"`
	LastError string            `json:"last_error,omitempty"`
	IssuedAt  time.Time         `json:"issued_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

package service

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/pkg/validation"
)

const (
	codeMin = 1000
	codeMax = 9999
)

// CodeGenerator produces a one-time code.
type CodeGenerator func() (string, error)

// RandomCode draws a 4-digit code in [1000, 9999] from crypto/rand.
func RandomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}

// Verifier is the mock one-time code challenge for a single login attempt.
//
//	Idle → AwaitingVerification → Authenticated
//
// Only one challenge is live at a time: RequestCode overwrites the previous
// code. A failed Verify keeps the challenge live so the user can retry.
// There is no delivery channel; the code is returned to the caller.
//
// A Verifier is not safe for concurrent use.
type Verifier struct {
	generate CodeGenerator
	hashCost int

	state    domain.VerificationState
	mobile   string
	codeHash []byte
	lastErr  string
}

// NewVerifier returns an idle verifier. A nil generate uses RandomCode and a
// non-positive hashCost uses bcrypt.DefaultCost.
func NewVerifier(generate CodeGenerator, hashCost int) *Verifier {
	if generate == nil {
		generate = RandomCode
	}
	if hashCost <= 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &Verifier{generate: generate, hashCost: hashCost, state: domain.StateIdle}
}

// RestoreVerifier rebuilds a verifier from a stored challenge.
func RestoreVerifier(ch domain.Challenge, generate CodeGenerator, hashCost int) *Verifier {
	v := NewVerifier(generate, hashCost)
	v.state = ch.State
	v.mobile = ch.Mobile
	v.codeHash = append([]byte(nil), ch.CodeHash...)
	v.lastErr = ch.LastError
	return v
}

// ValidateMobile accepts exactly 10 numeric digits.
func ValidateMobile(mobile string) error {
	if !validation.IsMobileNumber(mobile) {
		return domain.NewValidationError("mobile", "please enter a valid 10-digit mobile number")
	}
	return nil
}

// RequestCode issues a fresh code for mobile and moves to AwaitingVerification.
// Invalid input leaves the current state untouched.
func (v *Verifier) RequestCode(mobile string) (string, error) {
	if err := ValidateMobile(mobile); err != nil {
		v.lastErr = err.Error()
		return "", err
	}

	code, err := v.generate()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), v.hashCost)
	if err != nil {
		return "", err
	}

	v.state = domain.StateAwaitingVerification
	v.mobile = mobile
	v.codeHash = hash
	v.lastErr = ""
	return code, nil
}

// Verify checks code against the most recently issued one.
func (v *Verifier) Verify(code string) (domain.Identity, error) {
	if v.state != domain.StateAwaitingVerification || len(v.codeHash) == 0 {
		return domain.Identity{}, domain.ErrNoChallenge
	}
	if bcrypt.CompareHashAndPassword(v.codeHash, []byte(code)) != nil {
		v.lastErr = domain.ErrAuth.Error()
		return domain.Identity{}, domain.ErrAuth
	}

	v.state = domain.StateAuthenticated
	v.codeHash = nil
	v.lastErr = ""
	return domain.NewCitizen(v.mobile), nil
}

// LoginAsOfficer returns the fixed officer identity without any challenge.
// This is a demo affordance, not an authentication path.
func (v *Verifier) LoginAsOfficer() domain.Identity {
	return domain.NewOfficer()
}

func (v *Verifier) State() domain.VerificationState { return v.state }

// LastError is the message of the most recent failure, if any.
func (v *Verifier) LastError() string { return v.lastErr }

// Snapshot captures the verifier for a ChallengeStore.
func (v *Verifier) Snapshot(id string, issuedAt, expiresAt time.Time) domain.Challenge {
	return domain.Challenge{
		ID:        id,
		Mobile:    v.mobile,
		CodeHash:  append([]byte(nil), v.codeHash...),
		State:     v.state,
		LastError: v.lastErr,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
}

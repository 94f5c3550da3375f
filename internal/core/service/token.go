package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hp-grievance/portal/internal/core/domain"
)

// TokenIssuer signs HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token binding sessionID to identity.
func (t *TokenIssuer) Issue(sessionID string, identity domain.Identity, now time.Time) (string, time.Time, error) {
	exp := now.Add(t.ttl)
	claims := jwt.MapClaims{
		"sid":    sessionID,
		"sub":    identity.ID,
		"name":   identity.DisplayName,
		"role":   string(identity.Role),
		"mobile": identity.MobileNumber,
		"iat":    now.Unix(),
		"exp":    exp.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

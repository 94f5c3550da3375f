package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/hp-grievance/portal/internal/core/domain"
)

// Context keys set by Auth.
const (
	KeySessionID = "session_id"
	KeyIdentity  = "identity"
	KeyRole      = "role"
)

// SessionRestorer resolves a session id to the identity stored for it.
type SessionRestorer interface {
	Restore(ctx context.Context, sessionID string) (*domain.Identity, error)
}

// Auth validates the JWT, then restores the identity bound to its sid claim
// from the session store. A token whose session was cleared by logout is
// rejected even if it has not expired.
func Auth(jwtSecret string, sessions SessionRestorer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing session")
			}

			identity, err := sessions.Restore(c.Request().Context(), sid)
			if err != nil {
				if errors.Is(err, domain.ErrNoSession) {
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
				}
				return err
			}
			if sub, _ := claims["sub"].(string); sub != identity.ID {
				return echo.NewHTTPError(http.StatusUnauthorized, "token does not match session")
			}

			c.Set(KeySessionID, sid)
			c.Set(KeyIdentity, *identity)
			c.Set(KeyRole, string(identity.Role))

			return next(c)
		}
	}
}

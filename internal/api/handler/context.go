package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hp-grievance/portal/internal/api/middleware"
	"github.com/hp-grievance/portal/internal/core/domain"
)

// ctxIdentity extracts the identity and session id injected by the Auth
// middleware. Missing values mean the route was registered without Auth.
func ctxIdentity(c echo.Context) (domain.Identity, string, error) {
	identity, ok := c.Get(middleware.KeyIdentity).(domain.Identity)
	if !ok || !identity.Role.Valid() {
		return domain.Identity{}, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	sid, _ := c.Get(middleware.KeySessionID).(string)
	if sid == "" {
		return domain.Identity{}, "", echo.NewHTTPError(http.StatusUnauthorized, "token missing session")
	}
	return identity, sid, nil
}

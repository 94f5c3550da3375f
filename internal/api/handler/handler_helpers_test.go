package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hp-grievance/portal/internal/api/middleware"
	"github.com/hp-grievance/portal/internal/core/domain"
)

var citizen = domain.Identity{
	ID:           "9876543210",
	DisplayName:  domain.CitizenDisplayName,
	Role:         domain.RoleCitizen,
	MobileNumber: "9876543210",
}

var officer = domain.Identity{
	ID:           domain.OfficerID,
	DisplayName:  domain.OfficerDisplayName,
	Role:         domain.RoleOfficer,
	MobileNumber: domain.OfficerMobile,
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator(nil)
	return e
}

// newContext builds a request context. A non-empty body is sent as JSON.
func newContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// authenticate mimics what the Auth middleware stores on the context.
func authenticate(c echo.Context, identity domain.Identity, sid string) {
	c.Set(middleware.KeySessionID, sid)
	c.Set(middleware.KeyIdentity, identity)
	c.Set(middleware.KeyRole, string(identity.Role))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

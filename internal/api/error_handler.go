package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps known domain
// errors to status codes, logs anything unexpected without leaking it, and
// renders {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, ve.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrWizardIncomplete):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrAuth):
		return http.StatusUnauthorized, domain.ErrAuth.Error()
	case errors.Is(err, domain.ErrNoChallenge), errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrChallengeNotFound):
		return http.StatusNotFound, "challenge not found or expired"
	case errors.Is(err, domain.ErrGrievanceNotFound):
		return http.StatusNotFound, "grievance not found"
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrOfficerLoginDenied):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, ports.ErrConflict):
		return http.StatusConflict, "concurrent update, please retry"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hp-grievance/portal/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RequestCode issues a one-time code for a mobile number.
//
// @Summary      Request a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      otpRequest  true  "Mobile number"
// @Success      201   {object}  otpResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/otp [post]
func (h *AuthHandler) RequestCode(c echo.Context) error {
	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.StartChallenge(c.Request().Context(), req.Mobile)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, otpResponse{
		ChallengeID: res.ChallengeID,
		Code:        res.Code,
		ExpiresAt:   res.ExpiresAt.UTC(),
	})
}

// Verify checks a one-time code and opens a citizen session.
//
// @Summary      Verify a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyRequest  true  "Challenge id and code"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/verify [post]
func (h *AuthHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.CompleteChallenge(c.Request().Context(), req.ChallengeID, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoginResponse(res))
}

// OfficerDemo logs in as the fixed demo officer.
//
// @Summary      Demo officer login
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginResponse
// @Failure      403  {object}  errorResponse
// @Router       /auth/officer-demo [post]
func (h *AuthHandler) OfficerDemo(c echo.Context) error {
	res, err := h.authService.OfficerLogin(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoginResponse(res))
}

// Logout clears the caller's session. Filed grievances are kept.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	_, sid, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), sid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session returns the identity bound to the caller's session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	_, sid, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	identity, err := h.authService.CurrentIdentity(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Identity: *identity})
}

package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
	"github.com/hp-grievance/portal/internal/core/service"
)

// GrievanceHandler serves the citizen grievance routes.
type GrievanceHandler struct {
	service  ports.GrievanceService
	validate *validator.Validate
}

func NewGrievanceHandler(service ports.GrievanceService, validate *validator.Validate) *GrievanceHandler {
	return &GrievanceHandler{service: service, validate: validate}
}

// Create handles POST /v1/grievances. The body is run through every wizard
// step before it is filed.
//
// @Summary      File a grievance
// @Tags         grievances
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                  false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createGrievanceRequest  true   "Grievance draft"
// @Success      201              {object}  grievanceResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/grievances [post]
func (h *GrievanceHandler) Create(c echo.Context) error {
	identity, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createGrievanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	wizard := service.NewWizard(h.service, h.validate)
	rec, err := wizard.Complete(c.Request().Context(), identity, toDraft(req), c.Request().Header.Get("Idempotency-Key"))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/v1/grievances/"+rec.ID)
	return c.JSON(http.StatusCreated, toGrievanceResponse(*rec))
}

// List handles GET /v1/grievances.
//
// @Summary      List my grievances
// @Description  Most recent first.
// @Tags         grievances
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  grievanceListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/grievances [get]
func (h *GrievanceHandler) List(c echo.Context) error {
	identity, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	list, err := h.service.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGrievanceList(list))
}

// Get handles GET /v1/grievances/:id.
//
// @Summary      Get a grievance
// @Tags         grievances
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Grievance id (e.g. HPG-1716200000000)"
// @Success      200  {object}  grievanceResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/grievances/{id} [get]
func (h *GrievanceHandler) Get(c echo.Context) error {
	identity, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	rec, err := h.service.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGrievanceResponse(*rec))
}

// Reply handles POST /v1/grievances/:id/replies. A blank message changes
// nothing and returns the record as stored.
//
// @Summary      Reply on a grievance
// @Tags         grievances
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Grievance id"
// @Param        body  body      replyRequest  true  "Reply"
// @Success      200   {object}  grievanceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/grievances/{id}/replies [post]
func (h *GrievanceHandler) Reply(c echo.Context) error {
	identity, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req replyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	rec, err := h.service.AppendReply(c.Request().Context(), identity, c.Param("id"), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGrievanceResponse(*rec))
}

// Reference handles GET /v1/reference.
//
// @Summary      Reference data for the grievance form
// @Tags         grievances
// @Produce      json
// @Success      200  {object}  referenceResponse
// @Router       /v1/reference [get]
func Reference(c echo.Context) error {
	return c.JSON(http.StatusOK, referenceResponse{
		Districts:            domain.Districts,
		Categories:           domain.Categories,
		Statuses:             domain.Statuses(),
		MaxAttachments:       domain.MaxAttachments,
		MaxDescriptionLength: domain.MaxDescriptionLength,
	})
}

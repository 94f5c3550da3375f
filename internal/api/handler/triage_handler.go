package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
)

// TriageHandler serves the officer dashboard.
type TriageHandler struct {
	service ports.TriageService
}

func NewTriageHandler(service ports.TriageService) *TriageHandler {
	return &TriageHandler{service: service}
}

// List handles GET /v1/triage.
//
// @Summary      List grievances in a triage bucket
// @Tags         triage
// @Produce      json
// @Security     BearerAuth
// @Param        bucket  query     string  false  "new, pending or resolved"  default(new)
// @Success      200     {object}  triageListResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /v1/triage [get]
func (h *TriageHandler) List(c echo.Context) error {
	bucket, err := domain.ParseBucket(c.QueryParam("bucket"))
	if err != nil {
		return err
	}
	items, err := h.service.List(c.Request().Context(), bucket)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, triageListResponse{Bucket: bucket, Items: items, Count: len(items)})
}

// Act handles POST /v1/triage/:id/actions. The report is validated and
// acknowledged but never applied to the record.
//
// @Summary      Submit an Action Taken Report
// @Tags         triage
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Grievance id"
// @Param        body  body      officerActionRequest  true  "Action Taken Report"
// @Success      202   {object}  actionReportResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/triage/{id}/actions [post]
func (h *TriageHandler) Act(c echo.Context) error {
	officer, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req officerActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return domain.NewValidationError("status", err.Error())
	}

	report, err := h.service.ApplyOfficerAction(c.Request().Context(), officer, toActionInput(c.Param("id"), status, req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, toActionReportResponse(report))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pecc/timetracking/internal/api/metrics"
	"github.com/pecc/timetracking/internal/core/ports"
)

// SubmissionHandler handles HTTP requests for contractor work submissions.
type SubmissionHandler struct {
	service ports.SubmissionService
}

func NewSubmissionHandler(service ports.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// List handles GET /contractor-submissions.
//
// @Summary      List all contractor submissions
// @Tags         contractor-submissions
// @Produce      json
// @Success      200  {array}   submissionResponse
// @Failure      500  {object}  map[string]string
// @Router       /contractor-submissions [get]
func (h *SubmissionHandler) List(c echo.Context) error {
	metrics.RequestsTotal.WithLabelValues("contractor_submissions", "list").Inc()

	subs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSubmissionResponses(subs))
}

// Create handles POST /contractor-submissions.
//
// @Summary      Record a contractor work submission
// @Tags         contractor-submissions
// @Accept       json
// @Produce      json
// @Param        body  body      submissionRequest  true  "Submission details"
// @Success      201   {object}  submissionResponse
// @Failure      400   {object}  map[string]string
// @Router       /contractor-submissions [post]
func (h *SubmissionHandler) Create(c echo.Context) error {
	metrics.RequestsTotal.WithLabelValues("contractor_submissions", "create").Inc()

	var req submissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sub, err := h.service.Create(c.Request().Context(), toDomainSubmission(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSubmissionResponse(*sub))
}

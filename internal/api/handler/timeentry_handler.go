package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pecc/timetracking/internal/api/metrics"
	"github.com/pecc/timetracking/internal/core/ports"
)

// TimeEntryHandler handles HTTP requests for time entries.
type TimeEntryHandler struct {
	service ports.TimeEntryService
}

func NewTimeEntryHandler(service ports.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{service: service}
}

// List handles GET /time-entries.
//
// @Summary      List all time entries
// @Tags         time-entries
// @Produce      json
// @Success      200  {array}   timeEntryResponse
// @Failure      500  {object}  map[string]string
// @Router       /time-entries [get]
func (h *TimeEntryHandler) List(c echo.Context) error {
	metrics.RequestsTotal.WithLabelValues("time_entries", "list").Inc()

	entries, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEntryResponses(entries))
}

// Create handles POST /time-entries (clock-in).
//
// @Summary      Open a time entry
// @Tags         time-entries
// @Accept       json
// @Produce      json
// @Param        body  body      timeEntryRequest  true  "Time entry details"
// @Success      201   {object}  timeEntryResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /time-entries [post]
func (h *TimeEntryHandler) Create(c echo.Context) error {
	metrics.RequestsTotal.WithLabelValues("time_entries", "create").Inc()
	timer := time.Now()

	var req timeEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	entry, err := h.service.Create(c.Request().Context(), toDomainEntry(0, req))
	if err != nil {
		return err
	}

	metrics.EntriesOpenedTotal.Inc()
	metrics.RequestDuration.WithLabelValues("time_entries").Observe(time.Since(timer).Seconds())
	return c.JSON(http.StatusCreated, toEntryResponse(*entry))
}

// Update handles PUT /time-entries/:id (clock-out or overtime).
//
// @Summary      Update a time entry
// @Tags         time-entries
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "Entry id"
// @Param        body  body      timeEntryRequest  true  "Time entry details"
// @Success      200   {object}  timeEntryResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /time-entries/{id} [put]
func (h *TimeEntryHandler) Update(c echo.Context) error {
	metrics.RequestsTotal.WithLabelValues("time_entries", "update").Inc()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req timeEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	entry, err := h.service.Update(c.Request().Context(), toDomainEntry(id, req))
	if err != nil {
		return err
	}

	if !entry.IsOpen() {
		metrics.EntriesClosedTotal.Inc()
	}
	return c.JSON(http.StatusOK, toEntryResponse(*entry))
}

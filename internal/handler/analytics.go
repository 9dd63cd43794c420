package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/workpulse/workpulse/internal/service"
)

// AnalyticsHandler handles the admin analytics surface. These endpoints
// return bare arrays (no envelope) to preserve the existing API contract.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	prod      bool
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, prod bool) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, prod: prod}
}

// parseTimeRange validates the required start/end query parameters. On
// failure it writes the VALIDATION_ERROR response and reports !ok.
func parseTimeRange(w http.ResponseWriter, q url.Values) (start, end int64, ok bool) {
	startStr, endStr := q.Get("start"), q.Get("end")
	if startStr == "" || endStr == "" {
		writeError(w, http.StatusBadRequest, typeValidationError, "start and end parameters are required")
		return 0, 0, false
	}

	start, startErr := strconv.ParseInt(startStr, 10, 64)
	end, endErr := strconv.ParseInt(endStr, 10, 64)
	if startErr != nil || endErr != nil {
		writeError(w, http.StatusBadRequest, typeValidationError, "start and end must be valid unix timestamps in milliseconds")
		return 0, 0, false
	}

	if start >= end {
		writeError(w, http.StatusBadRequest, typeValidationError, "start time must be before end time")
		return 0, 0, false
	}

	return start, end, true
}

func analyticsQueryFrom(q url.Values, start, end int64) service.AnalyticsQuery {
	return service.AnalyticsQuery{
		Start:       start,
		End:         end,
		Timezone:    q.Get("timezone"),
		EmployeeIDs: splitList(q.Get("employeeId")),
		TeamIDs:     splitList(q.Get("teamId")),
		ProjectIDs:  splitList(q.Get("projectId")),
		TaskIDs:     splitList(q.Get("taskId")),
		ShiftIDs:    splitList(q.Get("shiftId")),
	}
}

// HandleProjectTime returns per-project time/costs/income totals.
func (h *AnalyticsHandler) HandleProjectTime(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end, ok := parseTimeRange(w, q)
	if !ok {
		return
	}

	aggregates, err := h.analytics.ProjectTime(r.Context(), analyticsQueryFrom(q, start, end))
	if err != nil {
		writeInternalError(w, err, "Failed to get project time analytics", h.prod)
		return
	}

	writeJSON(w, http.StatusOK, toProjectTimeDTOs(aggregates))
}

// HandleWindows returns the matching per-window telemetry rows.
func (h *AnalyticsHandler) HandleWindows(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end, ok := parseTimeRange(w, q)
	if !ok {
		return
	}

	windows, err := h.analytics.Windows(r.Context(), analyticsQueryFrom(q, start, end))
	if err != nil {
		writeInternalError(w, err, "Failed to get window analytics", h.prod)
		return
	}

	writeJSON(w, http.StatusOK, toWindowDTOs(windows))
}

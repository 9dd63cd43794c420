package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/workpulse/workpulse/internal/domain"
	"github.com/workpulse/workpulse/internal/service"
)

// TrackingHandler handles the time-tracking HTTP surface. Responses use
// the `{type, message, ...}` envelope.
type TrackingHandler struct {
	tracking *service.TrackingService
	prod     bool
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(tracking *service.TrackingService, prod bool) *TrackingHandler {
	return &TrackingHandler{tracking: tracking, prod: prod}
}

// HandleStart starts a new tracking session for the caller.
func (h *TrackingHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	var req startRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, typeValidationError, "Invalid request body")
		return
	}
	if req.TaskID == "" {
		writeError(w, http.StatusBadRequest, typeValidationError, "Task ID is required")
		return
	}

	session, err := h.tracking.Start(r.Context(), principal.EmployeeID, req.TaskID)
	if err != nil {
		var active *domain.ActiveSessionError
		switch {
		case errors.As(err, &active):
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"type":    typeActiveSessionExists,
				"message": "You already have an active tracking session. Please stop it first.",
				"activeSession": map[string]any{
					"id":        active.Session.ID,
					"taskId":    active.Session.TaskID,
					"startTime": active.Session.StartTime,
				},
			})
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, typeNotFound, "Task not found")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, typeForbidden, "Task not assigned to you")
		case errors.Is(err, domain.ErrConflict):
			writeError(w, http.StatusConflict, typeConflict, "Duplicated resource.")
		default:
			writeInternalError(w, err, "Failed to start time tracking", h.prod)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"type":    typeSuccess,
		"message": "Time tracking started successfully",
		"session": startedSessionDTO{
			ID:        session.ID,
			TaskID:    session.TaskID,
			ProjectID: session.ProjectID,
			StartTime: session.StartTime,
			Status:    session.Status,
		},
	})
}

// HandleStop stops the caller's active session.
func (h *TrackingHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	var req stopRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, typeValidationError, "Invalid request body")
		return
	}

	session, err := h.tracking.Stop(r.Context(), principal.EmployeeID, req.SessionID, req.ScreenshotCount, req.ActivityData.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, typeNotFound, "No active tracking session found")
			return
		}
		writeInternalError(w, err, "Failed to stop time tracking", h.prod)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"type":    typeSuccess,
		"message": "Time tracking stopped successfully",
		"session": stoppedSessionDTO{
			ID:        session.ID,
			TaskID:    session.TaskID,
			ProjectID: session.ProjectID,
			StartTime: session.StartTime,
			EndTime:   session.EndTime,
			Duration:  session.Duration,
			Status:    session.Status,
		},
	})
}

// HandleActive returns the caller's active session, or a null session if
// there is none.
func (h *TrackingHandler) HandleActive(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	detail, err := h.tracking.ActiveSession(r.Context(), principal.EmployeeID)
	if err != nil {
		writeInternalError(w, err, "Failed to get active session", h.prod)
		return
	}

	if detail == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"type":    typeSuccess,
			"message": "No active session",
			"session": nil,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"type":    typeSuccess,
		"message": "Active session found",
		"session": activeSessionDTO{
			ID:          detail.ID,
			TaskID:      detail.TaskID,
			TaskName:    detail.TaskName,
			ProjectID:   detail.ProjectID,
			ProjectName: detail.ProjectName,
			StartTime:   detail.StartTime,
			Duration:    detail.Duration,
			Status:      detail.Status,
		},
	})
}

// HandleSessions lists the caller's session history with pagination.
func (h *TrackingHandler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())
	q := r.URL.Query()

	filter := domain.SessionFilter{
		TaskID:    q.Get("taskId"),
		ProjectID: q.Get("projectId"),
		Limit:     50,
	}

	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		if v := q.Get(name); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, typeValidationError, name+" must be an integer")
				return
			}
			*dst = parsed
		}
	}
	for name, dst := range map[string]**int64{"startDate": &filter.StartDate, "endDate": &filter.EndDate} {
		if v := q.Get(name); v != "" {
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, typeValidationError, name+" must be a unix timestamp in milliseconds")
				return
			}
			*dst = &parsed
		}
	}

	details, pagination, err := h.tracking.ListSessions(r.Context(), principal.EmployeeID, filter)
	if err != nil {
		writeInternalError(w, err, "Failed to get sessions", h.prod)
		return
	}

	items := make([]sessionListItemDTO, len(details))
	for i, d := range details {
		items[i] = toSessionListItemDTO(d)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"type":     typeSuccess,
		"message":  "Sessions retrieved successfully",
		"sessions": items,
		"pagination": paginationDTO{
			Total:   pagination.Total,
			Limit:   pagination.Limit,
			Offset:  pagination.Offset,
			HasMore: pagination.HasMore,
		},
	})
}

// HandleSync applies a telemetry catch-up from the desktop agent.
func (h *TrackingHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	var req syncRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, typeValidationError, "Invalid request body")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, typeValidationError, "Session ID is required")
		return
	}

	err := h.tracking.Sync(r.Context(), principal.EmployeeID, req.SessionID, req.ScreenshotCount, req.ActivityData.toDomain(), req.Duration)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, typeNotFound, "Session not found")
			return
		}
		writeInternalError(w, err, "Failed to sync data", h.prod)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"type":    typeSuccess,
		"message": "Data synced successfully",
	})
}

// HandleStats returns the caller's tracking statistics for a period.
func (h *TrackingHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "week"
	}

	stats, err := h.tracking.Stats(r.Context(), principal.EmployeeID, period)
	if err != nil {
		writeInternalError(w, err, "Failed to get statistics", h.prod)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"type":    typeSuccess,
		"message": "Statistics retrieved successfully",
		"stats":   toStatsDTO(stats),
	})
}

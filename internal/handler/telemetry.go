package handler

import (
	"errors"
	"net/http"

	"github.com/workpulse/workpulse/internal/domain"
	"github.com/workpulse/workpulse/internal/service"
)

// TelemetryHandler handles the desktop agent's ingestion surface.
type TelemetryHandler struct {
	telemetry *service.TelemetryService
	prod      bool
}

// NewTelemetryHandler creates a new TelemetryHandler.
func NewTelemetryHandler(telemetry *service.TelemetryService, prod bool) *TelemetryHandler {
	return &TelemetryHandler{telemetry: telemetry, prod: prod}
}

// HandleIngestWindow stores one window record. The employee tag defaults
// to the authenticated principal's.
func (h *TelemetryHandler) HandleIngestWindow(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	var req ingestWindowRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, typeValidationError, "Invalid request body")
		return
	}
	if req.End <= req.Start {
		writeError(w, http.StatusBadRequest, typeValidationError, "start time must be before end time")
		return
	}

	window := req.toDomain()
	if window.EmployeeID == "" {
		window.EmployeeID = principal.EmployeeID
	}
	if window.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, typeValidationError, "employeeId is required")
		return
	}

	if err := h.telemetry.IngestWindow(r.Context(), window); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, typeValidationError, "Invalid window record")
		case errors.Is(err, domain.ErrConflict):
			writeError(w, http.StatusConflict, typeConflict, "Duplicated resource.")
		default:
			writeInternalError(w, err, "Failed to ingest window", h.prod)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"type":    typeSuccess,
		"message": "Window ingested successfully",
		"id":      window.ID,
	})
}

// HandleIngestScreenshot stores one screenshot record.
func (h *TelemetryHandler) HandleIngestScreenshot(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	var req ingestScreenshotRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, typeValidationError, "Invalid request body")
		return
	}
	if req.TimestampTranslated == "" {
		writeError(w, http.StatusBadRequest, typeValidationError, "timestampTranslated is required")
		return
	}

	rec := req.toDomain()
	if rec.EmployeeID == "" {
		rec.EmployeeID = principal.EmployeeID
	}
	if rec.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, typeValidationError, "employeeId is required")
		return
	}

	if err := h.telemetry.IngestScreenshot(r.Context(), rec); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, typeValidationError, "Invalid screenshot record")
		case errors.Is(err, domain.ErrConflict):
			writeError(w, http.StatusConflict, typeConflict, "Duplicated resource.")
		default:
			writeInternalError(w, err, "Failed to ingest screenshot", h.prod)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"type":    typeSuccess,
		"message": "Screenshot ingested successfully",
		"id":      rec.ID,
	})
}

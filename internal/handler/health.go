package handler

import (
	"net/http"
	"time"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	env string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(env string) *HealthHandler {
	return &HealthHandler{env: env}
}

// HandleHealth reports process liveness.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.env,
	})
}

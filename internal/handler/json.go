package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// Response type tags. Clients branch on these, never on message text.
const (
	typeSuccess             = "SUCCESS"
	typeValidationError     = "VALIDATION_ERROR"
	typeNotFound            = "NOT_FOUND"
	typeForbidden           = "FORBIDDEN"
	typeUnauthorized        = "UNAUTHORIZED"
	typeTokenExpired        = "TOKEN_EXPIRED"
	typeActiveSessionExists = "ACTIVE_SESSION_EXISTS"
	typeConflict            = "CONFLICT"
	typeInternalError       = "INTERNAL_ERROR"
)

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends the `{type, message}` error envelope.
func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, map[string]string{"type": errType, "message": message})
}

// writeInternalError logs the failure and sends INTERNAL_ERROR. The
// underlying error detail is included only outside production.
func writeInternalError(w http.ResponseWriter, err error, message string, prod bool) {
	slog.Error(message, "error", err)
	body := map[string]string{"type": typeInternalError, "message": message}
	if !prod {
		body["error"] = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// splitList splits a comma-separated id list query value; empty input
// yields nil (no filter).
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

package handler

import (
	"errors"
	"net/http"

	"github.com/workpulse/workpulse/internal/domain"
	"github.com/workpulse/workpulse/internal/service"
)

// AuthHandler handles login.
type AuthHandler struct {
	auth *service.AuthService
	prod bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, prod bool) *AuthHandler {
	return &AuthHandler{auth: auth, prod: prod}
}

// HandleLogin verifies credentials and returns a Bearer token.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, typeValidationError, "Invalid request body")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, typeValidationError, "Email and password are required")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, typeUnauthorized, "Invalid credentials")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, typeForbidden, "Account is deactivated")
		default:
			writeInternalError(w, err, "Failed to login", h.prod)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"type":    typeSuccess,
		"message": "Login successful",
		"token":   token,
		"user":    toUserDTO(user),
	})
}

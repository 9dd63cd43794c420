package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
	ErrConflict     = errors.New("duplicated resource")
)

// ActiveSessionError is returned when a tracking start is rejected because
// the employee already has an active session. It carries the conflicting
// session so callers can offer to stop it first.
type ActiveSessionError struct {
	Session *TimeSession
}

func (e *ActiveSessionError) Error() string {
	return fmt.Sprintf("employee %s already has an active session %s", e.Session.EmployeeID, e.Session.ID)
}

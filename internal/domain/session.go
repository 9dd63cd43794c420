package domain

import "context"

// TimeSession is one contiguous tracked work interval for an employee
// against a task. All timestamps are unix milliseconds.
type TimeSession struct {
	ID              string
	EmployeeID      string
	TaskID          string
	ProjectID       string
	StartTime       int64
	EndTime         *int64 // nil while the session is active
	Duration        int64  // milliseconds, 0 until stopped
	ScreenshotCount int
	ActivityData    ActivityData
	Status          string
	Synced          bool
	CreatedAt       int64
	UpdatedAt       int64
}

const (
	SessionStatusActive    = "active"
	SessionStatusPaused    = "paused"
	SessionStatusCompleted = "completed"
)

// ActivityData holds the desktop agent's per-session input metrics.
type ActivityData struct {
	MouseClicks       int
	KeyPresses        int
	ActiveWindows     []string
	ProductivityScore float64
}

// ActivityUpdate is a partial ActivityData. Nil fields are absent from the
// incoming payload and leave the stored value untouched; non-nil fields
// overwrite it.
type ActivityUpdate struct {
	MouseClicks       *int
	KeyPresses        *int
	ActiveWindows     []string
	ProductivityScore *float64
}

// Merge applies the shallow-merge semantics of a sync/stop payload.
func (a *ActivityData) Merge(u ActivityUpdate) {
	if u.MouseClicks != nil {
		a.MouseClicks = *u.MouseClicks
	}
	if u.KeyPresses != nil {
		a.KeyPresses = *u.KeyPresses
	}
	if u.ActiveWindows != nil {
		a.ActiveWindows = u.ActiveWindows
	}
	if u.ProductivityScore != nil {
		a.ProductivityScore = *u.ProductivityScore
	}
}

// SessionFilter narrows a session listing. StartDate/EndDate bound
// TimeSession.StartTime inclusively when non-nil.
type SessionFilter struct {
	StartDate *int64
	EndDate   *int64
	TaskID    string
	ProjectID string
	Limit     int
	Offset    int
}

type SessionRepository interface {
	// Create inserts a new session. Returns ErrConflict if the storage
	// layer's active-session uniqueness constraint rejects the insert.
	Create(ctx context.Context, session *TimeSession) error
	// GetByID finds a session owned by the employee in any status.
	GetByID(ctx context.Context, id, employeeID string) (*TimeSession, error)
	// GetActive finds the employee's active session, ErrNotFound if none.
	GetActive(ctx context.Context, employeeID string) (*TimeSession, error)
	// GetActiveByID finds a specific session only if it is still active.
	GetActiveByID(ctx context.Context, id, employeeID string) (*TimeSession, error)
	// Update rewrites the whole session row in a single statement.
	Update(ctx context.Context, session *TimeSession) error
	// List returns sessions ordered by StartTime descending.
	List(ctx context.Context, employeeID string, f SessionFilter) ([]TimeSession, error)
	// Count returns the total matching List's filter, ignoring limit/offset.
	Count(ctx context.Context, employeeID string, f SessionFilter) (int, error)
	// ListCompletedSince returns completed sessions with StartTime >= since.
	ListCompletedSince(ctx context.Context, employeeID string, since int64) ([]TimeSession, error)
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/workpulse/workpulse/internal/domain"
)

// SessionRepository implements domain.SessionRepository using SQLite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLite-backed SessionRepository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db.SqlDB}
}

const sessionColumns = `id, employee_id, task_id, project_id, start_time, end_time, duration,
	 screenshot_count, mouse_clicks, key_presses, active_windows, productivity_score,
	 status, synced, created_at, updated_at`

func (r *SessionRepository) Create(ctx context.Context, session *domain.TimeSession) error {
	now := time.Now().UnixMilli()
	windows, err := json.Marshal(session.ActivityData.ActiveWindows)
	if err != nil {
		return fmt.Errorf("marshal active windows: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO time_sessions (id, employee_id, task_id, project_id, start_time, end_time,
		 duration, screenshot_count, mouse_clicks, key_presses, active_windows, productivity_score,
		 status, synced, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.EmployeeID, session.TaskID, session.ProjectID,
		session.StartTime, session.EndTime, session.Duration, session.ScreenshotCount,
		session.ActivityData.MouseClicks, session.ActivityData.KeyPresses,
		string(windows), session.ActivityData.ProductivityScore,
		session.Status, session.Synced, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert time session: %w", err)
	}

	session.CreatedAt = now
	session.UpdatedAt = now
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id, employeeID string) (*domain.TimeSession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM time_sessions WHERE id = ? AND employee_id = ?`,
		id, employeeID)
	return scanSession(row)
}

func (r *SessionRepository) GetActive(ctx context.Context, employeeID string) (*domain.TimeSession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM time_sessions WHERE employee_id = ? AND status = ?`,
		employeeID, domain.SessionStatusActive)
	return scanSession(row)
}

func (r *SessionRepository) GetActiveByID(ctx context.Context, id, employeeID string) (*domain.TimeSession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM time_sessions WHERE id = ? AND employee_id = ? AND status = ?`,
		id, employeeID, domain.SessionStatusActive)
	return scanSession(row)
}

func (r *SessionRepository) Update(ctx context.Context, session *domain.TimeSession) error {
	now := time.Now().UnixMilli()
	windows, err := json.Marshal(session.ActivityData.ActiveWindows)
	if err != nil {
		return fmt.Errorf("marshal active windows: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE time_sessions SET
		 end_time = ?, duration = ?, screenshot_count = ?,
		 mouse_clicks = ?, key_presses = ?, active_windows = ?, productivity_score = ?,
		 status = ?, synced = ?, updated_at = ?
		 WHERE id = ?`,
		session.EndTime, session.Duration, session.ScreenshotCount,
		session.ActivityData.MouseClicks, session.ActivityData.KeyPresses,
		string(windows), session.ActivityData.ProductivityScore,
		session.Status, session.Synced, now, session.ID,
	)
	if err != nil {
		return fmt.Errorf("update time session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	session.UpdatedAt = now
	return nil
}

func (r *SessionRepository) List(ctx context.Context, employeeID string, f domain.SessionFilter) ([]domain.TimeSession, error) {
	query, args := buildSessionWhere(employeeID, f)
	query = `SELECT ` + sessionColumns + ` FROM time_sessions` + query +
		` ORDER BY start_time DESC LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

func (r *SessionRepository) Count(ctx context.Context, employeeID string, f domain.SessionFilter) (int, error) {
	query, args := buildSessionWhere(employeeID, f)
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM time_sessions`+query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count time sessions: %w", err)
	}
	return count, nil
}

func (r *SessionRepository) ListCompletedSince(ctx context.Context, employeeID string, since int64) ([]domain.TimeSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM time_sessions
		 WHERE employee_id = ? AND status = ? AND start_time >= ?
		 ORDER BY start_time DESC`,
		employeeID, domain.SessionStatusCompleted, since)
	if err != nil {
		return nil, fmt.Errorf("list completed sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

func buildSessionWhere(employeeID string, f domain.SessionFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE employee_id = ?")
	args := []any{employeeID}

	if f.StartDate != nil {
		sb.WriteString(" AND start_time >= ?")
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		sb.WriteString(" AND start_time <= ?")
		args = append(args, *f.EndDate)
	}
	if f.TaskID != "" {
		sb.WriteString(" AND task_id = ?")
		args = append(args, f.TaskID)
	}
	if f.ProjectID != "" {
		sb.WriteString(" AND project_id = ?")
		args = append(args, f.ProjectID)
	}
	return sb.String(), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.TimeSession, error) {
	s := &domain.TimeSession{}
	var windows string
	err := row.Scan(&s.ID, &s.EmployeeID, &s.TaskID, &s.ProjectID,
		&s.StartTime, &s.EndTime, &s.Duration, &s.ScreenshotCount,
		&s.ActivityData.MouseClicks, &s.ActivityData.KeyPresses,
		&windows, &s.ActivityData.ProductivityScore,
		&s.Status, &s.Synced, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan time session: %w", err)
	}
	if err := json.Unmarshal([]byte(windows), &s.ActivityData.ActiveWindows); err != nil {
		return nil, fmt.Errorf("unmarshal active windows: %w", err)
	}
	return s, nil
}

func scanSessions(rows *sql.Rows) ([]domain.TimeSession, error) {
	var sessions []domain.TimeSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

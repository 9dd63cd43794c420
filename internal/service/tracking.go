package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/workpulse/workpulse/internal/domain"
)

// TrackingService owns the time-session lifecycle: start/stop/sync state
// transitions, the active-session exclusivity rule, history queries, and
// per-employee statistics.
type TrackingService struct {
	sessions domain.SessionRepository
	tasks    domain.TaskRepository
	projects domain.ProjectRepository
}

// NewTrackingService creates a new TrackingService.
func NewTrackingService(sessions domain.SessionRepository, tasks domain.TaskRepository, projects domain.ProjectRepository) *TrackingService {
	return &TrackingService{sessions: sessions, tasks: tasks, projects: projects}
}

// SessionDetail is a session enriched with task and project display names.
type SessionDetail struct {
	domain.TimeSession
	TaskName    string
	ProjectName string
}

// Pagination describes one page of a session listing.
type Pagination struct {
	Total   int
	Limit   int
	Offset  int
	HasMore bool
}

// Stats summarizes an employee's completed sessions over a period.
type Stats struct {
	Period                 string
	TotalDuration          int64
	TotalSessions          int
	TotalScreenshots       int
	AverageSessionDuration int64
	ProjectBreakdown       []ProjectStat
}

// ProjectStat is the per-project slice of Stats.
type ProjectStat struct {
	ProjectID     string
	TotalDuration int64
	SessionCount  int
}

// Start begins a new active session for the employee on the given task.
// The task must exist and, if it carries an assignee list, include the
// employee. Returns *domain.ActiveSessionError if the employee already has
// an active session.
func (s *TrackingService) Start(ctx context.Context, employeeID, taskID string) (*domain.TimeSession, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: task not found", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if !task.AssignedTo(employeeID) {
		return nil, fmt.Errorf("%w: task not assigned to you", domain.ErrForbidden)
	}

	if active, err := s.sessions.GetActive(ctx, employeeID); err == nil {
		return nil, &domain.ActiveSessionError{Session: active}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check active session: %w", err)
	}

	session := &domain.TimeSession{
		ID:         domain.NewID("ts"),
		EmployeeID: employeeID,
		TaskID:     task.ID,
		ProjectID:  task.ProjectID,
		StartTime:  time.Now().UnixMilli(),
		Status:     domain.SessionStatusActive,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// A concurrent start won the insert; the partial unique index
			// rejected ours. Report the winner as the conflicting session.
			active, lookupErr := s.sessions.GetActive(ctx, employeeID)
			if lookupErr != nil {
				return nil, fmt.Errorf("create session: %w", err)
			}
			return nil, &domain.ActiveSessionError{Session: active}
		}
		return nil, fmt.Errorf("create session: %w", err)
	}

	// Advance the task to in-progress; idempotent, no write if already there.
	if task.Status != domain.TaskStatusInProgress {
		if err := s.tasks.UpdateStatus(ctx, task.ID, domain.TaskStatusInProgress); err != nil {
			slog.Error("advance task status", "taskId", task.ID, "error", err)
		}
	}

	slog.Info("time tracking started", "sessionId", session.ID, "employeeId", employeeID, "taskId", taskID)
	return session, nil
}

// Stop completes a session: sets endTime and duration, merges the final
// activity payload, and overwrites the screenshot count. If sessionID is
// empty the employee's active session is resolved via the exclusivity
// invariant.
func (s *TrackingService) Stop(ctx context.Context, employeeID, sessionID string, screenshotCount int, activity domain.ActivityUpdate) (*domain.TimeSession, error) {
	var session *domain.TimeSession
	var err error
	if sessionID != "" {
		session, err = s.sessions.GetActiveByID(ctx, sessionID, employeeID)
	} else {
		session, err = s.sessions.GetActive(ctx, employeeID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no active tracking session found", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find active session: %w", err)
	}

	endTime := time.Now().UnixMilli()
	duration := endTime - session.StartTime
	if duration < 0 {
		// Clock skew between agent and server; recoverable data-quality
		// issue, not a hard error.
		slog.Warn("negative session duration clamped to zero",
			"sessionId", session.ID, "startTime", session.StartTime, "endTime", endTime)
		duration = 0
	}

	session.EndTime = &endTime
	session.Duration = duration
	session.Status = domain.SessionStatusCompleted
	session.ScreenshotCount = screenshotCount
	session.ActivityData.Merge(activity)

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	slog.Info("time tracking stopped", "sessionId", session.ID, "duration", time.Duration(duration)*time.Millisecond)
	return session, nil
}

// Sync applies a telemetry catch-up from the desktop agent. Allowed in any
// session status, including completed. A non-nil duration overwrites the
// stored one: the agent's elapsed-time tracking is trusted over wall-clock
// subtraction for this field.
func (s *TrackingService) Sync(ctx context.Context, employeeID, sessionID string, screenshotCount int, activity domain.ActivityUpdate, duration *int64) error {
	session, err := s.sessions.GetByID(ctx, sessionID, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: session not found", domain.ErrNotFound)
		}
		return fmt.Errorf("find session: %w", err)
	}

	session.ScreenshotCount = screenshotCount
	session.ActivityData.Merge(activity)
	if duration != nil {
		session.Duration = *duration
	}
	session.Synced = true

	if err := s.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// ActiveSession returns the employee's active session enriched with task
// and project names, or nil if there is none. Duration is computed live
// from the start time.
func (s *TrackingService) ActiveSession(ctx context.Context, employeeID string) (*SessionDetail, error) {
	session, err := s.sessions.GetActive(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active session: %w", err)
	}

	detail := s.enrich(ctx, *session)
	detail.Duration = time.Now().UnixMilli() - session.StartTime
	if detail.Duration < 0 {
		// Same clock-skew tolerance Stop applies on completion.
		detail.Duration = 0
	}
	return &detail, nil
}

// ListSessions returns the employee's session history, most recent first,
// with offset/limit pagination and an unbounded total count.
func (s *TrackingService) ListSessions(ctx context.Context, employeeID string, f domain.SessionFilter) ([]SessionDetail, Pagination, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	sessions, err := s.sessions.List(ctx, employeeID, f)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list sessions: %w", err)
	}

	total, err := s.sessions.Count(ctx, employeeID, f)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("count sessions: %w", err)
	}

	details := make([]SessionDetail, len(sessions))
	for i, session := range sessions {
		details[i] = s.enrich(ctx, session)
	}

	return details, Pagination{
		Total:   total,
		Limit:   f.Limit,
		Offset:  f.Offset,
		HasMore: total > f.Offset+f.Limit,
	}, nil
}

// Stats aggregates the employee's completed sessions. Periods: "today"
// (local midnight to now), "week" (trailing 7 days), "month" (trailing 30
// days); anything else is unbounded.
func (s *TrackingService) Stats(ctx context.Context, employeeID, period string) (*Stats, error) {
	var since int64
	now := time.Now()
	switch period {
	case "today":
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).UnixMilli()
	case "week":
		since = now.Add(-7 * 24 * time.Hour).UnixMilli()
	case "month":
		since = now.Add(-30 * 24 * time.Hour).UnixMilli()
	default:
		since = 0
	}

	sessions, err := s.sessions.ListCompletedSince(ctx, employeeID, since)
	if err != nil {
		return nil, fmt.Errorf("list completed sessions: %w", err)
	}

	stats := &Stats{Period: period}
	byProject := make(map[string]int)
	for _, session := range sessions {
		stats.TotalDuration += session.Duration
		stats.TotalSessions++
		stats.TotalScreenshots += session.ScreenshotCount

		idx, ok := byProject[session.ProjectID]
		if !ok {
			idx = len(stats.ProjectBreakdown)
			byProject[session.ProjectID] = idx
			stats.ProjectBreakdown = append(stats.ProjectBreakdown, ProjectStat{ProjectID: session.ProjectID})
		}
		stats.ProjectBreakdown[idx].TotalDuration += session.Duration
		stats.ProjectBreakdown[idx].SessionCount++
	}

	if stats.TotalSessions > 0 {
		stats.AverageSessionDuration = int64(math.Round(float64(stats.TotalDuration) / float64(stats.TotalSessions)))
	}

	return stats, nil
}

// enrich attaches task/project display names to a session. Dangling ids
// resolve to "Unknown Task"/"Unknown Project" rather than failing.
func (s *TrackingService) enrich(ctx context.Context, session domain.TimeSession) SessionDetail {
	detail := SessionDetail{TimeSession: session, TaskName: "Unknown Task", ProjectName: "Unknown Project"}
	if task, err := s.tasks.GetByID(ctx, session.TaskID); err == nil {
		detail.TaskName = task.Name
	}
	if project, err := s.projects.GetByID(ctx, session.ProjectID); err == nil {
		detail.ProjectName = project.Name
	}
	return detail
}

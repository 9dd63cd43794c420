package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/workpulse/workpulse/internal/domain"
)

// TelemetryService owns the append-only ingestion path for Window and
// Screenshot records posted by the desktop agent. Records missing team or
// organization tags are stamped from the employee record, falling back to
// the configured defaults.
type TelemetryService struct {
	windows     domain.WindowRepository
	screenshots domain.ScreenshotRepository
	employees   domain.EmployeeRepository

	defaultTeamID string
	defaultOrgID  string
}

// NewTelemetryService creates a new TelemetryService.
func NewTelemetryService(windows domain.WindowRepository, screenshots domain.ScreenshotRepository, employees domain.EmployeeRepository, defaultTeamID, defaultOrgID string) *TelemetryService {
	return &TelemetryService{
		windows:       windows,
		screenshots:   screenshots,
		employees:     employees,
		defaultTeamID: defaultTeamID,
		defaultOrgID:  defaultOrgID,
	}
}

// stampTags fills empty team/organization tags from the employee record,
// then from the configured defaults. A missing employee record is not an
// error; the agent may report before provisioning catches up.
func (s *TelemetryService) stampTags(ctx context.Context, employeeID string, teamID, orgID *string) {
	if *teamID == "" || *orgID == "" {
		if employee, err := s.employees.GetByID(ctx, employeeID); err == nil {
			if *teamID == "" {
				*teamID = employee.TeamID
			}
			if *orgID == "" {
				*orgID = employee.OrganizationID
			}
		}
	}
	if *teamID == "" {
		*teamID = s.defaultTeamID
	}
	if *orgID == "" {
		*orgID = s.defaultOrgID
	}
}

// IngestWindow validates and stores one window record. The repository
// derives the translated timestamps; records are immutable after insert.
func (s *TelemetryService) IngestWindow(ctx context.Context, w *domain.Window) error {
	if w.End <= w.Start {
		return fmt.Errorf("%w: window end must be after start", domain.ErrInvalidInput)
	}
	if w.EmployeeID == "" {
		return fmt.Errorf("%w: employeeId is required", domain.ErrInvalidInput)
	}

	if w.ID == "" {
		w.ID = domain.NewID("win")
	}
	if w.Type == "" {
		w.Type = domain.WindowTypeTracked
	}
	s.stampTags(ctx, w.EmployeeID, &w.TeamID, &w.OrganizationID)

	if err := s.windows.Insert(ctx, w); err != nil {
		return fmt.Errorf("ingest window: %w", err)
	}

	slog.Debug("window ingested", "windowId", w.ID, "employeeId", w.EmployeeID)
	return nil
}

// IngestScreenshot validates and stores one screenshot record.
func (s *TelemetryService) IngestScreenshot(ctx context.Context, rec *domain.ScreenshotRecord) error {
	if rec.TimestampTranslated == "" {
		return fmt.Errorf("%w: timestampTranslated is required", domain.ErrInvalidInput)
	}
	if rec.EmployeeID == "" {
		return fmt.Errorf("%w: employeeId is required", domain.ErrInvalidInput)
	}

	if rec.ID == "" {
		rec.ID = domain.NewID("scr")
	}
	s.stampTags(ctx, rec.EmployeeID, &rec.TeamID, &rec.OrganizationID)

	if err := s.screenshots.Insert(ctx, rec); err != nil {
		return fmt.Errorf("ingest screenshot: %w", err)
	}

	slog.Debug("screenshot ingested", "screenshotId", rec.ID, "employeeId", rec.EmployeeID)
	return nil
}

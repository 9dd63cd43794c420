package service

import (
	"context"
	"fmt"

	"github.com/workpulse/workpulse/internal/domain"
)

// AnalyticsService computes derived views over the telemetry store. It
// only reads Window records; the ingestion path owns writes.
type AnalyticsService struct {
	windows domain.WindowRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(windows domain.WindowRepository) *AnalyticsService {
	return &AnalyticsService{windows: windows}
}

// AnalyticsQuery selects windows with Start in [Start, End]; each id slice
// is an "any of" filter. Timezone, where honored, is a "±HH[:MM]" offset.
type AnalyticsQuery struct {
	Start       int64
	End         int64
	Timezone    string
	EmployeeIDs []string
	TeamIDs     []string
	ProjectIDs  []string
	TaskIDs     []string
	ShiftIDs    []string
}

func (q AnalyticsQuery) filter() domain.WindowFilter {
	return domain.WindowFilter{
		Start:       q.Start,
		End:         q.End,
		EmployeeIDs: q.EmployeeIDs,
		TeamIDs:     q.TeamIDs,
		ProjectIDs:  q.ProjectIDs,
		TaskIDs:     q.TaskIDs,
		ShiftIDs:    q.ShiftIDs,
	}
}

// ProjectTime returns per-project totals of time, costs, and income.
// Output is never timezone-adjusted; only the window listing applies
// translation. That asymmetry is part of the existing API contract.
func (s *AnalyticsService) ProjectTime(ctx context.Context, q AnalyticsQuery) ([]domain.ProjectTimeAggregate, error) {
	aggregates, err := s.windows.ProjectTime(ctx, q.filter())
	if err != nil {
		return nil, fmt.Errorf("project time analytics: %w", err)
	}
	return aggregates, nil
}

// Windows returns the matching per-window rows. When a timezone offset is
// supplied, translated timestamps are recomputed as start/end minus the
// offset; malformed offsets fall back to UTC.
func (s *AnalyticsService) Windows(ctx context.Context, q AnalyticsQuery) ([]domain.Window, error) {
	windows, err := s.windows.List(ctx, q.filter())
	if err != nil {
		return nil, fmt.Errorf("window analytics: %w", err)
	}

	if q.Timezone != "" {
		offset := ParseTimezoneOffset(q.Timezone)
		for i := range windows {
			windows[i].StartTranslated = windows[i].Start - offset
			windows[i].EndTranslated = windows[i].End - offset
		}
	}

	return windows, nil
}

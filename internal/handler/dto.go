package handler

import (
	"github.com/workpulse/workpulse/internal/domain"
	"github.com/workpulse/workpulse/internal/service"
)

// Request bodies.

type startRequest struct {
	TaskID string `json:"taskId"`
}

type stopRequest struct {
	SessionID       string            `json:"sessionId"`
	ScreenshotCount int               `json:"screenshotCount"`
	ActivityData    activityUpdateDTO `json:"activityData"`
}

type syncRequest struct {
	SessionID       string            `json:"sessionId"`
	ScreenshotCount int               `json:"screenshotCount"`
	ActivityData    activityUpdateDTO `json:"activityData"`
	Duration        *int64            `json:"duration"`
}

type activityUpdateDTO struct {
	MouseClicks       *int     `json:"mouseClicks"`
	KeyPresses        *int     `json:"keyPresses"`
	ActiveWindows     []string `json:"activeWindows"`
	ProductivityScore *float64 `json:"productivityScore"`
}

func (a activityUpdateDTO) toDomain() domain.ActivityUpdate {
	return domain.ActivityUpdate{
		MouseClicks:       a.MouseClicks,
		KeyPresses:        a.KeyPresses,
		ActiveWindows:     a.ActiveWindows,
		ProductivityScore: a.ProductivityScore,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Ingestion payloads from the desktop agent. Translated timestamps are
// never accepted from the caller; the store derives them.

type ingestWindowRequest struct {
	Type             string  `json:"type"`
	Start            int64   `json:"start"`
	End              int64   `json:"end"`
	TimezoneOffset   int64   `json:"timezoneOffset"`
	EmployeeID       string  `json:"employeeId"`
	TeamID           string  `json:"teamId"`
	OrganizationID   string  `json:"organizationId"`
	ProjectID        string  `json:"projectId"`
	TaskID           string  `json:"taskId"`
	ShiftID          string  `json:"shiftId"`
	PayRate          float64 `json:"payRate"`
	BillRate         float64 `json:"billRate"`
	OvertimePayRate  float64 `json:"overtimePayRate"`
	OvertimeBillRate float64 `json:"overtimeBillRate"`
	Paid             bool    `json:"paid"`
	Billable         bool    `json:"billable"`
	Overtime         bool    `json:"overtime"`
}

func (r ingestWindowRequest) toDomain() *domain.Window {
	return &domain.Window{
		Type:             r.Type,
		Start:            r.Start,
		End:              r.End,
		TimezoneOffset:   r.TimezoneOffset,
		EmployeeID:       r.EmployeeID,
		TeamID:           r.TeamID,
		OrganizationID:   r.OrganizationID,
		ProjectID:        r.ProjectID,
		TaskID:           r.TaskID,
		ShiftID:          r.ShiftID,
		PayRate:          r.PayRate,
		BillRate:         r.BillRate,
		OvertimePayRate:  r.OvertimePayRate,
		OvertimeBillRate: r.OvertimeBillRate,
		Paid:             r.Paid,
		Billable:         r.Billable,
		Overtime:         r.Overtime,
	}
}

type ingestScreenshotRequest struct {
	Site                string `json:"site"`
	Title               string `json:"title"`
	Name                string `json:"name"`
	Productivity        int    `json:"productivity"`
	EmployeeID          string `json:"employeeId"`
	TeamID              string `json:"teamId"`
	OrganizationID      string `json:"organizationId"`
	AppID               string `json:"appId"`
	AppOrgID            string `json:"appOrgId"`
	AppTeamID           string `json:"appTeamId"`
	ShiftID             string `json:"shiftId"`
	ProjectID           string `json:"projectId"`
	TaskID              string `json:"taskId"`
	WindowID            string `json:"windowId"`
	TimestampTranslated string `json:"timestampTranslated"`
}

func (r ingestScreenshotRequest) toDomain() *domain.ScreenshotRecord {
	return &domain.ScreenshotRecord{
		Site:                r.Site,
		Title:               r.Title,
		Name:                r.Name,
		Productivity:        r.Productivity,
		EmployeeID:          r.EmployeeID,
		TeamID:              r.TeamID,
		OrganizationID:      r.OrganizationID,
		AppID:               r.AppID,
		AppOrgID:            r.AppOrgID,
		AppTeamID:           r.AppTeamID,
		ShiftID:             r.ShiftID,
		ProjectID:           r.ProjectID,
		TaskID:              r.TaskID,
		WindowID:            r.WindowID,
		TimestampTranslated: r.TimestampTranslated,
	}
}

// Session projections. Different endpoints expose different slices of the
// session record; these mirror the existing wire contract.

type startedSessionDTO struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	ProjectID string `json:"projectId"`
	StartTime int64  `json:"startTime"`
	Status    string `json:"status"`
}

type stoppedSessionDTO struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	ProjectID string `json:"projectId"`
	StartTime int64  `json:"startTime"`
	EndTime   *int64 `json:"endTime"`
	Duration  int64  `json:"duration"`
	Status    string `json:"status"`
}

type activeSessionDTO struct {
	ID          string `json:"id"`
	TaskID      string `json:"taskId"`
	TaskName    string `json:"taskName"`
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	StartTime   int64  `json:"startTime"`
	Duration    int64  `json:"duration"`
	Status      string `json:"status"`
}

type sessionListItemDTO struct {
	ID              string `json:"id"`
	TaskID          string `json:"taskId"`
	TaskName        string `json:"taskName"`
	ProjectID       string `json:"projectId"`
	ProjectName     string `json:"projectName"`
	StartTime       int64  `json:"startTime"`
	EndTime         *int64 `json:"endTime"`
	Duration        int64  `json:"duration"`
	ScreenshotCount int    `json:"screenshotCount"`
	Status          string `json:"status"`
	CreatedAt       int64  `json:"createdAt"`
}

func toSessionListItemDTO(d service.SessionDetail) sessionListItemDTO {
	return sessionListItemDTO{
		ID:              d.ID,
		TaskID:          d.TaskID,
		TaskName:        d.TaskName,
		ProjectID:       d.ProjectID,
		ProjectName:     d.ProjectName,
		StartTime:       d.StartTime,
		EndTime:         d.EndTime,
		Duration:        d.Duration,
		ScreenshotCount: d.ScreenshotCount,
		Status:          d.Status,
		CreatedAt:       d.CreatedAt,
	}
}

type paginationDTO struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

type statsDTO struct {
	Period                 string           `json:"period"`
	TotalDuration          int64            `json:"totalDuration"`
	TotalSessions          int              `json:"totalSessions"`
	TotalScreenshots       int              `json:"totalScreenshots"`
	AverageSessionDuration int64            `json:"averageSessionDuration"`
	ProjectBreakdown       []projectStatDTO `json:"projectBreakdown"`
}

type projectStatDTO struct {
	ProjectID     string `json:"projectId"`
	TotalDuration int64  `json:"totalDuration"`
	SessionCount  int    `json:"sessionCount"`
}

func toStatsDTO(s *service.Stats) statsDTO {
	breakdown := make([]projectStatDTO, len(s.ProjectBreakdown))
	for i, p := range s.ProjectBreakdown {
		breakdown[i] = projectStatDTO{ProjectID: p.ProjectID, TotalDuration: p.TotalDuration, SessionCount: p.SessionCount}
	}
	return statsDTO{
		Period:                 s.Period,
		TotalDuration:          s.TotalDuration,
		TotalSessions:          s.TotalSessions,
		TotalScreenshots:       s.TotalScreenshots,
		AverageSessionDuration: s.AverageSessionDuration,
		ProjectBreakdown:       breakdown,
	}
}

// Analytics DTOs. These endpoints return bare arrays, no envelope, for
// backward compatibility with the existing API contract.

type projectTimeDTO struct {
	ID     string  `json:"id"`
	Time   int64   `json:"time"`
	Costs  float64 `json:"costs"`
	Income float64 `json:"income"`
}

func toProjectTimeDTOs(aggregates []domain.ProjectTimeAggregate) []projectTimeDTO {
	dtos := make([]projectTimeDTO, len(aggregates))
	for i, a := range aggregates {
		dtos[i] = projectTimeDTO{ID: a.ProjectID, Time: a.Time, Costs: a.Costs, Income: a.Income}
	}
	return dtos
}

type windowDTO struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	Start            int64   `json:"start"`
	End              int64   `json:"end"`
	TimezoneOffset   int64   `json:"timezoneOffset"`
	StartTranslated  int64   `json:"startTranslated"`
	EndTranslated    int64   `json:"endTranslated"`
	EmployeeID       string  `json:"employeeId"`
	TeamID           string  `json:"teamId"`
	OrganizationID   string  `json:"organizationId"`
	ProjectID        string  `json:"projectId"`
	TaskID           string  `json:"taskId"`
	ShiftID          string  `json:"shiftId"`
	PayRate          float64 `json:"payRate"`
	BillRate         float64 `json:"billRate"`
	OvertimePayRate  float64 `json:"overtimePayRate"`
	OvertimeBillRate float64 `json:"overtimeBillRate"`
	Paid             bool    `json:"paid"`
	Billable         bool    `json:"billable"`
	Overtime         bool    `json:"overtime"`
}

func toWindowDTOs(windows []domain.Window) []windowDTO {
	dtos := make([]windowDTO, len(windows))
	for i, w := range windows {
		dtos[i] = windowDTO{
			ID:               w.ID,
			Type:             w.Type,
			Start:            w.Start,
			End:              w.End,
			TimezoneOffset:   w.TimezoneOffset,
			StartTranslated:  w.StartTranslated,
			EndTranslated:    w.EndTranslated,
			EmployeeID:       w.EmployeeID,
			TeamID:           w.TeamID,
			OrganizationID:   w.OrganizationID,
			ProjectID:        w.ProjectID,
			TaskID:           w.TaskID,
			ShiftID:          w.ShiftID,
			PayRate:          w.PayRate,
			BillRate:         w.BillRate,
			OvertimePayRate:  w.OvertimePayRate,
			OvertimeBillRate: w.OvertimeBillRate,
			Paid:             w.Paid,
			Billable:         w.Billable,
			Overtime:         w.Overtime,
		}
	}
	return dtos
}

type screenshotDTO struct {
	ID                  string `json:"id"`
	Site                string `json:"site"`
	Title               string `json:"title"`
	Name                string `json:"name"`
	Productivity        int    `json:"productivity"`
	EmployeeID          string `json:"employeeId"`
	TeamID              string `json:"teamId"`
	OrganizationID      string `json:"organizationId"`
	AppID               string `json:"appId"`
	AppOrgID            string `json:"appOrgId"`
	AppTeamID           string `json:"appTeamId"`
	ShiftID             string `json:"shiftId"`
	ProjectID           string `json:"projectId"`
	TaskID              string `json:"taskId"`
	WindowID            string `json:"windowId"`
	TimestampTranslated string `json:"timestampTranslated"`
}

func toScreenshotDTOs(records []domain.ScreenshotRecord) []screenshotDTO {
	dtos := make([]screenshotDTO, len(records))
	for i, s := range records {
		dtos[i] = screenshotDTO{
			ID:                  s.ID,
			Site:                s.Site,
			Title:               s.Title,
			Name:                s.Name,
			Productivity:        s.Productivity,
			EmployeeID:          s.EmployeeID,
			TeamID:              s.TeamID,
			OrganizationID:      s.OrganizationID,
			AppID:               s.AppID,
			AppOrgID:            s.AppOrgID,
			AppTeamID:           s.AppTeamID,
			ShiftID:             s.ShiftID,
			ProjectID:           s.ProjectID,
			TaskID:              s.TaskID,
			WindowID:            s.WindowID,
			TimestampTranslated: s.TimestampTranslated,
		}
	}
	return dtos
}

type userDTO struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID string `json:"organizationId"`
	EmployeeID     string `json:"employeeId"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		ID:             u.ID,
		Email:          u.Email,
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
		EmployeeID:     u.EmployeeID,
	}
}

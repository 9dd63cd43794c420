package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/workpulse/workpulse/internal/domain"
)

// ScreenshotRepository implements domain.ScreenshotRepository using SQLite.
// Screenshot records are append-only.
type ScreenshotRepository struct {
	db *sql.DB
}

// NewScreenshotRepository creates a new SQLite-backed ScreenshotRepository.
func NewScreenshotRepository(db *DB) *ScreenshotRepository {
	return &ScreenshotRepository{db: db.SqlDB}
}

// screenshotColumnFor maps storage field names to columns. Only values from
// this table ever reach the SQL text, so a caller-supplied sort field can
// never inject into the query.
var screenshotColumnFor = map[string]string{
	"productivity":        "productivity",
	"name":                "name",
	"title":               "title",
	"site":                "site",
	"employeeId":          "employee_id",
	"teamId":              "team_id",
	"appId":               "app_id",
	"appOrgId":            "app_org_id",
	"appTeamId":           "app_team_id",
	"shiftId":             "shift_id",
	"projectId":           "project_id",
	"taskId":              "task_id",
	"windowId":            "window_id",
	"timestampTranslated": "timestamp_translated",
}

const screenshotColumns = `id, site, title, name, productivity, employee_id, team_id,
	 organization_id, app_id, app_org_id, app_team_id, shift_id, project_id, task_id,
	 window_id, timestamp_translated`

func (r *ScreenshotRepository) Insert(ctx context.Context, s *domain.ScreenshotRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO screenshots (id, site, title, name, productivity, employee_id, team_id,
		 organization_id, app_id, app_org_id, app_team_id, shift_id, project_id, task_id,
		 window_id, timestamp_translated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Site, s.Title, s.Name, s.Productivity, s.EmployeeID, s.TeamID,
		s.OrganizationID, s.AppID, s.AppOrgID, s.AppTeamID, s.ShiftID, s.ProjectID,
		s.TaskID, s.WindowID, s.TimestampTranslated,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert screenshot: %w", err)
	}
	return nil
}

// List returns one page of the cursor scan: range + IN filters, ascending
// sort on the mapped field, strictly-greater continuation when After is set.
//
// The range predicate compares timestamp_translated as TEXT against the
// stringified bounds. Lexical and numeric order coincide only for
// same-length numeric strings; this is the documented external contract,
// and this function is the single place to change if it is ever corrected
// to numeric comparison.
func (r *ScreenshotRepository) List(ctx context.Context, f domain.ScreenshotFilter) ([]domain.ScreenshotRecord, error) {
	sortColumn, ok := screenshotColumnFor[f.SortField]
	if !ok {
		sortColumn = "timestamp_translated"
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + screenshotColumns + ` FROM screenshots`)
	sb.WriteString(` WHERE timestamp_translated >= ? AND timestamp_translated <= ?`)
	args := []any{fmt.Sprintf("%d", f.Start), fmt.Sprintf("%d", f.End)}

	inClause(&sb, &args, "task_id", f.TaskIDs)
	inClause(&sb, &args, "shift_id", f.ShiftIDs)
	inClause(&sb, &args, "project_id", f.ProjectIDs)

	if f.After != nil {
		sb.WriteString(" AND " + sortColumn + " > ?")
		args = append(args, f.After)
	}

	sb.WriteString(" ORDER BY " + sortColumn + " ASC LIMIT ?")
	args = append(args, f.Limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list screenshots: %w", err)
	}
	defer rows.Close()

	return scanScreenshots(rows)
}

func scanScreenshots(rows *sql.Rows) ([]domain.ScreenshotRecord, error) {
	var records []domain.ScreenshotRecord
	for rows.Next() {
		var s domain.ScreenshotRecord
		if err := rows.Scan(&s.ID, &s.Site, &s.Title, &s.Name, &s.Productivity,
			&s.EmployeeID, &s.TeamID, &s.OrganizationID, &s.AppID, &s.AppOrgID,
			&s.AppTeamID, &s.ShiftID, &s.ProjectID, &s.TaskID, &s.WindowID,
			&s.TimestampTranslated); err != nil {
			return nil, fmt.Errorf("scan screenshot: %w", err)
		}
		records = append(records, s)
	}
	return records, rows.Err()
}

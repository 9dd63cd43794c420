package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/workpulse/workpulse/internal/domain"
)

// WindowRepository implements domain.WindowRepository using SQLite.
// Windows are append-only telemetry; there is no update path.
type WindowRepository struct {
	db *sql.DB
}

// NewWindowRepository creates a new SQLite-backed WindowRepository.
func NewWindowRepository(db *DB) *WindowRepository {
	return &WindowRepository{db: db.SqlDB}
}

func (r *WindowRepository) Insert(ctx context.Context, w *domain.Window) error {
	// Translated fields are derived, never trusted from the caller.
	w.StartTranslated = w.Start - w.TimezoneOffset
	w.EndTranslated = w.End - w.TimezoneOffset

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO windows (id, type, "start", "end", timezone_offset, start_translated, end_translated,
		 employee_id, team_id, organization_id, project_id, task_id, shift_id,
		 pay_rate, bill_rate, overtime_pay_rate, overtime_bill_rate, paid, billable, overtime)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Type, w.Start, w.End, w.TimezoneOffset, w.StartTranslated, w.EndTranslated,
		w.EmployeeID, w.TeamID, w.OrganizationID, w.ProjectID, w.TaskID, w.ShiftID,
		w.PayRate, w.BillRate, w.OvertimePayRate, w.OvertimeBillRate,
		w.Paid, w.Billable, w.Overtime,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert window: %w", err)
	}
	return nil
}

func (r *WindowRepository) List(ctx context.Context, f domain.WindowFilter) ([]domain.Window, error) {
	where, args := buildWindowWhere(f)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, "start", "end", timezone_offset, start_translated, end_translated,
		 employee_id, team_id, organization_id, project_id, task_id, shift_id,
		 pay_rate, bill_rate, overtime_pay_rate, overtime_bill_rate, paid, billable, overtime
		 FROM windows`+where+` ORDER BY "start"`, args...)
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	defer rows.Close()

	var windows []domain.Window
	for rows.Next() {
		var w domain.Window
		if err := rows.Scan(&w.ID, &w.Type, &w.Start, &w.End, &w.TimezoneOffset,
			&w.StartTranslated, &w.EndTranslated,
			&w.EmployeeID, &w.TeamID, &w.OrganizationID, &w.ProjectID, &w.TaskID, &w.ShiftID,
			&w.PayRate, &w.BillRate, &w.OvertimePayRate, &w.OvertimeBillRate,
			&w.Paid, &w.Billable, &w.Overtime); err != nil {
			return nil, fmt.Errorf("scan window: %w", err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

// ProjectTime aggregates windows by project. Durations are summed in
// milliseconds; money columns use duration in hours times the rate on each
// window.
func (r *WindowRepository) ProjectTime(ctx context.Context, f domain.WindowFilter) ([]domain.ProjectTimeAggregate, error) {
	where, args := buildWindowWhere(f)
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_id,
		 SUM("end" - "start"),
		 SUM(("end" - "start") / 3600000.0 * pay_rate),
		 SUM(("end" - "start") / 3600000.0 * bill_rate)
		 FROM windows`+where+` GROUP BY project_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate project time: %w", err)
	}
	defer rows.Close()

	var aggregates []domain.ProjectTimeAggregate
	for rows.Next() {
		var a domain.ProjectTimeAggregate
		if err := rows.Scan(&a.ProjectID, &a.Time, &a.Costs, &a.Income); err != nil {
			return nil, fmt.Errorf("scan project time: %w", err)
		}
		aggregates = append(aggregates, a)
	}
	return aggregates, rows.Err()
}

func buildWindowWhere(f domain.WindowFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(` WHERE "start" >= ? AND "start" <= ?`)
	args := []any{f.Start, f.End}

	inClause(&sb, &args, "employee_id", f.EmployeeIDs)
	inClause(&sb, &args, "team_id", f.TeamIDs)
	inClause(&sb, &args, "project_id", f.ProjectIDs)
	inClause(&sb, &args, "task_id", f.TaskIDs)
	inClause(&sb, &args, "shift_id", f.ShiftIDs)

	return sb.String(), args
}

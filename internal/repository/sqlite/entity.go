package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/workpulse/workpulse/internal/domain"
)

// TaskRepository implements domain.TaskRepository using SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite-backed TaskRepository.
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db.SqlDB}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	now := time.Now().UnixMilli()
	assigned, err := json.Marshal(task.AssignedEmployees)
	if err != nil {
		return fmt.Errorf("marshal assigned employees: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, name, project_id, status, assigned_employees, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID, task.Name, task.ProjectID, task.Status, string(assigned), now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert task: %w", err)
	}
	task.CreatedAt = now
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	t := &domain.Task{}
	var assigned string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, project_id, status, assigned_employees, created_at
		 FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.ProjectID, &t.Status, &assigned, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query task by id: %w", err)
	}
	if err := json.Unmarshal([]byte(assigned), &t.AssignedEmployees); err != nil {
		return nil, fmt.Errorf("unmarshal assigned employees: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ProjectRepository implements domain.ProjectRepository using SQLite.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new SQLite-backed ProjectRepository.
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db.SqlDB}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	now := time.Now().UnixMilli()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, organization_id, created_at) VALUES (?, ?, ?, ?)`,
		project.ID, project.Name, project.OrganizationID, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert project: %w", err)
	}
	project.CreatedAt = now
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p := &domain.Project{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, organization_id, created_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.OrganizationID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query project by id: %w", err)
	}
	return p, nil
}

// EmployeeRepository implements domain.EmployeeRepository using SQLite.
type EmployeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new SQLite-backed EmployeeRepository.
func NewEmployeeRepository(db *DB) *EmployeeRepository {
	return &EmployeeRepository{db: db.SqlDB}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	now := time.Now().UnixMilli()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (id, name, email, team_id, organization_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		employee.ID, employee.Name, employee.Email, employee.TeamID, employee.OrganizationID, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	employee.CreatedAt = now
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	e := &domain.Employee{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, team_id, organization_id, created_at
		 FROM employees WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &e.Email, &e.TeamID, &e.OrganizationID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query employee by id: %w", err)
	}
	return e, nil
}

package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/workpulse/workpulse/internal/domain"
	"github.com/workpulse/workpulse/internal/repository/sqlite"
)

func TestTaskRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	task := &domain.Task{
		ID:                "task-1",
		Name:              "Build login page",
		ProjectID:         "proj-1",
		Status:            domain.TaskStatusPending,
		AssignedEmployees: []string{"emp-1", "emp-2"},
	}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByID(ctx, "task-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Name != "Build login page" {
		t.Fatalf("unexpected name %q", found.Name)
	}
	if len(found.AssignedEmployees) != 2 || found.AssignedEmployees[0] != "emp-1" {
		t.Fatalf("unexpected assignees %v", found.AssignedEmployees)
	}
}

func TestTaskRepository_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	task := &domain.Task{ID: "task-1", Name: "n", ProjectID: "proj-1", Status: domain.TaskStatusPending}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.UpdateStatus(ctx, "task-1", domain.TaskStatusInProgress); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	found, err := repo.GetByID(ctx, "task-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Status != domain.TaskStatusInProgress {
		t.Fatalf("expected in-progress, got %s", found.Status)
	}

	if err := repo.UpdateStatus(ctx, "task-missing", domain.TaskStatusInProgress); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectAndEmployeeRepositories(t *testing.T) {
	db := newTestDB(t)
	projects := sqlite.NewProjectRepository(db)
	employees := sqlite.NewEmployeeRepository(db)
	ctx := context.Background()

	if err := projects.Create(ctx, &domain.Project{ID: "proj-1", Name: "Website", OrganizationID: "org-1"}); err != nil {
		t.Fatalf("Create project: %v", err)
	}
	project, err := projects.GetByID(ctx, "proj-1")
	if err != nil {
		t.Fatalf("GetByID project: %v", err)
	}
	if project.Name != "Website" {
		t.Fatalf("unexpected project name %q", project.Name)
	}
	if _, err := projects.GetByID(ctx, "proj-missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := employees.Create(ctx, &domain.Employee{ID: "emp-1", Name: "Ada", Email: "ada@example.com", TeamID: "team-1", OrganizationID: "org-1"}); err != nil {
		t.Fatalf("Create employee: %v", err)
	}
	employee, err := employees.GetByID(ctx, "emp-1")
	if err != nil {
		t.Fatalf("GetByID employee: %v", err)
	}
	if employee.Email != "ada@example.com" {
		t.Fatalf("unexpected email %q", employee.Email)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		ID:             "user-1",
		Email:          "ada@example.com",
		PasswordHash:   "x",
		Role:           domain.RoleEmployee,
		OrganizationID: "org-1",
		EmployeeID:     "emp-1",
		Active:         true,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if found.ID != "user-1" || !found.Active {
		t.Fatalf("unexpected user %+v", found)
	}

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Email is unique.
	dup := *user
	dup.ID = "user-2"
	if err := repo.Create(ctx, &dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate email, got %v", err)
	}
}

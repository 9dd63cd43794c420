package domain

import "context"

// Task is the unit of work a session tracks against. AssignedEmployees is
// an explicit assignee list; when empty the task is open to everyone.
type Task struct {
	ID                string
	Name              string
	ProjectID         string
	Status            string
	AssignedEmployees []string
	CreatedAt         int64
}

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// AssignedTo reports whether the task is trackable by the given employee.
// Tasks with no explicit assignee list are open to everyone.
func (t *Task) AssignedTo(employeeID string) bool {
	if len(t.AssignedEmployees) == 0 {
		return true
	}
	for _, id := range t.AssignedEmployees {
		if id == employeeID {
			return true
		}
	}
	return false
}

type Project struct {
	ID             string
	Name           string
	OrganizationID string
	CreatedAt      int64
}

type Employee struct {
	ID             string
	Name           string
	Email          string
	TeamID         string
	OrganizationID string
	CreatedAt      int64
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
}

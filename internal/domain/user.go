package domain

import "context"

// User is a login identity. Employees additionally reference their
// Employee record; admins manage the organization.
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	Role           string
	OrganizationID string
	EmployeeID     string
	Active         bool
	CreatedAt      int64
}

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

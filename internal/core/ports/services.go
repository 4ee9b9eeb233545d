package ports

import (
	"context"

	"github.com/pecc/timetracking/internal/core/domain"
)

// AuthService authenticates users against the canonical store.
type AuthService interface {
	Login(ctx context.Context, name, password string) (*domain.User, error)
}

// CreateUserInput carries the fields an administrator supplies when
// creating an account. The server assigns the id, forces a password
// change, and generates a temporary password when none is given.
type CreateUserInput struct {
	Name     string
	Role     domain.Role
	Password string
}

// UserService defines the server-side user management use cases.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, u domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// TimeEntryService defines the server-side time entry use cases.
type TimeEntryService interface {
	List(ctx context.Context) ([]domain.TimeEntry, error)
	Create(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error)
	Update(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error)
}

// SubmissionService defines the server-side contractor submission use cases.
type SubmissionService interface {
	List(ctx context.Context) ([]domain.ContractorSubmission, error)
	Create(ctx context.Context, s domain.ContractorSubmission) (*domain.ContractorSubmission, error)
}

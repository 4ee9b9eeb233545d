package ports

import (
	"context"

	"github.com/pecc/timetracking/internal/core/domain"
)

// DataStore is the single contract the session store persists through.
// The remote client implements it against the HTTP API; the resilient
// gateway implements it by wrapping the remote client with the local
// cache fallback. Results are canonical records: callers replace their
// in-memory copies with what comes back, never the other way around.
type DataStore interface {
	// Login returns the matching user or domain.ErrInvalidCredentials.
	Login(ctx context.Context, name, password string) (*domain.User, error)

	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, u domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, u domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error

	ListTimeEntries(ctx context.Context) ([]domain.TimeEntry, error)
	CreateTimeEntry(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error)

	// Submissions are append-only: list and create, no update or delete.
	ListSubmissions(ctx context.Context) ([]domain.ContractorSubmission, error)
	CreateSubmission(ctx context.Context, s domain.ContractorSubmission) (*domain.ContractorSubmission, error)
}

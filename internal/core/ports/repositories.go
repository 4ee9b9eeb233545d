package ports

import (
	"context"

	"github.com/pecc/timetracking/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts on the
// server side.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	// FindByCredentials performs the plaintext name+password lookup used by
	// login. Returns domain.ErrInvalidCredentials when nothing matches.
	FindByCredentials(ctx context.Context, name, password string) (*domain.User, error)
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	// Update replaces the stored record. Returns domain.ErrNotFound when
	// the id does not exist.
	Update(ctx context.Context, u domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// TimeEntryRepository defines persistence operations for time entries.
// Entries are never deleted.
type TimeEntryRepository interface {
	List(ctx context.Context) ([]domain.TimeEntry, error)
	FindByID(ctx context.Context, id int64) (*domain.TimeEntry, error)
	// HasOpenEntry reports whether userID currently has an entry with no
	// clock-out.
	HasOpenEntry(ctx context.Context, userID int64) (bool, error)
	Create(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error)
	Update(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error)
}

// SubmissionRepository defines persistence for contractor submissions,
// which are append-only.
type SubmissionRepository interface {
	List(ctx context.Context) ([]domain.ContractorSubmission, error)
	Create(ctx context.Context, s domain.ContractorSubmission) (*domain.ContractorSubmission, error)
}
